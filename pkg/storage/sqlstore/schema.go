package sqlstore

import (
	"strconv"
	"strings"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS ord_records (
	id VARCHAR(64) PRIMARY KEY,
	source TEXT NOT NULL,
	format VARCHAR(16) NOT NULL,
	digest CHAR(64) NOT NULL,
	canonical JSONB,
	report JSONB NOT NULL,
	accepted BOOLEAN NOT NULL,
	created_at TIMESTAMP WITH TIME ZONE NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ord_records_digest ON ord_records(digest);
CREATE INDEX IF NOT EXISTS idx_ord_records_created_at ON ord_records(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_ord_records_accepted ON ord_records(accepted);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS ord_records (
	id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	format TEXT NOT NULL,
	digest TEXT NOT NULL,
	canonical TEXT,
	report TEXT NOT NULL,
	accepted BOOLEAN NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ord_records_digest ON ord_records(digest);
CREATE INDEX IF NOT EXISTS idx_ord_records_created_at ON ord_records(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_ord_records_accepted ON ord_records(accepted);
`

func schemaFor(driver string) string {
	if driver == DriverSQLite {
		return sqliteSchema
	}
	return postgresSchema
}

// rebind rewrites ? placeholders as $1, $2, ... for postgres. Queries in this package
// never contain a literal question mark.
func rebind(driver, query string) string {
	if driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
