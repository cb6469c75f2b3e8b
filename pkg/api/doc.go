// Package api serves the ordcheck engine over HTTP.
//
// Records are posted to /api/v1/normalize or /api/v1/validate as JSON, YAML or binary
// protobuf. The format comes from the format query parameter, then the Content-Type,
// and is otherwise sniffed from the body. Both endpoints answer 200 with the findings
// report whether or not the record is accepted; a body that cannot be decoded at all
// gets 422.
//
// When a record store is configured, /api/v1/records persists posted records through
// the same import path used by batch imports and serves them back by id.
package api
