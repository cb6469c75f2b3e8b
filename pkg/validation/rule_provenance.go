package validation

import (
	"regexp"
	"time"

	"github.com/platinummonkey/ordcheck/pkg/reaction"
)

// the final ORCID character is a checksum digit or X; the checksum itself is not verified
var orcidPattern = regexp.MustCompile(`^[0-9]{4}-[0-9]{4}-[0-9]{4}-[0-9]{3}[0-9X]$`)

// ProvenanceRule checks timestamps and people in the provenance block
type ProvenanceRule struct {
	baseRule
}

func NewProvenanceRule() *ProvenanceRule {
	return &ProvenanceRule{baseRule{
		name:        "provenance",
		description: "Timestamps must parse and be in order; ORCIDs must be well formed",
	}}
}

func (r *ProvenanceRule) Check(_ *Context, node Node) []Finding {
	switch v := node.Value.(type) {
	case *reaction.DateTime:
		if v.Value == "" {
			return nil
		}
		if _, err := v.Time(); err != nil {
			return []Finding{newFinding(KindMalformedValue, node.Path, "could not parse timestamp %q", v.Value)}
		}
	case *reaction.Person:
		if v.ORCID != "" && !orcidPattern.MatchString(v.ORCID) {
			return []Finding{newFinding(KindMalformedValue, node.Path.Field("orcid"),
				"invalid ORCID %q: enter as 0000-0000-0000-0000", v.ORCID)}
		}
	case *reaction.ReactionProvenance:
		return checkProvenanceOrder(node.Path, v)
	}
	return nil
}

// checkProvenanceOrder compares the timestamps that parse; unparsable ones are reported
// at their own node
func checkProvenanceOrder(path reaction.Path, p *reaction.ReactionProvenance) []Finding {
	var findings []Finding

	start, hasStart := parsedTime(p.ExperimentStart)
	var created time.Time
	var hasCreated bool
	createdPath := path.Field("record_created").Field("time")
	if p.RecordCreated != nil {
		created, hasCreated = parsedTime(p.RecordCreated.Time)
	}
	if hasStart && hasCreated && created.Before(start) {
		findings = append(findings, newFinding(KindInconsistentRecord, createdPath,
			"record_created (%s) is before experiment_start (%s)", created.Format(time.RFC3339), start.Format(time.RFC3339)).
			withRelated(path.Field("experiment_start")))
	}

	if n := len(p.RecordModified); n > 0 && hasCreated {
		last := p.RecordModified[n-1]
		if last != nil {
			if modified, ok := parsedTime(last.Time); ok && modified.Before(created) {
				findings = append(findings, newFinding(KindInconsistentRecord, path.Field("record_modified").Index(n-1).Field("time"),
					"last record_modified (%s) is before record_created (%s)", modified.Format(time.RFC3339), created.Format(time.RFC3339)).
					withRelated(createdPath))
			}
		}
	}
	return findings
}

func parsedTime(d *reaction.DateTime) (time.Time, bool) {
	if d == nil || d.Value == "" {
		return time.Time{}, false
	}
	t, err := d.Time()
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
