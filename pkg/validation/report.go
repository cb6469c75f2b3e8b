package validation

import (
	"fmt"

	"github.com/platinummonkey/ordcheck/pkg/codec"
)

// Report is the ordered list of findings for one record. A report is owned by a single
// call and is not safe for concurrent mutation.
type Report struct {
	findings []Finding
}

// NewReport creates an empty report
func NewReport() *Report {
	return &Report{}
}

// Add appends findings in order
func (r *Report) Add(findings ...Finding) {
	r.findings = append(r.findings, findings...)
}

// Findings returns a copy of the findings in the order they were recorded
func (r *Report) Findings() []Finding {
	out := make([]Finding, len(r.findings))
	copy(out, r.findings)
	return out
}

func (r *Report) Len() int {
	return len(r.findings)
}

// HasErrors is the acceptance gate: a record with any ERROR finding must be rejected.
// Warnings never block.
func (r *Report) HasErrors() bool {
	for _, f := range r.findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (r *Report) Errors() []Finding {
	return r.bySeverity(SeverityError)
}

func (r *Report) Warnings() []Finding {
	return r.bySeverity(SeverityWarning)
}

func (r *Report) bySeverity(s Severity) []Finding {
	var out []Finding
	for _, f := range r.findings {
		if f.Severity == s {
			out = append(out, f)
		}
	}
	return out
}

// ByKind returns the findings of one kind
func (r *Report) ByKind(k Kind) []Finding {
	var out []Finding
	for _, f := range r.findings {
		if f.Kind == k {
			out = append(out, f)
		}
	}
	return out
}

// CountByKind tallies findings per kind
func (r *Report) CountByKind() map[Kind]int {
	counts := make(map[Kind]int)
	for _, f := range r.findings {
		counts[f.Kind]++
	}
	return counts
}

// Merge appends the findings of other after the receiver's
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.findings = append(r.findings, other.findings...)
}

// Summary renders counts, e.g. "invalid: 2 errors, 1 warning"
func (r *Report) Summary() string {
	status := "valid"
	if r.HasErrors() {
		status = "invalid"
	}
	return fmt.Sprintf("%s: %s, %s", status,
		plural(len(r.Errors()), "error"), plural(len(r.Warnings()), "warning"))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// AddDecodeIssues records problems found while decoding the record. Ambiguous oneofs
// become OneofMismatch findings and unknown enumerants become MalformedValue findings.
func (r *Report) AddDecodeIssues(issues codec.Issues) {
	for _, iss := range issues {
		var f Finding
		switch iss.Code {
		case codec.IssueAmbiguousOneof:
			f = newFinding(KindOneofMismatch, iss.Path, "%s", iss.Message)
		case codec.IssueUnknownEnum:
			f = newFinding(KindMalformedValue, iss.Path, "%s", iss.Message)
		default:
			f = newFinding(KindMalformedValue, iss.Path, "%s: %s", iss.Code, iss.Message)
		}
		f.Rule = decodeRuleName
		r.findings = append(r.findings, f)
	}
}
