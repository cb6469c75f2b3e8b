package validation

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

type reportJSON struct {
	Valid        bool      `json:"valid"`
	ErrorCount   int       `json:"error_count"`
	WarningCount int       `json:"warning_count"`
	Findings     []Finding `json:"findings"`
}

func (r *Report) MarshalJSON() ([]byte, error) {
	findings := r.findings
	if findings == nil {
		findings = []Finding{}
	}
	return json.Marshal(reportJSON{
		Valid:        !r.HasErrors(),
		ErrorCount:   len(r.Errors()),
		WarningCount: len(r.Warnings()),
		Findings:     findings,
	})
}

// UnmarshalJSON restores a report from its JSON form. Counts, validity and each
// finding's severity are derived from the finding kinds, not trusted from the input.
func (r *Report) UnmarshalJSON(data []byte) error {
	var in reportJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	for i := range in.Findings {
		in.Findings[i].Severity = in.Findings[i].Kind.Severity()
	}
	r.findings = in.Findings
	return nil
}

// WriteText renders the report one finding per line followed by the summary
func (r *Report) WriteText(w io.Writer) error {
	for _, f := range r.findings {
		if _, err := fmt.Fprintln(w, f.String()); err != nil {
			return err
		}
		for _, rel := range f.Related {
			if _, err := fmt.Fprintf(w, "    see %s\n", rel); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w, r.Summary())
	return err
}
