package validation

import (
	"fmt"

	"github.com/platinummonkey/ordcheck/pkg/reaction"
)

// Severity indicates how serious a finding is
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)

// Kind classifies a finding. Each kind has a fixed severity.
type Kind string

const (
	KindCanonicalizationFailed Kind = "CanonicalizationFailed"
	KindMissingDetails         Kind = "MissingDetails"
	KindExtraneousDetails      Kind = "ExtraneousDetails"
	KindOneofMismatch          Kind = "OneofMismatch"
	KindDanglingReference      Kind = "DanglingReference"
	KindOrderingWarning        Kind = "OrderingWarning"
	KindRequiredFieldAbsent    Kind = "RequiredFieldAbsent"
	KindRecommendedFieldAbsent Kind = "RecommendedFieldAbsent"
	KindValueOutOfRange        Kind = "ValueOutOfRange"
	KindSuspiciousValue        Kind = "SuspiciousValue"
	KindMalformedValue         Kind = "MalformedValue"
	KindInconsistentRecord     Kind = "InconsistentRecord"
	KindTreeTooLarge           Kind = "TreeTooLarge"
)

var kindSeverity = map[Kind]Severity{
	KindCanonicalizationFailed: SeverityError,
	KindMissingDetails:         SeverityError,
	KindExtraneousDetails:      SeverityWarning,
	KindOneofMismatch:          SeverityError,
	KindDanglingReference:      SeverityError,
	KindOrderingWarning:        SeverityWarning,
	KindRequiredFieldAbsent:    SeverityError,
	KindRecommendedFieldAbsent: SeverityWarning,
	KindValueOutOfRange:        SeverityError,
	KindSuspiciousValue:        SeverityWarning,
	KindMalformedValue:         SeverityError,
	KindInconsistentRecord:     SeverityError,
	KindTreeTooLarge:           SeverityError,
}

// Severity returns the fixed severity of the kind. Unknown kinds are errors.
func (k Kind) Severity() Severity {
	if s, ok := kindSeverity[k]; ok {
		return s
	}
	return SeverityError
}

// Kinds lists every finding kind
func Kinds() []Kind {
	return []Kind{
		KindCanonicalizationFailed, KindMissingDetails, KindExtraneousDetails, KindOneofMismatch,
		KindDanglingReference, KindOrderingWarning, KindRequiredFieldAbsent, KindRecommendedFieldAbsent,
		KindValueOutOfRange, KindSuspiciousValue, KindMalformedValue, KindInconsistentRecord, KindTreeTooLarge,
	}
}

// Finding is a single validation result located in the record tree
type Finding struct {
	Path     reaction.Path   `json:"path"`
	Related  []reaction.Path `json:"related,omitempty"`
	Severity Severity        `json:"severity"`
	Kind     Kind            `json:"kind"`
	Rule     string          `json:"rule"`
	Message  string          `json:"message"`
}

func (f Finding) String() string {
	loc := f.Path.String()
	if loc == "" {
		loc = "<record>"
	}
	return fmt.Sprintf("[%s] %s: %s (%s)", f.Severity, loc, f.Message, f.Kind)
}

// newFinding builds a finding with the kind's severity. The rule name is filled in by the
// walker.
func newFinding(kind Kind, path reaction.Path, format string, args ...any) Finding {
	return Finding{
		Path:     path,
		Severity: kind.Severity(),
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
	}
}

func (f Finding) withRelated(paths ...reaction.Path) Finding {
	f.Related = append(f.Related, paths...)
	return f
}
