package validation

import (
	"github.com/platinummonkey/ordcheck/pkg/reaction"
)

// OutcomeConsistencyRule checks product-level consistency of one outcome
type OutcomeConsistencyRule struct {
	baseRule
}

func NewOutcomeConsistencyRule() *OutcomeConsistencyRule {
	return &OutcomeConsistencyRule{baseRule{
		name:        "outcome-consistency",
		description: "An outcome has at most one desired product and specifies products or conversion",
	}}
}

func (r *OutcomeConsistencyRule) Check(_ *Context, node Node) []Finding {
	out, ok := node.Value.(*reaction.ReactionOutcome)
	if !ok {
		return nil
	}

	var findings []Finding
	desired := 0
	for _, p := range out.Products {
		if p != nil && p.IsDesiredProduct {
			desired++
		}
	}
	if desired > 1 {
		findings = append(findings, newFinding(KindInconsistentRecord, node.Path.Field("products"),
			"outcome has %d desired products; at most one is allowed", desired))
	}
	if len(out.Products) == 0 && out.Conversion == nil {
		findings = append(findings, newFinding(KindRequiredFieldAbsent, node.Path,
			"outcome specifies neither products nor conversion"))
	}
	return findings
}
