package validation

import (
	"strconv"

	"github.com/platinummonkey/ordcheck/pkg/reaction"
)

// AnalysisReferencesRule checks that product analysis keys resolve within their own
// outcome
type AnalysisReferencesRule struct {
	baseRule
}

func NewAnalysisReferencesRule() *AnalysisReferencesRule {
	return &AnalysisReferencesRule{baseRule{
		name:        "analysis-references",
		description: "Product analysis keys must name an analysis of the same outcome",
	}}
}

func (r *AnalysisReferencesRule) Check(ctx *Context, node Node) []Finding {
	out, ok := node.Value.(*reaction.ReactionOutcome)
	if !ok {
		return nil
	}

	analysesPath := node.Path.Field("analyses")
	var findings []Finding
	for i, product := range out.Products {
		if product == nil {
			continue
		}
		pp := node.Path.Field("products").Index(i)
		lists := []struct {
			field string
			keys  []string
		}{
			{"analysis_identity", product.AnalysisIdentity},
			{"analysis_yield", product.AnalysisYield},
			{"analysis_purity", product.AnalysisPurity},
			{"analysis_selectivity", product.AnalysisSelectivity},
		}
		for _, list := range lists {
			for j, key := range list.keys {
				if _, ok := out.Analyses[key]; ok {
					continue
				}
				msg := "analysis key %q is not defined in this outcome's analyses"
				if elsewhere, found := findAnalysisOutcome(ctx, out, key); found {
					msg += "; it is defined in outcomes[" + strconv.Itoa(elsewhere) + "] but references cannot cross outcomes"
				}
				findings = append(findings, newFinding(KindDanglingReference, pp.Field(list.field).Index(j), msg, key).
					withRelated(analysesPath))
			}
		}
	}
	return findings
}

// findAnalysisOutcome returns the index of another outcome that defines key
func findAnalysisOutcome(ctx *Context, self *reaction.ReactionOutcome, key string) (int, bool) {
	if ctx == nil || ctx.Record == nil {
		return 0, false
	}
	for i, o := range ctx.Record.Outcomes {
		if o == nil || o == self {
			continue
		}
		if _, ok := o.Analyses[key]; ok {
			return i, true
		}
	}
	return 0, false
}
