package validation

import (
	"strings"

	"github.com/platinummonkey/ordcheck/pkg/reaction"
)

// MapKeysRule rejects blank keys in the record's string-keyed maps
type MapKeysRule struct {
	baseRule
}

func NewMapKeysRule() *MapKeysRule {
	return &MapKeysRule{baseRule{
		name:        "map-keys",
		description: "Keys of inputs, analyses, data and automation_code must not be blank",
	}}
}

func (r *MapKeysRule) Check(_ *Context, node Node) []Finding {
	switch v := node.Value.(type) {
	case *reaction.Reaction:
		return blankKeys(node.Path.Field("inputs"), reaction.SortedKeys(v.Inputs))
	case *reaction.ReactionSetup:
		return blankKeys(node.Path.Field("automation_code"), reaction.SortedKeys(v.AutomationCode))
	case *reaction.ReactionOutcome:
		return blankKeys(node.Path.Field("analyses"), reaction.SortedKeys(v.Analyses))
	case *reaction.ReactionAnalysis:
		return blankKeys(node.Path.Field("data"), reaction.SortedKeys(v.Data))
	}
	return nil
}

func blankKeys(path reaction.Path, keys []string) []Finding {
	var findings []Finding
	for _, k := range keys {
		if strings.TrimSpace(k) == "" {
			findings = append(findings, newFinding(KindMalformedValue, path.Key(k), "map key %q is blank", k))
		}
	}
	return findings
}
