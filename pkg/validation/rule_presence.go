package validation

import (
	"strings"

	"github.com/platinummonkey/ordcheck/pkg/reaction"
)

// RequiredPresenceRule checks required fields and warns about recommended ones
type RequiredPresenceRule struct {
	baseRule
}

func NewRequiredPresenceRule() *RequiredPresenceRule {
	return &RequiredPresenceRule{baseRule{
		name:        "required-presence",
		description: "Identifiers, components, feature names, event times and record_created are required; amounts and setpoints are recommended",
	}}
}

func (r *RequiredPresenceRule) Check(_ *Context, node Node) []Finding {
	p := node.Path
	switch v := node.Value.(type) {
	case *reaction.ReactionIdentifier:
		if v.Value == nil {
			return []Finding{newFinding(KindRequiredFieldAbsent, p, "identifier has neither value nor bytes_value")}
		}
	case *reaction.CompoundIdentifier:
		if v.Value == nil {
			return []Finding{newFinding(KindRequiredFieldAbsent, p, "identifier has neither value nor bytes_value")}
		}
	case *reaction.Compound:
		if len(v.Identifiers) == 0 {
			return []Finding{newFinding(KindRequiredFieldAbsent, p.Field("identifiers"), "compound has no identifiers")}
		}
	case *reaction.ReactionInput:
		return checkInputPresence(p, v)
	case *reaction.ReactionProduct:
		if v.Compound != nil && v.Compound.Amount == nil {
			return []Finding{newFinding(KindRecommendedFieldAbsent, p.Field("compound"),
				"product compound has no amount")}
		}
	case *reaction.CompoundFeature:
		if strings.TrimSpace(v.Name) == "" {
			return []Finding{newFinding(KindRequiredFieldAbsent, p.Field("name"), "compound feature has no name")}
		}
	case *reaction.TemperatureConditions:
		if v.Setpoint == nil || v.Setpoint.IsZero() {
			return []Finding{newFinding(KindRecommendedFieldAbsent, p.Field("setpoint"),
				"temperature setpoint is not specified; estimate it even for ambient conditions")}
		}
	case *reaction.RecordEvent:
		if v.Time == nil || strings.TrimSpace(v.Time.Value) == "" {
			return []Finding{newFinding(KindRequiredFieldAbsent, p.Field("time"), "record event has no time")}
		}
	case *reaction.ReactionProvenance:
		if v.RecordCreated == nil {
			return []Finding{newFinding(KindRequiredFieldAbsent, p.Field("record_created"), "provenance has no record_created event")}
		}
	}
	return nil
}

func checkInputPresence(path reaction.Path, in *reaction.ReactionInput) []Finding {
	if len(in.Components) == 0 {
		return []Finding{newFinding(KindRequiredFieldAbsent, path.Field("components"), "reaction input has no components")}
	}
	var findings []Finding
	for i, c := range in.Components {
		if c != nil && c.Amount == nil {
			findings = append(findings, newFinding(KindRecommendedFieldAbsent, path.Field("components").Index(i),
				"reaction input component has no amount (mass, moles or volume)"))
		}
	}
	return findings
}
