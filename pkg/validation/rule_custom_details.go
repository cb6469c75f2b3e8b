package validation

import (
	"strings"

	"github.com/platinummonkey/ordcheck/pkg/reaction"
)

// CustomDetailsRule checks that CUSTOM enumerants carry details and that other
// enumerants do not
type CustomDetailsRule struct {
	baseRule
}

func NewCustomDetailsRule() *CustomDetailsRule {
	return &CustomDetailsRule{baseRule{
		name:        "enum-custom-details",
		description: "CUSTOM enum values require details; other values should not have details",
	}}
}

func (r *CustomDetailsRule) Check(_ *Context, node Node) []Finding {
	p := node.Path
	switch v := node.Value.(type) {
	case *reaction.ReactionIdentifier:
		return checkChoice(p, "type", v.Type)
	case *reaction.CompoundIdentifier:
		return checkChoice(p, "type", v.Type)
	case *reaction.CompoundPreparation:
		return checkChoice(p, "type", v.Type)
	case *reaction.AdditionSpeed:
		return checkChoice(p, "type", v.Type)
	case *reaction.AdditionDevice:
		return checkChoice(p, "type", v.Type)
	case *reaction.Vessel:
		return concat(
			checkChoice(p, "type", v.Type),
			checkChoice(p, "material", v.Material),
			checkChoice(p, "preparation", v.Preparation),
		)
	case *reaction.ReactionConditions:
		return checkDynamicConditions(p, v)
	case *reaction.TemperatureConditions:
		return checkChoice(p, "type", v.Control)
	case *reaction.TemperatureMeasurement:
		return checkChoice(p, "type", v.Type)
	case *reaction.PressureConditions:
		return concat(
			checkChoice(p, "type", v.Control),
			checkChoice(p, "atmosphere", v.Atmosphere),
		)
	case *reaction.PressureMeasurement:
		return checkChoice(p, "type", v.Type)
	case *reaction.StirringConditions:
		return checkChoice(p, "type", v.Method)
	case *reaction.IlluminationConditions:
		return checkChoice(p, "type", v.Type)
	case *reaction.ElectrochemistryConditions:
		return checkChoice(p, "type", v.Type)
	case *reaction.FlowConditions:
		return checkChoice(p, "type", v.Type)
	case *reaction.Tubing:
		return checkChoice(p, "type", v.Type)
	case *reaction.ReactionWorkup:
		return checkChoice(p, "type", v.Type)
	case *reaction.ReactionProduct:
		return checkChoice(p, "texture", v.Texture)
	case *reaction.Selectivity:
		return checkChoice(p, "type", v.Type)
	case *reaction.ReactionAnalysis:
		return checkChoice(p, "type", v.Type)
	}
	return nil
}

// checkChoice reports the findings for one enum field. The field name is the wire name
// of the enum; the details field is named after it.
func checkChoice[E reaction.CustomEnum](path reaction.Path, field string, c reaction.Choice[E]) []Finding {
	details := detailsField(field)
	switch {
	case c.IsCustom() && strings.TrimSpace(c.Details()) == "":
		return []Finding{newFinding(KindMissingDetails, path,
			"%s is CUSTOM but %s is empty", field, details)}
	case !c.IsCustom() && c.Details() != "":
		return []Finding{newFinding(KindExtraneousDetails, path,
			"%s is %s but %s is set (%q); details are only meaningful for CUSTOM", field, c.Value(), details, c.Details())}
	}
	return nil
}

func detailsField(field string) string {
	if field == "type" {
		return "details"
	}
	return field + "_details"
}

func checkDynamicConditions(path reaction.Path, c *reaction.ReactionConditions) []Finding {
	switch {
	case c.ConditionsAreDynamic && strings.TrimSpace(c.Details) == "":
		return []Finding{newFinding(KindMissingDetails, path,
			"conditions_are_dynamic is set but details are empty")}
	case !c.ConditionsAreDynamic && c.Details != "":
		return []Finding{newFinding(KindExtraneousDetails, path,
			"details are set but conditions_are_dynamic is false")}
	}
	return nil
}

func concat(groups ...[]Finding) []Finding {
	var out []Finding
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
