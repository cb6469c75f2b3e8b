package validation

import (
	"github.com/platinummonkey/ordcheck/pkg/reaction"
)

// WorkupRequirementsRule checks the fields each workup type depends on
type WorkupRequirementsRule struct {
	baseRule
}

func NewWorkupRequirementsRule() *WorkupRequirementsRule {
	return &WorkupRequirementsRule{baseRule{
		name:        "workup-requirements",
		description: "Workup steps must define the fields their type depends on",
	}}
}

var componentWorkups = map[reaction.WorkupType]bool{
	reaction.WorkupAddition:        true,
	reaction.WorkupWash:            true,
	reaction.WorkupDryWithMaterial: true,
	reaction.WorkupScavenging:      true,
	reaction.WorkupDissolution:     true,
	reaction.WorkupPHAdjust:        true,
}

func (r *WorkupRequirementsRule) Check(_ *Context, node Node) []Finding {
	wu, ok := node.Value.(*reaction.ReactionWorkup)
	if !ok {
		return nil
	}

	p := node.Path
	typ := wu.Type.Value()
	missing := func(field string) Finding {
		return newFinding(KindRequiredFieldAbsent, p.Field(field), "%s workup requires %s", typ, field)
	}

	var findings []Finding
	switch typ {
	case reaction.WorkupWait:
		if wu.Duration == nil || wu.Duration.IsZero() {
			findings = append(findings, missing("duration"))
		}
	case reaction.WorkupTemperature:
		if wu.Temperature == nil {
			findings = append(findings, missing("temperature"))
		}
	case reaction.WorkupExtraction, reaction.WorkupFiltration:
		if wu.KeepPhase == "" {
			findings = append(findings, missing("keep_phase"))
		}
	case reaction.WorkupStirring:
		if wu.Stirring == nil {
			findings = append(findings, missing("stirring"))
		}
	}
	if componentWorkups[typ] && len(wu.Components) == 0 {
		findings = append(findings, missing("components"))
	}
	if typ == reaction.WorkupPHAdjust && wu.TargetPH == nil {
		findings = append(findings, missing("target_ph"))
	}
	return findings
}
