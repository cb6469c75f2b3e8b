package validation

import (
	"regexp"

	"github.com/platinummonkey/ordcheck/pkg/reaction"
)

// reaction_id is "ord-" followed by a 32-character uuid hex string
var reactionIDPattern = regexp.MustCompile(`^ord-[0-9a-f]{32}$`)

// ReactionConsistencyRule checks record-wide relationships
type ReactionConsistencyRule struct {
	baseRule
}

func NewReactionConsistencyRule() *ReactionConsistencyRule {
	return &ReactionConsistencyRule{baseRule{
		name:        "reaction-consistency",
		description: "Reactions need inputs and outcomes; standards, limiting reagents and the record id must be consistent",
	}}
}

func (r *ReactionConsistencyRule) Check(_ *Context, node Node) []Finding {
	rec, ok := node.Value.(*reaction.Reaction)
	if !ok {
		return nil
	}

	p := node.Path
	var findings []Finding
	if len(rec.Inputs) == 0 {
		findings = append(findings, newFinding(KindRequiredFieldAbsent, p.Field("inputs"),
			"reaction has no inputs"))
	}
	if len(rec.Outcomes) == 0 {
		findings = append(findings, newFinding(KindRequiredFieldAbsent, p.Field("outcomes"),
			"reaction has no outcomes"))
	}
	if at, ok := firstInternalStandardAnalysis(p, rec); ok && !hasRole(rec, reaction.RoleInternalStandard) {
		findings = append(findings, newFinding(KindInconsistentRecord, at,
			"analysis uses an internal standard but no input or workup component has role INTERNAL_STANDARD"))
	}
	if at, ok := firstConversion(p, rec); ok && !hasLimitingInput(rec) {
		findings = append(findings, newFinding(KindInconsistentRecord, at,
			"conversion is specified but no reaction input component is marked is_limiting"))
	}
	if rec.ReactionID != "" && !reactionIDPattern.MatchString(rec.ReactionID) {
		findings = append(findings, newFinding(KindMalformedValue, p.Field("reaction_id"),
			"reaction_id %q does not match ord-<32 lowercase hex digits>", rec.ReactionID))
	}
	return findings
}

func firstInternalStandardAnalysis(base reaction.Path, rec *reaction.Reaction) (reaction.Path, bool) {
	for i, out := range rec.Outcomes {
		if out == nil {
			continue
		}
		for _, key := range reaction.SortedKeys(out.Analyses) {
			if a := out.Analyses[key]; a != nil && a.UsesInternalStandard {
				return base.Field("outcomes").Index(i).Field("analyses").Key(key), true
			}
		}
	}
	return reaction.Path{}, false
}

func firstConversion(base reaction.Path, rec *reaction.Reaction) (reaction.Path, bool) {
	for i, out := range rec.Outcomes {
		if out != nil && out.Conversion != nil {
			return base.Field("outcomes").Index(i).Field("conversion"), true
		}
	}
	return reaction.Path{}, false
}

func hasRole(rec *reaction.Reaction, role reaction.ReactionRole) bool {
	for _, in := range rec.Inputs {
		if in == nil {
			continue
		}
		for _, c := range in.Components {
			if c != nil && c.ReactionRole == role {
				return true
			}
		}
	}
	for _, wu := range rec.Workups {
		if wu == nil {
			continue
		}
		for _, c := range wu.Components {
			if c != nil && c.ReactionRole == role {
				return true
			}
		}
	}
	return false
}

func hasLimitingInput(rec *reaction.Reaction) bool {
	for _, in := range rec.Inputs {
		if in == nil {
			continue
		}
		for _, c := range in.Components {
			if c != nil && c.IsLimiting {
				return true
			}
		}
	}
	return false
}
