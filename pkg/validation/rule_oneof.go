package validation

import (
	"github.com/platinummonkey/ordcheck/pkg/reaction"
)

// OneofRule checks that a populated oneof branch agrees with its declared type and that
// data payloads are complete. Holding more than one branch cannot be represented in a
// decoded record; that case is reported by the decoder.
type OneofRule struct {
	baseRule
}

func NewOneofRule() *OneofRule {
	return &OneofRule{baseRule{
		name:        "oneof-consistency",
		description: "Identifier types must match the populated value branch; data requires a value",
	}}
}

func (r *OneofRule) Check(_ *Context, node Node) []Finding {
	switch v := node.Value.(type) {
	case *reaction.ReactionIdentifier:
		// every reaction identifier type is textual
		return checkIdentifierBranch(node.Path, v.Type.Value().String(), v.Type.IsCustom() || v.Type.IsUnspecified(), false, v.Value)
	case *reaction.CompoundIdentifier:
		wantBytes := v.Type.Value() == reaction.CompoundIdentifierRDKitBinary
		return checkIdentifierBranch(node.Path, v.Type.Value().String(), v.Type.IsCustom() || v.Type.IsUnspecified(), wantBytes, v.Value)
	case *reaction.Data:
		return checkData(node.Path, v)
	}
	return nil
}

func checkIdentifierBranch(path reaction.Path, typ string, anyBranch, wantBytes bool, value reaction.IdentifierValue) []Finding {
	if value == nil || anyBranch {
		return nil
	}
	switch value.(type) {
	case reaction.BytesValue:
		if !wantBytes {
			return []Finding{newFinding(KindOneofMismatch, path,
				"identifier type %s expects a string value but bytes_value is set", typ)}
		}
	case reaction.StringValue:
		if wantBytes {
			return []Finding{newFinding(KindOneofMismatch, path,
				"identifier type %s expects bytes_value but a string value is set", typ)}
		}
	}
	return nil
}

func checkData(path reaction.Path, d *reaction.Data) []Finding {
	switch v := d.Value.(type) {
	case nil:
		return []Finding{newFinding(KindRequiredFieldAbsent, path,
			"data requires one of float_value, integer_value, bytes_value, string_value or url")}
	case reaction.DataBytes:
		if d.Format == "" {
			return []Finding{newFinding(KindRequiredFieldAbsent, path.Field("format"),
				"format is required when bytes_value is set (%d bytes)", len(v))}
		}
	}
	return nil
}
