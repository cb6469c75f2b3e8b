package validation

import (
	"bytes"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/ordcheck/pkg/codec"
	"github.com/platinummonkey/ordcheck/pkg/reaction"
)

func sampleReport() *Report {
	r := NewReport()
	vessel := reaction.Root().Field("setup").Field("vessel")
	r.Add(
		newFinding(KindMissingDetails, vessel, "type is CUSTOM but details is empty"),
		newFinding(KindOrderingWarning, reaction.Root().Field("inputs").Key("b").Field("addition_time"), "times differ").
			withRelated(reaction.Root().Field("inputs").Key("a").Field("addition_time")),
		newFinding(KindSuspiciousValue, reaction.Root(), "odd"),
	)
	return r
}

func TestReport_Counts(t *testing.T) {
	r := sampleReport()

	assert.Equal(t, 3, r.Len())
	assert.True(t, r.HasErrors())
	assert.Len(t, r.Errors(), 1)
	assert.Len(t, r.Warnings(), 2)
	assert.Len(t, r.ByKind(KindOrderingWarning), 1)
	assert.Equal(t, map[Kind]int{
		KindMissingDetails:  1,
		KindOrderingWarning: 1,
		KindSuspiciousValue: 1,
	}, r.CountByKind())
	assert.Equal(t, "invalid: 1 error, 2 warnings", r.Summary())

	findings := r.Findings()
	findings[0].Message = "changed"
	assert.NotEqual(t, "changed", r.Findings()[0].Message)
}

func TestReport_WarningsDoNotBlock(t *testing.T) {
	r := NewReport()
	r.Add(newFinding(KindExtraneousDetails, reaction.Root(), "x"), newFinding(KindRecommendedFieldAbsent, reaction.Root(), "y"))
	assert.False(t, r.HasErrors())
	assert.Equal(t, "valid: 0 errors, 2 warnings", r.Summary())
}

func TestReport_Merge(t *testing.T) {
	a := NewReport()
	a.Add(newFinding(KindMalformedValue, reaction.Root().Field("reaction_id"), "bad"))
	a.Merge(sampleReport())
	a.Merge(nil)

	require.Equal(t, 4, a.Len())
	assert.Equal(t, KindMalformedValue, a.Findings()[0].Kind)
	assert.Equal(t, KindSuspiciousValue, a.Findings()[3].Kind)
}

func TestReport_AddDecodeIssues(t *testing.T) {
	amount := reaction.Root().Field("inputs").Key("a").Field("components").Index(0).Field("amount")
	units := amount.Field("mass").Field("units")

	r := NewReport()
	r.AddDecodeIssues(codec.Issues{
		{Code: codec.IssueAmbiguousOneof, Path: amount, Message: "amount has more than one branch set"},
		{Code: codec.IssueUnknownEnum, Path: units, Message: `unknown MassUnit "FURLONG"`},
	})

	findings := r.Findings()
	require.Len(t, findings, 2)
	assert.Equal(t, KindOneofMismatch, findings[0].Kind)
	assert.Equal(t, KindMalformedValue, findings[1].Kind)
	for _, f := range findings {
		assert.Equal(t, "decode", f.Rule)
		assert.Equal(t, SeverityError, f.Severity)
	}
}

func TestReport_JSON(t *testing.T) {
	data, err := json.Marshal(sampleReport())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, false, raw["valid"])
	assert.Equal(t, float64(1), raw["error_count"])
	assert.Equal(t, float64(2), raw["warning_count"])

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, sampleReport().Findings(), decoded.Findings())
}

func TestReport_JSONSeverityFromKind(t *testing.T) {
	in := `{"valid": true, "error_count": 0, "warning_count": 1, "findings": [
		{"kind": "RequiredFieldAbsent", "severity": "WARNING", "path": "inputs", "message": "no inputs"},
		{"kind": "OrderingWarning", "severity": "ERROR", "path": "", "message": "order"}
	]}`

	var decoded Report
	require.NoError(t, json.Unmarshal([]byte(in), &decoded))
	findings := decoded.Findings()
	require.Len(t, findings, 2)
	assert.Equal(t, SeverityError, findings[0].Severity)
	assert.Equal(t, SeverityWarning, findings[1].Severity)
	assert.True(t, decoded.HasErrors())
	assert.Len(t, decoded.Errors(), 1)
	assert.Len(t, decoded.Warnings(), 1)
}

func TestReport_JSONEmpty(t *testing.T) {
	data, err := json.Marshal(NewReport())
	require.NoError(t, err)
	assert.JSONEq(t, `{"valid": true, "error_count": 0, "warning_count": 0, "findings": []}`, string(data))
}

func TestReport_WriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleReport().WriteText(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "[ERROR] setup.vessel: type is CUSTOM but details is empty (MissingDetails)", lines[0])
	assert.Equal(t, `[WARNING] inputs["b"].addition_time: times differ (OrderingWarning)`, lines[1])
	assert.Equal(t, `    see inputs["a"].addition_time`, lines[2])
	assert.Equal(t, "[WARNING] <record>: odd (SuspiciousValue)", lines[3])
	assert.Equal(t, "invalid: 1 error, 2 warnings", lines[4])
}

func TestKindSeverity(t *testing.T) {
	for _, k := range Kinds() {
		_, ok := kindSeverity[k]
		assert.True(t, ok, "kind %s has no severity", k)
	}
	assert.Equal(t, SeverityWarning, KindOrderingWarning.Severity())
	assert.Equal(t, SeverityError, KindTreeTooLarge.Severity())
	assert.Equal(t, SeverityError, Kind("Unknown").Severity())
}
