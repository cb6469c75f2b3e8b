package validation

import (
	"math"
	"strconv"

	"github.com/platinummonkey/ordcheck/pkg/reaction"
	"github.com/platinummonkey/ordcheck/pkg/units"
)

const (
	maxPercentage = 105 // generous upper bound for yields above 100%
	maxEE         = 100
)

// absolute zero in each temperature unit
var minTemperature = map[units.TemperatureUnit]float64{
	units.Celsius:    -273.15,
	units.Fahrenheit: -459.67,
	units.Kelvin:     0,
}

// MeasurementRangeRule checks physical ranges. Negative precision on quantities is
// reported by canonicalization; non-finite values are ignored here for the same reason.
type MeasurementRangeRule struct {
	baseRule
}

func NewMeasurementRangeRule() *MeasurementRangeRule {
	return &MeasurementRangeRule{baseRule{
		name:        "measurement-range",
		description: "Quantities must be physically meaningful; percentages are 0-100 (up to 105), not fractions",
	}}
}

func (r *MeasurementRangeRule) Check(ctx *Context, node Node) []Finding {
	p := node.Path
	switch v := node.Value.(type) {
	case Measurement:
		return checkMeasurementRange(ctx, p, v)
	case *reaction.StirringConditions:
		if v.RPM < 0 {
			return []Finding{newFinding(KindValueOutOfRange, p.Field("rpm"), "rpm must be non-negative, got %g", v.RPM)}
		}
	case *reaction.Percentage:
		return checkFraction(p, v.Value, v.Precision, maxPercentage, "percentage")
	case *reaction.Selectivity:
		if v.Type.Value() == reaction.SelectivityEE {
			return checkFraction(p, v.Value, v.Precision, maxEE, "EE selectivity")
		}
		if v.Precision < 0 {
			return []Finding{newFinding(KindValueOutOfRange, p.Field("precision"), "precision must be non-negative, got %g", v.Precision)}
		}
	}
	return nil
}

func checkMeasurementRange(ctx *Context, path reaction.Path, m Measurement) []Finding {
	if m.IsAbsent() || !isFinite(m.Value) {
		return nil
	}
	if m.Kind == units.KindTemperature {
		floor, known := minTemperature[units.TemperatureUnit(m.Unit)]
		if known && m.Value < floor {
			return []Finding{newFinding(KindValueOutOfRange, path,
				"temperature %g %s is below absolute zero (%g)", m.Value, unitName(ctx, m), floor)}
		}
		return nil
	}
	if m.Value < 0 {
		return []Finding{newFinding(KindValueOutOfRange, path,
			"%s must be non-negative, got %g %s", m.Kind, m.Value, unitName(ctx, m))}
	}
	return nil
}

func checkFraction(path reaction.Path, value, precision, upper float64, what string) []Finding {
	var findings []Finding
	switch {
	case !isFinite(value):
		findings = append(findings, newFinding(KindValueOutOfRange, path, "%s value must be finite, got %g", what, value))
	case value < 0 || value > upper:
		findings = append(findings, newFinding(KindValueOutOfRange, path,
			"%s must be between 0 and %g, got %g", what, upper, value))
	case value > 0 && value < 1:
		findings = append(findings, newFinding(KindSuspiciousValue, path,
			"%s values are 0-100, not fractions (%g used)", what, value))
	}
	if precision < 0 || math.IsNaN(precision) {
		findings = append(findings, newFinding(KindValueOutOfRange, path.Field("precision"),
			"precision must be non-negative, got %g", precision))
	}
	return findings
}

func unitName(ctx *Context, m Measurement) string {
	registry := units.Default()
	if ctx != nil && ctx.Units != nil {
		registry = ctx.Units
	}
	if name := registry.UnitName(m.Kind, m.Unit); name != "" {
		return name
	}
	return "unit " + strconv.FormatInt(int64(m.Unit), 10)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
