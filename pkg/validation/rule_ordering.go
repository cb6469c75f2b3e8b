package validation

import (
	"math"

	"github.com/platinummonkey/ordcheck/pkg/reaction"
	"github.com/platinummonkey/ordcheck/pkg/units"
)

// relTolerance absorbs floating point error from unit conversion
const relTolerance = 1e-9

// AdditionOrderingRule checks that addition_order agrees with addition_time across the
// reaction inputs. An addition_order of 0 means unset.
type AdditionOrderingRule struct {
	baseRule
}

func NewAdditionOrderingRule() *AdditionOrderingRule {
	return &AdditionOrderingRule{baseRule{
		name:        "addition-ordering",
		description: "Inputs sharing an addition_order must share an addition_time; lower orders must not be added later",
	}}
}

type timedInput struct {
	key   string
	path  reaction.Path
	order int32
	hours float64
	prec  float64
	raw   *units.Time
}

func (r *AdditionOrderingRule) Check(ctx *Context, node Node) []Finding {
	rec, ok := node.Value.(*reaction.Reaction)
	if !ok {
		return nil
	}

	var findings []Finding
	var timed []timedInput
	for _, key := range reaction.SortedKeys(rec.Inputs) {
		in := rec.Inputs[key]
		if in == nil {
			continue
		}
		ip := node.Path.Field("inputs").Key(key)
		if in.AdditionOrder < 0 {
			findings = append(findings, newFinding(KindValueOutOfRange, ip.Field("addition_order"),
				"addition_order must be 1 or greater (0 means unset), got %d", in.AdditionOrder))
			continue
		}
		if in.AdditionOrder == 0 || in.AdditionTime == nil || in.AdditionTime.IsZero() {
			continue
		}
		res, err := canonicalTime(ctx, in.AdditionTime)
		if err != nil {
			// reported by canonicalization at the quantity itself
			continue
		}
		timed = append(timed, timedInput{
			key:   key,
			path:  ip,
			order: in.AdditionOrder,
			hours: res.Value,
			prec:  res.Precision,
			raw:   in.AdditionTime,
		})
	}

	first := make(map[int32]timedInput)
	for _, t := range timed {
		ref, seen := first[t.order]
		if !seen {
			first[t.order] = t
			continue
		}
		if timesDiffer(ref, t) {
			findings = append(findings, newFinding(KindOrderingWarning, t.path.Field("addition_time"),
				"inputs %q and %q share addition_order %d but have different addition_time (%s vs %s)",
				ref.key, t.key, t.order, ref.raw, t.raw).withRelated(ref.path.Field("addition_time")))
		}
	}

	for _, a := range timed {
		for _, b := range timed {
			if a.order < b.order && a.hours > b.hours && timesDiffer(a, b) {
				findings = append(findings, newFinding(KindOrderingWarning, a.path.Field("addition_order"),
					"input %q has addition_order %d but is added at %s, after input %q (addition_order %d, added at %s)",
					a.key, a.order, a.raw, b.key, b.order, b.raw).withRelated(b.path.Field("addition_order")))
			}
		}
	}
	return findings
}

func canonicalTime(ctx *Context, t *units.Time) (units.Result, error) {
	registry := units.Default()
	if ctx != nil && ctx.Units != nil {
		registry = ctx.Units
	}
	return registry.Canonicalize(units.KindTime, t.Value, t.Precision, int32(t.Units))
}

// timesDiffer reports whether two canonical times differ by more than their combined
// uncertainty
func timesDiffer(a, b timedInput) bool {
	tol := math.Max(a.prec, b.prec) + relTolerance*math.Max(math.Abs(a.hours), math.Abs(b.hours))
	return math.Abs(a.hours-b.hours) > tol
}
