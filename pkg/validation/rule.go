package validation

import (
	"github.com/platinummonkey/ordcheck/pkg/reaction"
	"github.com/platinummonkey/ordcheck/pkg/units"
)

// Rule is a single invariant check. Check is called once for every node of the record
// tree and returns the findings for that node only; rules ignore node types they do not
// handle.
type Rule interface {
	Name() string
	Description() string
	Check(ctx *Context, node Node) []Finding
}

// Context is shared by every rule during one traversal
type Context struct {
	// Units converts quantities when a rule compares values in different units
	Units *units.Registry
	// Record is the root of the tree being checked
	Record *reaction.Reaction
}

// Node is one visited message. Value holds a pointer to a pkg/reaction message, a
// Measurement for quantity-with-unit fields, or a *reaction.Percentage.
type Node struct {
	Path  reaction.Path
	Value any
}

// Measurement is a quantity-with-unit as seen by rules, before canonicalization
type Measurement struct {
	Kind      units.Kind
	Value     float64
	Precision float64
	Unit      int32
}

// IsAbsent reports whether the quantity carries nothing: zero value and no unit
func (m Measurement) IsAbsent() bool {
	return m.Value == 0 && m.Precision == 0 && m.Unit == 0
}

func measurementOf[U units.Unit](q *units.Quantity[U]) Measurement {
	return Measurement{
		Kind:      q.Kind(),
		Value:     q.Value,
		Precision: q.Precision,
		Unit:      int32(q.Units),
	}
}

// baseRule provides the identifying methods of a rule
type baseRule struct {
	name        string
	description string
}

func (r *baseRule) Name() string        { return r.name }
func (r *baseRule) Description() string { return r.description }
