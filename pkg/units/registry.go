package units

import (
	"fmt"
	"math"
	"sync"
)

// UnitInfo describes one unit of a kind
type UnitInfo struct {
	Kind       Kind
	Number     int32
	Name       string
	Conversion Conversion
	Canonical  bool
}

// Result is the outcome of canonicalizing a measurement
type Result struct {
	Kind      Kind
	Value     float64
	Precision float64
	Unit      int32
}

type kindEntry struct {
	kind      Kind
	units     []UnitInfo
	byName    map[string]int32
	canonical int32
}

// Registry maps every (kind, unit) pair to its conversion into the kind's canonical unit.
// A Registry is immutable once built.
type Registry struct {
	kinds map[Kind]*kindEntry
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide registry built from the schema's unit enumerations
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		reg, err := newRegistry(allTables)
		if err != nil {
			panic(err)
		}
		defaultRegistry = reg
	})
	return defaultRegistry
}

func newRegistry(tables []unitTable) (*Registry, error) {
	reg := &Registry{kinds: make(map[Kind]*kindEntry, len(tables))}
	for _, table := range tables {
		if _, exists := reg.kinds[table.kind]; exists {
			return nil, fmt.Errorf("duplicate unit table for %s", table.kind)
		}
		if len(table.units) < 2 {
			return nil, fmt.Errorf("unit table for %s has no units", table.kind)
		}
		entry := &kindEntry{
			kind:      table.kind,
			units:     make([]UnitInfo, len(table.units)),
			byName:    make(map[string]int32, len(table.units)),
			canonical: 1,
		}
		for i, def := range table.units {
			entry.units[i] = UnitInfo{
				Kind:       table.kind,
				Number:     int32(i),
				Name:       def.name,
				Conversion: def.conversion,
				Canonical:  i == 1,
			}
			entry.byName[def.name] = int32(i)
		}
		if !entry.units[1].Conversion.IsIdentity() {
			return nil, fmt.Errorf("canonical %s unit %s must have the identity conversion", table.kind, entry.units[1].Name)
		}
		reg.kinds[table.kind] = entry
	}
	return reg, nil
}

func (r *Registry) entry(kind Kind) (*kindEntry, error) {
	entry, ok := r.kinds[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return entry, nil
}

// Units returns the kind's units in enumeration order, excluding UNSPECIFIED.
// The first element is the canonical unit.
func (r *Registry) Units(kind Kind) ([]UnitInfo, error) {
	entry, err := r.entry(kind)
	if err != nil {
		return nil, err
	}
	out := make([]UnitInfo, len(entry.units)-1)
	copy(out, entry.units[1:])
	return out, nil
}

// Canonical returns the canonical unit of a kind
func (r *Registry) Canonical(kind Kind) (UnitInfo, error) {
	entry, err := r.entry(kind)
	if err != nil {
		return UnitInfo{}, err
	}
	return entry.units[entry.canonical], nil
}

// Lookup returns the conversion for a unit of the given kind
func (r *Registry) Lookup(kind Kind, unit int32) (Conversion, error) {
	entry, err := r.entry(kind)
	if err != nil {
		return Conversion{}, err
	}
	if unit == 0 {
		return Conversion{}, ErrUnitUnspecified
	}
	if unit < 0 || int(unit) >= len(entry.units) {
		return Conversion{}, ErrUnknownUnit
	}
	return entry.units[unit].Conversion, nil
}

// UnitByName resolves an enumerant name such as "MILLIGRAM" to its number
func (r *Registry) UnitByName(kind Kind, name string) (int32, bool) {
	entry, ok := r.kinds[kind]
	if !ok {
		return 0, false
	}
	n, ok := entry.byName[name]
	return n, ok
}

// UnitName returns the enumerant name for a unit number, or "" if it is out of range
func (r *Registry) UnitName(kind Kind, unit int32) string {
	entry, ok := r.kinds[kind]
	if !ok || unit < 0 || int(unit) >= len(entry.units) {
		return ""
	}
	return entry.units[unit].Name
}

// Canonicalize converts (value, precision, unit) into the canonical unit of kind.
// It has no side effects, and canonicalizing a canonical measurement returns it unchanged.
func (r *Registry) Canonicalize(kind Kind, value, precision float64, unit int32) (Result, error) {
	fail := func(err error) (Result, error) {
		return Result{}, &CanonicalizationError{Kind: kind, Unit: unit, Value: value, Precision: precision, Err: err}
	}

	entry, err := r.entry(kind)
	if err != nil {
		return fail(err)
	}
	conv, err := r.Lookup(kind, unit)
	if err != nil {
		return fail(err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fail(ErrInvalidValue)
	}
	if math.IsNaN(precision) || math.IsInf(precision, 0) || precision < 0 {
		return fail(ErrInvalidPrecision)
	}

	v, p, err := conv.Apply(value, precision)
	if err != nil {
		return fail(err)
	}
	return Result{Kind: kind, Value: v, Precision: p, Unit: entry.canonical}, nil
}
