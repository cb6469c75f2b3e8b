// Package units holds the unit registry and the measurement canonicalizer.
//
// # Overview
//
// Every physical quantity in a reaction record is stored as a (value, precision, units)
// triple. Each quantity kind has exactly one canonical unit: the first enumerant after
// UNSPECIFIED in that kind's unit enumeration. The canonical unit is a schema decision, not
// an SI one; mass canonicalizes to GRAM even though KILOGRAM is the SI base unit, and time
// canonicalizes to HOUR.
//
// # Registry
//
// A Registry maps every (kind, unit) pair to a Conversion. Most conversions are linear
// scale factors. Temperature needs an offset (FAHRENHEIT and KELVIN to CELSIUS) and
// wavelength needs a reciprocal (WAVENUMBER to NANOMETER). The registry is built once and
// never mutated, so it is safe to share between goroutines without locking:
//
//	reg := units.Default()
//	res, err := reg.Canonicalize(units.KindMass, 1.0, 0.01, int32(units.Milligram))
//	// res.Value == 0.001, res.Precision == 0.00001, res.Unit == int32(units.Gram)
//
// # Canonicalization
//
// Precision is expressed in the same unit as the value, so both are rescaled by the same
// factor. Canonicalizing a value that is already in its canonical unit is a no-op, which
// makes the operation idempotent.
//
// Failures are reported with sentinel errors wrapped in *CanonicalizationError:
//
//   - ErrUnitUnspecified: the unit is the UNSPECIFIED sentinel
//   - ErrUnknownUnit: the unit number is outside the kind's enumeration
//   - ErrInvalidValue: the value is NaN or infinite (or zero for a reciprocal conversion)
//   - ErrInvalidPrecision: the precision is negative or NaN
package units
