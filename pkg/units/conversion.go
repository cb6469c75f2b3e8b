package units

import "math"

// Conversion maps a raw value into the canonical unit of its kind.
//
// Linear conversions compute value*Scale + Offset. Reciprocal conversions compute
// Scale/value and propagate precision through the derivative.
type Conversion struct {
	Scale      float64
	Offset     float64
	Reciprocal bool
}

// Linear returns a pure scale conversion
func Linear(scale float64) Conversion {
	return Conversion{Scale: scale}
}

// Affine returns a scale-and-offset conversion
func Affine(scale, offset float64) Conversion {
	return Conversion{Scale: scale, Offset: offset}
}

// Reciprocal returns a conversion of the form numerator/value
func Reciprocal(numerator float64) Conversion {
	return Conversion{Scale: numerator, Reciprocal: true}
}

// IsIdentity reports whether the conversion leaves values unchanged
func (c Conversion) IsIdentity() bool {
	return !c.Reciprocal && c.Scale == 1 && c.Offset == 0
}

// Apply converts a value and its precision. Precision is always returned non-negative.
func (c Conversion) Apply(value, precision float64) (float64, float64, error) {
	if c.IsIdentity() {
		return value, precision, nil
	}
	if c.Reciprocal {
		if value == 0 {
			return 0, 0, ErrInvalidValue
		}
		converted := c.Scale / value
		return converted, math.Abs(c.Scale) * precision / (value * value), nil
	}
	return value*c.Scale + c.Offset, precision * math.Abs(c.Scale), nil
}
