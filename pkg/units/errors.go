package units

import (
	"errors"
	"fmt"
)

var (
	// ErrUnitUnspecified is returned when a quantity carries the UNSPECIFIED unit sentinel
	ErrUnitUnspecified = errors.New("unit unspecified")
	// ErrUnknownUnit is returned for unit numbers outside the kind's enumeration
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrInvalidValue is returned for NaN or infinite values
	ErrInvalidValue = errors.New("invalid value")
	// ErrInvalidPrecision is returned for negative or NaN precision
	ErrInvalidPrecision = errors.New("invalid precision")
	// ErrUnknownKind is returned when the registry has no table for a kind
	ErrUnknownKind = errors.New("unknown quantity kind")
)

// CanonicalizationError describes why a measurement could not be canonicalized
type CanonicalizationError struct {
	Kind      Kind
	Unit      int32
	Value     float64
	Precision float64
	Err       error
}

func (e *CanonicalizationError) Error() string {
	switch {
	case errors.Is(e.Err, ErrUnitUnspecified):
		return fmt.Sprintf("%s value %g has unspecified units", e.Kind, e.Value)
	case errors.Is(e.Err, ErrUnknownUnit):
		return fmt.Sprintf("unknown %s unit %d", e.Kind, e.Unit)
	case errors.Is(e.Err, ErrInvalidValue):
		return fmt.Sprintf("invalid %s value %g", e.Kind, e.Value)
	case errors.Is(e.Err, ErrInvalidPrecision):
		return fmt.Sprintf("invalid %s precision %g (must be >= 0)", e.Kind, e.Precision)
	default:
		return fmt.Sprintf("canonicalize %s: %v", e.Kind, e.Err)
	}
}

func (e *CanonicalizationError) Unwrap() error {
	return e.Err
}
