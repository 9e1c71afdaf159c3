package physics

import "errors"

var (
	// ErrOutOfRange is returned when a value violates a property's allowed range
	// (non-positive mass/volume/density, negative temperature, negative digit count).
	ErrOutOfRange = errors.New("value out of range")
	// ErrInvalidForceMode is returned by AddForce for an unknown ForceMode.
	ErrInvalidForceMode = errors.New("invalid force mode")
	// ErrDivideByZero is returned when a computation would divide by a zero
	// magnitude, distance or total mass.
	ErrDivideByZero = errors.New("division by zero")
	// ErrMalformedRecord is returned when body records cannot be decoded.
	ErrMalformedRecord = errors.New("malformed body record")
)
