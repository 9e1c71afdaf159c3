package physics

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Vector3 is a 3-component value used for positions, velocities, scales and rotations.
// All operations return a new value; a Vector3 is never mutated in place.
type Vector3 struct {
	X, Y, Z float64
}

// Zero is the origin.
var Zero = Vector3{}

// One is (1, 1, 1), the default body scale.
var One = Vector3{1, 1, 1}

// Vec returns a vector with the same value on every axis.
func Vec(v float64) Vector3 {
	return Vector3{v, v, v}
}

func (v Vector3) mgl() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(m mgl64.Vec3) Vector3 {
	return Vector3{m[0], m[1], m[2]}
}

// Neg returns -v.
func (v Vector3) Neg() Vector3 {
	return fromMgl(v.mgl().Mul(-1))
}

// Add returns v + o.
func (v Vector3) Add(o Vector3) Vector3 {
	return fromMgl(v.mgl().Add(o.mgl()))
}

// Sub returns v - o.
func (v Vector3) Sub(o Vector3) Vector3 {
	return fromMgl(v.mgl().Sub(o.mgl()))
}

// Mul multiplies componentwise.
func (v Vector3) Mul(o Vector3) Vector3 {
	return Vector3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

// Div divides componentwise. A zero component in o yields ±Inf or NaN on that axis.
func (v Vector3) Div(o Vector3) Vector3 {
	return Vector3{v.X / o.X, v.Y / o.Y, v.Z / o.Z}
}

// Scale multiplies every component by s.
func (v Vector3) Scale(s float64) Vector3 {
	return fromMgl(v.mgl().Mul(s))
}

// DivScalar divides every component by s.
func (v Vector3) DivScalar(s float64) Vector3 {
	return Vector3{v.X / s, v.Y / s, v.Z / s}
}

// AddScalar adds s to every component.
func (v Vector3) AddScalar(s float64) Vector3 {
	return Vector3{v.X + s, v.Y + s, v.Z + s}
}

// SubScalar subtracts s from every component.
func (v Vector3) SubScalar(s float64) Vector3 {
	return v.AddScalar(-s)
}

// ModScalar applies a truncated (sign preserving) modulo to every component,
// so Vector3{-370, 0, 0}.ModScalar(360) is (-10, 0, 0).
func (v Vector3) ModScalar(s float64) Vector3 {
	return Vector3{math.Mod(v.X, s), math.Mod(v.Y, s), math.Mod(v.Z, s)}
}

// Dot returns the dot product of v and o.
func (v Vector3) Dot(o Vector3) float64 {
	return v.mgl().Dot(o.mgl())
}

// SqrMagnitude returns x²+y²+z².
func (v Vector3) SqrMagnitude() float64 {
	return v.Dot(v)
}

// Magnitude returns the Euclidean length of v.
func (v Vector3) Magnitude() float64 {
	return v.mgl().Len()
}

// Normalized returns v / |v|. A zero vector has no direction and returns ErrDivideByZero.
func (v Vector3) Normalized() (Vector3, error) {
	m := v.Magnitude()
	if m == 0 {
		return Vector3{}, fmt.Errorf("normalize %s: %w", v, ErrDivideByZero)
	}
	return v.DivScalar(m), nil
}

// Lerp interpolates between v and o; t is not clamped.
func (v Vector3) Lerp(o Vector3, t float64) Vector3 {
	return v.Add(o.Sub(v).Scale(t))
}

// Clamp limits value to [low, high].
func Clamp(value, low, high float64) float64 {
	return mgl64.Clamp(value, low, high)
}

// ApproxEqual reports whether every component of v is within eps of o.
func (v Vector3) ApproxEqual(o Vector3, eps float64) bool {
	return v.mgl().ApproxEqualThreshold(o.mgl(), eps)
}

// Min returns the componentwise minimum of v and o.
func (v Vector3) Min(o Vector3) Vector3 {
	return Vector3{math.Min(v.X, o.X), math.Min(v.Y, o.Y), math.Min(v.Z, o.Z)}
}

// Max returns the componentwise maximum of v and o.
func (v Vector3) Max(o Vector3) Vector3 {
	return Vector3{math.Max(v.X, o.X), math.Max(v.Y, o.Y), math.Max(v.Z, o.Z)}
}

// String formats v as "(x, y, z)", the same text used inside body records.
func (v Vector3) String() string {
	return "(" + FormatDecimal(v.X) + ", " + FormatDecimal(v.Y) + ", " + FormatDecimal(v.Z) + ")"
}

// Round rounds each component of v to digits decimal places.
func Round(v Vector3, digits int) (Vector3, error) {
	var out [3]float64
	for i, c := range [3]float64{v.X, v.Y, v.Z} {
		r, err := RoundDecimal(c, digits)
		if err != nil {
			return Vector3{}, err
		}
		out[i] = r
	}
	return Vector3{out[0], out[1], out[2]}, nil
}

// RoundDecimal rounds value to digits decimal places on its decimal
// representation. Exact halves round to even: 0.125 becomes 0.12.
// Negative digits return ErrOutOfRange.
func RoundDecimal(value float64, digits int) (float64, error) {
	if digits < 0 {
		return 0, fmt.Errorf("round to %d digits: %w", digits, ErrOutOfRange)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value, nil
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(value, 'f', digits, 64), 64)
	if err != nil {
		return value, nil
	}
	return r, nil
}

// FormatDecimal formats f in fixed-point notation with the fewest digits that
// round-trip, e.g. "5" or "0.25". Exponent notation is never used.
func FormatDecimal(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParseDecimal parses a decimal field value, tolerating surrounding whitespace.
func ParseDecimal(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("parse decimal %q: %w", s, ErrMalformedRecord)
	}
	return f, nil
}

// ParseVector3 parses the "(x, y, z)" text produced by Vector3.String.
func ParseVector3(s string) (Vector3, error) {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '(')
	closing := strings.LastIndexByte(s, ')')
	if open < 0 || closing < open {
		return Vector3{}, fmt.Errorf("parse vector %q: %w", s, ErrMalformedRecord)
	}
	parts := strings.Split(s[open+1:closing], ",")
	if len(parts) != 3 {
		return Vector3{}, fmt.Errorf("parse vector %q: want 3 components, got %d: %w", s, len(parts), ErrMalformedRecord)
	}
	var c [3]float64
	for i, p := range parts {
		f, err := ParseDecimal(p)
		if err != nil {
			return Vector3{}, fmt.Errorf("parse vector %q: %w", s, err)
		}
		c[i] = f
	}
	return Vector3{c[0], c[1], c[2]}, nil
}
