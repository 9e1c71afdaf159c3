package physics

import (
	"fmt"
	"math"
	"strings"
)

// Body is a rigid point mass with a box-shaped extent (Scale), a stored rotation
// and a temperature. Bodies are created by a World, which hands out their ids.
// Mass, volume, density, temperature and rotation go through setters that keep
// their invariants; the vectors below are free-form.
type Body struct {
	id int

	// Name is the display label used in logs and records. It is not copied by clones.
	Name string `copier:"-"`
	// Position in meters.
	Position Vector3
	// Scale is the full extent along each axis in meters, (1,1,1) by default.
	Scale Vector3
	// Velocity in meters per second. Clones start at rest.
	Velocity Vector3 `copier:"-"`

	rotation    Vector3
	mass        float64
	volume      float64
	density     float64
	temperature float64
}

func newBody(id int, name string, position Vector3) *Body {
	if name == "" {
		name = fmt.Sprintf("object_%d", id)
	}
	return &Body{
		id:       id,
		Name:     name,
		Position: position,
		Scale:    One,
		mass:     1,
		volume:   1,
		density:  1,
	}
}

// ID returns the identifier assigned when the body was created.
func (b *Body) ID() int { return b.id }

// Equal reports whether b and o are the same body. Identity is the id, not the state.
func (b *Body) Equal(o *Body) bool {
	return b != nil && o != nil && b.id == o.id
}

// Rotation in degrees, each component in (-360, 360).
func (b *Body) Rotation() Vector3 { return b.rotation }

// SetRotation stores r modulo 360 per component, keeping the sign of each component.
func (b *Body) SetRotation(r Vector3) {
	b.rotation = r.ModScalar(360)
}

// Mass in kilograms.
func (b *Body) Mass() float64 { return b.mass }

// SetMass sets the mass. It must be strictly positive.
func (b *Body) SetMass(v float64) error {
	if !(v > 0) {
		return fmt.Errorf("mass %v: must be positive: %w", v, ErrOutOfRange)
	}
	b.mass = v
	return nil
}

// Volume in cubic meters.
func (b *Body) Volume() float64 { return b.volume }

// SetVolume sets the volume. It must be strictly positive.
func (b *Body) SetVolume(v float64) error {
	if !(v > 0) {
		return fmt.Errorf("volume %v: must be positive: %w", v, ErrOutOfRange)
	}
	b.volume = v
	return nil
}

// Density in kilograms per cubic meter. It is not kept in sync with mass/volume.
func (b *Body) Density() float64 { return b.density }

// SetDensity sets the density. It must be strictly positive.
func (b *Body) SetDensity(v float64) error {
	if !(v > 0) {
		return fmt.Errorf("density %v: must be positive: %w", v, ErrOutOfRange)
	}
	b.density = v
	return nil
}

// Temperature in kelvin.
func (b *Body) Temperature() float64 { return b.temperature }

// SetTemperature sets the temperature. It must not be negative.
func (b *Body) SetTemperature(v float64) error {
	if !(v >= 0) {
		return fmt.Errorf("temperature %v: must not be negative: %w", v, ErrOutOfRange)
	}
	b.temperature = v
	return nil
}

// Bounds returns the box derived from the current scale, centred on the origin.
// It is computed on every call.
func (b *Body) Bounds() AABB {
	return BoundsFromScale(b.Scale)
}

// SetBounds resizes the body so that its bounds have the extents of box.
func (b *Body) SetBounds(box AABB) {
	b.Scale = box.Scale()
}

// GravitationalAcceleration is mass / (width*depth + height)².
func (b *Body) GravitationalAcceleration() float64 {
	box := b.Bounds()
	d := box.Width()*box.Depth() + box.Height()
	return b.mass / (d * d)
}

// KineticEnergy is 0.5 * mass * |v∘v|, where v∘v squares each velocity component.
func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.mass * b.Velocity.Mul(b.Velocity).Magnitude()
}

// Collision returns the first other body in w, in registry order, whose box
// overlaps b's box. Boxes are placed at each body's position. Returns nil when
// nothing overlaps.
func (b *Body) Collision(w *World) *Body {
	box := b.Bounds().Offset(b.Position)
	for _, other := range w.bodies {
		if other.Equal(b) {
			continue
		}
		if box.Intersects(other.Bounds().Offset(other.Position)) {
			return other
		}
	}
	return nil
}

// Describe renders the multi-line report block written to the text log.
// Values are rounded to digits decimal places; a negative digits leaves them as is.
func (b *Body) Describe(digits int) string {
	v := func(x Vector3) string {
		if r, err := Round(x, digits); err == nil {
			x = r
		}
		return x.String()
	}
	f := func(x float64) string {
		if r, err := RoundDecimal(x, digits); err == nil {
			x = r
		}
		return FormatDecimal(x)
	}
	box := b.Bounds()

	var sb strings.Builder
	fmt.Fprintf(&sb, "ID: %d\n", b.id)
	fmt.Fprintf(&sb, "%s;\n", b.Name)
	fmt.Fprintf(&sb, "Position: %s;\n", v(b.Position))
	fmt.Fprintf(&sb, "Rotation: %s deg;\n", v(b.rotation))
	fmt.Fprintf(&sb, "Scale: %s;\n", v(b.Scale))
	fmt.Fprintf(&sb, "Bounds: (%s, %s);\n", v(box.Min), v(box.Max))
	fmt.Fprintf(&sb, "Velocity: %s m/s;\n", v(b.Velocity))
	fmt.Fprintf(&sb, "Gravitational Acceleration: %s;\n", f(b.GravitationalAcceleration()))
	fmt.Fprintf(&sb, "Kinetic Energy: %s;\n", f(b.KineticEnergy()))
	fmt.Fprintf(&sb, "Temperature: %s K;\n", f(b.temperature))
	fmt.Fprintf(&sb, "Mass: %s kg;\n", f(b.mass))
	fmt.Fprintf(&sb, "Volume: %s m3;\n", f(b.volume))
	fmt.Fprintf(&sb, "Density: %s kg/m3;\n", f(b.density))
	return sb.String()
}

func (b *Body) String() string {
	return fmt.Sprintf("%s#%d", b.Name, b.id)
}

// CenterOfMass returns the mass-weighted mean position of bodies.
// An empty slice has no total mass and returns ErrDivideByZero.
func CenterOfMass(bodies []*Body) (Vector3, error) {
	var total float64
	var sum Vector3
	for _, b := range bodies {
		total += b.mass
		sum = sum.Add(b.Position.Scale(b.mass))
	}
	if total == 0 || math.IsNaN(total) {
		return Vector3{}, fmt.Errorf("center of mass of %d bodies: total mass is zero: %w", len(bodies), ErrDivideByZero)
	}
	return sum.DivScalar(total), nil
}
