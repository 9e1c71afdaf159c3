package physics

import "fmt"

// ForceMode selects how AddForce turns a force into a velocity change.
type ForceMode int

const (
	// Impulse adds the force to the velocity as is, ignoring mass.
	Impulse ForceMode = iota
	// Acceleration divides the force by the body's mass first.
	Acceleration
)

func (m ForceMode) String() string {
	switch m {
	case Impulse:
		return "Impulse"
	case Acceleration:
		return "Acceleration"
	}
	return fmt.Sprintf("ForceMode(%d)", int(m))
}

// AddForce changes the body's velocity by force according to mode.
// Only the velocity is touched.
func (b *Body) AddForce(force Vector3, mode ForceMode) error {
	switch mode {
	case Impulse:
		b.Velocity = b.Velocity.Add(force)
	case Acceleration:
		b.Velocity = b.Velocity.Add(force.DivScalar(b.mass))
	default:
		return fmt.Errorf("add force to %s: %v: %w", b, mode, ErrInvalidForceMode)
	}
	return nil
}
