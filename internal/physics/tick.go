package physics

import "fmt"

// StepMode selects how a frame reads the state of the other bodies.
type StepMode int

const (
	// Sequential ticks bodies one after another against the live collection:
	// body n sees bodies 0..n-1 already updated in the same frame. This is the
	// default and the reference behavior.
	Sequential StepMode = iota
	// Snapshot ticks every body against a copy of the collection taken at the
	// start of the frame. Heat given to other bodies is applied after all bodies
	// have ticked. Results do not depend on registry order.
	Snapshot
)

// ParseStepMode maps "sequential" and "snapshot" to a StepMode.
func ParseStepMode(s string) (StepMode, error) {
	switch s {
	case "", "sequential":
		return Sequential, nil
	case "snapshot":
		return Snapshot, nil
	}
	return 0, fmt.Errorf("step mode %q: %w", s, ErrOutOfRange)
}

func (m StepMode) String() string {
	if m == Snapshot {
		return "snapshot"
	}
	return "sequential"
}

// Tick advances b by one step of deltaTime against every other body in w.
//
// For each other body, in registry order, gravity pulls b towards it and heat
// flows from b into it; afterwards b moves by its velocity. The collection is
// read live, so bodies ticked earlier in the same frame are seen with their
// updated state. Two behaviors are reproduced on purpose:
//   - the gravity term is scaled by deltaTime twice;
//   - heat only flows out of the ticking body and is sized by its own
//     temperature, so the outcome of a frame depends on registry order.
//
// The first error stops the rest of the step and leaves b with whatever was
// already applied (the position update is skipped). The error is logged to the
// world's sink and returned; World.Step and World.Run ignore it and continue.
func (b *Body) Tick(w *World, deltaTime float64) error {
	return w.tickAgainst(b, w.bodies, deltaTime, func(other *Body, heat float64) error {
		return other.SetTemperature(other.temperature + heat)
	})
}

func (w *World) tickAgainst(b *Body, others []*Body, deltaTime float64, give func(other *Body, heat float64) error) error {
	if err := b.tick(others, deltaTime, give); err != nil {
		w.logf("tick %s: %v\n", b, err)
		return err
	}
	return nil
}

func (b *Body) tick(others []*Body, deltaTime float64, give func(other *Body, heat float64) error) error {
	for _, other := range others {
		if other.Equal(b) {
			continue
		}
		direction := other.Position.Sub(b.Position)
		distance := direction.Magnitude()
		sqr := distance * distance
		if sqr == 0 {
			return fmt.Errorf("%s and %s share position %s: %w", b, other, b.Position, ErrDivideByZero)
		}

		forceMagnitude := b.mass * other.mass / sqr
		forceMagnitude *= deltaTime
		normal, err := direction.Normalized()
		if err != nil {
			return err
		}
		if err := b.AddForce(normal.Scale(forceMagnitude*deltaTime), Acceleration); err != nil {
			return err
		}

		heat := b.temperature / sqr * deltaTime
		if err := give(other, heat); err != nil {
			return fmt.Errorf("heat %s: %w", other, err)
		}
		if err := b.SetTemperature(b.temperature - heat); err != nil {
			return fmt.Errorf("heat %s: %w", b, err)
		}
	}

	b.Position = b.Position.Add(b.Velocity)
	return nil
}

// stepSnapshot ticks every body against the state at the start of the frame.
func (w *World) stepSnapshot() {
	frozen := make([]*Body, len(w.bodies))
	for i, b := range w.bodies {
		cp := *b
		frozen[i] = &cp
	}
	gains := make(map[int]float64, len(w.bodies))
	give := func(other *Body, heat float64) error {
		gains[other.id] += heat
		return nil
	}
	for _, b := range w.bodies {
		_ = w.tickAgainst(b, frozen, w.DeltaTime, give)
	}
	for _, b := range w.bodies {
		heat, ok := gains[b.id]
		if !ok {
			continue
		}
		if err := b.SetTemperature(b.temperature + heat); err != nil {
			w.logf("tick %s: heat: %v\n", b, err)
		}
	}
}
