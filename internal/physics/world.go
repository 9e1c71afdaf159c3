package physics

import (
	"fmt"
	"os"
	"strings"

	"github.com/jinzhu/copier"
)

// DefaultRoundDigits is the number of decimal places used in report blocks.
const DefaultRoundDigits = 24

// Sink receives report blocks and error messages. Whether it appends to a file,
// rewrites it or prints to a console is up to the implementation.
type Sink interface {
	Log(message string)
}

type discardSink struct{}

func (discardSink) Log(string) {}

// World holds an ordered set of bodies, the time step applied by Step and Run,
// and the counter that assigns body ids. Registry order is also the order in
// which bodies are ticked, reported and saved.
type World struct {
	// DeltaTime is the interval in seconds between two frames.
	DeltaTime float64

	bodies      []*Body
	nextID      int
	sink        Sink
	roundDigits int
	format      RecordFormat
	mode        StepMode
}

// NewWorld returns an empty world with DeltaTime 1 that reports to sink.
// A nil sink discards everything.
func NewWorld(sink Sink) *World {
	w := &World{
		DeltaTime:   1,
		roundDigits: DefaultRoundDigits,
		format:      FormatLegacy,
	}
	w.SetSink(sink)
	return w
}

// SetSink replaces the report destination. nil discards.
func (w *World) SetSink(sink Sink) {
	if sink == nil {
		sink = discardSink{}
	}
	w.sink = sink
}

// RoundDigits returns the decimal places used by Report.
func (w *World) RoundDigits() int { return w.roundDigits }

// SetRoundDigits sets the decimal places used by Report. Negative values are rejected.
func (w *World) SetRoundDigits(n int) error {
	if n < 0 {
		return fmt.Errorf("round digits %d: %w", n, ErrOutOfRange)
	}
	w.roundDigits = n
	return nil
}

// Mode returns how Step and Run tick the bodies.
func (w *World) Mode() StepMode { return w.mode }

// SetMode selects Sequential (default) or Snapshot stepping.
func (w *World) SetMode(m StepMode) { w.mode = m }

// Format returns the format SaveTo writes.
func (w *World) Format() RecordFormat { return w.format }

// SetFormat selects the format SaveTo writes. LoadFrom accepts both.
func (w *World) SetFormat(f RecordFormat) { w.format = f }

func (w *World) logf(format string, args ...any) {
	w.sink.Log(fmt.Sprintf(format, args...))
}

func (w *World) allocID() int {
	id := w.nextID
	w.nextID++
	return id
}

// NewBody creates a body with the next id. An empty name becomes "object_<id>".
// The body is not added to the world.
func (w *World) NewBody(name string, position Vector3) *Body {
	return newBody(w.allocID(), name, position)
}

// FromMass creates a body from mass and volume, deriving density = mass / volume.
func (w *World) FromMass(mass, volume float64) (*Body, error) {
	b := w.NewBody("", Zero)
	if err := b.SetMass(mass); err != nil {
		return nil, err
	}
	if err := b.SetDensity(mass / volume); err != nil {
		return nil, err
	}
	if err := b.SetVolume(volume); err != nil {
		return nil, err
	}
	return b, nil
}

// FromDensity creates a body from density and volume, deriving mass = density * volume.
func (w *World) FromDensity(density, volume float64) (*Body, error) {
	b := w.NewBody("", Zero)
	if err := b.SetDensity(density); err != nil {
		return nil, err
	}
	if err := b.SetMass(density * volume); err != nil {
		return nil, err
	}
	if err := b.SetVolume(volume); err != nil {
		return nil, err
	}
	return b, nil
}

// Clone creates a new body with src's position, rotation, scale, mass, volume,
// density and temperature. The clone gets a fresh id and default name and starts at rest.
func (w *World) Clone(src *Body) (*Body, error) {
	return w.CloneAt(src, src.Position, src.rotation)
}

// CloneAt is Clone with the position and rotation replaced.
func (w *World) CloneAt(src *Body, position, rotation Vector3) (*Body, error) {
	b := w.NewBody("", Zero)
	id := b.id
	// copier also copies unexported fields of same-typed structs, id included
	if err := copier.Copy(b, src); err != nil {
		return nil, fmt.Errorf("clone %s: %w", src, err)
	}
	b.id = id
	b.Position = position
	b.SetRotation(rotation)
	b.mass = src.mass
	b.volume = src.volume
	b.density = src.density
	b.temperature = src.temperature
	return b, nil
}

// AddBodies appends bodies in the given order.
func (w *World) AddBodies(bodies ...*Body) {
	w.bodies = append(w.bodies, bodies...)
}

// Bodies returns the bodies in registry order. The slice is a copy; the bodies are not.
func (w *World) Bodies() []*Body {
	out := make([]*Body, len(w.bodies))
	copy(out, w.bodies)
	return out
}

// Len returns the number of bodies.
func (w *World) Len() int { return len(w.bodies) }

// Find returns the body with the given id, or nil.
func (w *World) Find(id int) *Body {
	for _, b := range w.bodies {
		if b.id == id {
			return b
		}
	}
	return nil
}

// Replace discards the current bodies and installs bodies in their place.
func (w *World) Replace(bodies []*Body) {
	w.bodies = append([]*Body(nil), bodies...)
}

// Step ticks every body once, in registry order, with DeltaTime.
// Tick errors are already logged and do not stop the step.
func (w *World) Step() {
	if w.mode == Snapshot {
		w.stepSnapshot()
		return
	}
	for i := 0; i < len(w.bodies); i++ {
		_ = w.bodies[i].Tick(w, w.DeltaTime)
	}
}

// Run drives frames frames. Each frame logs a "=== Step n ===" header, then
// ticks and reports each body in registry order. In Snapshot mode the whole
// frame is stepped before the bodies are reported. observe, if not nil, is
// called after every frame with its 1-based number.
func (w *World) Run(frames int, observe func(frame int)) {
	for i := 1; i <= frames; i++ {
		w.logf("=== Step %d ===", i)
		if w.mode == Snapshot {
			w.stepSnapshot()
			w.ReportAll()
		} else {
			for j := 0; j < len(w.bodies); j++ {
				b := w.bodies[j]
				_ = b.Tick(w, w.DeltaTime)
				w.Report(b)
			}
		}
		if observe != nil {
			observe(i)
		}
	}
}

// Report sends b's report block to the sink.
func (w *World) Report(b *Body) {
	w.sink.Log(b.Describe(w.roundDigits))
}

// ReportAll reports every body in registry order.
func (w *World) ReportAll() {
	for _, b := range w.bodies {
		w.Report(b)
	}
}

// CenterOfMass returns the mass-weighted mean position of all bodies.
func (w *World) CenterOfMass() (Vector3, error) {
	return CenterOfMass(w.bodies)
}

// LoadFrom reads body records from path and replaces every body with them.
// New bodies get ids from this world's counter; ids stored in the file are ignored.
// On error the current bodies are kept.
func (w *World) LoadFrom(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	records, err := DecodeRecords(data)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	bodies := make([]*Body, 0, len(records))
	for i, r := range records {
		b, err := w.FromRecord(r)
		if err != nil {
			return fmt.Errorf("load %s: record %d: %w", path, i, err)
		}
		bodies = append(bodies, b)
	}
	w.Replace(bodies)
	return nil
}

// SaveTo writes every body to path in the world's format, replacing the file.
func (w *World) SaveTo(path string) error {
	records := make([]Record, len(w.bodies))
	for i, b := range w.bodies {
		records[i] = b.Record()
	}
	data, err := EncodeRecords(records, w.format)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func (w *World) String() string {
	names := make([]string, len(w.bodies))
	for i, b := range w.bodies {
		names[i] = b.Name
	}
	return fmt.Sprintf("World;\nDelta time: %s;\nObjects: %s;", FormatDecimal(w.DeltaTime), strings.Join(names, ", "))
}
