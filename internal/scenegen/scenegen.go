package scenegen

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/exp/rand"

	"physx/internal/physics"
)

// Layout selects how generated bodies are placed.
type Layout int

const (
	// Scatter places bodies uniformly inside a sphere of Radius around the origin.
	Scatter Layout = iota
	// Grid places bodies on a Width x Depth lattice in the XZ plane, centred on the
	// origin, with mass and temperature driven by fractal noise.
	Grid
)

// ParseLayout maps "scatter" and "grid" to a Layout.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(s) {
	case "", "scatter":
		return Scatter, nil
	case "grid":
		return Grid, nil
	}
	return 0, fmt.Errorf("unknown layout %q", s)
}

// Options controls startup scene generation.
// Count, Radius, mass bounds and MaxSpeed apply to Scatter; Width, Depth,
// Spacing and the noise parameters apply to Grid. Seed == 0 uses a time-based seed.
type Options struct {
	Layout Layout
	Seed   uint64

	Count    int
	Radius   float64
	MinMass  float64
	MaxMass  float64
	MaxSpeed float64

	Width   int
	Depth   int
	Spacing float64

	Octaves    int
	Frequency  float64
	Lacunarity float64
	Gain       float64

	// MaxTemperature bounds the random starting temperature in kelvin.
	MaxTemperature float64
}

// DefaultOptions returns a small scattered scene.
func DefaultOptions() Options {
	return Options{
		Layout:         Scatter,
		Count:          8,
		Radius:         100,
		MinMass:        1,
		MaxMass:        1000,
		MaxSpeed:       0,
		Width:          4,
		Depth:          4,
		Spacing:        10,
		Octaves:        4,
		Frequency:      0.3,
		Lacunarity:     2,
		Gain:           0.5,
		MaxTemperature: 600,
	}
}

func (o *Options) normalize() {
	def := DefaultOptions()
	if o.Radius <= 0 {
		o.Radius = def.Radius
	}
	if o.MinMass <= 0 {
		o.MinMass = def.MinMass
	}
	if o.MaxMass < o.MinMass {
		o.MaxMass = o.MinMass
	}
	if o.MaxSpeed < 0 {
		o.MaxSpeed = 0
	}
	if o.Spacing <= 0 {
		o.Spacing = def.Spacing
	}
	if o.Octaves <= 0 {
		o.Octaves = 1
	}
	if o.Frequency <= 0 {
		o.Frequency = def.Frequency
	}
	if o.Lacunarity <= 0 {
		o.Lacunarity = def.Lacunarity
	}
	if o.Gain <= 0 {
		o.Gain = def.Gain
	}
	if o.MaxTemperature < 0 {
		o.MaxTemperature = 0
	}
	if o.Seed == 0 {
		o.Seed = uint64(time.Now().UnixNano())
	}
}

// Generate creates bodies in w according to opts and returns them in creation
// order. The bodies are not added to w.
func Generate(w *physics.World, opts Options) ([]*physics.Body, error) {
	opts.normalize()
	rng := rand.New(rand.NewSource(opts.Seed))
	switch opts.Layout {
	case Grid:
		return generateGrid(w, opts, rng)
	default:
		return generateScatter(w, opts, rng)
	}
}

func generateScatter(w *physics.World, opts Options, rng *rand.Rand) ([]*physics.Body, error) {
	if opts.Count <= 0 {
		return nil, nil
	}
	bodies := make([]*physics.Body, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		// log-uniform so a few heavy bodies dominate
		mass := opts.MinMass * math.Pow(opts.MaxMass/opts.MinMass, rng.Float64())
		radius := 0.5 + rng.Float64()*1.5
		b, err := w.FromMass(mass, physics.Sphere(radius))
		if err != nil {
			return nil, fmt.Errorf("scenegen: body %d: %w", i, err)
		}
		b.Scale = physics.Vec(2 * radius)
		b.Position = inSphere(rng).Scale(opts.Radius)
		b.Velocity = inSphere(rng).Scale(opts.MaxSpeed)
		b.SetRotation(physics.Vector3{X: rng.Float64() * 360, Y: rng.Float64() * 360, Z: rng.Float64() * 360})
		if err := b.SetTemperature(rng.Float64() * opts.MaxTemperature); err != nil {
			return nil, fmt.Errorf("scenegen: body %d: %w", i, err)
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

// inSphere returns a point uniformly distributed in the unit ball.
func inSphere(rng *rand.Rand) physics.Vector3 {
	for {
		p := physics.Vector3{X: 2*rng.Float64() - 1, Y: 2*rng.Float64() - 1, Z: 2*rng.Float64() - 1}
		if p.SqrMagnitude() <= 1 {
			return p
		}
	}
}

func generateGrid(w *physics.World, opts Options, rng *rand.Rand) ([]*physics.Body, error) {
	if opts.Width <= 0 || opts.Depth <= 0 {
		return nil, nil
	}
	// first cell centre sits half a cell in from the edge
	startX := -float64(opts.Width)*opts.Spacing*0.5 + opts.Spacing*0.5
	startZ := -float64(opts.Depth)*opts.Spacing*0.5 + opts.Spacing*0.5
	side := opts.Spacing * 0.5
	volume := physics.Cube(side)

	bodies := make([]*physics.Body, 0, opts.Width*opts.Depth)
	for z := 0; z < opts.Depth; z++ {
		for x := 0; x < opts.Width; x++ {
			h := physics.Clamp(fractalNoise2D(float64(x)*opts.Frequency, float64(z)*opts.Frequency, opts.Seed, opts.Octaves, opts.Lacunarity, opts.Gain), 0, 1)
			mass := opts.MinMass + h*(opts.MaxMass-opts.MinMass)
			if !(mass > 0) {
				mass = opts.MinMass
			}
			b, err := w.FromMass(mass, volume)
			if err != nil {
				return nil, fmt.Errorf("scenegen: cell %d,%d: %w", x, z, err)
			}
			b.Name = fmt.Sprintf("cell_%d_%d", x, z)
			b.Scale = physics.Vec(side)
			b.Position = physics.Vector3{X: startX + float64(x)*opts.Spacing, Z: startZ + float64(z)*opts.Spacing}
			b.SetRotation(physics.Vector3{Y: rng.Float64() * 360})
			if err := b.SetTemperature(h * opts.MaxTemperature); err != nil {
				return nil, fmt.Errorf("scenegen: cell %d,%d: %w", x, z, err)
			}
			bodies = append(bodies, b)
		}
	}
	return bodies, nil
}

// WriteStartup generates a scene into a fresh world and saves it to path in format.
// It returns the number of bodies written.
func WriteStartup(path string, format physics.RecordFormat, opts Options) (int, error) {
	w := physics.NewWorld(nil)
	w.SetFormat(format)
	bodies, err := Generate(w, opts)
	if err != nil {
		return 0, err
	}
	w.AddBodies(bodies...)
	if err := w.SaveTo(path); err != nil {
		return 0, err
	}
	return len(bodies), nil
}
