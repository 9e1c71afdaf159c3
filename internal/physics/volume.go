package physics

import "math"

// Ellipsoid returns the volume of an ellipsoid with semi-axes x, y, z: 4/3·π·x·y·z.
func Ellipsoid(x, y, z float64) float64 {
	return 4.0 / 3.0 * math.Pi * x * y * z
}

// Sphere returns the volume of a sphere of the given radius.
func Sphere(radius float64) float64 {
	return Ellipsoid(radius, radius, radius)
}

// Cuboid returns x·y·z.
func Cuboid(x, y, z float64) float64 {
	return x * y * z
}

// Cube returns the volume of a cube with the given side.
func Cube(side float64) float64 {
	return Cuboid(side, side, side)
}

// BoxVolume is the volume of a body's box, computed from its scale.
func BoxVolume(scale Vector3) float64 {
	return Cuboid(scale.X, scale.Y, scale.Z)
}
