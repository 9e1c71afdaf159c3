package physics

// AABB is an axis-aligned bounding box given by two opposite corners.
// Min is componentwise <= Max.
type AABB struct {
	Min Vector3
	Max Vector3
}

// NewAABB builds a box from any two opposite corners.
func NewAABB(a, b Vector3) AABB {
	return AABB{Min: a.Min(b), Max: a.Max(b)}
}

// BoundsFromScale derives the box of a body with the given full extents, centred
// on the origin. Rotation is not applied: the box of a rotated body is the same
// as the box of an unrotated one.
func BoundsFromScale(scale Vector3) AABB {
	half := scale.Scale(0.5)
	first := true
	var box AABB
	for _, sx := range [2]float64{-1, 1} {
		for _, sy := range [2]float64{-1, 1} {
			for _, sz := range [2]float64{-1, 1} {
				corner := Vector3{sx * half.X, sy * half.Y, sz * half.Z}
				if first {
					box = AABB{Min: corner, Max: corner}
					first = false
					continue
				}
				box.Min = box.Min.Min(corner)
				box.Max = box.Max.Max(corner)
			}
		}
	}
	return box
}

// Scale returns Max - Min.
func (a AABB) Scale() Vector3 {
	return a.Max.Sub(a.Min)
}

// Width is the extent along X.
func (a AABB) Width() float64 { return a.Scale().X }

// Height is the extent along Z. Height and depth follow the record convention
// where a body's vertical size is its Z scale.
func (a AABB) Height() float64 { return a.Scale().Z }

// Depth is the extent along Y.
func (a AABB) Depth() float64 { return a.Scale().Y }

// Center returns the midpoint of the box.
func (a AABB) Center() Vector3 {
	return a.Min.Add(a.Max).Scale(0.5)
}

// Offset returns the box translated by p.
func (a AABB) Offset(p Vector3) AABB {
	return AABB{Min: a.Min.Add(p), Max: a.Max.Add(p)}
}

// Intersects reports whether a and b overlap on all three axes. Touching faces count as overlap.
func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

func (a AABB) String() string {
	return "(" + a.Min.String() + ", " + a.Max.String() + ")"
}
