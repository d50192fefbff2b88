package types

// Point3 is a position in 3D space: a horizontal (X, Y) location plus a
// vertical coordinate Z. For mesh vertices and soundings, Z is the depth
// value as stored in the source data (see the reader's negative_down flag
// for sign conventions).
type Point3 struct {
	X, Y, Z float64
}

// XY projects the point onto the horizontal plane, discarding depth. Most
// geometric predicates (triangulation, containment, area) operate in this
// projected space.
func (p Point3) XY() Point {
	return Point{X: p.X, Y: p.Y}
}
