package types

// VertexAttrs holds the per-vertex state the simplification core reads and
// writes. This replaces the teacher's name-keyed attribute table with a
// typed record: the core only ever needs ZOffset and Omit, so there is no
// value in a generic string-keyed map.
type VertexAttrs struct {
	ZOffset float64
	Omit    OmitClass
}
