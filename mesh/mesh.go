package mesh

import (
	"github.com/iceisfun/bathysimplify/spatial"
	"github.com/iceisfun/bathysimplify/types"
)

// Mesh represents a triangle mesh over 3D vertices (xy position plus depth),
// with validated 2D topology. Vertices and faces are never physically
// removed from the backing slices during simplification: DeleteVertex
// tombstones them, and GarbageCollection later compacts the storage and
// reassigns dense IDs. This lets other components hold VertexID/FaceHandle
// values across a batch of deletions without them shifting underfoot.
type Mesh struct {
	vertices    []types.Point3
	vertexAttrs []types.VertexAttrs
	vertexDead  []bool

	triangles []types.Triangle
	faceDead  []bool

	cfg config

	vertexIndex spatial.Index

	edgeSet map[types.Edge]struct{}

	triangleSet map[[3]types.VertexID]types.Triangle
}

// NumVertices returns the number of vertex slots, including tombstoned ones.
// Use LiveVertexCount for the count of vertices still present in the mesh.
func (m *Mesh) NumVertices() int {
	return len(m.vertices)
}

// NumTriangles returns the number of face slots, including tombstoned ones.
// Use LiveFaceCount for the count of faces still present in the mesh.
func (m *Mesh) NumTriangles() int {
	return len(m.triangles)
}

// LiveVertexCount returns the number of non-deleted vertices.
func (m *Mesh) LiveVertexCount() int {
	n := 0
	for _, dead := range m.vertexDead {
		if !dead {
			n++
		}
	}
	return n
}

// LiveFaceCount returns the number of non-deleted faces.
func (m *Mesh) LiveFaceCount() int {
	n := 0
	for _, dead := range m.faceDead {
		if !dead {
			n++
		}
	}
	return n
}

// GetVertex returns the 3D position of a vertex by ID.
func (m *Mesh) GetVertex(id types.VertexID) types.Point3 {
	return m.vertices[id]
}

// GetVertexXY returns the 2D projection of a vertex, for callers that only
// need the triangulation-relevant coordinates.
func (m *Mesh) GetVertexXY(id types.VertexID) types.Point {
	return m.vertices[id].XY()
}

// GetTriangle returns a triangle by face handle.
func (m *Mesh) GetTriangle(fh types.FaceHandle) types.Triangle {
	return m.triangles[fh]
}

// GetVertices returns a copy of all vertex positions (dense slots, including
// any tombstoned ones).
func (m *Mesh) GetVertices() []types.Point3 {
	out := make([]types.Point3, len(m.vertices))
	copy(out, m.vertices)
	return out
}

// GetTriangles returns a copy of all faces (dense slots, including any
// tombstoned ones).
func (m *Mesh) GetTriangles() []types.Triangle {
	out := make([]types.Triangle, len(m.triangles))
	copy(out, m.triangles)
	return out
}

// GetTriangleCoords returns the positions of a triangle's vertices.
func (m *Mesh) GetTriangleCoords(fh types.FaceHandle) (types.Point3, types.Point3, types.Point3) {
	t := m.triangles[fh]
	return m.vertices[t.V1()], m.vertices[t.V2()], m.vertices[t.V3()]
}

// IsValidVertexID reports whether id references a live (non-tombstoned)
// vertex.
func (m *Mesh) IsValidVertexID(id types.VertexID) bool {
	if id < 0 || int(id) >= len(m.vertices) {
		return false
	}
	return !m.vertexDead[id]
}

// IsValidFaceHandle reports whether fh references a live (non-tombstoned)
// face.
func (m *Mesh) IsValidFaceHandle(fh types.FaceHandle) bool {
	if fh < 0 || int(fh) >= len(m.triangles) {
		return false
	}
	return !m.faceDead[fh]
}

// Epsilon returns the configured epsilon tolerance.
func (m *Mesh) Epsilon() float64 {
	return m.cfg.epsilon
}

// EdgeSet exposes the set of edges currently tracked by the mesh.
func (m *Mesh) EdgeSet() map[types.Edge]struct{} {
	return m.edgeSet
}

// EdgeUsageCounts returns, for every edge present in a live face, how many
// live faces reference it. A well-formed interior edge is used by exactly
// 2 faces; a boundary edge by 1.
func (m *Mesh) EdgeUsageCounts() map[types.Edge]int {
	counts := make(map[types.Edge]int)
	for fh, tri := range m.triangles {
		if m.faceDead[fh] {
			continue
		}
		for _, edge := range tri.Edges() {
			counts[edge]++
		}
	}
	return counts
}

// HasTriangleWithKey reports whether the canonical key is present.
func (m *Mesh) HasTriangleWithKey(key [3]types.VertexID) (types.Triangle, bool) {
	tri, ok := m.triangleSet[key]
	return tri, ok
}

// VertexAttrs returns the mutable attribute record for a vertex: its z
// offset and its omit classification. Mutate the returned pointer in place.
func (m *Mesh) VertexAttrs(id types.VertexID) *types.VertexAttrs {
	return &m.vertexAttrs[id]
}

// ZOffset returns the vertical-tolerance budget assigned to a vertex.
func (m *Mesh) ZOffset(id types.VertexID) float64 {
	return m.vertexAttrs[id].ZOffset
}

// SetZOffset assigns the vertical-tolerance budget for a vertex.
func (m *Mesh) SetZOffset(id types.VertexID, z float64) {
	m.vertexAttrs[id].ZOffset = z
}

// Omit returns the removal classification of a vertex.
func (m *Mesh) Omit(id types.VertexID) types.OmitClass {
	return m.vertexAttrs[id].Omit
}

// SetOmit assigns the removal classification of a vertex.
func (m *Mesh) SetOmit(id types.VertexID, class types.OmitClass) {
	m.vertexAttrs[id].Omit = class
}

// meshValidationView adapts *Mesh to validation.MeshProvider, which speaks
// in 2D points: the validation package predates the 3D vertex model and
// only ever needs the xy projection.
type meshValidationView struct {
	m *Mesh
}

func (v meshValidationView) NumVertices() int { return v.m.NumVertices() }

func (v meshValidationView) GetVertex(id types.VertexID) types.Point {
	return v.m.vertices[id].XY()
}

func (v meshValidationView) EdgeSet() map[types.Edge]struct{} { return v.m.edgeSet }

func (v meshValidationView) EdgeUsageCounts() map[types.Edge]int {
	return v.m.EdgeUsageCounts()
}

func (v meshValidationView) HasTriangleWithKey(key [3]types.VertexID) (types.Triangle, bool) {
	return v.m.HasTriangleWithKey(key)
}
