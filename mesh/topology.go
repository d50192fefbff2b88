package mesh

import "github.com/iceisfun/bathysimplify/types"

// VF returns the (live) faces incident to vertex v.
func (m *Mesh) VF(v types.VertexID) []types.FaceHandle {
	var out []types.FaceHandle
	for fh, tri := range m.triangles {
		if m.faceDead[fh] {
			continue
		}
		if tri.V1() == v || tri.V2() == v || tri.V3() == v {
			out = append(out, types.FaceHandle(fh))
		}
	}
	return out
}

// FV returns the three vertices of a face, in storage (CCW) order.
func (m *Mesh) FV(fh types.FaceHandle) [3]types.VertexID {
	t := m.triangles[fh]
	return [3]types.VertexID{t.V1(), t.V2(), t.V3()}
}

// VV returns the one-ring neighbors of vertex v in CCW order, derived by
// chaining the opposite edge of each incident face.
//
// Every stored face winds CCW (AddTriangle enforces this), so within a face
// containing v at local index i, the edge from fv[(i+1)%3] to fv[(i+2)%3] is
// the edge directly "across" from v, oriented so it points in the direction
// the one-ring visits. Walking from face to face by matching the head of one
// opposite edge to the tail of another reconstructs the ring without needing
// explicit half-edge twin pointers. If v is a boundary vertex the ring is a
// single open chain rather than a closed loop; VV still returns it, just
// without wrapping back to the start.
func (m *Mesh) VV(v types.VertexID) []types.VertexID {
	type directedEdge struct {
		from, to types.VertexID
	}

	var opposite []directedEdge
	for fh, tri := range m.triangles {
		if m.faceDead[fh] {
			continue
		}
		fv := [3]types.VertexID{tri.V1(), tri.V2(), tri.V3()}
		for i := 0; i < 3; i++ {
			if fv[i] != v {
				continue
			}
			opposite = append(opposite, directedEdge{from: fv[(i+1)%3], to: fv[(i+2)%3]})
		}
	}

	if len(opposite) == 0 {
		return nil
	}

	byFrom := make(map[types.VertexID]directedEdge, len(opposite))
	toSet := make(map[types.VertexID]bool, len(opposite))
	for _, e := range opposite {
		byFrom[e.from] = e
		toSet[e.to] = true
	}

	// Find a starting edge: prefer one whose "from" is not anybody's "to",
	// i.e. the start of an open boundary chain. If none exists the ring is
	// closed and any edge can start it.
	start := opposite[0]
	for _, e := range opposite {
		if !toSet[e.from] {
			start = e
			break
		}
	}

	visited := make(map[types.VertexID]bool, len(opposite))
	ring := []types.VertexID{start.from, start.to}
	visited[start.from] = true
	visited[start.to] = true

	cur := start.to
	for {
		next, ok := byFrom[cur]
		if !ok || visited[next.to] {
			break
		}
		ring = append(ring, next.to)
		visited[next.to] = true
		cur = next.to
	}

	return ring
}

// DeleteVertex tombstones a vertex and every face incident to it. It does
// not retriangulate the resulting hole: callers that need the star/link
// polygon filled back in (as the simplification driver does) must first
// retriangulate and add the replacement faces, then call DeleteVertex.
//
// Returns ErrInvalidVertexID if the vertex does not exist or is already
// deleted.
func (m *Mesh) DeleteVertex(v types.VertexID) error {
	if !m.IsValidVertexID(v) {
		return ErrInvalidVertexID
	}

	for _, fh := range m.VF(v) {
		m.deleteFace(fh)
	}

	m.vertexDead[v] = true
	return nil
}

// DeleteFace tombstones a single face without touching its vertices.
func (m *Mesh) DeleteFace(fh types.FaceHandle) error {
	if !m.IsValidFaceHandle(fh) {
		return ErrInvalidFaceHandle
	}
	m.deleteFace(fh)
	return nil
}

func (m *Mesh) deleteFace(fh types.FaceHandle) {
	if m.faceDead[fh] {
		return
	}
	tri := m.triangles[fh]
	key := [3]types.VertexID{tri.V1(), tri.V2(), tri.V3()}
	if key[0] > key[1] {
		key[0], key[1] = key[1], key[0]
	}
	if key[1] > key[2] {
		key[1], key[2] = key[2], key[1]
	}
	if key[0] > key[1] {
		key[0], key[1] = key[1], key[0]
	}
	delete(m.triangleSet, key)

	for _, edge := range tri.Edges() {
		if !m.edgeStillReferenced(edge, fh) {
			delete(m.edgeSet, edge)
		}
	}

	m.faceDead[fh] = true
}

func (m *Mesh) edgeStillReferenced(edge types.Edge, excluding types.FaceHandle) bool {
	for fh, tri := range m.triangles {
		if types.FaceHandle(fh) == excluding || m.faceDead[fh] {
			continue
		}
		for _, e := range tri.Edges() {
			if e == edge {
				return true
			}
		}
	}
	return false
}

// GarbageCollection compacts vertex and face storage, dropping tombstoned
// slots and reassigning dense IDs/handles to the survivors. It is a no-op
// (idempotent) when nothing is tombstoned. Any VertexID or FaceHandle held
// by a caller from before this call is invalidated; the returned maps let
// a caller translate old IDs to new ones where it still needs to.
func (m *Mesh) GarbageCollection() (vertexRemap map[types.VertexID]types.VertexID, faceRemap map[types.FaceHandle]types.FaceHandle) {
	vertexRemap = make(map[types.VertexID]types.VertexID)
	faceRemap = make(map[types.FaceHandle]types.FaceHandle)

	anyDeadVertex := false
	for _, dead := range m.vertexDead {
		if dead {
			anyDeadVertex = true
			break
		}
	}
	anyDeadFace := false
	for _, dead := range m.faceDead {
		if dead {
			anyDeadFace = true
			break
		}
	}
	if !anyDeadVertex && !anyDeadFace {
		for i := range m.vertices {
			vertexRemap[types.VertexID(i)] = types.VertexID(i)
		}
		for i := range m.triangles {
			faceRemap[types.FaceHandle(i)] = types.FaceHandle(i)
		}
		return vertexRemap, faceRemap
	}

	newVertices := m.vertices[:0:0]
	newAttrs := m.vertexAttrs[:0:0]
	for old, dead := range m.vertexDead {
		if dead {
			continue
		}
		vertexRemap[types.VertexID(old)] = types.VertexID(len(newVertices))
		newVertices = append(newVertices, m.vertices[old])
		newAttrs = append(newAttrs, m.vertexAttrs[old])
	}

	newTriangles := m.triangles[:0:0]
	for old, dead := range m.faceDead {
		if dead {
			continue
		}
		tri := m.triangles[old]
		remapped := types.NewTriangle(
			vertexRemap[tri.V1()],
			vertexRemap[tri.V2()],
			vertexRemap[tri.V3()],
		)
		faceRemap[types.FaceHandle(old)] = types.FaceHandle(len(newTriangles))
		newTriangles = append(newTriangles, remapped)
	}

	m.vertices = newVertices
	m.vertexAttrs = newAttrs
	m.vertexDead = make([]bool, len(newVertices))
	m.triangles = newTriangles
	m.faceDead = make([]bool, len(newTriangles))

	m.edgeSet = make(map[types.Edge]struct{}, len(newTriangles)*3)
	m.triangleSet = make(map[[3]types.VertexID]types.Triangle, len(newTriangles))
	for _, tri := range newTriangles {
		for _, edge := range tri.Edges() {
			m.edgeSet[edge] = struct{}{}
		}
		key := [3]types.VertexID{tri.V1(), tri.V2(), tri.V3()}
		if key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
		}
		if key[1] > key[2] {
			key[1], key[2] = key[2], key[1]
		}
		if key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
		}
		m.triangleSet[key] = tri
	}

	m.vertexIndex = nil

	return vertexRemap, faceRemap
}
