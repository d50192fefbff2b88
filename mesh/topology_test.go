package mesh

import (
	"errors"
	"math"
	"testing"

	"github.com/iceisfun/bathysimplify/types"
)

// buildHexFan builds a flat hexagonal fan: a center vertex surrounded by
// six rim vertices, with six triangles connecting the center to each rim
// edge. The center is an interior vertex (closed one-ring); each rim
// vertex is a boundary vertex (open one-ring).
func buildHexFan(t *testing.T) (m *Mesh, center types.VertexID, rim []types.VertexID) {
	t.Helper()
	m = NewMesh()

	var err error
	center, err = m.AddVertex(types.Point3{X: 0, Y: 0, Z: 0})
	if err != nil {
		t.Fatalf("AddVertex: %v", err)
	}

	const n = 6
	rim = make([]types.VertexID, n)
	for i := 0; i < n; i++ {
		angle := float64(i) * 2 * math.Pi / n
		x := 10 * math.Cos(angle)
		y := 10 * math.Sin(angle)
		id, err := m.AddVertex(types.Point3{X: x, Y: y, Z: 0})
		if err != nil {
			t.Fatalf("AddVertex: %v", err)
		}
		rim[i] = id
	}

	for i := 0; i < n; i++ {
		a := rim[i]
		b := rim[(i+1)%n]
		if _, err := m.AddTriangle(center, a, b); err != nil {
			t.Fatalf("AddTriangle: %v", err)
		}
	}

	return m, center, rim
}

func TestVVClosedRingForInteriorVertex(t *testing.T) {
	m, center, rim := buildHexFan(t)
	ring := m.VV(center)
	if len(ring) != len(rim) {
		t.Fatalf("expected closed ring of %d neighbors, got %d: %v", len(rim), len(ring), ring)
	}
	seen := make(map[types.VertexID]bool)
	for _, id := range ring {
		seen[id] = true
	}
	for _, id := range rim {
		if !seen[id] {
			t.Fatalf("expected rim vertex %d in one-ring, got %v", id, ring)
		}
	}
}

func TestVVOpenChainForBoundaryVertex(t *testing.T) {
	m, center, rim := buildHexFan(t)
	ring := m.VV(rim[0])
	incident := m.VF(rim[0])
	if len(ring) != len(incident)+1 {
		t.Fatalf("expected open chain of length incident+1 (%d), got %d: %v", len(incident)+1, len(ring), ring)
	}
	found := false
	for _, id := range ring {
		if id == center {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected center vertex in rim vertex's one-ring, got %v", ring)
	}
}

func TestVFReturnsOnlyLiveIncidentFaces(t *testing.T) {
	m, center, _ := buildHexFan(t)
	incident := m.VF(center)
	if len(incident) != 6 {
		t.Fatalf("expected 6 incident faces, got %d", len(incident))
	}
	if err := m.DeleteFace(incident[0]); err != nil {
		t.Fatalf("DeleteFace: %v", err)
	}
	if got := m.VF(center); len(got) != 5 {
		t.Fatalf("expected 5 incident faces after deletion, got %d", len(got))
	}
}

func TestDeleteVertexTombstonesVertexAndIncidentFaces(t *testing.T) {
	m, center, _ := buildHexFan(t)
	before := m.LiveFaceCount()
	if err := m.DeleteVertex(center); err != nil {
		t.Fatalf("DeleteVertex: %v", err)
	}
	if m.IsValidVertexID(center) {
		t.Fatalf("expected center vertex to be invalid after deletion")
	}
	if got := m.LiveFaceCount(); got != before-6 {
		t.Fatalf("expected %d faces removed with center vertex, got %d remaining (was %d)", 6, got, before)
	}
}

func TestDeleteVertexRejectsAlreadyDeleted(t *testing.T) {
	m, center, _ := buildHexFan(t)
	if err := m.DeleteVertex(center); err != nil {
		t.Fatalf("DeleteVertex: %v", err)
	}
	if err := m.DeleteVertex(center); !errors.Is(err, ErrInvalidVertexID) {
		t.Fatalf("expected ErrInvalidVertexID for re-deletion, got %v", err)
	}
}

func TestGarbageCollectionCompactsAndRemaps(t *testing.T) {
	m, center, _ := buildHexFan(t)
	if err := m.DeleteVertex(center); err != nil {
		t.Fatalf("DeleteVertex: %v", err)
	}

	liveBefore := m.LiveVertexCount()
	vertexRemap, faceRemap := m.GarbageCollection()

	if m.NumVertices() != liveBefore {
		t.Fatalf("expected dense vertex count %d after GC, got %d", liveBefore, m.NumVertices())
	}
	if _, ok := vertexRemap[center]; ok {
		t.Fatalf("expected deleted center vertex to have no remap entry")
	}
	if len(faceRemap) != 0 {
		t.Fatalf("expected no live faces to remap after deleting the fan's only interior vertex, got %d", len(faceRemap))
	}
	for i := 0; i < m.NumVertices(); i++ {
		if !m.IsValidVertexID(types.VertexID(i)) {
			t.Fatalf("expected every post-GC vertex slot to be live, slot %d is dead", i)
		}
	}
}

func TestGarbageCollectionIsIdempotentWithNoTombstones(t *testing.T) {
	m, _, _ := buildHexFan(t)
	before := m.NumVertices()
	vertexRemap, _ := m.GarbageCollection()
	if m.NumVertices() != before {
		t.Fatalf("expected no-op GC to preserve vertex count %d, got %d", before, m.NumVertices())
	}
	for i := 0; i < before; i++ {
		if vertexRemap[types.VertexID(i)] != types.VertexID(i) {
			t.Fatalf("expected identity remap for vertex %d, got %d", i, vertexRemap[types.VertexID(i)])
		}
	}
}
