package mesh

import (
	"testing"

	"github.com/iceisfun/bathysimplify/types"
)

func TestNewMeshIsEmpty(t *testing.T) {
	m := NewMesh()
	if m.NumVertices() != 0 || m.NumTriangles() != 0 {
		t.Fatalf("expected empty mesh, got %d vertices, %d triangles", m.NumVertices(), m.NumTriangles())
	}
}

func TestGetVertexAndZOffsetOmitDefaults(t *testing.T) {
	m := NewMesh()
	id, err := m.AddVertex(types.Point3{X: 1, Y: 2, Z: 3})
	if err != nil {
		t.Fatalf("AddVertex: %v", err)
	}
	if got := m.GetVertex(id); got != (types.Point3{X: 1, Y: 2, Z: 3}) {
		t.Fatalf("GetVertex mismatch: %+v", got)
	}
	if got := m.ZOffset(id); got != 0 {
		t.Fatalf("expected default ZOffset 0, got %v", got)
	}
	if got := m.Omit(id); got != types.OmitNone {
		t.Fatalf("expected default OmitNone, got %v", got)
	}

	m.SetZOffset(id, 0.5)
	m.SetOmit(id, types.OmitBoundary)
	if got := m.ZOffset(id); got != 0.5 {
		t.Fatalf("expected ZOffset 0.5, got %v", got)
	}
	if got := m.Omit(id); got != types.OmitBoundary {
		t.Fatalf("expected OmitBoundary, got %v", got)
	}
}

func TestIsValidVertexIDBounds(t *testing.T) {
	m := NewMesh()
	id, _ := m.AddVertex(types.Point3{})
	if !m.IsValidVertexID(id) {
		t.Fatalf("expected newly added vertex to be valid")
	}
	if m.IsValidVertexID(types.VertexID(-1)) {
		t.Fatalf("expected negative id to be invalid")
	}
	if m.IsValidVertexID(types.VertexID(99)) {
		t.Fatalf("expected out-of-range id to be invalid")
	}
}

func TestHasTriangleWithKeyIgnoresWinding(t *testing.T) {
	m := NewMesh()
	a, b, c, _ := addSquare(t, m)
	if _, err := m.AddTriangle(a, b, c); err != nil {
		t.Fatalf("AddTriangle: %v", err)
	}
	if _, ok := m.HasTriangleWithKey([3]types.VertexID{c, a, b}); !ok {
		t.Fatalf("expected HasTriangleWithKey to find a rotated key")
	}
	if _, ok := m.HasTriangleWithKey([3]types.VertexID{a, b, types.VertexID(999)}); ok {
		t.Fatalf("expected HasTriangleWithKey to report false for an unrelated key")
	}
}
