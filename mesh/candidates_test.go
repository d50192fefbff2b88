package mesh

import (
	"testing"

	"github.com/iceisfun/bathysimplify/types"
)

func TestVertexFindCandidatesExcludesSelfAndCrossingEdges(t *testing.T) {
	m := NewMesh()
	a, b, c, d := addSquare(t, m)
	if _, err := m.AddTriangle(a, b, c); err != nil {
		t.Fatalf("AddTriangle: %v", err)
	}
	if _, err := m.AddTriangle(a, c, d); err != nil {
		t.Fatalf("AddTriangle: %v", err)
	}

	candidates := m.VertexFindCandidates(b)
	seen := make(map[types.VertexID]bool)
	for _, cand := range candidates {
		if cand.VertexID == b {
			t.Fatalf("expected candidates to exclude the query vertex itself")
		}
		seen[cand.VertexID] = true
	}
	// b-d would cross the existing diagonal a-c, so d must not be offered.
	if seen[d] {
		t.Fatalf("expected b-d to be excluded since it crosses the existing diagonal a-c")
	}
}

func TestVertexFindCandidatesInvalidVertex(t *testing.T) {
	m := NewMesh()
	if got := m.VertexFindCandidates(types.VertexID(42)); got != nil {
		t.Fatalf("expected nil candidates for an invalid vertex, got %v", got)
	}
}

func TestVertexFindTriangleCandidatesIncludesValidTriangle(t *testing.T) {
	m := NewMesh()
	a, b, c, _ := addSquare(t, m)
	candidates := m.VertexFindTriangleCandidates(a)
	for _, cand := range candidates {
		if cand.V1 == a && cand.V2 == b && cand.V3 == c || cand.V1 == a && cand.V2 == c && cand.V3 == b {
			return
		}
	}
	t.Fatalf("expected a valid (a,b,c) triangle among candidates for vertex %d", a)
}
