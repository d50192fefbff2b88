package mesh

import (
	"sync"

	"github.com/iceisfun/bathysimplify/predicates"
	"github.com/iceisfun/bathysimplify/types"
	"github.com/iceisfun/bathysimplify/validation"
)

// CandidateVertex represents a vertex that can be connected to another vertex.
type CandidateVertex struct {
	VertexID types.VertexID
	Point    types.Point3
}

// CandidateTriangle represents a valid triangle that can be formed.
type CandidateTriangle struct {
	V1, V2, V3 types.VertexID
	P1, P2, P3 types.Point3
}

// VertexFindCandidates finds all valid (live) vertices that the given vertex
// can connect to without crossing an existing triangle edge.
//
// This is a computationally expensive exhaustive search intended for
// debugging triangulation algorithms that get stuck; it is wired into the
// CLI's diagnose mode. Uses goroutines for parallel search.
func (m *Mesh) VertexFindCandidates(v types.VertexID) []CandidateVertex {
	if !m.IsValidVertexID(v) {
		return nil
	}

	numVertices := m.NumVertices()

	resultsChan := make(chan CandidateVertex, numVertices)
	var wg sync.WaitGroup

	checkVertex := func(targetID types.VertexID) {
		defer wg.Done()

		if targetID == v || m.vertexDead[targetID] {
			return
		}

		targetPoint := m.vertices[targetID]

		if m.edgeCrossesAnyTriangleEdge(v, targetID) {
			return
		}

		resultsChan <- CandidateVertex{
			VertexID: targetID,
			Point:    targetPoint,
		}
	}

	for i := types.VertexID(0); i < types.VertexID(numVertices); i++ {
		wg.Add(1)
		go checkVertex(i)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	var candidates []CandidateVertex
	for candidate := range resultsChan {
		candidates = append(candidates, candidate)
	}

	return candidates
}

// VertexFindTriangleCandidates finds all valid triangles that can be formed
// with the given vertex without violating mesh rules. Uses goroutines for
// parallel search.
func (m *Mesh) VertexFindTriangleCandidates(v types.VertexID) []CandidateTriangle {
	if !m.IsValidVertexID(v) {
		return nil
	}

	numVertices := m.NumVertices()

	resultsChan := make(chan CandidateTriangle, numVertices*numVertices)
	var wg sync.WaitGroup

	checkTriangle := func(v1, v2 types.VertexID) {
		defer wg.Done()

		if v == v1 || v == v2 || v1 == v2 {
			return
		}
		if m.vertexDead[v1] || m.vertexDead[v2] {
			return
		}

		p := m.vertices[v]
		p1 := m.vertices[v1]
		p2 := m.vertices[v2]

		tri := types.NewTriangle(v, v1, v2)

		if err := m.validateTriangleCandidate(tri, p.XY(), p1.XY(), p2.XY()); err != nil {
			return
		}

		resultsChan <- CandidateTriangle{
			V1: v,
			V2: v1,
			V3: v2,
			P1: p,
			P2: p1,
			P3: p2,
		}
	}

	for i := types.VertexID(0); i < types.VertexID(numVertices); i++ {
		for j := i + 1; j < types.VertexID(numVertices); j++ {
			wg.Add(1)
			go checkTriangle(i, j)
		}
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	var candidates []CandidateTriangle
	for candidate := range resultsChan {
		candidates = append(candidates, candidate)
	}

	return candidates
}

// edgeCrossesAnyTriangleEdge checks if an edge crosses any existing (live) triangle edge.
func (m *Mesh) edgeCrossesAnyTriangleEdge(v1, v2 types.VertexID) bool {
	a := m.vertices[v1].XY()
	b := m.vertices[v2].XY()
	edge := types.NewEdge(v1, v2)

	if _, exists := m.edgeSet[edge]; exists {
		return false
	}

	for fh, tri := range m.triangles {
		if m.faceDead[fh] {
			continue
		}
		edges := tri.Edges()
		for _, triEdge := range edges {
			if edge == triEdge {
				continue
			}

			p1 := m.vertices[triEdge.V1()].XY()
			p2 := m.vertices[triEdge.V2()].XY()
			intersects, proper := predicates.SegmentsIntersect(a, b, p1, p2, m.cfg.epsilon)
			if intersects && proper {
				return true
			}
		}
	}

	return false
}

// validateTriangleCandidate checks if a triangle would be valid without adding it.
func (m *Mesh) validateTriangleCandidate(tri types.Triangle, a, b, c types.Point) error {
	return validation.ValidateTriangle(tri, a, b, c, m.validationConfig(), meshValidationView{m})
}
