// Package simplify implements the iterative bathymetric mesh simplification
// driver: repeatedly removing vertices whose removal and retriangulation
// keep the surrounding surface within tolerance, until a fixed point.
package simplify

import (
	"fmt"
	"sort"

	"github.com/iceisfun/bathysimplify/mesh"
	"github.com/iceisfun/bathysimplify/spatial"
	"github.com/iceisfun/bathysimplify/types"
)

// IterationStats reports the before/after counts of a single simplification
// pass, mirroring the banner a driver run logs per iteration.
type IterationStats struct {
	Iteration        int
	VerticesBefore   int
	TrianglesBefore  int
	VerticesAfter    int
	TrianglesAfter   int
	TrianglesAfterGC int
	Removed          int
	Ignored          int
}

// Report is the full record of a Run: one IterationStats per pass.
type Report struct {
	Iterations []IterationStats
}

// Run drives the mesh m to a fixed point by repeatedly attempting to remove
// every eligible vertex, in ascending-z order, validating each removal
// against the C5 acceptance tests before committing it.
//
// soundings is the fixed point set the interpolation test checks candidate
// retriangulations against; it is never mutated and a fresh STRTree is built
// from it at the start of every iteration (soundings themselves don't move,
// but rebuilding is cheap and keeps the driver stateless between passes).
func Run(m *mesh.Mesh, soundings []types.Sounding, opts Options) (Report, error) {
	var report Report

	for iteration := 1; ; iteration++ {
		var tree *spatial.STRTree
		if len(soundings) > 0 {
			tree = spatial.NewSTRTree(soundings)
		}

		before := m.LiveVertexCount()
		stats := IterationStats{
			Iteration:       iteration,
			VerticesBefore:  before,
			TrianglesBefore: m.LiveFaceCount(),
		}

		order := eligibleOrder(m)

		for _, v := range order {
			if !m.IsValidVertexID(v) {
				// Invalidated by an earlier removal this same iteration
				// (e.g. it was a ring neighbor of an already-removed
				// vertex and got folded into a retriangulated star).
				continue
			}

			removed, err := attemptRemoval(m, v, tree, opts)
			if err != nil {
				return report, fmt.Errorf("simplify: iteration %d vertex %d: %w", iteration, v, err)
			}
			if removed {
				stats.Removed++
			} else {
				stats.Ignored++
			}
		}

		m.GarbageCollection()

		stats.VerticesAfter = m.LiveVertexCount()
		stats.TrianglesAfter = m.LiveFaceCount()
		stats.TrianglesAfterGC = stats.TrianglesAfter
		report.Iterations = append(report.Iterations, stats)

		if stats.VerticesAfter == before {
			return report, nil
		}
	}
}

// eligibleOrder returns every currently-eligible vertex (omit == OmitNone and
// z_offset(v) <= v.z) in ascending-z order, ties broken by vertex ID. The
// order is computed once per iteration and fixed for its duration: a vertex
// that becomes ineligible mid-iteration (because it was consumed as someone
// else's ring neighbor) is skipped via the IsValidVertexID check in Run, not
// re-evaluated.
func eligibleOrder(m *mesh.Mesh) []types.VertexID {
	var order []types.VertexID
	for i := 0; i < m.NumVertices(); i++ {
		id := types.VertexID(i)
		if !m.IsValidVertexID(id) {
			continue
		}
		if m.Omit(id) != types.OmitNone {
			continue
		}
		if m.ZOffset(id) > m.GetVertex(id).Z {
			continue
		}
		order = append(order, id)
	}

	sort.Slice(order, func(i, j int) bool {
		zi, zj := m.GetVertex(order[i]).Z, m.GetVertex(order[j]).Z
		if zi != zj {
			return zi < zj
		}
		return order[i] < order[j]
	})
	return order
}

// attemptRemoval evaluates and, if accepted, commits the removal of v: the
// link polygon's retriangulation is added to the mesh first, then v and its
// old incident faces are tombstoned. If any replacement face fails to add,
// whatever was already added is rolled back and the candidate is rejected.
func attemptRemoval(m *mesh.Mesh, v types.VertexID, tree *spatial.STRTree, opts Options) (bool, error) {
	faces, err := evaluateCandidate(m, v, tree, opts)
	if err == errRejectTopology {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if faces == nil {
		return false, nil
	}

	added := make([]types.FaceHandle, 0, len(faces))
	for _, f := range faces {
		fh, err := m.AddTriangle(f[0], f[1], f[2])
		if err != nil {
			for _, prior := range added {
				m.DeleteFace(prior)
			}
			return false, nil
		}
		added = append(added, fh)
	}

	if err := m.DeleteVertex(v); err != nil {
		for _, fh := range added {
			m.DeleteFace(fh)
		}
		return false, err
	}

	return true, nil
}
