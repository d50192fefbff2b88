package simplify

import (
	"github.com/iceisfun/bathysimplify/cdt"
	"github.com/iceisfun/bathysimplify/geometry"
	"github.com/iceisfun/bathysimplify/mesh"
	"github.com/iceisfun/bathysimplify/predicates"
	"github.com/iceisfun/bathysimplify/spatial"
	"github.com/iceisfun/bathysimplify/types"
)

// Options configures the C5 acceptance tests.
type Options struct {
	AspectEnabled bool
	MaxArea       float64 // 0 disables the max-area test
	Epsilon       types.Epsilon
}

// candidateFace is one triangle of the retriangulated link polygon, carrying
// both its ring-local indices (for interpolation) and resolved 3D corners.
type candidateFace struct {
	ring    [3]int
	a, b, c types.Point3
}

// evaluateCandidate runs the three C5 acceptance tests against vertex v and
// returns the accepted retriangulation (as mesh vertex-ID triples) or
// errRejectTopology / a failed-test rejection (nil, nil).
func evaluateCandidate(m *mesh.Mesh, v types.VertexID, tree *spatial.STRTree, opts Options) ([][3]types.VertexID, error) {
	ring := m.VV(v)
	if len(ring) < 3 {
		return nil, errRejectTopology
	}
	// A candidate vertex must be interior: its link is a closed fan, so the
	// ring has exactly one vertex per incident face (VV returns an open
	// chain for boundary vertices, which is one vertex longer than the
	// incident-face count).
	incident := m.VF(v)
	if len(incident) != len(ring) {
		return nil, errRejectTopology
	}

	ringXY := make([]types.Point, len(ring))
	ringPos := make([]types.Point3, len(ring))
	for i, id := range ring {
		ringPos[i] = m.GetVertex(id)
		ringXY[i] = ringPos[i].XY()
	}

	beforeAspects := make(map[string]bool, len(incident))
	for _, fh := range incident {
		a, b, c := m.GetTriangleCoords(fh)
		beforeAspects[geometry.Aspect(a, b, c)] = true
	}

	triIdx, err := cdt.TriangulateLinkPolygon(ringXY, opts.Epsilon)
	if err != nil {
		return nil, errRejectTopology
	}
	if len(triIdx) != len(ring)-2 {
		// A valid simple-polygon fan always has exactly k-2 triangles;
		// anything else means the triangulator pruned part of the ring
		// (e.g. a non-convex/self-touching link), which spec treats as
		// rejection.
		return nil, errRejectTopology
	}

	faces := make([]candidateFace, len(triIdx))
	for i, tri := range triIdx {
		faces[i] = candidateFace{
			ring: tri,
			a:    ringPos[tri[0]],
			b:    ringPos[tri[1]],
			c:    ringPos[tri[2]],
		}
	}

	if opts.AspectEnabled && !aspectTestPasses(beforeAspects, faces) {
		return nil, nil
	}

	if opts.MaxArea > 0 && !maxAreaTestPasses(faces, opts.MaxArea) {
		return nil, nil
	}

	if tree != nil {
		ok, err := interpolationTestPasses(tree, ringXY, faces, m.ZOffset(v), opts.Epsilon)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
	}

	out := make([][3]types.VertexID, len(faces))
	for i, f := range faces {
		out[i] = [3]types.VertexID{ring[f.ring[0]], ring[f.ring[1]], ring[f.ring[2]]}
	}
	return out, nil
}

// aspectTestPasses implements spec.md §4.5 test 1. If the incident faces
// being removed already span more than one aspect bucket, the test is
// declared non-applicable and passes unconditionally.
func aspectTestPasses(before map[string]bool, after []candidateFace) bool {
	if len(before) > 1 {
		return true
	}

	afterSet := make(map[string]bool, len(after))
	for _, f := range after {
		afterSet[geometry.Aspect(f.a, f.b, f.c)] = true
	}

	if len(before) != len(afterSet) {
		return false
	}
	for k := range before {
		if !afterSet[k] {
			return false
		}
	}
	return true
}

// maxAreaTestPasses implements spec.md §4.5 test 2.
func maxAreaTestPasses(faces []candidateFace, maxArea float64) bool {
	for _, f := range faces {
		if geometry.Area(f.a, f.b, f.c) > maxArea {
			return false
		}
	}
	return true
}

// interpolationTestPasses implements spec.md §4.5 test 3: every sounding
// falling inside the link polygon must interpolate, in the retriangulation,
// to within the candidate vertex's own z_offset tolerance.
func interpolationTestPasses(tree *spatial.STRTree, ringXY []types.Point, faces []candidateFace, tolerance float64, eps types.Epsilon) (bool, error) {
	tol := eps.TolForPoints(ringXY...)
	soundings := tree.Query(ringXY, tol)

	for _, s := range soundings {
		q := s.Pos.XY()
		found := false
		for _, f := range faces {
			if !predicates.PointInTriangle(q, f.a.XY(), f.b.XY(), f.c.XY(), tol) {
				continue
			}
			found = true
			z, err := geometry.Interpolate(f.a, f.b, f.c, s.Pos)
			if err != nil {
				return false, nil
			}
			if absFloat(z-s.Pos.Z) > tolerance {
				return false, nil
			}
			break
		}
		if !found {
			return false, nil
		}
	}
	return true, nil
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
