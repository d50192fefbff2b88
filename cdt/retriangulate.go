package cdt

import (
	"fmt"

	"github.com/iceisfun/bathysimplify/types"
)

// TriangulateLinkPolygon triangulates the simple, CCW-wound ring of a
// candidate vertex's one-ring neighborhood (its link polygon) and returns
// the resulting faces as index triples into ring itself.
//
// This drives the same triangulatePSLG core as Build (seed, insert,
// constrain, legalize, classify) with no holes and no extra segments, but
// stops short of ExportToMesh: instead of building a new mesh.Mesh with
// renumbered vertices, it reads each face's vertex indices straight off the
// TriSoup, so the caller can map them back onto its own ring.
//
// ring must be CCW and have no duplicate/near-duplicate vertices (true for
// any ring returned by mesh.Mesh.VV, since mesh vertices are never merged
// after load): NormalizePSLG's epsilon-merge is then a no-op identity remap,
// so ring index i maps 1:1 to PSLG vertex i and the returned triangle
// indices can be used directly against ring.
func TriangulateLinkPolygon(ring []types.Point, eps types.Epsilon) ([][3]int, error) {
	if len(ring) < 3 {
		return nil, fmt.Errorf("link polygon must have at least 3 vertices, got %d", len(ring))
	}

	pslg, err := NormalizePSLG(ring, nil, nil, eps)
	if err != nil {
		return nil, fmt.Errorf("PSLG normalization failed: %w", err)
	}
	if len(pslg.Vertices) != len(ring) {
		return nil, fmt.Errorf("link polygon has coincident vertices under epsilon %v", eps)
	}
	if err := ValidatePSLG(pslg); err != nil {
		return nil, fmt.Errorf("PSLG validation failed: %w", err)
	}

	ts, coverVerts, _, err := triangulatePSLG(pslg, 0.5, true)
	if err != nil {
		return nil, err
	}

	RemoveCover(ts, coverVerts)

	if err := ValidateTopology(ts); err != nil {
		return nil, fmt.Errorf("topology validation failed: %w", err)
	}

	faces := make([][3]int, 0, len(ts.Tri))
	for i := range ts.Tri {
		if ts.IsDeleted(TriID(i)) {
			continue
		}
		tri := &ts.Tri[i]
		faces = append(faces, [3]int{tri.V[0], tri.V[1], tri.V[2]})
	}
	return faces, nil
}
