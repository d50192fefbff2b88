package cdt

import (
	"fmt"

	"github.com/iceisfun/bathysimplify/mesh"
	"github.com/iceisfun/bathysimplify/types"
)

// BuildOptions configures the CDT construction process.
type BuildOptions struct {
	// Epsilon tolerance for geometric operations
	Epsilon types.Epsilon

	// CoverMargin controls how much larger the initial bounding cover is
	// relative to the input points (e.g., 0.1 = 10% margin)
	CoverMargin float64

	// UseFloodFill enables flood-fill based classification instead of centroid-based
	UseFloodFill bool

	// MeshOptions are passed to the final mesh constructor
	MeshOptions []mesh.Option
}

// DefaultBuildOptions returns sensible defaults for CDT construction.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		Epsilon:      types.DefaultEpsilon(),
		CoverMargin:  0.5,  // 50% margin around bounding box
		UseFloodFill: true, // More robust classification
		MeshOptions:  nil,
	}
}

// insertionOrder returns PSLG vertex indices in outer-then-holes-then-rest
// order: the perimeter and hole loop vertices are inserted first, then the
// remaining interior points. Constraint edges are inserted only after every
// vertex is in place. TriangulateLinkPolygon reuses this for its single
// (holeless) loop.
func insertionOrder(numVerts int, loops ...[]int) []int {
	order := make([]int, 0, numVerts)
	seen := make([]bool, numVerts)
	for _, loop := range loops {
		for _, idx := range loop {
			if idx >= numVerts || seen[idx] {
				continue
			}
			order = append(order, idx)
			seen[idx] = true
		}
	}
	for i := 0; i < numVerts; i++ {
		if !seen[i] {
			order = append(order, i)
		}
	}
	return order
}

// triangulatePSLG runs the shared incremental-insertion core: seed a
// bounding cover, insert every PSLG vertex in insertionOrder, constrain the
// outer perimeter and every hole loop, then legalize and classify the
// result. Both Build (general PSLG with holes/extra constraints) and
// TriangulateLinkPolygon (a single holeless loop) drive this same pipeline
// so the two entry points can't silently drift apart.
func triangulatePSLG(pslg *PSLG, coverMargin float64, useFloodFill bool) (*TriSoup, []int, map[EdgeKey]bool, error) {
	ts, coverVerts, err := SeedTriangulation(pslg.Vertices, coverMargin)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("seed triangulation failed: %w", err)
	}

	locator := NewLocator(ts)
	order := insertionOrder(len(pslg.Vertices), append([][]int{pslg.Outer}, pslg.Holes...)...)
	constrained := make(map[EdgeKey]bool)

	for _, vidx := range order {
		p := ts.V[vidx]
		loc, err := locator.LocatePoint(p)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to locate vertex %d: %w", vidx, err)
		}
		_, edgesToLegalize, err := InsertPoint(ts, loc, vidx)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to insert vertex %d: %w", vidx, err)
		}
		LegalizeAround(ts, edgesToLegalize, constrained)
	}

	if err := InsertConstraintLoop(ts, pslg.Outer, constrained); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to insert outer perimeter: %w", err)
	}
	for i, hole := range pslg.Holes {
		if err := InsertConstraintLoop(ts, hole, constrained); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to insert hole %d: %w", i, err)
		}
	}
	for i, seg := range pslg.Segments {
		key := NewEdgeKey(seg[0], seg[1])
		if constrained[key] {
			continue
		}
		if err := InsertConstraintEdge(ts, seg[0], seg[1], constrained); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to insert constraint segment %d: %w", i, err)
		}
	}

	var allEdges []EdgeToLegalize
	for i := range ts.Tri {
		if ts.IsDeleted(TriID(i)) {
			continue
		}
		for e := 0; e < 3; e++ {
			allEdges = append(allEdges, EdgeToLegalize{T: TriID(i), E: e})
		}
	}
	LegalizeAround(ts, allEdges, constrained)

	if useFloodFill {
		PruneByFloodFill(ts, pslg, constrained)
	} else {
		PruneOutside(ts, pslg)
	}

	return ts, coverVerts, constrained, nil
}

// Build constructs a Constrained Delaunay Triangulation from a PSLG.
//
// The algorithm proceeds as follows:
//  1. Normalize and validate the PSLG (merge vertices, ensure winding)
//  2. Create a bounding cover (super-triangle or bounding box)
//  3. Insert all vertices using incremental Delaunay insertion
//  4. Insert all constrained edges (perimeter, holes, extra constraints)
//  5. Legalize non-constrained edges to conform to Delaunay property
//  6. Classify and remove triangles outside the valid region
//  7. Remove cover vertices and export to mesh.Mesh
func Build(outer []types.Point, holes [][]types.Point, extras [][2]types.Point, opts BuildOptions) (*mesh.Mesh, error) {
	pslg, err := NormalizePSLG(outer, holes, extras, opts.Epsilon)
	if err != nil {
		return nil, fmt.Errorf("PSLG normalization failed: %w", err)
	}
	if err := ValidatePSLG(pslg); err != nil {
		return nil, fmt.Errorf("PSLG validation failed: %w", err)
	}

	ts, coverVerts, _, err := triangulatePSLG(pslg, opts.CoverMargin, opts.UseFloodFill)
	if err != nil {
		return nil, err
	}

	RemoveCover(ts, coverVerts)

	if err := ValidateTopology(ts); err != nil {
		return nil, fmt.Errorf("topology validation failed: %w", err)
	}

	m, err := ExportToMesh(ts, opts.MeshOptions...)
	if err != nil {
		return nil, fmt.Errorf("mesh export failed: %w", err)
	}

	return m, nil
}

// BuildSimple is a convenience wrapper that uses default options.
func BuildSimple(outer []types.Point, holes [][]types.Point) (*mesh.Mesh, error) {
	return Build(outer, holes, nil, DefaultBuildOptions())
}

// BuildWithConstraints includes extra constraint edges beyond the perimeter and holes.
func BuildWithConstraints(outer []types.Point, holes [][]types.Point, constraints [][2]types.Point) (*mesh.Mesh, error) {
	return Build(outer, holes, constraints, DefaultBuildOptions())
}
