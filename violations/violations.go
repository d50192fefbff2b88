// Package violations re-validates a simplified mesh against the original
// sounding set: for every sounding, locates the triangle that contains it
// in the final mesh and checks that the surface still interpolates to
// within that sounding's own vertical uncertainty. Unlike the simplify
// package's per-candidate acceptance tests (which gate on the *removed*
// vertex's z_offset), this is a whole-mesh audit gated on each sounding's
// own uncertainty — the same check the original tool runs once at the end
// of a simplification pass, when -v/--validate is set.
package violations

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/dhconnelly/rtreego"

	"github.com/iceisfun/bathysimplify/geometry"
	"github.com/iceisfun/bathysimplify/mesh"
	"github.com/iceisfun/bathysimplify/predicates"
	"github.com/iceisfun/bathysimplify/types"
)

// Violation is a sounding whose depth could not be reproduced within
// tolerance by the simplified surface.
type Violation struct {
	Pos types.Point3
}

type triangleLeaf struct {
	a, b, c types.Point3
	bbox    rtreego.Rect
}

func (t *triangleLeaf) Bounds() rtreego.Rect {
	return t.bbox
}

func triangleRect(a, b, c types.Point3) (rtreego.Rect, error) {
	minX := math.Min(a.X, math.Min(b.X, c.X))
	minY := math.Min(a.Y, math.Min(b.Y, c.Y))
	maxX := math.Max(a.X, math.Max(b.X, c.X))
	maxY := math.Max(a.Y, math.Max(b.Y, c.Y))

	width := maxX - minX
	height := maxY - minY
	if width <= 0 {
		width = 1e-9
	}
	if height <= 0 {
		height = 1e-9
	}
	return rtreego.NewRect(rtreego.Point{minX, minY}, []float64{width, height})
}

// Check re-validates m against soundings, building a fresh R-tree over the
// mesh's live triangles and testing each sounding for containment and
// tolerance. The fanout heuristic matches spatial.STRTree's: ceil(n*0.004)
// clamped to a minimum of 4, mirroring the source's
// STRtree(generalized_triangles, int(ceil(len(generalized_triangles) * 0.004))).
func Check(m *mesh.Mesh, soundings []types.Sounding, eps types.Epsilon) ([]Violation, error) {
	var leaves []rtreego.Spatial
	for i := 0; i < m.NumTriangles(); i++ {
		fh := types.FaceHandle(i)
		if !m.IsValidFaceHandle(fh) {
			continue
		}
		a, b, c := m.GetTriangleCoords(fh)
		rect, err := triangleRect(a, b, c)
		if err != nil {
			return nil, fmt.Errorf("violations: triangle %d: %w", i, err)
		}
		leaves = append(leaves, &triangleLeaf{a: a, b: b, c: c, bbox: rect})
	}

	if len(leaves) == 0 {
		return nil, nil
	}

	maxChildren := int(math.Ceil(float64(len(leaves)) * 0.004))
	if maxChildren < 4 {
		maxChildren = 4
	}
	minChildren := maxChildren / 2
	if minChildren < 1 {
		minChildren = 1
	}
	tree := rtreego.NewTree(2, minChildren, maxChildren, leaves...)

	var out []Violation
	for _, s := range soundings {
		q := s.Pos.XY()
		rect, err := rtreego.NewRect(rtreego.Point{q.X, q.Y}, []float64{1e-9, 1e-9})
		if err != nil {
			return nil, fmt.Errorf("violations: query rect: %w", err)
		}

		found := false
		tol := eps.TolForPoints(q)
		for _, obj := range tree.SearchIntersect(rect) {
			leaf := obj.(*triangleLeaf)
			if !predicates.PointInTriangle(q, leaf.a.XY(), leaf.b.XY(), leaf.c.XY(), tol) {
				continue
			}
			found = true
			z, err := geometry.Interpolate(leaf.a, leaf.b, leaf.c, s.Pos)
			if err != nil {
				out = append(out, Violation{Pos: s.Pos})
				break
			}
			if math.Abs(z-s.Pos.Z) > s.Uncertainty {
				out = append(out, Violation{Pos: s.Pos})
			}
			break
		}
		if !found {
			out = append(out, Violation{Pos: s.Pos})
		}
	}

	return out, nil
}

// WriteXYZ writes violations as a "x,y,z" CSV file, matching the source
// tool's Writer.write_violations_xyz output shape.
func WriteXYZ(path string, violations []Violation) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"x", "y", "z"}); err != nil {
		return err
	}
	for _, v := range violations {
		record := []string{
			strconv.FormatFloat(v.Pos.X, 'g', -1, 64),
			strconv.FormatFloat(v.Pos.Y, 'g', -1, 64),
			strconv.FormatFloat(v.Pos.Z, 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Error()
}
