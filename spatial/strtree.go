package spatial

import (
	"math"

	"github.com/dhconnelly/rtreego"

	"github.com/iceisfun/bathysimplify/predicates"
	"github.com/iceisfun/bathysimplify/types"
)

// soundingLeaf adapts a types.Sounding to rtreego.Spatial: a tiny
// (tinySpan-sided) bounding box at the sounding's xy position.
type soundingLeaf struct {
	idx int
	pos types.Point
}

func (s *soundingLeaf) Bounds() rtreego.Rect {
	rect, err := rtreego.NewRect(rtreego.Point{s.pos.X, s.pos.Y}, []float64{tinySpan, tinySpan})
	if err != nil {
		// Only NewRect's length-must-be-positive check can fail here, and
		// tinySpan is a positive constant, so this is unreachable.
		panic(err)
	}
	return rect
}

// tinySpan is the side length of each leaf's degenerate bounding box. It
// must be strictly positive (rtreego.NewRect rejects zero-length sides) but
// is small enough to leave point-in-polygon queries unaffected.
const tinySpan = 1e-9

// STRTree is a bulk-loaded R-tree over the original sounding points, used by
// the acceptance tests (C5) to find soundings falling within a candidate
// vertex's link polygon. Unlike HashGrid (built incrementally as mesh
// vertices are added), an STRTree is built once from the complete, fixed set
// of soundings and never mutated afterward.
type STRTree struct {
	tree      *rtreego.Rtree
	leaves    []*soundingLeaf
	soundings []types.Sounding
}

// NewSTRTree bulk-loads an R-tree over soundings. maxChildren follows the
// source heuristic of ceil(|soundings| * 0.004), clamped to a minimum of 4;
// minChildren is half of maxChildren.
func NewSTRTree(soundings []types.Sounding) *STRTree {
	maxChildren := int(math.Ceil(float64(len(soundings)) * 0.004))
	if maxChildren < 4 {
		maxChildren = 4
	}
	minChildren := maxChildren / 2
	if minChildren < 1 {
		minChildren = 1
	}

	leaves := make([]*soundingLeaf, len(soundings))
	objs := make([]rtreego.Spatial, len(soundings))
	for i, s := range soundings {
		leaf := &soundingLeaf{idx: i, pos: s.Pos.XY()}
		leaves[i] = leaf
		objs[i] = leaf
	}

	return &STRTree{
		tree:      rtreego.NewTree(2, minChildren, maxChildren, objs...),
		leaves:    leaves,
		soundings: soundings,
	}
}

// Query returns the soundings whose position lies within the closed polygon
// poly, to within eps. It first narrows the search to the polygon's
// bounding box via the R-tree, then filters with an exact point-in-polygon
// test.
func (t *STRTree) Query(poly []types.Point, eps float64) []types.Sounding {
	if len(poly) == 0 {
		return nil
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range poly {
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	width := maxX - minX
	height := maxY - minY
	if width <= 0 {
		width = tinySpan
	}
	if height <= 0 {
		height = tinySpan
	}

	bb, err := rtreego.NewRect(rtreego.Point{minX, minY}, []float64{width, height})
	if err != nil {
		return nil
	}

	var out []types.Sounding
	for _, obj := range t.tree.SearchIntersect(bb) {
		leaf := obj.(*soundingLeaf)
		if predicates.PointInPolygonRayCast(leaf.pos, poly, eps) {
			out = append(out, t.soundings[leaf.idx])
		}
	}
	return out
}

// Len returns the number of soundings indexed.
func (t *STRTree) Len() int {
	return len(t.soundings)
}
