package rasterize

import (
	"image"
	"image/color"
	"math"

	"github.com/iceisfun/bathysimplify/mesh"
	"github.com/iceisfun/bathysimplify/types"
)

// Rasterize renders a mesh to an RGBA image.
func Rasterize(m *mesh.Mesh, opts ...Option) (*image.RGBA, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.Width <= 0 {
		cfg.Width = 1
	}
	if cfg.Height <= 0 {
		cfg.Height = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	fillBackground(img, cfg.Background)

	transform := computeTransform(m, cfg.Width, cfg.Height)

	// Render in layers from back to front with alpha blending

	// Layer 1: Fill triangles, shaded by mean depth (background layer)
	if cfg.FillTriangles {
		renderTriangleFills(img, m, transform, cfg)
	}

	// Layer 2: Triangle edges
	if cfg.DrawEdges {
		renderEdges(img, m, transform, cfg.EdgeColor)
	}

	// Layer 3: Non-removable (boundary/land) vertices, over the fill
	if cfg.DrawOmit {
		renderOmitMarkers(img, m, transform, cfg.OmitColor)
	}

	// Layer 4: Vertices (top layer for visibility)
	if cfg.DrawVertices {
		renderVertices(img, m, transform, cfg.VertexColor)
	}

	// Label rendering is currently a no-op placeholder.
	if cfg.VertexLabels {
		renderVertexLabels(img, m, transform)
	}
	if cfg.EdgeLabels {
		renderEdgeLabels(img, m, transform)
	}
	if cfg.TriangleLabels {
		renderTriangleLabels(img, m, transform)
	}

	// Layer 5: Debug elements (lines and locations on top)
	renderDebugElements(img, cfg, transform)
	renderDebugLocations(img, cfg, transform)

	return img, nil
}

// Transform converts mesh coordinates to image coordinates.
type Transform struct {
	scale   float64
	offsetX float64
	offsetY float64
}

// Apply converts a mesh point (xy projection) to image pixel coordinates.
func (t Transform) Apply(p types.Point) (int, int) {
	x := int(math.Round((p.X + t.offsetX) * t.scale))
	y := int(math.Round((p.Y + t.offsetY) * t.scale))
	return x, y
}

func computeTransform(m *mesh.Mesh, width, height int) Transform {
	if m.NumVertices() == 0 {
		return Transform{scale: 1}
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := 0; i < m.NumVertices(); i++ {
		id := types.VertexID(i)
		if !m.IsValidVertexID(id) {
			continue
		}
		p := m.GetVertexXY(id)
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
	if math.IsInf(minX, 1) {
		return Transform{scale: 1}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	paddingX := rangeX * 0.1
	paddingY := rangeY * 0.1

	minX -= paddingX
	minY -= paddingY
	maxX += paddingX
	maxY += paddingY

	spanX := maxX - minX
	spanY := maxY - minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}

	scaleX := float64(width-1) / spanX
	scaleY := float64(height-1) / spanY
	scale := math.Min(scaleX, scaleY)
	if scale <= 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		scale = 1
	}

	return Transform{
		scale:   scale,
		offsetX: -minX,
		offsetY: -minY,
	}
}

func fillBackground(img *image.RGBA, col color.Color) {
	if col == nil {
		col = color.RGBA{0, 0, 0, 0}
	}
	for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
		for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
			img.Set(x, y, col)
		}
	}
}

// depthRange returns the min/max Z across live vertices, for normalizing the
// depth gradient. Returns (0, 0) if the mesh has no live vertices.
func depthRange(m *mesh.Mesh) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for i := 0; i < m.NumVertices(); i++ {
		id := types.VertexID(i)
		if !m.IsValidVertexID(id) {
			continue
		}
		z := m.GetVertex(id).Z
		if z < lo {
			lo = z
		}
		if z > hi {
			hi = z
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 0
	}
	return lo, hi
}

func renderTriangleFills(img *image.RGBA, m *mesh.Mesh, transform Transform, cfg Config) {
	shallow := toRGBA(cfg.ShallowColor)
	deep := toRGBA(cfg.DeepColor)
	depthMin, depthMax := depthRange(m)
	span := depthMax - depthMin
	if span == 0 {
		span = 1
	}

	for i := 0; i < m.NumTriangles(); i++ {
		fh := types.FaceHandle(i)
		if !m.IsValidFaceHandle(fh) {
			continue
		}
		a, b, c := m.GetTriangleCoords(fh)
		ax, ay := transform.Apply(a.XY())
		bx, by := transform.Apply(b.XY())
		cx, cy := transform.Apply(c.XY())

		var fill color.Color = shallow
		if cfg.DepthShading {
			meanZ := (a.Z + b.Z + c.Z) / 3
			t := (meanZ - depthMin) / span
			fill = DepthColor(shallow, deep, t)
		}
		FillTriangleAlpha(img, ax, ay, bx, by, cx, cy, fill)
	}
}

func renderOmitMarkers(img *image.RGBA, m *mesh.Mesh, transform Transform, col color.Color) {
	if col == nil {
		return
	}
	for i := 0; i < m.NumVertices(); i++ {
		id := types.VertexID(i)
		if !m.IsValidVertexID(id) {
			continue
		}
		if m.Omit(id) == types.OmitNone {
			continue
		}
		x, y := transform.Apply(m.GetVertexXY(id))
		DrawCircleAlpha(img, x, y, 3, col)
	}
}

func renderEdges(img *image.RGBA, m *mesh.Mesh, transform Transform, col color.Color) {
	if col == nil {
		return
	}
	for i := 0; i < m.NumTriangles(); i++ {
		fh := types.FaceHandle(i)
		if !m.IsValidFaceHandle(fh) {
			continue
		}
		a, b, c := m.GetTriangleCoords(fh)
		x1, y1 := transform.Apply(a.XY())
		x2, y2 := transform.Apply(b.XY())
		x3, y3 := transform.Apply(c.XY())
		DrawLineAlpha(img, x1, y1, x2, y2, col)
		DrawLineAlpha(img, x2, y2, x3, y3, col)
		DrawLineAlpha(img, x3, y3, x1, y1, col)
	}
}

func renderVertices(img *image.RGBA, m *mesh.Mesh, transform Transform, col color.Color) {
	if col == nil {
		return
	}
	for i := 0; i < m.NumVertices(); i++ {
		id := types.VertexID(i)
		if !m.IsValidVertexID(id) {
			continue
		}
		x, y := transform.Apply(m.GetVertexXY(id))
		DrawPointAlpha(img, x, y, col)
	}
}

func renderVertexLabels(_ *image.RGBA, _ *mesh.Mesh, _ Transform)   {}
func renderEdgeLabels(_ *image.RGBA, _ *mesh.Mesh, _ Transform)     {}
func renderTriangleLabels(_ *image.RGBA, _ *mesh.Mesh, _ Transform) {}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// renderDebugElements draws debug lines with labels.
func renderDebugElements(img *image.RGBA, cfg Config, transform Transform) {
	if len(cfg.DebugElements) == 0 {
		return
	}

	// Use a bright magenta color for debug elements
	debugColor := color.RGBA{R: 255, G: 0, B: 255, A: 255}

	for _, elem := range cfg.DebugElements {
		// Transform mesh coordinates to image coordinates
		sx, sy := transform.Apply(types.Point{X: elem.SourceX, Y: elem.SourceY})
		tx, ty := transform.Apply(types.Point{X: elem.TargetX, Y: elem.TargetY})

		// Draw the line
		DrawLineThickAlpha(img, sx, sy, tx, ty, debugColor, 2)

		// Draw circles at endpoints
		DrawCircleAlpha(img, sx, sy, 3, debugColor)
		DrawCircleAlpha(img, tx, ty, 3, debugColor)

		// Note: Label rendering would go here when text rendering is implemented
		// For now, the distinctive magenta color and circles serve as visual markers
		_ = elem.Name // Label will be used when text rendering is available
	}
}

// renderDebugLocations draws debug location markers with labels.
func renderDebugLocations(img *image.RGBA, cfg Config, transform Transform) {
	if len(cfg.DebugLocations) == 0 {
		return
	}

	// Use a bright cyan color for debug locations
	debugColor := color.RGBA{R: 0, G: 255, B: 255, A: 255}

	for _, loc := range cfg.DebugLocations {
		// Transform mesh coordinates to image coordinates
		x, y := transform.Apply(types.Point{X: loc.X, Y: loc.Y})

		// Draw concentric circles to make the location stand out
		DrawCircleAlpha(img, x, y, 5, debugColor)
		DrawCircleAlpha(img, x, y, 7, debugColor)
		DrawCircleAlpha(img, x, y, 9, debugColor)

		// Draw a center point
		DrawPointAlpha(img, x, y, debugColor)

		// Note: Label rendering would go here when text rendering is implemented
		_ = loc.Name // Label will be used when text rendering is available
	}
}
