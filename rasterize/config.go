package rasterize

import "image/color"

// Config holds options for rasterizing a mesh to an image.
type Config struct {
	Width  int
	Height int

	Background  color.Color
	VertexColor color.Color
	EdgeColor   color.Color

	// ShallowColor and DeepColor are the endpoints of the depth gradient used
	// to fill triangles when DepthShading is enabled. Depth is interpolated
	// per-triangle from the mean Z of its three vertices.
	ShallowColor color.Color
	DeepColor    color.Color

	// OmitColor marks vertices whose OmitClass is not OmitNone (boundary
	// and/or land nodes that simplification can never remove).
	OmitColor color.Color

	FillTriangles bool
	DepthShading  bool
	DrawVertices  bool
	DrawEdges     bool
	DrawOmit      bool

	VertexLabels   bool
	EdgeLabels     bool
	TriangleLabels bool

	DebugElements  []DebugElement
	DebugLocations []DebugLocation
}

// DebugElement is a labeled line segment overlaid on the rendered image, in
// mesh coordinates.
type DebugElement struct {
	Name             string
	SourceX, SourceY float64
	TargetX, TargetY float64
}

// DebugLocation is a labeled point overlaid on the rendered image, in mesh
// coordinates.
type DebugLocation struct {
	Name string
	X, Y float64
}

// DefaultConfig returns sensible default rasterization settings.
func DefaultConfig() Config {
	return Config{
		Width:  800,
		Height: 600,

		Background:  color.RGBA{R: 255, G: 255, B: 255, A: 255}, // White
		VertexColor: color.RGBA{R: 0, G: 0, B: 0, A: 255},       // Black
		EdgeColor:   color.RGBA{R: 64, G: 64, B: 64, A: 255},    // Dark gray

		ShallowColor: color.RGBA{R: 173, G: 216, B: 230, A: 255}, // Light blue
		DeepColor:    color.RGBA{R: 0, G: 0, B: 128, A: 255},     // Navy

		OmitColor: color.RGBA{R: 255, G: 140, B: 0, A: 255}, // Dark orange

		FillTriangles: true,
		DepthShading:  true,
		DrawVertices:  true,
		DrawEdges:     true,
		DrawOmit:      true,

		VertexLabels:   false,
		EdgeLabels:     false,
		TriangleLabels: false,
	}
}
