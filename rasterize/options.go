package rasterize

// Option configures rasterization.
type Option func(*Config)

// WithDimensions sets the output image dimensions.
func WithDimensions(width, height int) Option {
	return func(c *Config) {
		if width > 0 {
			c.Width = width
		}
		if height > 0 {
			c.Height = height
		}
	}
}

// WithVertexLabels enables or disables vertex ID labels.
func WithVertexLabels(enable bool) Option {
	return func(c *Config) {
		c.VertexLabels = enable
	}
}

// WithEdgeLabels enables or disables edge labels.
func WithEdgeLabels(enable bool) Option {
	return func(c *Config) {
		c.EdgeLabels = enable
	}
}

// WithTriangleLabels enables or disables triangle labels.
func WithTriangleLabels(enable bool) Option {
	return func(c *Config) {
		c.TriangleLabels = enable
	}
}

// WithFillTriangles enables or disables triangle fills.
func WithFillTriangles(enable bool) Option {
	return func(c *Config) {
		c.FillTriangles = enable
	}
}

// WithDepthShading enables or disables the per-triangle depth gradient fill.
func WithDepthShading(enable bool) Option {
	return func(c *Config) {
		c.DepthShading = enable
	}
}

// WithOmitMarkers enables or disables highlighting of non-removable
// (boundary/land) vertices.
func WithOmitMarkers(enable bool) Option {
	return func(c *Config) {
		c.DrawOmit = enable
	}
}

// WithDebugElement adds a named line segment, in mesh coordinates, to be
// drawn over the rendered image.
func WithDebugElement(name string, sourceX, sourceY, targetX, targetY float64) Option {
	return func(c *Config) {
		c.DebugElements = append(c.DebugElements, DebugElement{
			Name:    name,
			SourceX: sourceX,
			SourceY: sourceY,
			TargetX: targetX,
			TargetY: targetY,
		})
	}
}

// WithDebugLocation adds a named point, in mesh coordinates, to be drawn
// over the rendered image.
func WithDebugLocation(name string, x, y float64) Option {
	return func(c *Config) {
		c.DebugLocations = append(c.DebugLocations, DebugLocation{Name: name, X: x, Y: y})
	}
}
