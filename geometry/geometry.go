// Package geometry implements the barycentric interpolation, signed-area and
// terrain-aspect primitives the simplification core gates vertex removal on.
// It builds directly on the teacher's predicates package rather than
// reimplementing triangle/orientation math.
package geometry

import (
	"errors"
	"math"

	"github.com/iceisfun/bathysimplify/predicates"
	"github.com/iceisfun/bathysimplify/types"
)

// ErrDegenerate indicates the triangle supplied to Interpolate is collinear
// in xy, so its barycentric denominator is (numerically) zero.
var ErrDegenerate = errors.New("geometry: degenerate (collinear) triangle")

// SignedArea2 returns twice the signed xy area of the triangle (p1, p2, p3).
// Positive for CCW winding, negative for CW, (near) zero for collinear.
func SignedArea2(p1, p2, p3 types.Point3) float64 {
	return predicates.Area2(p1.XY(), p2.XY(), p3.XY())
}

// Area returns the unsigned xy area of the triangle.
func Area(p1, p2, p3 types.Point3) float64 {
	return math.Abs(SignedArea2(p1, p2, p3)) / 2
}

// Epsilon picks the collinearity tolerance for a triangle, scaled to the
// magnitude of its coordinates as recommended in the design notes:
// eps = 1e-12 * max(|bbox|)^2.
func Epsilon(p1, p2, p3 types.Point3) float64 {
	maxMag := 0.0
	for _, v := range []float64{p1.X, p1.Y, p2.X, p2.Y, p3.X, p3.Y} {
		if m := math.Abs(v); m > maxMag {
			maxMag = m
		}
	}
	if maxMag == 0 {
		maxMag = 1
	}
	return 1e-12 * maxMag * maxMag
}

// Interpolate computes the barycentric-interpolated z of triangle (p1, p2,
// p3) at the query's xy location, using the spec's weight formulation.
func Interpolate(p1, p2, p3, q types.Point3) (float64, error) {
	den := (p2.Y-p3.Y)*(p1.X-p3.X) + (p3.X-p2.X)*(p1.Y-p3.Y)
	if math.Abs(den) < Epsilon(p1, p2, p3) {
		return 0, ErrDegenerate
	}

	w1 := ((p2.Y-p3.Y)*(q.X-p3.X) + (p3.X-p2.X)*(q.Y-p3.Y)) / den
	w2 := ((p3.Y-p1.Y)*(q.X-p3.X) + (p1.X-p3.X)*(q.Y-p3.Y)) / den
	w3 := 1 - w1 - w2

	return w1*p1.Z + w2*p2.Z + w3*p3.Z, nil
}

// WithinTolerance reports whether the interpolated z at q's xy location,
// within triangle (p1, p2, p3), lies within tol of q.Z. A degenerate
// triangle always fails the test (treated as a tolerance violation, per the
// error-handling design: DegenerateGeometry folds into rejection).
func WithinTolerance(p1, p2, p3, q types.Point3, tol float64) bool {
	z, err := Interpolate(p1, p2, p3, q)
	if err != nil {
		return false
	}
	return math.Abs(z-q.Z) <= tol
}

// Aspect compass buckets, in ascending threshold order.
var (
	aspectThresholds = []float64{22.5, 67.5, 112.5, 157.5, 202.5, 247.5, 292.5, 337.5, 360}
	aspectLabels     = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW", "N"}
)

// Aspect computes the compass-direction bucket of the upward normal of
// triangle (p1, p2, p3), oriented CCW in xy before computing the normal.
func Aspect(p1, p2, p3 types.Point3) string {
	a, b, c := p1, p2, p3
	if SignedArea2(a, b, c) < 0 {
		b, c = c, b
	}

	abx, aby, abz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
	acx, acy, acz := c.X-a.X, c.Y-a.Y, c.Z-a.Z

	nx := aby*acz - abz*acy
	ny := abz*acx - abx*acz

	deg := math.Mod(math.Atan2(nx, ny)*180/math.Pi, 360)
	if deg < 0 {
		deg += 360
	}

	return bucket(deg)
}

func bucket(degrees float64) string {
	for i, threshold := range aspectThresholds {
		if degrees <= threshold {
			return aspectLabels[i]
		}
	}
	return aspectLabels[len(aspectLabels)-1]
}
