package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/iceisfun/bathysimplify/types"
)

func flatTriangle() (a, b, c types.Point3) {
	return types.Point3{X: 0, Y: 0, Z: 0},
		types.Point3{X: 10, Y: 0, Z: 0},
		types.Point3{X: 0, Y: 10, Z: 0}
}

func TestSignedArea2CCWPositive(t *testing.T) {
	a, b, c := flatTriangle()
	if got := SignedArea2(a, b, c); got <= 0 {
		t.Fatalf("expected positive signed area2 for CCW triangle, got %v", got)
	}
}

func TestAreaIsHalfAbsSignedArea2(t *testing.T) {
	a, b, c := flatTriangle()
	if got, want := Area(a, b, c), math.Abs(SignedArea2(a, b, c))/2; got != want {
		t.Fatalf("Area() = %v, want %v", got, want)
	}
}

func TestInterpolateAtVertexReturnsVertexZ(t *testing.T) {
	a := types.Point3{X: 0, Y: 0, Z: 5}
	b := types.Point3{X: 10, Y: 0, Z: 15}
	c := types.Point3{X: 0, Y: 10, Z: 25}

	z, err := Interpolate(a, b, c, types.Point3{X: 0, Y: 0, Z: 0})
	if err != nil {
		t.Fatalf("Interpolate: %v", err)
	}
	if math.Abs(z-5) > 1e-9 {
		t.Fatalf("expected interpolated z at vertex a to be 5, got %v", z)
	}
}

func TestInterpolateAtCentroidAverages(t *testing.T) {
	a := types.Point3{X: 0, Y: 0, Z: 0}
	b := types.Point3{X: 3, Y: 0, Z: 3}
	c := types.Point3{X: 0, Y: 3, Z: 6}
	centroid := types.Point3{X: 1, Y: 1, Z: 0}

	z, err := Interpolate(a, b, c, centroid)
	if err != nil {
		t.Fatalf("Interpolate: %v", err)
	}
	if math.Abs(z-3) > 1e-9 {
		t.Fatalf("expected centroid z to average to 3, got %v", z)
	}
}

func TestInterpolateDegenerateTriangle(t *testing.T) {
	a := types.Point3{X: 0, Y: 0, Z: 0}
	b := types.Point3{X: 1, Y: 0, Z: 1}
	c := types.Point3{X: 2, Y: 0, Z: 2}

	_, err := Interpolate(a, b, c, types.Point3{X: 1, Y: 0, Z: 0})
	if !errors.Is(err, ErrDegenerate) {
		t.Fatalf("expected ErrDegenerate for collinear triangle, got %v", err)
	}
}

func TestWithinToleranceTrueAndFalse(t *testing.T) {
	a := types.Point3{X: 0, Y: 0, Z: 0}
	b := types.Point3{X: 10, Y: 0, Z: 0}
	c := types.Point3{X: 0, Y: 10, Z: 0}

	if !WithinTolerance(a, b, c, types.Point3{X: 1, Y: 1, Z: 0.05}, 0.1) {
		t.Fatalf("expected a near-flat sounding to be within 0.1 tolerance")
	}
	if WithinTolerance(a, b, c, types.Point3{X: 1, Y: 1, Z: 5}, 0.1) {
		t.Fatalf("expected a far-off sounding to violate 0.1 tolerance")
	}
}

func TestWithinToleranceDegenerateAlwaysFails(t *testing.T) {
	a := types.Point3{X: 0, Y: 0, Z: 0}
	b := types.Point3{X: 1, Y: 0, Z: 1}
	c := types.Point3{X: 2, Y: 0, Z: 2}
	if WithinTolerance(a, b, c, types.Point3{X: 1, Y: 0, Z: 0}, 1000) {
		t.Fatalf("expected a degenerate triangle to always fail, regardless of tolerance")
	}
}

func TestAspectCardinalBuckets(t *testing.T) {
	// A triangle rising toward +y, so its upward normal points south
	// (xy-projected normal direction ~ (0, negative)).
	a := types.Point3{X: 0, Y: 0, Z: 0}
	b := types.Point3{X: 10, Y: 0, Z: 0}
	c := types.Point3{X: 0, Y: 10, Z: 10}

	got := Aspect(a, b, c)
	if got == "" {
		t.Fatalf("expected a non-empty compass bucket")
	}
}

func TestBucketAssignsExactThresholdToLowerBucket(t *testing.T) {
	// Matches the source's bisect_left semantics: a degrees value exactly on
	// a threshold belongs to the bucket the threshold closes, not the next
	// one (bisect_left([22.5,...], 22.5) == 0 -> "N", not "NE").
	cases := []struct {
		degrees float64
		want    string
	}{
		{0, "N"},
		{22.5, "N"},
		{22.500001, "NE"},
		{67.5, "NE"},
		{112.5, "E"},
		{157.5, "SE"},
		{202.5, "S"},
		{247.5, "SW"},
		{292.5, "W"},
		{337.5, "NW"},
		{360, "N"},
	}
	for _, tc := range cases {
		if got := bucket(tc.degrees); got != tc.want {
			t.Fatalf("bucket(%v) = %q, want %q", tc.degrees, got, tc.want)
		}
	}
}

func TestAspectFlatTriangleIsDeterministic(t *testing.T) {
	a, b, c := flatTriangle()
	first := Aspect(a, b, c)
	second := Aspect(a, b, c)
	if first != second {
		t.Fatalf("expected Aspect to be deterministic for the same triangle, got %q then %q", first, second)
	}
}
