package simplify

import (
	"math"
	"testing"

	"github.com/iceisfun/bathysimplify/mesh"
	"github.com/iceisfun/bathysimplify/types"
)

// buildHexFan builds a flat hexagonal fan: one center vertex surrounded by
// six outer vertices, all six incident triangles coplanar (z = 0
// everywhere). This is the E1 "single star" scenario: with centerZOffset <=
// 0 (the center's z) the center vertex is eligible, and removing it
// retriangulates the hexagon's six triangles into 6-2=4.
func buildHexFan(t *testing.T, centerZOffset float64) (*mesh.Mesh, types.VertexID) {
	t.Helper()
	m := mesh.NewMesh()

	center, err := m.AddVertex(types.Point3{X: 0, Y: 0, Z: 0})
	if err != nil {
		t.Fatalf("AddVertex center: %v", err)
	}
	m.SetZOffset(center, centerZOffset)

	outer := make([]types.VertexID, 6)
	for i := 0; i < 6; i++ {
		angle := float64(i) * math.Pi / 3
		v, err := m.AddVertex(types.Point3{X: math.Cos(angle), Y: math.Sin(angle), Z: 0})
		if err != nil {
			t.Fatalf("AddVertex outer %d: %v", i, err)
		}
		outer[i] = v
	}

	for i := 0; i < 6; i++ {
		a := outer[i]
		b := outer[(i+1)%6]
		if _, err := m.AddTriangle(center, a, b); err != nil {
			t.Fatalf("AddTriangle %d: %v", i, err)
		}
	}

	return m, center
}

func TestRunRemovesEligibleFlatCenter(t *testing.T) {
	m, _ := buildHexFan(t, 0)

	report, err := Run(m, nil, Options{AspectEnabled: true, Epsilon: types.DefaultEpsilon()})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(report.Iterations) == 0 {
		t.Fatal("expected at least one iteration")
	}
	if got := m.LiveVertexCount(); got != 6 {
		t.Fatalf("expected center vertex removed (6 live vertices), got %d", got)
	}
	if got := m.LiveFaceCount(); got != 4 {
		t.Fatalf("expected hexagon retriangulated into 4 triangles, got %d", got)
	}
}

func TestRunSkipsOmittedVertex(t *testing.T) {
	m, center := buildHexFan(t, 0)
	m.SetOmit(center, types.OmitBoundary)

	report, err := Run(m, nil, Options{Epsilon: types.DefaultEpsilon()})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(report.Iterations) != 1 {
		t.Fatalf("expected fixed point after 1 iteration, got %d", len(report.Iterations))
	}
	if got := m.LiveVertexCount(); got != 7 {
		t.Fatalf("expected omitted vertex preserved (7 live vertices), got %d", got)
	}
}

func TestRunSkipsZOffsetAboveDepth(t *testing.T) {
	// z_offset(v) > v.z: center tolerance (5) exceeds its own depth (0), so
	// it is ineligible per z_offset(v) <= v.z.
	m, _ := buildHexFan(t, 5.0)

	report, err := Run(m, nil, Options{Epsilon: types.DefaultEpsilon()})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(report.Iterations) != 1 {
		t.Fatalf("expected fixed point after 1 iteration, got %d", len(report.Iterations))
	}
	if got := m.LiveVertexCount(); got != 7 {
		t.Fatalf("expected vertex preserved, got %d live vertices", got)
	}
}

func TestRunRejectsViaMaxArea(t *testing.T) {
	m, _ := buildHexFan(t, 0)

	report, err := Run(m, nil, Options{MaxArea: 1e-9, Epsilon: types.DefaultEpsilon()})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(report.Iterations) != 1 {
		t.Fatalf("expected fixed point after 1 iteration, got %d", len(report.Iterations))
	}
	if got := m.LiveVertexCount(); got != 7 {
		t.Fatalf("expected center preserved under an unsatisfiable max-area limit, got %d", got)
	}
}

func TestRunRejectsViaInterpolationOutlier(t *testing.T) {
	m, _ := buildHexFan(t, 0)

	// A sounding sitting far below the flat hexagon's surface; within the
	// link polygon in xy, but its z cannot be matched within tolerance by
	// any planar retriangulation of a flat star.
	soundings := []types.Sounding{
		{Pos: types.Point3{X: 0.1, Y: 0.1, Z: -100}, Uncertainty: 0},
	}

	report, err := Run(m, soundings, Options{Epsilon: types.DefaultEpsilon()})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(report.Iterations) != 1 {
		t.Fatalf("expected fixed point after 1 iteration, got %d", len(report.Iterations))
	}
	if got := m.LiveVertexCount(); got != 7 {
		t.Fatalf("expected center preserved due to interpolation outlier, got %d", got)
	}
}
