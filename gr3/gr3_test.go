package gr3

import (
	"strings"
	"testing"

	"github.com/iceisfun/bathysimplify/types"
)

const sampleGr3 = `hgrid.gr3
1 4
1 0.0 0.0 -5.0
2 1.0 0.0 -6.0
3 1.0 1.0 -7.0
4 0.0 1.0 2.0
1 3 1 2 3
`

func TestDecodeBasic(t *testing.T) {
	m, err := decode(strings.NewReader(sampleGr3), ReadOptions{
		NegativeDown:   true,
		Boundary:       map[int]bool{1: true, 2: true},
		ZOffsetDefault: 0.5,
	})
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got := m.LiveVertexCount(); got != 4 {
		t.Fatalf("expected 4 vertices, got %d", got)
	}
	if got := m.LiveFaceCount(); got != 1 {
		t.Fatalf("expected 1 face, got %d", got)
	}

	v1 := types.VertexID(0)
	if got := m.Omit(v1); got != types.OmitBoundary {
		t.Fatalf("vertex 1: expected OmitBoundary, got %v", got)
	}
	v4 := types.VertexID(3)
	if got := m.Omit(v4); got != types.OmitLand {
		t.Fatalf("vertex 4 (z=2, negative_down): expected OmitLand, got %v", got)
	}
	if got := m.ZOffset(v1); got != 0.5 {
		t.Fatalf("expected default z_offset 0.5, got %v", got)
	}
}

func TestDecodePerVertexZOffset(t *testing.T) {
	m, err := decode(strings.NewReader(sampleGr3), ReadOptions{
		NegativeDown:    true,
		ZOffsetByVertex: map[int]float64{3: 2.5},
		ZOffsetDefault:  0.1,
	})
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got := m.ZOffset(types.VertexID(2)); got != 2.5 {
		t.Fatalf("expected per-vertex override 2.5, got %v", got)
	}
	if got := m.ZOffset(types.VertexID(0)); got != 0.1 {
		t.Fatalf("expected default 0.1, got %v", got)
	}
}

func TestDecodeMalformedCountLine(t *testing.T) {
	bad := "title\nnot-a-number 4\n"
	if _, err := decode(strings.NewReader(bad), ReadOptions{}); err == nil {
		t.Fatal("expected parse error for malformed count line")
	}
}

func TestDecodeUnknownFaceVertex(t *testing.T) {
	bad := "title\n1 1\n1 0 0 0\n1 3 1 2 3\n"
	if _, err := decode(strings.NewReader(bad), ReadOptions{}); err == nil {
		t.Fatal("expected parse error for a face referencing an unknown vertex")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	m, err := decode(strings.NewReader(sampleGr3), ReadOptions{NegativeDown: true, ZOffsetDefault: 1})
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	var buf strings.Builder
	if err := encode(&buf, m, "roundtrip"); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	again, err := decode(strings.NewReader(buf.String()), ReadOptions{NegativeDown: true, ZOffsetDefault: 1})
	if err != nil {
		t.Fatalf("re-decode failed: %v", err)
	}
	if again.LiveVertexCount() != m.LiveVertexCount() {
		t.Fatalf("vertex count mismatch after round-trip: %d vs %d", again.LiveVertexCount(), m.LiveVertexCount())
	}
	if again.LiveFaceCount() != m.LiveFaceCount() {
		t.Fatalf("face count mismatch after round-trip: %d vs %d", again.LiveFaceCount(), m.LiveFaceCount())
	}
}
