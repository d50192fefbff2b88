package config

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestValidateRequiresInput(t *testing.T) {
	r := Run{Boundary: "b.txt", ZOffset: "1.0"}
	if err := r.Validate(); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig for missing input, got %v", err)
	}
}

func TestValidateRequiresBoundaryOrHgrid(t *testing.T) {
	r := Run{Input: "m.gr3", ZOffset: "1.0"}
	if err := r.Validate(); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig for missing boundary source, got %v", err)
	}
}

func TestValidateRejectsBothBoundarySources(t *testing.T) {
	r := Run{Input: "m.gr3", Boundary: "b.txt", BoundaryFromHgrid: true, ZOffset: "1.0"}
	if err := r.Validate(); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig for mutually exclusive boundary sources, got %v", err)
	}
}

func TestValidateRequiresZOffset(t *testing.T) {
	r := Run{Input: "m.gr3", Boundary: "b.txt"}
	if err := r.Validate(); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig for missing z-offset, got %v", err)
	}
}

func TestValidateRejectsNegativeMaxArea(t *testing.T) {
	r := Run{Input: "m.gr3", Boundary: "b.txt", ZOffset: "1.0", MaxTriangleArea: -1}
	if err := r.Validate(); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig for negative max-triangle-area, got %v", err)
	}
}

func TestValidateAccepts(t *testing.T) {
	r := Run{Input: "m.gr3", Boundary: "b.txt", ZOffset: "1.0", MaxTriangleArea: 0}
	if err := r.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")

	want := Run{
		Input:           "m.gr3",
		Boundary:        "b.txt",
		NegativeDown:    true,
		Validate:        true,
		ZOffset:         "1.5",
		MaxTriangleArea: 10,
		Aspect:          true,
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/run.yaml"); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig for missing file, got %v", err)
	}
}
