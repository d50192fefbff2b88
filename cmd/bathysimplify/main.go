// Command bathysimplify reads a gr3 mesh and a set of boundary node
// indices, iteratively removes every vertex whose removal keeps the
// surface within its per-vertex tolerance, and writes the simplified
// mesh back out as gr3 and VTK legacy ASCII.
package main

import (
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iceisfun/bathysimplify/bathylog"
	"github.com/iceisfun/bathysimplify/boundary"
	"github.com/iceisfun/bathysimplify/config"
	"github.com/iceisfun/bathysimplify/gr3"
	"github.com/iceisfun/bathysimplify/mesh"
	"github.com/iceisfun/bathysimplify/rasterize"
	"github.com/iceisfun/bathysimplify/simplify"
	"github.com/iceisfun/bathysimplify/tolerance"
	"github.com/iceisfun/bathysimplify/types"
	"github.com/iceisfun/bathysimplify/violations"
	"github.com/iceisfun/bathysimplify/vtkio"
)

var cfg config.Run
var configPath string
var diagnose bool
var render bool

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bathysimplify",
		Short: "Simplify a bathymetric gr3 mesh within a per-vertex tolerance",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg, diagnose, render)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.Input, "input", "i", "", "input gr3 mesh (required)")
	flags.StringVarP(&cfg.Boundary, "boundary", "b", "", "boundary node index file")
	flags.BoolVar(&cfg.BoundaryFromHgrid, "boundary-from-hgrid", false, "derive boundary indices from the input file's own hgrid tail section (mutually exclusive with --boundary)")
	flags.BoolVarP(&cfg.NegativeDown, "negative-down", "n", false, "input depths are stored negative-down")
	flags.BoolVarP(&cfg.Validate, "validate", "v", false, "re-validate the simplified mesh against every input sounding")
	flags.StringVarP(&cfg.ZOffset, "z-offset", "z", "", "uniform tolerance, or a path to a per-vertex z_offset file (required)")
	flags.Float64VarP(&cfg.MaxTriangleArea, "max-triangle-area", "t", 0, "reject candidates whose retriangulated faces exceed this area (0 disables the test)")
	flags.BoolVarP(&cfg.Aspect, "aspect", "a", false, "reject candidates whose replacement faces change the set of compass-bucket aspects of the faces they replace")
	flags.BoolVar(&diagnose, "diagnose", false, "after simplification, report vertices/triangles the simplifier could not remove")
	flags.BoolVar(&render, "render", false, "write a depth-shaded PNG of the input and simplified meshes alongside the gr3/vtk output")
	flags.StringVar(&configPath, "config", "", "optional YAML file to load run configuration from (flags override it) and save the resolved configuration to")

	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("z-offset")

	return cmd
}

func run(cfg config.Run, diagnose, render bool) error {
	logger := bathylog.New(log.Default())

	if configPath != "" {
		if loaded, err := config.Load(configPath); err == nil {
			cfg = mergeConfig(loaded, cfg)
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("bathysimplify: %w", err)
	}

	if configPath != "" {
		if err := config.Save(configPath, cfg); err != nil {
			return fmt.Errorf("bathysimplify: saving --config: %w", err)
		}
	}

	logger.Info(0, "Reading Boundary Node Indices")
	boundaryIdx, err := readBoundary(cfg)
	if err != nil {
		return fmt.Errorf("bathysimplify: %w", err)
	}

	uniformTolerance, perVertexTolerance, err := tolerance.ParseSpec(cfg.ZOffset)
	if err != nil {
		return fmt.Errorf("bathysimplify: %w", err)
	}

	logger.Info(0, "Reading Mesh")
	m, err := gr3.Read(cfg.Input, gr3.ReadOptions{
		NegativeDown:    cfg.NegativeDown,
		Boundary:        boundaryIdx,
		ZOffsetDefault:  uniformTolerance,
		ZOffsetByVertex: perVertexTolerance,
	})
	if err != nil {
		return fmt.Errorf("bathysimplify: %w", err)
	}

	soundings := meshSoundings(m)

	stem := outputStem(cfg.Input)

	logger.Info(0, "Writing Initial Mesh Files")
	if err := writeMesh(m, stem+"_Input_Mesh", render); err != nil {
		return fmt.Errorf("bathysimplify: %w", err)
	}

	logger.Info(0, "Simplifying Mesh")
	report, err := simplify.Run(m, soundings, simplify.Options{
		AspectEnabled: cfg.Aspect,
		MaxArea:       cfg.MaxTriangleArea,
		Epsilon:       types.DefaultEpsilon(),
	})
	if err != nil {
		return fmt.Errorf("bathysimplify: %w", err)
	}

	for _, it := range report.Iterations {
		logger.Info(1, "Iteration Count: %d", it.Iteration)
		logger.Info(2, "Mesh Vertices Before Iteration: %d", it.VerticesBefore)
		logger.Info(2, "Mesh Triangles Before Iteration: %d", it.TrianglesBefore)
		logger.Info(2, "Mesh Vertices After Iteration: %d", it.VerticesAfter)
		logger.Info(2, "Mesh Triangles After Iteration: %d", it.TrianglesAfterGC)
		logger.Info(2, "Vertices Removed: %d", it.Removed)
		logger.Info(2, "Total Omitted Nodes From Simplification: %d", it.Ignored)
	}

	if cfg.Validate {
		logger.Info(0, "Validating Mesh Simplification")
		vs, err := violations.Check(m, soundings, types.DefaultEpsilon())
		if err != nil {
			return fmt.Errorf("bathysimplify: %w", err)
		}
		logger.Info(1, "Violations: %d", len(vs))
		if err := violations.WriteXYZ(stem+"_Violations.csv", vs); err != nil {
			return fmt.Errorf("bathysimplify: %w", err)
		}
	}

	logger.Info(0, "Writing Output Files")
	if err := writeMesh(m, stem+"_Simplified_Mesh", render); err != nil {
		return fmt.Errorf("bathysimplify: %w", err)
	}

	if diagnose {
		runDiagnose(m, logger)
	}

	return nil
}

// mergeConfig lets CLI flags override whatever a --config file loaded:
// any field left at its zero value on flags is taken from loaded.
func mergeConfig(loaded, flags config.Run) config.Run {
	out := loaded
	if flags.Input != "" {
		out.Input = flags.Input
	}
	if flags.Boundary != "" {
		out.Boundary = flags.Boundary
	}
	if flags.BoundaryFromHgrid {
		out.BoundaryFromHgrid = true
	}
	if flags.NegativeDown {
		out.NegativeDown = true
	}
	if flags.Validate {
		out.Validate = true
	}
	if flags.ZOffset != "" {
		out.ZOffset = flags.ZOffset
	}
	if flags.MaxTriangleArea != 0 {
		out.MaxTriangleArea = flags.MaxTriangleArea
	}
	if flags.Aspect {
		out.Aspect = true
	}
	return out
}

func readBoundary(cfg config.Run) (map[int]bool, error) {
	if cfg.BoundaryFromHgrid {
		return boundary.FromHgridTail(cfg.Input)
	}
	return boundary.Read(cfg.Boundary)
}

func meshSoundings(m *mesh.Mesh) []types.Sounding {
	verts := m.GetVertices()
	soundings := make([]types.Sounding, 0, len(verts))
	for i := range verts {
		id := types.VertexID(i)
		if !m.IsValidVertexID(id) {
			continue
		}
		soundings = append(soundings, types.Sounding{
			Pos:         verts[i],
			Uncertainty: m.ZOffset(id),
		})
	}
	return soundings
}

func writeMesh(m *mesh.Mesh, stem string, render bool) error {
	if err := gr3.Write(stem+".gr3", m, stem); err != nil {
		return err
	}
	if err := vtkio.Write(stem+".vtk", m); err != nil {
		return err
	}
	if !render {
		return nil
	}
	return renderPNG(m, stem+".png")
}

func renderPNG(m *mesh.Mesh, path string) error {
	img, err := rasterize.Rasterize(m,
		rasterize.WithDepthShading(true),
		rasterize.WithOmitMarkers(true),
		rasterize.WithFillTriangles(true),
	)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}

func outputStem(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func runDiagnose(m *mesh.Mesh, logger *bathylog.Logger) {
	logger.Info(0, "Diagnosing Unremoved Vertices")
	for i := 0; i < m.NumVertices(); i++ {
		id := types.VertexID(i)
		if !m.IsValidVertexID(id) || m.Omit(id) != types.OmitNone {
			continue
		}
		candidates := m.VertexFindCandidates(id)
		triCandidates := m.VertexFindTriangleCandidates(id)
		logger.Info(1, "Vertex %d: %d connectable vertices, %d valid triangles",
			int(id), len(candidates), len(triCandidates))
	}
}
