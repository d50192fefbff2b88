// Package gr3 reads and writes the gr3 mesh text format: a SCHISM/ADCIRC-
// style grid file with a title line, a vertex/face count line, one
// "idx x y z" line per vertex, one "idx 3 v1 v2 v3" line per face (1-based
// vertex indices), and an optional trailing boundary-segment section.
package gr3

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/iceisfun/bathysimplify/mesh"
	"github.com/iceisfun/bathysimplify/predicates"
	"github.com/iceisfun/bathysimplify/types"
)

// ErrParse indicates a gr3 file is structurally malformed.
var ErrParse = fmt.Errorf("gr3: malformed file")

// ReadOptions controls how vertex eligibility (types.OmitClass) is derived
// on load.
type ReadOptions struct {
	// NegativeDown means depths are stored as negative values below the
	// surface (positive z is land). When false, the convention is reversed:
	// positive z is below the surface and negative z is land.
	NegativeDown bool

	// Boundary is the set of 1-based vertex indices forming the mesh
	// boundary, as read by boundary.Read or boundary.FromHgridTail.
	Boundary map[int]bool

	// ZOffset assigns each vertex's removal tolerance. If ZOffsetByVertex
	// is non-nil it is consulted first (keyed by 1-based vertex index);
	// otherwise every vertex gets ZOffsetDefault.
	ZOffsetDefault  float64
	ZOffsetByVertex map[int]float64
}

// Read parses a gr3 file into a mesh, deriving each vertex's types.OmitClass
// from boundary membership and the sign of z under opts.NegativeDown,
// mirroring the original reader's four-way omit classification:
//
//	boundary && land -> OmitBoundaryLand
//	boundary         -> OmitBoundary
//	land             -> OmitLand
//	otherwise        -> OmitNone
func Read(path string, opts ReadOptions) (*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decode(f, opts)
}

func decode(r io.Reader, opts ReadOptions) (*mesh.Mesh, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		return nil, fmt.Errorf("%w: missing title line", ErrParse)
	}

	if !scanner.Scan() {
		return nil, fmt.Errorf("%w: missing vertex/face count line", ErrParse)
	}
	counts := strings.Fields(scanner.Text())
	if len(counts) < 2 {
		return nil, fmt.Errorf("%w: expected \"<faces> <vertices>\", got %q", ErrParse, scanner.Text())
	}
	numFaces, err := strconv.Atoi(counts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: face count: %v", ErrParse, err)
	}
	numVertices, err := strconv.Atoi(counts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: vertex count: %v", ErrParse, err)
	}

	m := mesh.NewMesh()
	vertexByIdx := make(map[int]types.VertexID, numVertices)

	for i := 0; i < numVertices; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("%w: expected %d vertex lines, found %d", ErrParse, numVertices, i)
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			return nil, fmt.Errorf("%w: vertex line %q: expected \"idx x y z\"", ErrParse, scanner.Text())
		}
		idx, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: vertex index: %v", ErrParse, err)
		}
		x, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: vertex x: %v", ErrParse, err)
		}
		y, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: vertex y: %v", ErrParse, err)
		}
		z, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: vertex z: %v", ErrParse, err)
		}

		id, err := m.AddVertex(types.Point3{X: x, Y: y, Z: z})
		if err != nil {
			return nil, fmt.Errorf("gr3: vertex %d: %w", idx, err)
		}
		vertexByIdx[idx] = id

		m.SetZOffset(id, resolveZOffset(idx, opts))
		m.SetOmit(id, classifyOmit(idx, z, opts))
	}

	for i := 0; i < numFaces; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("%w: expected %d face lines, found %d", ErrParse, numFaces, i)
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 5 {
			return nil, fmt.Errorf("%w: face line %q: expected \"idx 3 v1 v2 v3\"", ErrParse, scanner.Text())
		}
		i1, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("%w: face vertex 1: %v", ErrParse, err)
		}
		i2, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: face vertex 2: %v", ErrParse, err)
		}
		i3, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, fmt.Errorf("%w: face vertex 3: %v", ErrParse, err)
		}

		v1, ok := vertexByIdx[i1]
		if !ok {
			return nil, fmt.Errorf("%w: face references unknown vertex %d", ErrParse, i1)
		}
		v2, ok := vertexByIdx[i2]
		if !ok {
			return nil, fmt.Errorf("%w: face references unknown vertex %d", ErrParse, i2)
		}
		v3, ok := vertexByIdx[i3]
		if !ok {
			return nil, fmt.Errorf("%w: face references unknown vertex %d", ErrParse, i3)
		}

		if _, err := m.AddTriangle(v1, v2, v3); err != nil {
			return nil, fmt.Errorf("gr3: face %d: %w", i+1, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("gr3: %w", err)
	}

	return m, nil
}

func resolveZOffset(idx int, opts ReadOptions) float64 {
	if opts.ZOffsetByVertex != nil {
		if z, ok := opts.ZOffsetByVertex[idx]; ok {
			return z
		}
	}
	return opts.ZOffsetDefault
}

func isLand(z float64, negativeDown bool) bool {
	if negativeDown {
		return z > 0
	}
	return z < 0
}

func classifyOmit(idx int, z float64, opts ReadOptions) types.OmitClass {
	onBoundary := opts.Boundary[idx]
	land := isLand(z, opts.NegativeDown)

	switch {
	case onBoundary && land:
		return types.OmitBoundaryLand
	case onBoundary:
		return types.OmitBoundary
	case land:
		return types.OmitLand
	default:
		return types.OmitNone
	}
}

// Write serializes m to a gr3 file at path. Vertices and faces are written
// in ascending ID order (1-based), and each face is reoriented CCW in xy
// before writing — AddTriangle already normalizes storage winding, but
// Write re-derives it independently so a gr3 file round-tripped through an
// external tool that doesn't preserve winding still comes out consistent.
func Write(path string, m *mesh.Mesh, title string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return encode(f, m, title)
}

func encode(w io.Writer, m *mesh.Mesh, title string) error {
	bw := bufio.NewWriter(w)

	if title == "" {
		title = "hgrid.gr3"
	}
	if _, err := fmt.Fprintf(bw, "%s\n", title); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(bw, "%d %d\n", m.LiveFaceCount(), m.LiveVertexCount()); err != nil {
		return err
	}

	remap := make(map[types.VertexID]int, m.NumVertices())
	next := 1
	for i := 0; i < m.NumVertices(); i++ {
		id := types.VertexID(i)
		if !m.IsValidVertexID(id) {
			continue
		}
		p := m.GetVertex(id)
		if _, err := fmt.Fprintf(bw, "%d %g %g %g\n", next, p.X, p.Y, p.Z); err != nil {
			return err
		}
		remap[id] = next
		next++
	}

	faceIdx := 1
	for i := 0; i < m.NumTriangles(); i++ {
		fh := types.FaceHandle(i)
		if !m.IsValidFaceHandle(fh) {
			continue
		}
		a, b, c := m.GetTriangleCoords(fh)
		tri := m.GetTriangle(fh)
		v1, v2, v3 := tri.V1(), tri.V2(), tri.V3()
		if predicates.Area2(a.XY(), b.XY(), c.XY()) < 0 {
			v2, v3 = v3, v2
		}
		if _, err := fmt.Fprintf(bw, "%d 3 %d %d %d\n", faceIdx, remap[v1], remap[v2], remap[v3]); err != nil {
			return err
		}
		faceIdx++
	}

	return bw.Flush()
}
