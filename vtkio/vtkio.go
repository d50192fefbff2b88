// Package vtkio writes a mesh as a VTK legacy ASCII unstructured grid, for
// visualization in tools that consume the classic VTK format.
package vtkio

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/iceisfun/bathysimplify/mesh"
	"github.com/iceisfun/bathysimplify/predicates"
	"github.com/iceisfun/bathysimplify/types"
)

// cellTypeTriangle is the VTK cell-type code this writer emits for every
// triangle cell. The VTK legacy spec's code for a triangle is 5
// (VTK_TRIANGLE); this writer emits 6 (VTK_TRIANGLE_STRIP) instead,
// preserving the source tool's own output exactly rather than correcting
// what looks like an unintentional mismatch — see DESIGN.md's Open
// Questions section before changing this.
const cellTypeTriangle = 6

// Write serializes m to a VTK legacy ASCII file at path: a POINTS block,
// a CELLS block (0-based, CCW-reordered triangle vertex triples), a
// CELL_TYPES block, and a POINT_DATA scalar field carrying each vertex's z.
func Write(path string, m *mesh.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return encode(f, m)
}

func encode(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)

	fmt.Fprint(bw, "# vtk DataFile Version 2.0\n\n")
	fmt.Fprint(bw, "ASCII\n")
	fmt.Fprint(bw, "DATASET UNSTRUCTURED_GRID\n")

	numVertices := m.LiveVertexCount()
	numTriangles := m.LiveFaceCount()

	fmt.Fprintf(bw, "POINTS %d float\n", numVertices)

	remap := make(map[types.VertexID]int, m.NumVertices())
	next := 0
	for i := 0; i < m.NumVertices(); i++ {
		id := types.VertexID(i)
		if !m.IsValidVertexID(id) {
			continue
		}
		p := m.GetVertex(id)
		fmt.Fprintf(bw, "%g %g %g\n", p.X, p.Y, p.Z)
		remap[id] = next
		next++
	}

	fmt.Fprintf(bw, "CELLS %d %d\n", numTriangles, numTriangles*4)
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
		fmt.Fprintf(bw, " 3 %d %d %d\n", remap[v1], remap[v2], remap[v3])
	}

	fmt.Fprintf(bw, "CELL_TYPES %d\n", numTriangles)
	for i := 0; i < numTriangles; i++ {
		fmt.Fprintf(bw, "%d ", cellTypeTriangle)
	}
	fmt.Fprint(bw, "\n")

	fmt.Fprintf(bw, "POINT_DATA %d\n", numVertices)
	fmt.Fprint(bw, "FIELD FieldData 1 \n\n")
	fmt.Fprintf(bw, "fieldvalue 1 %d float \n", numVertices)
	for i := 0; i < m.NumVertices(); i++ {
		id := types.VertexID(i)
		if !m.IsValidVertexID(id) {
			continue
		}
		fmt.Fprintf(bw, "%g ", m.GetVertex(id).Z)
	}
	fmt.Fprint(bw, "\n")

	return bw.Flush()
}
