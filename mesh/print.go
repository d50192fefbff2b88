package mesh

import (
	"fmt"
	"io"
)

// Print writes a detailed representation of the mesh to the writer.
//
// The output includes:
//   - Live vertex and face counts (vs. total slots, which include tombstones)
//   - All live vertex coordinates and attributes
//   - All live triangles
//
// Example:
//   m.Print(os.Stdout)
func (m *Mesh) Print(w io.Writer) error {
	fmt.Fprintf(w, "Mesh Summary:\n")
	fmt.Fprintf(w, "  Vertices: %d live / %d slots\n", m.LiveVertexCount(), m.NumVertices())
	fmt.Fprintf(w, "  Faces:    %d live / %d slots\n", m.LiveFaceCount(), m.NumTriangles())
	fmt.Fprintf(w, "\n")

	if m.NumVertices() > 0 {
		fmt.Fprintf(w, "Vertices:\n")
		for i := 0; i < m.NumVertices(); i++ {
			if m.vertexDead[i] {
				fmt.Fprintf(w, "  [%d] (deleted)\n", i)
				continue
			}
			p := m.vertices[i]
			attrs := m.vertexAttrs[i]
			fmt.Fprintf(w, "  [%d] (%.6g, %.6g, z=%.6g) zoffset=%.6g omit=%s\n",
				i, p.X, p.Y, p.Z, attrs.ZOffset, attrs.Omit)
		}
		fmt.Fprintf(w, "\n")
	}

	if m.NumTriangles() > 0 {
		fmt.Fprintf(w, "Faces:\n")
		for i := 0; i < m.NumTriangles(); i++ {
			if m.faceDead[i] {
				fmt.Fprintf(w, "  [%d] (deleted)\n", i)
				continue
			}
			t := m.triangles[i]
			fmt.Fprintf(w, "  [%d] Triangle{%d, %d, %d}\n", i, t.V1(), t.V2(), t.V3())
		}
		fmt.Fprintf(w, "\n")
	}

	return nil
}
