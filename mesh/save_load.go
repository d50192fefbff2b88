package mesh

import (
	"encoding/json"
	"os"

	"github.com/iceisfun/bathysimplify/types"
)

// MeshData represents the serializable state of a mesh, tombstones
// included — a saved mesh round-trips through Load exactly, including
// deleted vertices/faces, so a captured state reproduces a simplification
// run's topology bug-for-bug.
type MeshData struct {
	Vertices    []types.Point3       `json:"vertices"`
	VertexAttrs []types.VertexAttrs  `json:"vertex_attrs"`
	VertexDead  []bool               `json:"vertex_dead"`
	Triangles   []types.Triangle     `json:"triangles"`
	FaceDead    []bool               `json:"face_dead"`
	Config      SavedConfig          `json:"config"`
}

// SavedConfig captures the mesh configuration for reconstruction.
type SavedConfig struct {
	Epsilon                  float64 `json:"epsilon"`
	MergeVertices            bool    `json:"merge_vertices"`
	MergeDistance            float64 `json:"merge_distance"`
	ValidateVertexInside     bool    `json:"validate_vertex_inside"`
	ValidateEdgeIntersection bool    `json:"validate_edge_intersection"`
	ErrorOnDuplicateTriangle bool    `json:"error_on_duplicate_triangle"`
	ErrorOnOpposingDuplicate bool    `json:"error_on_opposing_duplicate"`
}

// Save writes the mesh state to a JSON file.
//
// This is useful for debugging - you can capture a problematic mesh state
// mid-simplification and share it for analysis.
//
// Example:
//
//	m.Save("problem_mesh.json")
func (m *Mesh) Save(filename string) error {
	data := MeshData{
		Vertices:    m.vertices,
		VertexAttrs: m.vertexAttrs,
		VertexDead:  m.vertexDead,
		Triangles:   m.triangles,
		FaceDead:    m.faceDead,
		Config: SavedConfig{
			Epsilon:                  m.cfg.epsilon,
			MergeVertices:            m.cfg.mergeVertices,
			MergeDistance:            m.cfg.mergeDistance,
			ValidateVertexInside:     m.cfg.validateVertexInside,
			ValidateEdgeIntersection: m.cfg.validateEdgeIntersection,
			ErrorOnDuplicateTriangle: m.cfg.errorOnDuplicateTriangle,
			ErrorOnOpposingDuplicate: m.cfg.errorOnOpposingDuplicate,
		},
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Load reads a mesh state from a JSON file.
//
// The loaded mesh will have the same configuration as the saved mesh,
// but debug hooks are not preserved.
//
// Example:
//
//	m, err := mesh.Load("problem_mesh.json")
func Load(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var data MeshData
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return nil, err
	}

	m := NewMesh(
		WithEpsilon(data.Config.Epsilon),
		WithMergeVertices(data.Config.MergeVertices),
		WithMergeDistance(data.Config.MergeDistance),
		WithTriangleEnforceNoVertexInside(data.Config.ValidateVertexInside),
		WithEdgeIntersectionCheck(data.Config.ValidateEdgeIntersection),
		WithDuplicateTriangleError(data.Config.ErrorOnDuplicateTriangle),
		WithDuplicateTriangleOpposingWinding(data.Config.ErrorOnOpposingDuplicate),
	)

	m.vertices = data.Vertices
	m.vertexAttrs = data.VertexAttrs
	m.vertexDead = data.VertexDead
	m.triangles = data.Triangles
	m.faceDead = data.FaceDead

	m.edgeSet = make(map[types.Edge]struct{})
	for fh, tri := range m.triangles {
		if m.faceDead[fh] {
			continue
		}
		for _, edge := range tri.Edges() {
			m.edgeSet[edge] = struct{}{}
		}
	}

	m.triangleSet = make(map[[3]types.VertexID]types.Triangle)
	for fh, tri := range m.triangles {
		if m.faceDead[fh] {
			continue
		}
		key := [3]types.VertexID{tri.V1(), tri.V2(), tri.V3()}
		if key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
		}
		if key[1] > key[2] {
			key[1], key[2] = key[2], key[1]
		}
		if key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
		}
		m.triangleSet[key] = tri
	}

	return m, nil
}
