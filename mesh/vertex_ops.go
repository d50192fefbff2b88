package mesh

import (
	"github.com/iceisfun/bathysimplify/predicates"
	"github.com/iceisfun/bathysimplify/spatial"
	"github.com/iceisfun/bathysimplify/types"
)

// AddVertex adds a vertex to the mesh or returns an existing nearby vertex
// (when merge-by-distance is enabled). The z coordinate of p is stored
// as-is; it plays no part in merge-distance comparisons, which operate on
// xy only.
func (m *Mesh) AddVertex(p types.Point3) (types.VertexID, error) {
	if m.cfg.mergeVertices {
		if m.vertexIndex == nil {
			m.vertexIndex = spatial.NewHashGrid(m.cfg.effectiveMergeDistance())
			for id, existing := range m.vertices {
				if !m.vertexDead[id] {
					m.vertexIndex.AddVertex(types.VertexID(id), existing.XY())
				}
			}
		}

		radius := m.cfg.effectiveMergeDistance()
		candidates := m.vertexIndex.FindVerticesNear(p.XY(), radius)
		for _, candidate := range candidates {
			if m.vertexDead[candidate] {
				continue
			}
			if predicates.Dist2(p.XY(), m.vertices[candidate].XY()) <= radius*radius {
				if m.cfg.debugAddVertex != nil {
					m.cfg.debugAddVertex(candidate, m.vertices[candidate])
				}
				return candidate, nil
			}
		}
	}

	id := types.VertexID(len(m.vertices))
	m.vertices = append(m.vertices, p)
	m.vertexAttrs = append(m.vertexAttrs, types.VertexAttrs{})
	m.vertexDead = append(m.vertexDead, false)

	if m.vertexIndex != nil {
		m.vertexIndex.AddVertex(id, p.XY())
	}

	if m.cfg.debugAddVertex != nil {
		m.cfg.debugAddVertex(id, p)
	}

	return id, nil
}

// FindVertexNear searches for a vertex within merge distance of p's xy
// projection.
func (m *Mesh) FindVertexNear(p types.Point3) (types.VertexID, bool) {
	if m.vertexIndex == nil {
		m.buildVertexIndex()
	}

	if m.vertexIndex == nil {
		return types.NilVertex, false
	}

	radius := m.cfg.effectiveMergeDistance()
	candidates := m.vertexIndex.FindVerticesNear(p.XY(), radius)
	for _, candidate := range candidates {
		if m.vertexDead[candidate] {
			continue
		}
		if predicates.Dist2(p.XY(), m.vertices[candidate].XY()) <= radius*radius {
			return candidate, true
		}
	}

	return types.NilVertex, false
}

func (m *Mesh) buildVertexIndex() {
	radius := m.cfg.effectiveMergeDistance()
	if radius <= 0 {
		return
	}

	m.vertexIndex = spatial.NewHashGrid(radius)
	for id, p := range m.vertices {
		if !m.vertexDead[id] {
			m.vertexIndex.AddVertex(types.VertexID(id), p.XY())
		}
	}
	m.vertexIndex.Build()
}
