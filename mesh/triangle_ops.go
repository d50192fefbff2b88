package mesh

import (
	"errors"

	"github.com/iceisfun/bathysimplify/predicates"
	"github.com/iceisfun/bathysimplify/types"
	"github.com/iceisfun/bathysimplify/validation"
)

// AddTriangle adds a triangle to the mesh with validation. The vertex order
// is normalized to counter-clockwise (in xy) on insertion: the one-ring
// queries (VV, VF) assume every stored face winds the same way, and callers
// from the triangulator may hand in either winding.
func (m *Mesh) AddTriangle(v1, v2, v3 types.VertexID) (types.FaceHandle, error) {
	if !m.IsValidVertexID(v1) || !m.IsValidVertexID(v2) || !m.IsValidVertexID(v3) {
		return types.NilFace, ErrInvalidVertexID
	}

	a := m.vertices[v1].XY()
	b := m.vertices[v2].XY()
	c := m.vertices[v3].XY()

	if predicates.Area2(a, b, c) < 0 {
		v2, v3 = v3, v2
		b, c = c, b
	}

	tri := types.NewTriangle(v1, v2, v3)

	err := validation.ValidateTriangle(tri, a, b, c, m.validationConfig(), meshValidationView{m})
	if err != nil {
		return types.NilFace, m.translateValidationError(err)
	}

	fh := types.FaceHandle(len(m.triangles))
	m.triangles = append(m.triangles, tri)
	m.faceDead = append(m.faceDead, false)

	edges := tri.Edges()
	for _, edge := range edges {
		if _, exists := m.edgeSet[edge]; !exists {
			m.edgeSet[edge] = struct{}{}
			if m.cfg.debugAddEdge != nil {
				m.cfg.debugAddEdge(edge)
			}
		}
	}

	key := validation.CanonicalTriangleKey(tri)
	m.triangleSet[key] = tri

	if m.cfg.debugAddTriangle != nil {
		m.cfg.debugAddTriangle(tri)
	}

	return fh, nil
}

func (m *Mesh) validationConfig() validation.Config {
	return validation.Config{
		Epsilon:                  m.cfg.epsilon,
		ErrorOnDuplicateTriangle: m.cfg.errorOnDuplicateTriangle,
		ErrorOnOpposingDuplicate: m.cfg.errorOnOpposingDuplicate,
		ValidateVertexInside:     m.cfg.validateVertexInside,
		ValidateEdgeIntersection: m.cfg.validateEdgeIntersection,
	}
}

func (m *Mesh) translateValidationError(err error) error {
	errs := validation.Errors()
	switch {
	case errors.Is(err, errs.Degenerate):
		return ErrDegenerateTriangle
	case errors.Is(err, errs.Duplicate):
		return ErrDuplicateTriangle
	case errors.Is(err, errs.OpposingDuplicate):
		return ErrOpposingWindingDuplicate
	case errors.Is(err, errs.VertexInside):
		return ErrVertexInsideTriangle
	case errors.Is(err, errs.EdgeIntersection):
		return ErrEdgeIntersection
	default:
		return err
	}
}

// edgesCross checks if two edges cross each other (proper intersection).
func (m *Mesh) edgesCross(e1, e2 types.Edge) bool {
	a1 := m.vertices[e1.V1()].XY()
	a2 := m.vertices[e1.V2()].XY()
	b1 := m.vertices[e2.V1()].XY()
	b2 := m.vertices[e2.V2()].XY()

	intersects, proper := predicates.SegmentsIntersect(a1, a2, b1, b2, m.cfg.epsilon)
	return intersects && proper
}
