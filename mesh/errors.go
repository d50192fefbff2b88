package mesh

import "errors"

var (
	// ErrInvalidVertexID indicates a vertex ID is out of range, negative, or
	// already tombstoned.
	ErrInvalidVertexID = errors.New("mesh: invalid vertex id")

	// ErrInvalidFaceHandle indicates a face handle is out of range, negative,
	// or already tombstoned.
	ErrInvalidFaceHandle = errors.New("mesh: invalid face handle")

	// ErrDegenerateTriangle indicates triangle vertices are collinear.
	ErrDegenerateTriangle = errors.New("mesh: degenerate triangle (collinear)")

	// ErrDuplicateTriangle indicates the same three vertices already exist.
	ErrDuplicateTriangle = errors.New("mesh: duplicate triangle (any winding)")

	// ErrOpposingWindingDuplicate indicates the same three vertices exist with opposite winding direction.
	ErrOpposingWindingDuplicate = errors.New("mesh: duplicate triangle with opposing winding")

	// ErrVertexInsideTriangle indicates an existing vertex lies strictly inside the triangle being added.
	ErrVertexInsideTriangle = errors.New("mesh: vertex lies inside triangle")

	// ErrEdgeIntersection indicates a triangle edge would intersect an existing mesh edge.
	ErrEdgeIntersection = errors.New("mesh: edge intersection with existing mesh")

	// ErrVertexAlreadyDeleted indicates a vertex that is already tombstoned.
	// DeleteVertex does not return it; it reports ErrInvalidVertexID for
	// that case.
	ErrVertexAlreadyDeleted = errors.New("mesh: vertex already deleted")
)
