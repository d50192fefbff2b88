package simplify

import "errors"

// errRejectTopology marks a candidate rejected because its link polygon
// could not be triangulated, or the candidate vertex is not an interior
// vertex (its one-ring is an open chain, not a closed fan). Per spec, a
// triangulator failure is equivalent to test rejection: it never escapes
// Run as an error.
var errRejectTopology = errors.New("simplify: link polygon triangulation failed")
