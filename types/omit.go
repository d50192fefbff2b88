package types

// OmitClass classifies why a vertex may or may not be removed during
// simplification.
type OmitClass int

const (
	// OmitNone marks a vertex eligible for removal.
	OmitNone OmitClass = 0
	// OmitBoundaryLand marks a vertex that is both a boundary node and a
	// land node; never removed.
	OmitBoundaryLand OmitClass = 1
	// OmitBoundary marks a boundary-only vertex; never removed.
	OmitBoundary OmitClass = 2
	// OmitLand marks a land-only vertex; never removed.
	OmitLand OmitClass = 3
)

// Removable reports whether a vertex of this class is eligible for removal.
func (o OmitClass) Removable() bool {
	return o == OmitNone
}

// String renders the class for logging/debugging.
func (o OmitClass) String() string {
	switch o {
	case OmitNone:
		return "none"
	case OmitBoundaryLand:
		return "boundary+land"
	case OmitBoundary:
		return "boundary"
	case OmitLand:
		return "land"
	default:
		return "unknown"
	}
}
