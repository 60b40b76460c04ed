package datatypes

// ZonelineType represents how a zone line's destination is specified.
type ZonelineType int

const (
	// ZonelineTypeReference points at another zone's zone-point table by index.
	ZonelineTypeReference ZonelineType = 0
	// ZonelineTypeAbsolute carries a literal destination position and heading.
	ZonelineTypeAbsolute ZonelineType = 1
)
