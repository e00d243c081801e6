package navigation

// SpaceType selects which geometry arrays of a Space are meaningful
type SpaceType uint8

const (
	// SpaceGrid uses vertices and edges
	SpaceGrid SpaceType = iota
	// SpaceMesh uses vertices, corners and faces
	SpaceMesh
	// SpaceVolume uses vertices, corners, faces, walls and rooms
	SpaceVolume
)

func (t SpaceType) String() string {
	switch t {
	case SpaceGrid:
		return "grid"
	case SpaceMesh:
		return "mesh"
	case SpaceVolume:
		return "volume"
	default:
		return "unknown"
	}
}

// ParseSpaceType maps a lowercase name back to a SpaceType
func ParseSpaceType(name string) (SpaceType, bool) {
	switch name {
	case "grid":
		return SpaceGrid, true
	case "mesh":
		return SpaceMesh, true
	case "volume":
		return SpaceVolume, true
	}
	return 0, false
}

// Edge connects two grid vertices
// Type1 tags travel from Vertex1 to Vertex2, Type2 the reverse direction
type Edge struct {
	Vertex1, Vertex2 uint16
	Type1, Type2     uint16
}

// Corner references a vertex of a mesh face; Type tags the face edge starting here
type Corner struct {
	Vertex uint16
	Type   uint16
}

// Face consumes CornerCount consecutive corners
type Face struct {
	CornerCount uint16
	Type        uint16
}

type Wall struct {
	Face uint16
	Type uint16
}

// Room consumes FrontWallCount+BackWallCount consecutive walls
type Room struct {
	FrontWallCount uint16
	BackWallCount  uint16
	Type           uint16
}
