package world

// EventKind classifies a world change
type EventKind uint8

const (
	EventAdded EventKind = iota
	EventRemoved
	EventAllRemoved
	EventAttributeChanged
)

func (k EventKind) String() string {
	switch k {
	case EventAdded:
		return "added"
	case EventRemoved:
		return "removed"
	case EventAllRemoved:
		return "all_removed"
	case EventAttributeChanged:
		return "attribute_changed"
	default:
		return "unknown"
	}
}

// ResourceKind names what an event is about
type ResourceKind uint8

const (
	ResourceWorld ResourceKind = iota
	ResourceNavigationSpace
	ResourceNavigationBlocker
	ResourceNavigator
	ResourceCollider
	ResourceSpeaker
	ResourceDebugDrawer
	ResourceHeightTerrain
)

func (k ResourceKind) String() string {
	switch k {
	case ResourceWorld:
		return "world"
	case ResourceNavigationSpace:
		return "navigation_space"
	case ResourceNavigationBlocker:
		return "navigation_blocker"
	case ResourceNavigator:
		return "navigator"
	case ResourceCollider:
		return "collider"
	case ResourceSpeaker:
		return "speaker"
	case ResourceDebugDrawer:
		return "debug_drawer"
	case ResourceHeightTerrain:
		return "height_terrain"
	default:
		return "unknown"
	}
}

// Event describes one change; Count is the resource count after it
// Attribute is set for EventAttributeChanged
type Event struct {
	World     string
	Kind      EventKind
	Resource  ResourceKind
	Count     int
	Attribute string
}

// Listener observes world changes synchronously on the world thread
type Listener interface {
	WorldChanged(e Event)
}

// ListenerFunc adapts a func as a Listener
type ListenerFunc func(e Event)

func (f ListenerFunc) WorldChanged(e Event) { f(e) }
