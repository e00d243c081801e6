package navigation

// Container is the world a resource is linked into
type Container interface {
	Name() string
}

// Link stores the back-reference to the owning world
// Only the world writes it
type Link struct {
	parent Container
}

// ParentWorld returns the owning world or nil
func (l *Link) ParentWorld() Container {
	return l.parent
}

// SetParentWorld is called by the world on add and remove
func (l *Link) SetParentWorld(c Container) {
	l.parent = c
}

// Linked reports whether the resource belongs to any world
func (l *Link) Linked() bool {
	return l.parent != nil
}
