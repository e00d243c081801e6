package world

import (
	"fmt"

	"github.com/LordOfDragons/dragengine-sub060/navigation"
)

// member is a resource carrying a navigation.Link back-reference
type member interface {
	comparable
	ParentWorld() navigation.Container
	SetParentWorld(c navigation.Container)
}

// addResource links r, lets the peer loader attach its peer, then runs the world peer hook
func addResource[T member](w *World, list *List[T], r T, kind ResourceKind, load func(T) error, added func(T)) error {
	var zero T
	if r == zero {
		return fmt.Errorf("add %s: nil resource: %w", kind, ErrInvalidParam)
	}
	if parent := r.ParentWorld(); parent != nil {
		return fmt.Errorf("add %s: already in world %q: %w", kind, parent.Name(), ErrInvalidParam)
	}

	list.add(r)
	r.SetParentWorld(w)

	if load != nil && w.loader != nil {
		if err := load(r); err != nil {
			list.remove(r)
			r.SetParentWorld(nil)
			w.logger.Warn("resource peer creation failed, add rolled back", "resource", kind.String(), "error", err)
			return fmt.Errorf("add %s: %w", kind, err)
		}
	}

	if added != nil {
		added(r)
	}
	w.logger.Debug("resource added", "resource", kind.String(), "count", list.Count())
	w.emit(EventAdded, kind, list.Count(), "")
	return nil
}

// removeResource unlinks r and runs the world peer hook while r is still readable
func removeResource[T member](w *World, list *List[T], r T, kind ResourceKind, removed func(T)) error {
	var zero T
	if r == zero {
		return fmt.Errorf("remove %s: nil resource: %w", kind, ErrInvalidParam)
	}
	if r.ParentWorld() != navigation.Container(w) || !list.Contains(r) {
		return fmt.Errorf("remove %s: not in world %q: %w", kind, w.name, ErrInvalidParam)
	}

	list.remove(r)
	r.SetParentWorld(nil)

	if removed != nil {
		removed(r)
	}
	w.logger.Debug("resource removed", "resource", kind.String(), "count", list.Count())
	w.emit(EventRemoved, kind, list.Count(), "")
	return nil
}

// removeAllResources runs the bulk hook once, then unlinks tail to head
func removeAllResources[T member](w *World, list *List[T], kind ResourceKind, allRemoved func()) {
	if allRemoved != nil {
		allRemoved()
	}
	items := list.takeAll()
	for i := len(items) - 1; i >= 0; i-- {
		items[i].SetParentWorld(nil)
	}
	if len(items) > 0 {
		w.logger.Debug("resources cleared", "resource", kind.String(), "count", len(items))
		w.emit(EventAllRemoved, kind, 0, "")
	}
}

// --- Navigation spaces ---

func (w *World) NavigationSpaceCount() int { return w.spaces.Count() }

// NavigationSpaces is a read-only view in insertion order
func (w *World) NavigationSpaces() *List[*navigation.Space] { return &w.spaces }

func (w *World) AddNavigationSpace(s *navigation.Space) error {
	return addResource(w, &w.spaces, s, ResourceNavigationSpace,
		func(s *navigation.Space) error { return w.loader.LoadNavigationSpace(w, s) },
		func(s *navigation.Space) {
			if w.peerAI != nil {
				w.peerAI.NavigationSpaceAdded(s)
			}
		})
}

func (w *World) RemoveNavigationSpace(s *navigation.Space) error {
	return removeResource(w, &w.spaces, s, ResourceNavigationSpace, func(s *navigation.Space) {
		if w.peerAI != nil {
			w.peerAI.NavigationSpaceRemoved(s)
		}
	})
}

func (w *World) RemoveAllNavigationSpaces() {
	removeAllResources(w, &w.spaces, ResourceNavigationSpace, func() {
		if w.peerAI != nil {
			w.peerAI.AllNavigationSpacesRemoved()
		}
	})
}

// --- Navigation blockers ---

func (w *World) NavigationBlockerCount() int { return w.blockers.Count() }

func (w *World) NavigationBlockers() *List[*navigation.Blocker] { return &w.blockers }

func (w *World) AddNavigationBlocker(b *navigation.Blocker) error {
	return addResource(w, &w.blockers, b, ResourceNavigationBlocker,
		func(b *navigation.Blocker) error { return w.loader.LoadNavigationBlocker(w, b) },
		func(b *navigation.Blocker) {
			if w.peerAI != nil {
				w.peerAI.NavigationBlockerAdded(b)
			}
		})
}

func (w *World) RemoveNavigationBlocker(b *navigation.Blocker) error {
	return removeResource(w, &w.blockers, b, ResourceNavigationBlocker, func(b *navigation.Blocker) {
		if w.peerAI != nil {
			w.peerAI.NavigationBlockerRemoved(b)
		}
	})
}

func (w *World) RemoveAllNavigationBlockers() {
	removeAllResources(w, &w.blockers, ResourceNavigationBlocker, func() {
		if w.peerAI != nil {
			w.peerAI.AllNavigationBlockersRemoved()
		}
	})
}

// --- Navigators ---

func (w *World) NavigatorCount() int { return w.navigators.Count() }

func (w *World) Navigators() *List[*navigation.Navigator] { return &w.navigators }

func (w *World) AddNavigator(n *navigation.Navigator) error {
	return addResource(w, &w.navigators, n, ResourceNavigator,
		func(n *navigation.Navigator) error { return w.loader.LoadNavigator(w, n) },
		func(n *navigation.Navigator) {
			if w.peerAI != nil {
				w.peerAI.NavigatorAdded(n)
			}
		})
}

func (w *World) RemoveNavigator(n *navigation.Navigator) error {
	return removeResource(w, &w.navigators, n, ResourceNavigator, func(n *navigation.Navigator) {
		if w.peerAI != nil {
			w.peerAI.NavigatorRemoved(n)
		}
	})
}

func (w *World) RemoveAllNavigators() {
	removeAllResources(w, &w.navigators, ResourceNavigator, func() {
		if w.peerAI != nil {
			w.peerAI.AllNavigatorsRemoved()
		}
	})
}

// --- Colliders ---

func (w *World) ColliderCount() int { return w.colliders.Count() }

func (w *World) Colliders() *List[*Collider] { return &w.colliders }

func (w *World) AddCollider(c *Collider) error {
	return addResource(w, &w.colliders, c, ResourceCollider, nil, func(c *Collider) {
		if w.peerPhysics != nil {
			w.peerPhysics.ColliderAdded(c)
		}
	})
}

func (w *World) RemoveCollider(c *Collider) error {
	return removeResource(w, &w.colliders, c, ResourceCollider, func(c *Collider) {
		if w.peerPhysics != nil {
			w.peerPhysics.ColliderRemoved(c)
		}
	})
}

func (w *World) RemoveAllColliders() {
	removeAllResources(w, &w.colliders, ResourceCollider, func() {
		if w.peerPhysics != nil {
			w.peerPhysics.AllCollidersRemoved()
		}
	})
}

// --- Speakers ---

func (w *World) SpeakerCount() int { return w.speakers.Count() }

func (w *World) Speakers() *List[*Speaker] { return &w.speakers }

func (w *World) AddSpeaker(s *Speaker) error {
	return addResource(w, &w.speakers, s, ResourceSpeaker, nil, func(s *Speaker) {
		if w.peerAudio != nil {
			w.peerAudio.SpeakerAdded(s)
		}
	})
}

func (w *World) RemoveSpeaker(s *Speaker) error {
	return removeResource(w, &w.speakers, s, ResourceSpeaker, func(s *Speaker) {
		if w.peerAudio != nil {
			w.peerAudio.SpeakerRemoved(s)
		}
	})
}

func (w *World) RemoveAllSpeakers() {
	removeAllResources(w, &w.speakers, ResourceSpeaker, func() {
		if w.peerAudio != nil {
			w.peerAudio.AllSpeakersRemoved()
		}
	})
}

// --- Debug drawers ---

func (w *World) DebugDrawerCount() int { return w.drawers.Count() }

func (w *World) DebugDrawers() *List[*DebugDrawer] { return &w.drawers }

func (w *World) AddDebugDrawer(d *DebugDrawer) error {
	return addResource(w, &w.drawers, d, ResourceDebugDrawer, nil, func(d *DebugDrawer) {
		if w.peerGraphic != nil {
			w.peerGraphic.DebugDrawerAdded(d)
		}
	})
}

func (w *World) RemoveDebugDrawer(d *DebugDrawer) error {
	return removeResource(w, &w.drawers, d, ResourceDebugDrawer, func(d *DebugDrawer) {
		if w.peerGraphic != nil {
			w.peerGraphic.DebugDrawerRemoved(d)
		}
	})
}

func (w *World) RemoveAllDebugDrawers() {
	removeAllResources(w, &w.drawers, ResourceDebugDrawer, func() {
		if w.peerGraphic != nil {
			w.peerGraphic.AllDebugDrawersRemoved()
		}
	})
}
