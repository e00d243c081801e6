package world

import (
	"time"

	"github.com/LordOfDragons/dragengine-sub060/navigation"
)

// GraphicPeer renders the world
type GraphicPeer interface {
	Update(elapsed time.Duration)
	SizeChanged()
	HeightTerrainChanged()
	DebugDrawerAdded(d *DebugDrawer)
	DebugDrawerRemoved(d *DebugDrawer)
	AllDebugDrawersRemoved()
	Dispose()
}

// PhysicsPeer simulates colliders
type PhysicsPeer interface {
	Update(elapsed time.Duration)
	ProcessPhysics(elapsed time.Duration)
	SizeChanged()
	PhysicsChanged()
	HeightTerrainChanged()
	ColliderAdded(c *Collider)
	ColliderRemoved(c *Collider)
	AllCollidersRemoved()
	Dispose()
}

// AudioPeer mixes the speakers
type AudioPeer interface {
	Update(elapsed time.Duration)
	SizeChanged()
	AudioChanged()
	SpeakerAdded(s *Speaker)
	SpeakerRemoved(s *Speaker)
	AllSpeakersRemoved()
	Dispose()
}

// NetworkPeer mirrors world state to remote observers
type NetworkPeer interface {
	WorldEvent(e Event)
	Dispose()
}

// AIPeer holds whole-world navigation state; resources carry their own finer peers
type AIPeer interface {
	Update(elapsed time.Duration)
	HeightTerrainChanged()
	NavigationSpaceAdded(s *navigation.Space)
	NavigationSpaceRemoved(s *navigation.Space)
	AllNavigationSpacesRemoved()
	NavigationBlockerAdded(b *navigation.Blocker)
	NavigationBlockerRemoved(b *navigation.Blocker)
	AllNavigationBlockersRemoved()
	NavigatorAdded(n *navigation.Navigator)
	NavigatorRemoved(n *navigation.Navigator)
	AllNavigatorsRemoved()
	Dispose()
}

// HeightTerrainPeer is the AI object backing a height terrain
type HeightTerrainPeer interface {
	HeightChanged()
	Dispose()
}

// PeerLoader attaches resource peers when a resource enters a world
// The AI system installs itself here while it manages the world
type PeerLoader interface {
	LoadNavigationSpace(w *World, s *navigation.Space) error
	LoadNavigationBlocker(w *World, b *navigation.Blocker) error
	LoadNavigator(w *World, n *navigation.Navigator) error
	LoadHeightTerrain(w *World, h *HeightTerrain) error
}

// --- No-op bases ---

type BaseGraphicPeer struct{}

func (BaseGraphicPeer) Update(time.Duration)            {}
func (BaseGraphicPeer) SizeChanged()                    {}
func (BaseGraphicPeer) HeightTerrainChanged()           {}
func (BaseGraphicPeer) DebugDrawerAdded(*DebugDrawer)   {}
func (BaseGraphicPeer) DebugDrawerRemoved(*DebugDrawer) {}
func (BaseGraphicPeer) AllDebugDrawersRemoved()         {}
func (BaseGraphicPeer) Dispose()                        {}

type BasePhysicsPeer struct{}

func (BasePhysicsPeer) Update(time.Duration)         {}
func (BasePhysicsPeer) ProcessPhysics(time.Duration) {}
func (BasePhysicsPeer) SizeChanged()                 {}
func (BasePhysicsPeer) PhysicsChanged()              {}
func (BasePhysicsPeer) HeightTerrainChanged()        {}
func (BasePhysicsPeer) ColliderAdded(*Collider)      {}
func (BasePhysicsPeer) ColliderRemoved(*Collider)    {}
func (BasePhysicsPeer) AllCollidersRemoved()         {}
func (BasePhysicsPeer) Dispose()                     {}

type BaseAudioPeer struct{}

func (BaseAudioPeer) Update(time.Duration)    {}
func (BaseAudioPeer) SizeChanged()            {}
func (BaseAudioPeer) AudioChanged()           {}
func (BaseAudioPeer) SpeakerAdded(*Speaker)   {}
func (BaseAudioPeer) SpeakerRemoved(*Speaker) {}
func (BaseAudioPeer) AllSpeakersRemoved()     {}
func (BaseAudioPeer) Dispose()                {}

type BaseNetworkPeer struct{}

func (BaseNetworkPeer) WorldEvent(Event) {}
func (BaseNetworkPeer) Dispose()         {}

type BaseAIPeer struct{}

func (BaseAIPeer) Update(time.Duration)                         {}
func (BaseAIPeer) HeightTerrainChanged()                        {}
func (BaseAIPeer) NavigationSpaceAdded(*navigation.Space)       {}
func (BaseAIPeer) NavigationSpaceRemoved(*navigation.Space)     {}
func (BaseAIPeer) AllNavigationSpacesRemoved()                  {}
func (BaseAIPeer) NavigationBlockerAdded(*navigation.Blocker)   {}
func (BaseAIPeer) NavigationBlockerRemoved(*navigation.Blocker) {}
func (BaseAIPeer) AllNavigationBlockersRemoved()                {}
func (BaseAIPeer) NavigatorAdded(*navigation.Navigator)         {}
func (BaseAIPeer) NavigatorRemoved(*navigation.Navigator)       {}
func (BaseAIPeer) AllNavigatorsRemoved()                        {}
func (BaseAIPeer) Dispose()                                     {}
