// Package world holds the resource container that owns navigation resources
// and fans lifecycle events out to the per-system world peers
package world

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/LordOfDragons/dragengine-sub060/navigation"
	"github.com/LordOfDragons/dragengine-sub060/vmath"
)

// Default world attributes
var (
	DefaultSize    = vmath.DVector{X: 1000, Y: 1000, Z: 1000}
	DefaultGravity = vmath.Vector{Y: -9.81}
)

// World owns scene resources and one peer per engine system
//
// A resource belongs to at most one world. The world keeps a strong
// reference while the resource is linked and drops it on removal.
// World is not safe for concurrent use; drive it from one goroutine.
type World struct {
	name   string
	logger *slog.Logger

	size          vmath.DVector
	gravity       vmath.Vector
	speakerGain   float32
	heightTerrain *HeightTerrain

	spaces     List[*navigation.Space]
	blockers   List[*navigation.Blocker]
	navigators List[*navigation.Navigator]
	colliders  List[*Collider]
	speakers   List[*Speaker]
	drawers    List[*DebugDrawer]

	peerGraphic GraphicPeer
	peerPhysics PhysicsPeer
	peerAudio   AudioPeer
	peerNetwork NetworkPeer
	peerAI      AIPeer

	loader PeerLoader

	listeners    map[int]Listener
	listenerKeys []int
	nextListener int
}

// Option configures a new world
type Option func(*World)

// WithLogger sets the logger; nil keeps slog.Default
func WithLogger(l *slog.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates an empty world
func New(name string, opts ...Option) *World {
	w := &World{
		name:        name,
		logger:      slog.Default(),
		size:        DefaultSize,
		gravity:     DefaultGravity,
		speakerGain: 1,
		spaces:      newList[*navigation.Space](),
		blockers:    newList[*navigation.Blocker](),
		navigators:  newList[*navigation.Navigator](),
		colliders:   newList[*Collider](),
		speakers:    newList[*Speaker](),
		drawers:     newList[*DebugDrawer](),
		listeners:   make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With("world", name)
	return w
}

func (w *World) Name() string { return w.name }

func (w *World) Logger() *slog.Logger { return w.logger }

// --- Attributes ---

func (w *World) Size() vmath.DVector { return w.size }

func (w *World) SetSize(size vmath.DVector) {
	if vmath.DVEqual(size, w.size) {
		return
	}
	w.size = size
	if w.peerGraphic != nil {
		w.peerGraphic.SizeChanged()
	}
	if w.peerPhysics != nil {
		w.peerPhysics.SizeChanged()
	}
	if w.peerAudio != nil {
		w.peerAudio.SizeChanged()
	}
	w.emit(EventAttributeChanged, ResourceWorld, 0, "size")
}

func (w *World) Gravity() vmath.Vector { return w.gravity }

func (w *World) SetGravity(g vmath.Vector) {
	if vmath.VEqual(g, w.gravity) {
		return
	}
	w.gravity = g
	if w.peerPhysics != nil {
		w.peerPhysics.PhysicsChanged()
	}
	w.emit(EventAttributeChanged, ResourceWorld, 0, "gravity")
}

func (w *World) SpeakerGain() float32 { return w.speakerGain }

func (w *World) SetSpeakerGain(gain float32) {
	gain = max(gain, 0)
	if vmath.FloatEqual(gain, w.speakerGain) {
		return
	}
	w.speakerGain = gain
	if w.peerAudio != nil {
		w.peerAudio.AudioChanged()
	}
	w.emit(EventAttributeChanged, ResourceWorld, 0, "speaker_gain")
}

func (w *World) HeightTerrain() *HeightTerrain { return w.heightTerrain }

// SetHeightTerrain replaces the terrain; nil removes it
func (w *World) SetHeightTerrain(h *HeightTerrain) error {
	if h == w.heightTerrain {
		return nil
	}
	if h != nil && h.Linked() {
		return fmt.Errorf("height terrain already in world %q: %w", h.ParentWorld().Name(), ErrInvalidParam)
	}
	if h != nil && w.loader != nil {
		if err := w.loader.LoadHeightTerrain(w, h); err != nil {
			return fmt.Errorf("load height terrain: %w", err)
		}
	}

	if w.heightTerrain != nil {
		w.heightTerrain.SetParentWorld(nil)
	}
	w.heightTerrain = h
	if h != nil {
		h.SetParentWorld(w)
	}

	if w.peerGraphic != nil {
		w.peerGraphic.HeightTerrainChanged()
	}
	if w.peerPhysics != nil {
		w.peerPhysics.HeightTerrainChanged()
	}
	if w.peerAI != nil {
		w.peerAI.HeightTerrainChanged()
	}
	w.emit(EventAttributeChanged, ResourceHeightTerrain, 0, "height_terrain")
	return nil
}

// --- Peers ---

func (w *World) PeerGraphic() GraphicPeer { return w.peerGraphic }
func (w *World) PeerPhysics() PhysicsPeer { return w.peerPhysics }
func (w *World) PeerAudio() AudioPeer     { return w.peerAudio }
func (w *World) PeerNetwork() NetworkPeer { return w.peerNetwork }
func (w *World) PeerAI() AIPeer           { return w.peerAI }

// SetPeerGraphic disposes the previous graphic peer before storing p
func (w *World) SetPeerGraphic(p GraphicPeer) { replacePeer(&w.peerGraphic, p) }

// SetPeerPhysics disposes the previous physics peer before storing p
func (w *World) SetPeerPhysics(p PhysicsPeer) { replacePeer(&w.peerPhysics, p) }

// SetPeerAudio disposes the previous audio peer before storing p
func (w *World) SetPeerAudio(p AudioPeer) { replacePeer(&w.peerAudio, p) }

// SetPeerNetwork disposes the previous network peer before storing p
func (w *World) SetPeerNetwork(p NetworkPeer) { replacePeer(&w.peerNetwork, p) }

// SetPeerAI disposes the previous AI peer before storing p
func (w *World) SetPeerAI(p AIPeer) { replacePeer(&w.peerAI, p) }

type disposer interface {
	comparable
	Dispose()
}

func replacePeer[P disposer](slot *P, p P) {
	var zero P
	if *slot == p {
		return
	}
	if *slot != zero {
		(*slot).Dispose()
	}
	*slot = p
}

// SetPeerLoader installs the hook creating resource peers on add; nil disables
func (w *World) SetPeerLoader(l PeerLoader) { w.loader = l }

func (w *World) PeerLoader() PeerLoader { return w.loader }

// --- Frame ---

// Update advances the graphic, physics, audio and AI peers in that order
// A panicking peer propagates to the caller; the remaining peers are skipped
func (w *World) Update(elapsed time.Duration) {
	if w.peerGraphic != nil {
		w.peerGraphic.Update(elapsed)
	}
	if w.peerPhysics != nil {
		w.peerPhysics.Update(elapsed)
	}
	if w.peerAudio != nil {
		w.peerAudio.Update(elapsed)
	}
	if w.peerAI != nil {
		w.peerAI.Update(elapsed)
	}
}

// ProcessPhysics runs the physics simulation step only
func (w *World) ProcessPhysics(elapsed time.Duration) {
	if w.peerPhysics != nil {
		w.peerPhysics.ProcessPhysics(elapsed)
	}
}

// --- Listeners ---

// AddListener registers l and returns the function removing it again
func (w *World) AddListener(l Listener) (remove func()) {
	key := w.nextListener
	w.nextListener++
	w.listeners[key] = l
	w.listenerKeys = append(w.listenerKeys, key)
	return func() {
		if _, ok := w.listeners[key]; !ok {
			return
		}
		delete(w.listeners, key)
		for i, k := range w.listenerKeys {
			if k == key {
				w.listenerKeys = append(w.listenerKeys[:i], w.listenerKeys[i+1:]...)
				break
			}
		}
	}
}

func (w *World) ListenerCount() int { return len(w.listeners) }

func (w *World) emit(kind EventKind, resource ResourceKind, count int, attribute string) {
	if len(w.listeners) == 0 && w.peerNetwork == nil {
		return
	}
	e := Event{World: w.name, Kind: kind, Resource: resource, Count: count, Attribute: attribute}
	for _, key := range append([]int(nil), w.listenerKeys...) {
		if l, ok := w.listeners[key]; ok {
			l.WorldChanged(e)
		}
	}
	if w.peerNetwork != nil {
		w.peerNetwork.WorldEvent(e)
	}
}

// --- Teardown ---

// Clear removes every resource, navigation resources last
func (w *World) Clear() {
	w.RemoveAllDebugDrawers()
	w.RemoveAllSpeakers()
	w.RemoveAllColliders()
	_ = w.SetHeightTerrain(nil)
	w.RemoveAllNavigators()
	w.RemoveAllNavigationBlockers()
	w.RemoveAllNavigationSpaces()
}

// Dispose drops all peers first so clearing the world reaches no peer hooks
func (w *World) Dispose() {
	w.SetPeerAI(nil)
	w.SetPeerNetwork(nil)
	w.SetPeerPhysics(nil)
	w.SetPeerAudio(nil)
	w.SetPeerGraphic(nil)
	w.loader = nil
	w.Clear()
	w.logger.Debug("world disposed")
}
