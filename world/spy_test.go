package world

import (
	"errors"
	"time"

	"github.com/LordOfDragons/dragengine-sub060/navigation"
)

// callLog is shared between spy peers to assert cross-peer ordering
type callLog struct {
	calls []string
}

func (l *callLog) add(s string) { l.calls = append(l.calls, s) }

func (l *callLog) count(s string) int {
	n := 0
	for _, c := range l.calls {
		if c == s {
			n++
		}
	}
	return n
}

type spyAI struct {
	BaseAIPeer
	log *callLog
	// seenLinked records whether added navigators were already members on callback
	seenLinked []bool
	world      *World
}

func (p *spyAI) Update(time.Duration)          { p.log.add("ai.update") }
func (p *spyAI) HeightTerrainChanged()         { p.log.add("ai.terrain") }
func (p *spyAI) AllNavigationSpacesRemoved()   { p.log.add("ai.allSpaces") }
func (p *spyAI) AllNavigationBlockersRemoved() { p.log.add("ai.allBlockers") }
func (p *spyAI) AllNavigatorsRemoved()         { p.log.add("ai.allNavigators") }
func (p *spyAI) Dispose()                      { p.log.add("ai.dispose") }

func (p *spyAI) NavigationSpaceAdded(s *navigation.Space) {
	p.log.add("ai.spaceAdded")
}

func (p *spyAI) NavigationSpaceRemoved(s *navigation.Space) {
	p.log.add("ai.spaceRemoved")
}

func (p *spyAI) NavigatorAdded(n *navigation.Navigator) {
	p.log.add("ai.navigatorAdded")
	p.seenLinked = append(p.seenLinked, n.ParentWorld() == navigation.Container(p.world) && p.world.Navigators().Contains(n))
}

func (p *spyAI) NavigatorRemoved(n *navigation.Navigator) {
	p.log.add("ai.navigatorRemoved")
}

type spyGraphic struct {
	BaseGraphicPeer
	log *callLog
}

func (p *spyGraphic) Update(time.Duration)  { p.log.add("graphic.update") }
func (p *spyGraphic) SizeChanged()          { p.log.add("graphic.size") }
func (p *spyGraphic) HeightTerrainChanged() { p.log.add("graphic.terrain") }
func (p *spyGraphic) Dispose()              { p.log.add("graphic.dispose") }

type spyPhysics struct {
	BasePhysicsPeer
	log *callLog
}

func (p *spyPhysics) Update(time.Duration)         { p.log.add("physics.update") }
func (p *spyPhysics) ProcessPhysics(time.Duration) { p.log.add("physics.process") }
func (p *spyPhysics) SizeChanged()                 { p.log.add("physics.size") }
func (p *spyPhysics) PhysicsChanged()              { p.log.add("physics.changed") }
func (p *spyPhysics) HeightTerrainChanged()        { p.log.add("physics.terrain") }
func (p *spyPhysics) ColliderAdded(*Collider)      { p.log.add("physics.colliderAdded") }
func (p *spyPhysics) AllCollidersRemoved()         { p.log.add("physics.allColliders") }
func (p *spyPhysics) Dispose()                     { p.log.add("physics.dispose") }

type spyAudio struct {
	BaseAudioPeer
	log *callLog
}

func (p *spyAudio) Update(time.Duration) { p.log.add("audio.update") }
func (p *spyAudio) SizeChanged()         { p.log.add("audio.size") }
func (p *spyAudio) AudioChanged()        { p.log.add("audio.changed") }
func (p *spyAudio) AllSpeakersRemoved()  { p.log.add("audio.allSpeakers") }
func (p *spyAudio) Dispose()             { p.log.add("audio.dispose") }

type spyNetwork struct {
	BaseNetworkPeer
	log    *callLog
	events []Event
}

func (p *spyNetwork) WorldEvent(e Event) { p.events = append(p.events, e) }
func (p *spyNetwork) Dispose()           { p.log.add("network.dispose") }

// failingLoader rejects navigators and accepts everything else
type failingLoader struct {
	loaded int
}

var errNoPeer = errors.New("no peer")

func (l *failingLoader) LoadNavigationSpace(*World, *navigation.Space) error {
	l.loaded++
	return nil
}

func (l *failingLoader) LoadNavigationBlocker(*World, *navigation.Blocker) error {
	l.loaded++
	return nil
}

func (l *failingLoader) LoadNavigator(*World, *navigation.Navigator) error {
	return errNoPeer
}

func (l *failingLoader) LoadHeightTerrain(*World, *HeightTerrain) error {
	l.loaded++
	return nil
}

func newSpyWorld() (*World, *callLog, *spyAI) {
	w := New("test")
	log := &callLog{}
	ai := &spyAI{log: log, world: w}
	w.SetPeerGraphic(&spyGraphic{log: log})
	w.SetPeerPhysics(&spyPhysics{log: log})
	w.SetPeerAudio(&spyAudio{log: log})
	w.SetPeerAI(ai)
	return w, log, ai
}
