// Package ai connects worlds to the active AI module
//
// The module is the factory for AI peers. The System creates peers for
// every resource of every registered world while it is running and drops
// them again when it stops or the module changes.
package ai

import (
	"errors"

	"github.com/LordOfDragons/dragengine-sub060/navigation"
	"github.com/LordOfDragons/dragengine-sub060/world"
)

var (
	// ErrPeerCreation reports a module factory returning no peer
	ErrPeerCreation = errors.New("ai peer creation failed")
	// ErrRunning rejects module changes while the system runs
	ErrRunning = errors.New("ai system is running")
	// ErrNoModule rejects starting without an active module
	ErrNoModule = errors.New("no active ai module")
)

// Module creates the AI peers; every method must return a non-nil peer
type Module interface {
	Name() string
	CreateWorld(w *world.World) world.AIPeer
	CreateNavigationSpace(s *navigation.Space) navigation.SpacePeer
	CreateNavigationBlocker(b *navigation.Blocker) navigation.BlockerPeer
	CreateNavigator(n *navigation.Navigator) navigation.NavigatorPeer
	CreateHeightTerrain(h *world.HeightTerrain) world.HeightTerrainPeer
}
