package config

import (
	"maps"

	"github.com/gopxl/beep"

	"github.com/LordOfDragons/dragengine-sub060/audio"
	"github.com/LordOfDragons/dragengine-sub060/navigation"
	"github.com/LordOfDragons/dragengine-sub060/network"
)

// Apply copies the navigator settings onto nav
func (n Navigator) Apply(nav *navigation.Navigator) {
	spaceType, _ := navigation.ParseSpaceType(n.SpaceType)
	nav.SetSpaceType(spaceType)
	nav.SetLayer(n.Layer)
	nav.SetMaxOutsideDistance(n.MaxOutsideDistance)
	nav.SetDefaultFixCost(n.DefaultFixCost)
	nav.SetDefaultCostPerMeter(n.DefaultCostPerMeter)
	nav.SetBlockingCost(n.BlockingCost)
	nav.RemoveAllTypes()
	for _, t := range n.Types {
		typ := nav.AddType(t.Tag)
		typ.SetFixCost(t.FixCost)
		typ.SetCostPerMeter(t.CostPerMeter)
	}
	nav.NotifyTypesChanged()
}

// Library builds the sound library: the defaults overlaid with the configured sounds
func (a Audio) Library() (*audio.Library, error) {
	lib := audio.NewLibrary(beep.SampleRate(a.SampleRate), maps.Clone(audio.DefaultSounds))
	for name, s := range a.Sounds {
		sound, err := s.sound()
		if err != nil {
			return nil, err
		}
		if err := lib.Define(name, sound); err != nil {
			return nil, err
		}
	}
	return lib, nil
}

// Network returns the inspector service configuration
func (i Inspect) Network() *network.Config {
	cfg := network.DefaultConfig()
	cfg.Enabled = i.Enabled
	cfg.Address = i.Address
	cfg.Path = i.Path
	cfg.SendQueueSize = i.SendQueueSize
	cfg.WriteTimeout = i.WriteTimeout.Std()
	cfg.MaxClients = i.MaxClients
	return cfg
}
