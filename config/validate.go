package config

import (
	"fmt"

	"github.com/LordOfDragons/dragengine-sub060/audio"
	"github.com/LordOfDragons/dragengine-sub060/logging"
	"github.com/LordOfDragons/dragengine-sub060/navigation"
)

// Validate reports the first invalid setting
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w: %w", ErrInvalid, err)
	}
	switch c.Log.Format {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("log.format %q: %w", c.Log.Format, ErrInvalid)
	}
	if c.Engine.FrameRate <= 0 || c.Engine.PhysicsRate < 0 {
		return fmt.Errorf("engine rates %d/%d: %w", c.Engine.FrameRate, c.Engine.PhysicsRate, ErrInvalid)
	}
	if c.AI.Module != ModuleNavAI {
		return fmt.Errorf("ai.module %q: %w", c.AI.Module, ErrInvalid)
	}
	if c.AI.RebuildInterval < 0 {
		return fmt.Errorf("ai.rebuild_interval %d: %w", c.AI.RebuildInterval, ErrInvalid)
	}
	if err := c.Navigator.validate(); err != nil {
		return err
	}
	if c.Physics.Restitution < 0 || c.Physics.Restitution > 1 {
		return fmt.Errorf("physics.restitution %g: %w", c.Physics.Restitution, ErrInvalid)
	}
	if c.Audio.SampleRate <= 0 || c.Audio.Gain < 0 {
		return fmt.Errorf("audio sample rate %d gain %g: %w", c.Audio.SampleRate, c.Audio.Gain, ErrInvalid)
	}
	for name, s := range c.Audio.Sounds {
		if _, err := s.sound(); err != nil {
			return fmt.Errorf("audio.sounds.%s: %w", name, err)
		}
	}
	if c.Render.Scale < 0 {
		return fmt.Errorf("render.scale %g: %w", c.Render.Scale, ErrInvalid)
	}
	if err := c.Inspect.Network().Validate(); err != nil {
		return fmt.Errorf("inspect: %w: %w", ErrInvalid, err)
	}
	return c.Scenario.validate()
}

func (n Navigator) validate() error {
	if _, ok := navigation.ParseSpaceType(n.SpaceType); !ok {
		return fmt.Errorf("navigator.space_type %q: %w", n.SpaceType, ErrInvalid)
	}
	if n.MaxOutsideDistance < 0 || n.DefaultFixCost < 0 || n.DefaultCostPerMeter < 0 || n.BlockingCost <= 0 {
		return fmt.Errorf("navigator costs: %w", ErrInvalid)
	}
	seen := make(map[int]bool, len(n.Types))
	for _, t := range n.Types {
		if seen[t.Tag] {
			return fmt.Errorf("navigator type %d repeated: %w", t.Tag, ErrInvalid)
		}
		seen[t.Tag] = true
		if t.FixCost < 0 || t.CostPerMeter < 0 {
			return fmt.Errorf("navigator type %d costs: %w", t.Tag, ErrInvalid)
		}
	}
	return nil
}

func (s Scenario) validate() error {
	if s.Columns < 2 || s.Rows < 1 || s.Spacing <= 0 || s.AgentSpeed <= 0 {
		return fmt.Errorf("scenario %dx%d spacing %g speed %g: %w", s.Columns, s.Rows, s.Spacing, s.AgentSpeed, ErrInvalid)
	}
	if s.Maze.Braiding < 0 || s.Maze.Braiding > 1 {
		return fmt.Errorf("scenario.maze.braiding %g: %w", s.Maze.Braiding, ErrInvalid)
	}
	inside := func(c Cell) bool { return c.X >= 0 && c.Z >= 0 && c.X < s.Columns && c.Z < s.Rows }
	for _, c := range append([]Cell{s.Start, s.Goal}, s.Blocked...) {
		if !inside(c) {
			return fmt.Errorf("scenario cell %d,%d outside %dx%d: %w", c.X, c.Z, s.Columns, s.Rows, ErrInvalid)
		}
	}
	return nil
}

func (s Sound) sound() (audio.Sound, error) {
	wave, ok := audio.ParseWave(s.Wave)
	if !ok {
		return audio.Sound{}, fmt.Errorf("wave %q: %w", s.Wave, ErrInvalid)
	}
	out := audio.Sound{
		Wave:     wave,
		Freq:     s.Freq,
		Overtone: s.Overtone,
		Duration: s.Duration.Std(),
		Attack:   s.Attack.Std(),
		Release:  s.Release.Std(),
		Volume:   s.Volume,
	}
	if err := out.Validate(); err != nil {
		return audio.Sound{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return out, nil
}
