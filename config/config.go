// Package config loads the engine and demo configuration from TOML
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

var ErrInvalid = errors.New("invalid config")

// Duration is a time.Duration written as a Go duration string ("5s", "16ms")
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("duration %q: %w", text, ErrInvalid)
	}
	*d = Duration(v)
	return nil
}

type Config struct {
	Log       Log       `toml:"log"`
	Engine    Engine    `toml:"engine"`
	AI        AI        `toml:"ai"`
	Navigator Navigator `toml:"navigator"`
	Physics   Physics   `toml:"physics"`
	Audio     Audio     `toml:"audio"`
	Render    Render    `toml:"render"`
	Inspect   Inspect   `toml:"inspect"`
	Scenario  Scenario  `toml:"scenario"`
}

type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	// Output is stderr, stdout or a file path
	Output string `toml:"output"`
}

type Engine struct {
	// FrameRate is world updates per second
	FrameRate int `toml:"frame_rate"`
	// PhysicsRate is physics steps per second; zero steps once per frame
	PhysicsRate int `toml:"physics_rate"`
}

// ModuleNavAI selects the navai module, the only AI module built in
const ModuleNavAI = "navai"

type AI struct {
	Module          string `toml:"module"`
	DeveloperMode   bool   `toml:"developer_mode"`
	RebuildInterval int    `toml:"rebuild_interval"`
}

type NavigatorType struct {
	Tag          int     `toml:"tag"`
	FixCost      float32 `toml:"fix_cost"`
	CostPerMeter float32 `toml:"cost_per_meter"`
}

type Navigator struct {
	SpaceType           string          `toml:"space_type"`
	Layer               int             `toml:"layer"`
	MaxOutsideDistance  float32         `toml:"max_outside_distance"`
	DefaultFixCost      float32         `toml:"default_fix_cost"`
	DefaultCostPerMeter float32         `toml:"default_cost_per_meter"`
	BlockingCost        float32         `toml:"blocking_cost"`
	Types               []NavigatorType `toml:"types,omitempty"`
}

type Physics struct {
	Restitution float32  `toml:"restitution"`
	MaxStep     Duration `toml:"max_step"`
}

type Sound struct {
	Wave     string   `toml:"wave"`
	Freq     float64  `toml:"freq"`
	Overtone float64  `toml:"overtone"`
	Duration Duration `toml:"duration"`
	Attack   Duration `toml:"attack"`
	Release  Duration `toml:"release"`
	Volume   float64  `toml:"volume"`
}

type Audio struct {
	SampleRate int              `toml:"sample_rate"`
	Gain       float32          `toml:"gain"`
	Sounds     map[string]Sound `toml:"sounds,omitempty"`
}

type Render struct {
	Scale         float64 `toml:"scale"`
	ShowColliders bool    `toml:"show_colliders"`
	StatusLine    bool    `toml:"status_line"`
}

type Inspect struct {
	Enabled       bool     `toml:"enabled"`
	Address       string   `toml:"address"`
	Path          string   `toml:"path"`
	SendQueueSize int      `toml:"send_queue_size"`
	WriteTimeout  Duration `toml:"write_timeout"`
	MaxClients    int      `toml:"max_clients"`
}

// Cell addresses a grid vertex of the scenario
type Cell struct {
	X int `toml:"x"`
	Z int `toml:"z"`
}

type Scenario struct {
	Columns int     `toml:"columns"`
	Rows    int     `toml:"rows"`
	Spacing float64 `toml:"spacing"`
	Blocked []Cell  `toml:"blocked"`
	Start   Cell    `toml:"start"`
	Goal    Cell    `toml:"goal"`
	// AgentSpeed is meters per second of the collider following the path
	AgentSpeed float32 `toml:"agent_speed"`
	Maze       Maze    `toml:"maze"`
}

// Maze replaces the blocked cells with the walls of a generated maze
type Maze struct {
	Enabled bool `toml:"enabled"`
	// Braiding is the chance to open a dead end into a loop, 0 keeps a perfect maze
	Braiding float64 `toml:"braiding"`
	// Seed zero picks a random maze
	Seed uint64 `toml:"seed"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Log:    Log{Level: "info", Format: "text", Output: "stderr"},
		Engine: Engine{FrameRate: 30, PhysicsRate: 60},
		AI:     AI{Module: ModuleNavAI, RebuildInterval: 4},
		Navigator: Navigator{
			SpaceType:           "grid",
			MaxOutsideDistance:  0.5,
			DefaultCostPerMeter: 1,
			BlockingCost:        1000,
		},
		Physics: Physics{Restitution: 0.5, MaxStep: Duration(50 * time.Millisecond)},
		Audio:   Audio{SampleRate: 48000, Gain: 1},
		Render:  Render{ShowColliders: true, StatusLine: true},
		Inspect: Inspect{
			Address:       "127.0.0.1:7777",
			Path:          "/ws",
			SendQueueSize: 256,
			WriteTimeout:  Duration(5 * time.Second),
			MaxClients:    16,
		},
		Scenario: Scenario{
			Columns:    12,
			Rows:       8,
			Spacing:    1,
			Blocked:    []Cell{{X: 5, Z: 2}, {X: 5, Z: 3}, {X: 5, Z: 4}, {X: 5, Z: 5}},
			Start:      Cell{X: 1, Z: 4},
			Goal:       Cell{X: 10, Z: 4},
			AgentSpeed: 2,
		},
	}
}

// Parse decodes TOML over the defaults; unknown keys are rejected
// A list given in the file replaces the default list instead of extending it
func Parse(data []byte) (Config, error) {
	cfg := Default()
	blocked := cfg.Scenario.Blocked
	cfg.Scenario.Blocked = nil
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("%s: %w", strict.String(), ErrInvalid)
		}
		return Config{}, fmt.Errorf("decode: %w: %w", ErrInvalid, err)
	}
	if cfg.Scenario.Blocked == nil {
		cfg.Scenario.Blocked = blocked
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the file at path
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Write encodes the configuration as TOML
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).SetIndentTables(true).Encode(c)
}
