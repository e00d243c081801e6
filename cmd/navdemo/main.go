// Command navdemo walks an agent across a grid world using the navigation subsystem
//
// Headless mode steps simulated frames as fast as possible and prints the
// path and the metrics. Terminal mode draws the world with tcell until the
// agent arrives or q / Esc is pressed.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/LordOfDragons/dragengine-sub060/config"
	"github.com/LordOfDragons/dragengine-sub060/engine"
	"github.com/LordOfDragons/dragengine-sub060/logging"
	"github.com/LordOfDragons/dragengine-sub060/scenario"
)

// defaultHeadlessFrames bounds a headless run that never arrives
const defaultHeadlessFrames = 10000

type options struct {
	configPath string
	headless   bool
	frames     int
	inspect    string
	maze       bool
	seed       uint64
	dumpConfig bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("navdemo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "TOML configuration file")
	fs.BoolVar(&o.headless, "headless", false, "step without a terminal and print the result")
	fs.IntVar(&o.frames, "frames", 0, "stop after this many frames (0 runs until arrival)")
	fs.StringVar(&o.inspect, "inspect", "", "serve the websocket inspector on this address")
	fs.BoolVar(&o.maze, "maze", false, "replace the blocked cells with a generated maze")
	fs.Uint64Var(&o.seed, "seed", 0, "maze seed (0 is random)")
	fs.BoolVar(&o.dumpConfig, "dump-config", false, "print the effective configuration and exit")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.frames < 0 {
		return o, fmt.Errorf("frames %d: %w", o.frames, config.ErrInvalid)
	}
	return o, nil
}

// loadConfig reads the file named by the flags and applies the flag overrides
func loadConfig(o options) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return config.Config{}, err
		}
	}
	if o.inspect != "" {
		cfg.Inspect.Enabled = true
		cfg.Inspect.Address = o.inspect
	}
	if o.maze {
		cfg.Scenario.Maze.Enabled = true
	}
	if o.seed != 0 {
		cfg.Scenario.Maze.Seed = o.seed
	}
	return cfg, cfg.Validate()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "navdemo: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}
	if o.dumpConfig {
		return cfg.Write(stdout)
	}

	output := cfg.Log.Output
	if !o.headless && (output == logging.OutputStderr || output == logging.OutputStdout || output == "") {
		// the terminal owns both streams while drawing
		output = logging.OutputDiscard
	}
	logOut, closeLog, err := logging.Open(output)
	if err != nil {
		return err
	}
	defer closeLog()
	logger, err := logging.New(logOut, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	var screen tcell.Screen
	if !o.headless {
		if screen, err = tcell.NewScreen(); err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		defer func() {
			if r := recover(); r != nil {
				screen.Fini()
				panic(r)
			}
		}()
	}

	d, err := newDemo(cfg, screen, logger)
	if err != nil {
		if screen != nil {
			screen.Fini()
		}
		return err
	}
	defer d.engine.Close()

	if o.headless {
		frames := o.frames
		if frames == 0 {
			frames = defaultHeadlessFrames
		}
		d.runHeadless(ctx, frames)
	} else {
		err = d.runTerminal(ctx, screen, o.frames)
		screen.Fini()
		if err != nil {
			return err
		}
	}
	return d.report(stdout)
}

// demo is the engine with the scenario world
type demo struct {
	engine *engine.Engine
	scene  *scenario.Scene
	logger *slog.Logger
	frames int
}

func newDemo(cfg config.Config, screen tcell.Screen, logger *slog.Logger) (*demo, error) {
	e, err := engine.New(cfg, engine.Options{Screen: screen, Logger: logger})
	if err != nil {
		return nil, err
	}
	w, err := e.CreateWorld("navdemo")
	if err != nil {
		e.Close()
		return nil, err
	}
	scene, err := scenario.Build(w, cfg.Scenario, cfg.Navigator)
	if err != nil {
		e.Close()
		return nil, err
	}
	if err := e.Start(); err != nil {
		e.Close()
		return nil, err
	}
	if addr := e.Network().Addr(); addr != "" {
		logger.Info("inspector ready", "url", "ws://"+addr+cfg.Inspect.Path)
	}
	if scene.Plan() == 0 {
		logger.Warn("goal unreachable", "start", scene.Start, "goal", scene.Goal)
	}
	return &demo{engine: e, scene: scene, logger: logger}, nil
}

// step advances the agent and the engine by one frame
func (d *demo) step(elapsed time.Duration) {
	d.scene.Advance(elapsed)
	d.engine.Step(elapsed)
	d.frames++
}

// runHeadless steps simulated frames of the configured frame interval until arrival
func (d *demo) runHeadless(ctx context.Context, frames int) {
	interval := d.engine.FrameInterval()
	for range frames {
		if ctx.Err() != nil {
			return
		}
		d.step(interval)
		if d.scene.State() == scenario.StateArrived {
			return
		}
	}
}

func (d *demo) runTerminal(ctx context.Context, screen tcell.Screen, frames int) error {
	quit := make(chan struct{})
	go pollKeys(screen, quit)

	return d.engine.Run(ctx, func(elapsed time.Duration) error {
		select {
		case <-quit:
			return engine.ErrStopRun
		default:
		}
		d.scene.Advance(elapsed)
		d.frames++
		if frames > 0 && d.frames >= frames {
			return engine.ErrStopRun
		}
		return nil
	})
}

// pollKeys closes quit on q, Esc or Ctrl-C; it ends when the screen finishes
func pollKeys(screen tcell.Screen, quit chan<- struct{}) {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				close(quit)
				return
			}
		}
	}
}
