// Package audio mixes world speakers into a sample stream using beep
package audio

import (
	"log/slog"
	"math"
	"slices"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/LordOfDragons/dragengine-sub060/status"
	"github.com/LordOfDragons/dragengine-sub060/world"
)

// DefaultSampleRate of the mix
const DefaultSampleRate = beep.SampleRate(48000)

// Sink receives each mixed frame; the slice is reused after the call returns
type Sink interface {
	WriteSamples(samples [][2]float64)
}

type Options struct {
	SampleRate beep.SampleRate
	// Library nil builds one from DefaultSounds
	Library *Library
	Sink    Sink
	Logger  *slog.Logger
	Metrics *status.Registry
}

// Module creates audio world peers sharing a sound library
type Module struct {
	opts    Options
	logger  *slog.Logger
	library *Library

	samples *atomic.Int64
	started *atomic.Int64
	missing *atomic.Int64
	voices  *status.Gauge
	peak    *status.Gauge
}

func New(opts Options) *Module {
	if opts.SampleRate <= 0 {
		opts.SampleRate = DefaultSampleRate
	}
	if opts.Library == nil {
		opts.Library = NewLibrary(opts.SampleRate, DefaultSounds)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = status.NewRegistry()
	}
	return &Module{
		opts:    opts,
		logger:  opts.Logger.With("module", "audio"),
		library: opts.Library,
		samples: opts.Metrics.Counter("audio.samples"),
		started: opts.Metrics.Counter("audio.voices_started"),
		missing: opts.Metrics.Counter("audio.missing_sounds"),
		voices:  opts.Metrics.Gauge("audio.voices"),
		peak:    opts.Metrics.Gauge("audio.peak"),
	}
}

func (m *Module) Library() *Library { return m.library }

// CreateWorld returns the peer mixing the speakers of w
func (m *Module) CreateWorld(w *world.World) world.AudioPeer {
	p := &worldPeer{
		module: m,
		world:  w,
		voices: make(map[*world.Speaker]*voice),
		mixer:  &beep.Mixer{},
	}
	p.output = &effects.Gain{Streamer: p.mixer}
	p.AudioChanged()
	for s := range w.Speakers().All() {
		p.speakers = append(p.speakers, s)
	}
	return p
}

// voice is one playing speaker inside the mixer
type voice struct {
	ctrl *beep.Ctrl
	gain *effects.Gain
	done bool
}

type worldPeer struct {
	world.BaseAudioPeer

	module   *Module
	world    *world.World
	speakers []*world.Speaker
	voices   map[*world.Speaker]*voice
	mixer    *beep.Mixer
	output   *effects.Gain
	frame    [][2]float64
}

// Update starts and stops voices to match the speakers, then mixes elapsed worth of samples
func (p *worldPeer) Update(elapsed time.Duration) {
	p.sync()

	n := p.module.opts.SampleRate.N(elapsed)
	if n <= 0 {
		return
	}
	if cap(p.frame) < n {
		p.frame = make([][2]float64, n)
	}
	p.frame = p.frame[:n]
	clear(p.frame)
	p.output.Stream(p.frame)

	var peak float64
	for _, s := range p.frame {
		peak = max(peak, math.Abs(s[0]), math.Abs(s[1]))
	}
	p.module.samples.Add(int64(n))
	p.module.peak.Set(peak)
	if p.module.opts.Sink != nil {
		p.module.opts.Sink.WriteSamples(p.frame)
	}

	p.reap()
}

func (p *worldPeer) sync() {
	for _, s := range p.speakers {
		v, active := p.voices[s]
		switch {
		case s.Playing() && !active:
			p.start(s)
		case !s.Playing() && active:
			p.stop(s)
		case active:
			v.gain.Gain = float64(s.Volume) - 1
		}
	}
}

func (p *worldPeer) start(s *world.Speaker) {
	buf, ok := p.module.library.Buffer(s.Sound)
	if !ok || buf.Len() == 0 {
		p.module.missing.Add(1)
		p.module.logger.Warn("unknown sound", "speaker", s.Name, "sound", s.Sound)
		s.Stop()
		return
	}

	v := &voice{}
	var src beep.Streamer
	if s.Looping {
		src = beep.Loop(-1, buf.Streamer(0, buf.Len()))
	} else {
		src = beep.Seq(buf.Streamer(0, buf.Len()), beep.Callback(func() { v.done = true }))
	}
	v.ctrl = &beep.Ctrl{Streamer: src}
	v.gain = &effects.Gain{Streamer: v.ctrl, Gain: float64(s.Volume) - 1}
	p.voices[s] = v
	p.mixer.Add(v.gain)
	p.module.started.Add(1)
	p.module.voices.Add(1)
}

// stop detaches the voice; the mixer drops it on its next pass
func (p *worldPeer) stop(s *world.Speaker) {
	v, ok := p.voices[s]
	if !ok {
		return
	}
	v.ctrl.Streamer = nil
	delete(p.voices, s)
	p.module.voices.Add(-1)
}

// reap stops speakers whose one-shot sound ran out
func (p *worldPeer) reap() {
	for _, s := range p.speakers {
		if v, ok := p.voices[s]; ok && v.done {
			s.Stop()
			p.stop(s)
		}
	}
}

func (p *worldPeer) AudioChanged() {
	p.output.Gain = float64(p.world.SpeakerGain()) - 1
}

func (p *worldPeer) SpeakerAdded(s *world.Speaker) {
	p.speakers = append(p.speakers, s)
}

func (p *worldPeer) SpeakerRemoved(s *world.Speaker) {
	p.stop(s)
	if i := slices.Index(p.speakers, s); i >= 0 {
		p.speakers = slices.Delete(p.speakers, i, i+1)
	}
}

func (p *worldPeer) AllSpeakersRemoved() {
	for _, s := range p.speakers {
		p.stop(s)
	}
	p.speakers = nil
	p.mixer.Clear()
}

func (p *worldPeer) Dispose() {
	p.AllSpeakersRemoved()
	p.module.logger.Debug("audio peer disposed", "world", p.world.Name())
}
