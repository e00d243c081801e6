package audio

import (
	"math"
	"math/rand/v2"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

var waveNames = map[string]WaveType{
	"sine":   WaveSine,
	"square": WaveSquare,
	"saw":    WaveSaw,
	"noise":  WaveNoise,
}

// ParseWave maps a wave name to its type
func ParseWave(name string) (WaveType, bool) {
	w, ok := waveNames[name]
	return w, ok
}

// Gains of the fundamental and the overtone partial when a sound has one
const (
	fundamentalGain = 0.7
	overtoneGain    = 0.3
)

// partial is one frequency of a tone with its running phase in [0, 1)
type partial struct {
	step  float64 // phase advance per frame
	gain  float64
	phase float64
}

// tone renders the partials of a Sound through its attack and release ramp
type tone struct {
	wave     WaveType
	partials []partial
	noise    *rand.Rand

	position     int
	frames       int
	attack       int
	release      int
	releaseStart int
}

func newTone(s Sound, rate beep.SampleRate) *tone {
	t := &tone{
		wave:    s.Wave,
		frames:  rate.N(s.Duration),
		attack:  rate.N(s.Attack),
		release: rate.N(s.Release),
	}
	t.releaseStart = max(t.frames-t.release, t.attack)

	step := s.Freq / float64(rate)
	if s.Overtone > 0 {
		t.partials = []partial{{step: step, gain: fundamentalGain}, {step: step * s.Overtone, gain: overtoneGain}}
	} else {
		t.partials = []partial{{step: step, gain: 1}}
	}
	if s.Wave == WaveNoise {
		// seeded from the pitch so a rendered buffer is reproducible
		seed := math.Float64bits(s.Freq)
		t.noise = rand.New(rand.NewPCG(seed, uint64(t.frames)))
	}
	return t
}

// sample is the wave value at phase
func (t *tone) sample(phase float64) float64 {
	switch t.wave {
	case WaveSquare:
		if phase >= 0.5 {
			return -1
		}
		return 1
	case WaveSaw:
		return 2 * (phase - 0.5)
	case WaveNoise:
		return t.noise.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// ramp is the envelope gain at the current frame
func (t *tone) ramp() float64 {
	switch {
	case t.position >= t.releaseStart && t.release > 0:
		return max(float64(t.frames-t.position)/float64(t.release), 0)
	case t.position < t.attack:
		return float64(t.position) / float64(t.attack)
	}
	return 1
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.frames {
			return i, i > 0
		}
		var v float64
		for k := range t.partials {
			p := &t.partials[k]
			v += p.gain * t.sample(p.phase)
			p.phase += p.step
			p.phase -= math.Floor(p.phase)
		}
		v *= t.ramp()
		samples[i] = [2]float64{v, v}
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// newVolume scales linearly; zero and below is silent since log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
