package audio

import (
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/gopxl/beep"
)

// Sound describes a synthesized clip
type Sound struct {
	Wave WaveType
	Freq float64
	// Overtone adds a second partial at Freq*Overtone mixed at 30%; zero disables it
	Overtone float64
	Duration time.Duration
	Attack   time.Duration
	Release  time.Duration
	Volume   float64
}

// Validate rejects clips that render to nothing
func (s Sound) Validate() error {
	switch {
	case s.Duration <= 0:
		return fmt.Errorf("duration %s: %w", s.Duration, ErrInvalidSound)
	case s.Freq < 0 || s.Overtone < 0:
		return fmt.Errorf("frequency %g overtone %g: %w", s.Freq, s.Overtone, ErrInvalidSound)
	case s.Attack < 0 || s.Release < 0:
		return fmt.Errorf("attack %s release %s: %w", s.Attack, s.Release, ErrInvalidSound)
	}
	return nil
}

func (s Sound) streamer(rate beep.SampleRate) beep.Streamer {
	vol := s.Volume
	if vol == 0 {
		vol = 1
	}
	return newVolume(newTone(s, rate), vol)
}

// DefaultSounds is the library every audio module starts with
var DefaultSounds = map[string]Sound{
	"chime":  {Wave: WaveSine, Freq: 880, Overtone: 2, Duration: 400 * time.Millisecond, Attack: 5 * time.Millisecond, Release: 300 * time.Millisecond},
	"buzz":   {Wave: WaveSaw, Freq: 100, Duration: 150 * time.Millisecond, Attack: 5 * time.Millisecond, Release: 50 * time.Millisecond, Volume: 0.6},
	"hum":    {Wave: WaveSine, Freq: 110, Duration: time.Second, Volume: 0.4},
	"whoosh": {Wave: WaveNoise, Duration: 200 * time.Millisecond, Attack: 20 * time.Millisecond, Release: 150 * time.Millisecond, Volume: 0.5},
}

// Library renders named sounds once and hands out buffers
type Library struct {
	format beep.Format

	mu       sync.RWMutex
	sounds   map[string]Sound
	rendered map[string]*beep.Buffer
}

func NewLibrary(rate beep.SampleRate, sounds map[string]Sound) *Library {
	return &Library{
		format:   beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2},
		sounds:   maps.Clone(sounds),
		rendered: make(map[string]*beep.Buffer),
	}
}

func (l *Library) SampleRate() beep.SampleRate { return l.format.SampleRate }

// Define adds or replaces a sound and drops its rendered buffer
func (l *Library) Define(name string, s Sound) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("sound %q: %w", name, err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.sounds == nil {
		l.sounds = make(map[string]Sound)
	}
	l.sounds[name] = s
	delete(l.rendered, name)
	return nil
}

// Names lists the defined sounds in order
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Sorted(maps.Keys(l.sounds))
}

// Buffer returns the rendered sound, generating it on first use
func (l *Library) Buffer(name string) (*beep.Buffer, bool) {
	l.mu.RLock()
	if buf, ok := l.rendered[name]; ok {
		l.mu.RUnlock()
		return buf, true
	}
	l.mu.RUnlock()

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if buf, ok := l.rendered[name]; ok {
		return buf, true
	}
	s, ok := l.sounds[name]
	if !ok {
		return nil, false
	}
	buf := beep.NewBuffer(l.format)
	buf.Append(s.streamer(l.format.SampleRate))
	l.rendered[name] = buf
	return buf, true
}

// Preload renders every defined sound
func (l *Library) Preload() {
	for _, name := range l.Names() {
		l.Buffer(name)
	}
}
