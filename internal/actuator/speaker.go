package actuator

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

func init() {
	Register("speaker", "square-wave tone on the default audio device", func(opts Options) (Buzzer, error) {
		s := NewSpeaker(opts.ToneHz, opts.Volume)
		if err := s.Initialize(); err != nil {
			return nil, err
		}
		return s, nil
	})
}

// Speaker plays the buzzer tone through the system audio device.
type Speaker struct {
	mu          sync.Mutex
	toneHz      float64
	volume      float64
	mixer       *beep.Mixer
	initialized bool
}

// NewSpeaker creates a speaker buzzer. Initialize must succeed before it
// makes any sound.
func NewSpeaker(toneHz, volume float64) *Speaker {
	if toneHz <= 0 {
		toneHz = 2000
	}
	return &Speaker{
		toneHz: toneHz,
		volume: math.Max(0, math.Min(1, volume)),
		mixer:  &beep.Mixer{},
	}
}

// Initialize opens the audio device.
func (s *Speaker) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Beep queues a tone of length d.
func (s *Speaker) Beep(d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return nil
	}
	tone := beep.Take(sampleRate.N(d), NewSquareGenerator(sampleRate, s.toneHz, s.volume))
	speaker.Lock()
	s.mixer.Add(tone)
	speaker.Unlock()
	return nil
}

// Close silences the speaker.
func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return nil
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
	return nil
}

// SquareGenerator produces an endless square wave, like a piezo buzzer.
type SquareGenerator struct {
	sr     beep.SampleRate
	freq   float64
	volume float64
	pos    int
}

// NewSquareGenerator creates a square wave at freq Hz.
func NewSquareGenerator(sr beep.SampleRate, freq, volume float64) *SquareGenerator {
	return &SquareGenerator{sr: sr, freq: freq, volume: volume}
}

func (g *SquareGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	period := float64(g.sr) / g.freq
	for i := range samples {
		v := g.volume
		if math.Mod(float64(g.pos), period) >= period/2 {
			v = -g.volume
		}
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *SquareGenerator) Err() error {
	return nil
}
