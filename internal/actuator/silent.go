package actuator

import (
	"sync"
	"time"
)

func init() {
	Register("none", "no sound; beeps are only counted", func(Options) (Buzzer, error) {
		return &Silent{}, nil
	})
}

// Silent is a buzzer that makes no sound. It remembers every beep.
type Silent struct {
	mu    sync.Mutex
	beeps []time.Duration
}

// Beep records d.
func (s *Silent) Beep(d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.beeps = append(s.beeps, d)
	return nil
}

// Beeps returns the recorded durations.
func (s *Silent) Beeps() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.beeps...)
}

// Close does nothing.
func (s *Silent) Close() error { return nil }
