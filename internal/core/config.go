package core

import "time"

// RuntimeConfig contains configuration passed to the device at startup.
// The core never reads a global clock or RNG; both are derived from this.
type RuntimeConfig struct {
	TickInterval time.Duration // Simulation step period (firmware: 800ms)
	PollInterval time.Duration // Input polling period (firmware: 100ms)
	Seed         int64         // RNG seed for quality rolls, 0 = time based
}

// DefaultConfig returns a RuntimeConfig with the firmware cadence.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		TickInterval: 800 * time.Millisecond,
		PollInterval: 100 * time.Millisecond,
		Seed:         0, // 0 means use current time in platform layer
	}
}

// TickRate returns the approximate number of ticks per second.
func (c RuntimeConfig) TickRate() float64 {
	if c.TickInterval <= 0 {
		return 0
	}
	return float64(time.Second) / float64(c.TickInterval)
}
