// Package actuator drives the pet's outputs: the status LED and the buzzer.
// Buzzer backends register themselves in init() and are created by name.
package actuator

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// LED is the status light.
type LED interface {
	Set(on bool)
	On() bool
}

// Buzzer sounds a tone for a fixed duration without blocking the caller.
type Buzzer interface {
	Beep(d time.Duration) error
	Close() error
}

// MemoryLED keeps the light level in memory for a display to read.
type MemoryLED struct {
	on atomic.Bool
}

// Set switches the light.
func (l *MemoryLED) Set(on bool) { l.on.Store(on) }

// On reports the light level.
func (l *MemoryLED) On() bool { return l.on.Load() }

// Options configures a buzzer backend.
type Options struct {
	ToneHz float64
	Volume float64   // 0.0 to 1.0
	Out    io.Writer // terminal for the bell backend
}

// BackendInfo describes a registered buzzer backend.
type BackendInfo struct {
	Name        string
	Description string
}

// Factory creates a buzzer backend.
type Factory func(opts Options) (Buzzer, error)

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds a buzzer backend.
// Typically called from the backend's init() function.
// Panics if a backend with the same name is already registered.
func Register(name, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("actuator: backend %q already registered", name))
	}
	factories[name] = f
	descriptions[name] = description
}

// List returns all registered backends, sorted by name.
func List() []BackendInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]BackendInfo, 0, len(factories))
	for name := range factories {
		result = append(result, BackendInfo{Name: name, Description: descriptions[name]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Create instantiates a buzzer backend by name.
func Create(name string, opts Options) (Buzzer, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("actuator: unknown buzzer backend %q", name)
	}
	return f(opts)
}

// Exists checks if a backend with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}

// CreateOrSilent creates the named backend and falls back to a silent
// buzzer if that fails. The error is returned so the caller can log it.
func CreateOrSilent(name string, opts Options) (Buzzer, error) {
	b, err := Create(name, opts)
	if err != nil {
		return &Silent{}, err
	}
	return b, nil
}
