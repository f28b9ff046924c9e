// Package device turns a pet engine into a running gadget: it renders the
// pet onto a 16x2 display, drives the LED and buzzer, reacts to buttons and
// the proximity sensor, and feeds peer discovery results into the engine.
package device

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/jsgotchi/internal/actuator"
	"github.com/vovakirdan/jsgotchi/internal/core"
	"github.com/vovakirdan/jsgotchi/internal/lcd"
	"github.com/vovakirdan/jsgotchi/internal/peer"
	"github.com/vovakirdan/jsgotchi/internal/pet"
)

// Options configures a Device.
type Options struct {
	Runtime         core.RuntimeConfig
	LightBelow      int // LED on while energy < this
	CryDuration     time.Duration
	CryCooldown     time.Duration
	ClockFormat     string
	ForgetOnAbsence bool // clear peers when a scan finds nobody
}

// DefaultOptions returns the firmware behaviour.
func DefaultOptions() Options {
	return Options{
		Runtime:     core.DefaultConfig(),
		LightBelow:  300,
		CryDuration: 900 * time.Millisecond,
		CryCooldown: 30 * time.Second,
		ClockFormat: "15:04",
	}
}

// Sink receives every event the engine emits.
type Sink interface {
	Record(e pet.Event) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(e pet.Event) error

// Record calls f.
func (f SinkFunc) Record(e pet.Event) error { return f(e) }

// Device wires an engine to its display and actuators.
type Device struct {
	engine  *pet.Engine
	display lcd.Display
	led     actuator.LED
	buzzer  actuator.Buzzer
	clock   core.Clock
	log     *log.Logger
	opts    Options

	mu      sync.Mutex
	frame   int
	lightOn bool
	lastCry time.Time
	sensor  bool
	pending core.InputFrame
	sinks   []namedSink
}

type namedSink struct {
	name string
	sink Sink
}

// New creates a device. The status glyphs are loaded onto the display
// immediately.
func New(engine *pet.Engine, display lcd.Display, led actuator.LED, buzzer actuator.Buzzer,
	clock core.Clock, opts Options, logger *log.Logger) *Device {
	if clock == nil {
		clock = core.SystemClock{}
	}
	if logger == nil {
		logger = log.Default()
	}
	if led == nil {
		led = &actuator.MemoryLED{}
	}
	if buzzer == nil {
		buzzer = &actuator.Silent{}
	}
	lcd.LoadStatusGlyphs(display)

	return &Device{
		engine:  engine,
		display: display,
		led:     led,
		buzzer:  buzzer,
		clock:   clock,
		log:     logger,
		opts:    opts,
		pending: core.NewInputFrame(),
	}
}

// AddSink registers a consumer for engine events. Sink errors are logged
// and never stop the device.
func (d *Device) AddSink(name string, s Sink) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sinks = append(d.sinks, namedSink{name: name, sink: s})
}

// Engine returns the pet engine.
func (d *Device) Engine() *pet.Engine {
	return d.engine
}

// Snapshot returns the pet state at the device clock's current time.
func (d *Device) Snapshot() pet.Snapshot {
	return d.engine.Snapshot(d.clock.Now())
}

// LightOn reports the LED level.
func (d *Device) LightOn() bool {
	return d.led.On()
}

// Tick advances the simulation one step and refreshes the outputs.
func (d *Device) Tick(now time.Time) pet.StepResult {
	res := d.engine.Advance(now)
	d.dispatch(res.Events)

	d.mu.Lock()
	d.frame = (d.frame + 1) % 2
	frame := d.frame
	d.mu.Unlock()

	snap := d.engine.Snapshot(now)
	Render(d.display, snap, frame, now, d.opts.ClockFormat)
	d.updateLight(snap)
	return res
}

// Redraw renders the current frame again without advancing the simulation.
func (d *Device) Redraw(now time.Time) {
	d.mu.Lock()
	frame := d.frame
	d.mu.Unlock()
	Render(d.display, d.engine.Snapshot(now), frame, now, d.opts.ClockFormat)
}

// HandleAction applies one input. Proximity actions are level-triggered:
// repeating the current level does nothing.
func (d *Device) HandleAction(a core.Action, now time.Time) []pet.Event {
	var events []pet.Event
	switch a {
	case core.ActionNextTab:
		tab := d.engine.NextTab()
		d.log.Info("switch screen", "tab", tab)
		d.Redraw(now)
	case core.ActionDrink:
		events = d.engine.DrinkEnergy(now)
		d.log.Info("energy drink", "pending", events[0].Pending)
	case core.ActionProximityOn, core.ActionProximityOff:
		level := a == core.ActionProximityOn
		d.mu.Lock()
		changed := d.sensor != level
		d.sensor = level
		d.mu.Unlock()
		if !changed {
			return nil
		}
		events = d.engine.SetProximity(level, now)
		if level {
			d.log.Info("sensor up")
		} else {
			d.log.Info("sensor down")
		}
		d.Redraw(now)
	}
	d.dispatch(events)
	return events
}

// HandlePeers applies the outcome of one discovery window. Discovery only
// answers "anyone nearby", so any sighting counts as a single peer.
func (d *Device) HandlePeers(res peer.Result, now time.Time) []pet.Event {
	if res.Found() {
		d.log.Info("found someone close", "peers", res.Count())
		events := d.engine.SetSocial(1, now)
		d.dispatch(events)
		return events
	}

	d.log.Debug("alone")
	if d.opts.ForgetOnAbsence {
		d.engine.ForgetPeers(now)
		return nil
	}
	return d.engine.SetSocial(0, now)
}

// Press queues a button action for the next input poll. Presses of the
// same button within one poll collapse into one; a new sensor level
// replaces a pending opposite one.
func (d *Device) Press(a core.Action) {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch a {
	case core.ActionProximityOn:
		delete(d.pending.Actions, core.ActionProximityOff)
	case core.ActionProximityOff:
		delete(d.pending.Actions, core.ActionProximityOn)
	}
	d.pending.Set(a)
}

// SetSensor queues a proximity sensor level.
func (d *Device) SetSensor(active bool) {
	if active {
		d.Press(core.ActionProximityOn)
	} else {
		d.Press(core.ActionProximityOff)
	}
}

// Poll runs one input poll: queued actions, then the cry check.
func (d *Device) Poll(now time.Time) {
	d.mu.Lock()
	actions := d.pending.List()
	d.pending.Clear()
	d.mu.Unlock()

	for _, a := range actions {
		d.HandleAction(a, now)
	}
	d.CheckCry(now)
}

// CheckCry sounds the buzzer while the pet is crying, at most once per
// cooldown. It reports whether the buzzer was triggered.
func (d *Device) CheckCry(now time.Time) bool {
	if !d.engine.Snapshot(now).IsCrying {
		return false
	}

	d.mu.Lock()
	if !d.lastCry.IsZero() && now.Sub(d.lastCry) < d.opts.CryCooldown {
		d.mu.Unlock()
		return false
	}
	d.lastCry = now
	d.mu.Unlock()

	d.log.Warn("crying")
	if err := d.buzzer.Beep(d.opts.CryDuration); err != nil {
		d.log.Warn("buzzer failed", "err", err)
	}
	return true
}

// updateLight switches the LED on low energy, logging only transitions.
func (d *Device) updateLight(s pet.Snapshot) {
	on := s.Energy < d.opts.LightBelow

	d.mu.Lock()
	changed := on != d.lightOn
	d.lightOn = on
	d.mu.Unlock()

	if !changed {
		return
	}
	d.led.Set(on)
	if on {
		d.log.Info("light on", "energy", s.Energy)
	} else {
		d.log.Info("light off", "energy", s.Energy)
	}
}

func (d *Device) dispatch(events []pet.Event) {
	if len(events) == 0 {
		return
	}
	for _, e := range events {
		d.logEvent(e)
	}

	d.mu.Lock()
	sinks := append([]namedSink(nil), d.sinks...)
	d.mu.Unlock()

	for _, s := range sinks {
		for _, e := range events {
			if err := s.sink.Record(e); err != nil {
				d.log.Warn("sink failed", "sink", s.name, "kind", e.Kind, "err", err)
			}
		}
	}
}

func (d *Device) logEvent(e pet.Event) {
	switch e.Kind {
	case pet.EventStateChanged:
		d.log.Debug("state changed", "from", e.Previous, "to", e.State)
	case pet.EventFrameworkCompleted:
		d.log.Info("framework completed", "number", e.Framework, "quality", e.Quality)
	case pet.EventLevelUp:
		d.log.Info("level up", "level", e.Level)
	case pet.EventCrying:
		d.log.Debug("lonely for too long")
	}
}

// Run drives the device until ctx is done: the simulation tick, the input
// poll and, when peers is non-nil, discovery results.
func (d *Device) Run(ctx context.Context, peers <-chan peer.Result) error {
	rt := d.opts.Runtime
	if rt.TickInterval <= 0 || rt.PollInterval <= 0 {
		rt = core.DefaultConfig()
	}

	tick := time.NewTicker(rt.TickInterval)
	defer tick.Stop()
	poll := time.NewTicker(rt.PollInterval)
	defer poll.Stop()

	d.log.Debug("device running", "ticks_per_sec", rt.TickRate(), "poll", rt.PollInterval)
	d.Tick(d.clock.Now())
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
			d.Tick(d.clock.Now())
		case <-poll.C:
			d.Poll(d.clock.Now())
		case res, ok := <-peers:
			if !ok {
				peers = nil
				continue
			}
			d.HandlePeers(res, d.clock.Now())
		}
	}
}
