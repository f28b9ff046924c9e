package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/jsgotchi/internal/actuator"
	"github.com/vovakirdan/jsgotchi/internal/config"
	"github.com/vovakirdan/jsgotchi/internal/core"
	"github.com/vovakirdan/jsgotchi/internal/device"
	"github.com/vovakirdan/jsgotchi/internal/journal"
	"github.com/vovakirdan/jsgotchi/internal/lcd"
	"github.com/vovakirdan/jsgotchi/internal/peer"
	"github.com/vovakirdan/jsgotchi/internal/pet"
	"github.com/vovakirdan/jsgotchi/internal/storage"
)

// loadConfig resolves the effective configuration:
// env file, YAML, preset, GOTCHI_* variables, then flags.
func loadConfig() (config.Config, error) {
	if err := config.LoadEnv(flagEnvFile); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParsePreset(flagPreset)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)
	config.ApplyEnv(&cfg)

	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	if err := checkSoundBackend(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// checkSoundBackend rejects a sound.backend nobody registered. A backend that
// exists but fails to start (no audio device) still falls back to silence.
func checkSoundBackend(cfg config.Config) error {
	if !actuator.Exists(cfg.Sound.Backend) {
		return fmt.Errorf("sound.backend: unknown backend %q (see 'gotchi backends')", cfg.Sound.Backend)
	}
	return nil
}

// app is one fully wired pet device.
type app struct {
	cfg     config.Config
	log     *log.Logger
	clock   core.Clock
	petID   uuid.UUID
	name    string
	panel   *lcd.Panel
	dev     *device.Device
	buzzer  actuator.Buzzer
	store   *storage.Store
	journal *journal.EventJournal
}

// newApp builds the device and its sinks. termOut receives the terminal
// bell when that buzzer backend is selected.
func newApp(cfg config.Config, logger *log.Logger, termOut io.Writer) (*app, error) {
	a := &app{
		cfg:   cfg,
		log:   logger,
		clock: core.SystemClock{},
		name:  flagName,
		panel: lcd.NewPanel(),
	}

	dbPath, err := config.ExpandHome(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}
	a.petID, err = loadPetID(identityPath(dbPath))
	if err != nil {
		return nil, err
	}

	if cfg.Storage.Enabled {
		store, openErr := storage.Open(dbPath)
		if openErr != nil {
			logger.Warn("could not open history database", "error", openErr)
		} else {
			a.store = store
			if regErr := store.RegisterPet(a.petID.String(), a.name); regErr != nil {
				logger.Warn("could not register pet", "error", regErr)
			}
		}
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	engine := pet.NewEngine(cfg.Tuning(), a.clock.Now(), cfg.Roller(seed))

	a.buzzer, err = actuator.CreateOrSilent(cfg.Sound.Backend, actuator.Options{
		ToneHz: cfg.Sound.ToneHz,
		Volume: cfg.Sound.Volume,
		Out:    termOut,
	})
	if err != nil {
		logger.Warn("buzzer unavailable, staying silent", "backend", cfg.Sound.Backend, "error", err)
	}

	opts := device.Options{
		Runtime: core.RuntimeConfig{
			TickInterval: cfg.Engine.TickInterval,
			PollInterval: cfg.Engine.PollInterval,
			Seed:         seed,
		},
		LightBelow:      cfg.Device.LightBelow,
		CryDuration:     cfg.Device.CryDuration,
		CryCooldown:     cfg.Device.CryCooldown,
		ClockFormat:     cfg.Device.ClockFormat,
		ForgetOnAbsence: cfg.Social.ForgetOnAbsence,
	}
	a.dev = device.New(engine, a.panel, &actuator.MemoryLED{}, a.buzzer, a.clock, opts, logger)

	if a.store != nil {
		id := a.petID.String()
		a.dev.AddSink("storage", device.SinkFunc(func(e pet.Event) error {
			return a.store.RecordEvent(id, e)
		}))
	}

	if cfg.Journal.Enabled {
		dir, dirErr := config.ExpandHome(cfg.Journal.Dir)
		if dirErr != nil {
			logger.Warn("journal disabled", "error", dirErr)
		} else {
			a.journal = journal.NewEventJournal(dir, a.clock)
			a.dev.AddSink("journal", a.journal)
		}
	}

	logger.Info("pet ready", "name", a.name, "id", a.petID, "seed", seed)
	return a, nil
}

// status is what the beacon advertises about the pet.
func (a *app) status() peer.Status {
	s := a.dev.Snapshot()
	return peer.Status{Level: s.Level, State: s.AvatarState.String()}
}

// startPeers runs the beacon and, when peers are configured, discovery.
// The returned channel is nil when discovery is off.
func (a *app) startPeers(ctx context.Context) <-chan peer.Result {
	pc := a.cfg.Peer
	if !pc.Enabled {
		return nil
	}

	beacon := peer.NewBeacon(a.petID, pc.Name, a.status, a.clock, a.log)
	a.log.Info("beacon up", "id", beacon.ID(), "listen", pc.Listen)
	go func() {
		if err := beacon.Serve(ctx, pc.Listen); err != nil {
			a.log.Error("beacon stopped", "error", err)
		}
	}()

	if len(pc.Peers) == 0 {
		a.log.Info("no peers configured, discovery off")
		return nil
	}

	scanner := &peer.WSScanner{
		Peers:       pc.Peers,
		Name:        pc.Name,
		Self:        a.petID,
		DialTimeout: pc.DialTimeout,
		Log:         a.log,
	}
	discovery := peer.NewDiscovery(scanner, pc.ScanWindow, a.log)
	go func() {
		if err := discovery.Run(ctx); err != nil {
			a.log.Error("discovery stopped", "error", err)
		}
	}()
	return discovery.Results()
}

// run drives the device and its peers until ctx is done.
func (a *app) run(ctx context.Context) error {
	return a.dev.Run(ctx, a.startPeers(ctx))
}

// Close releases the buzzer, the journal and the database.
func (a *app) Close() {
	if a.buzzer != nil {
		if err := a.buzzer.Close(); err != nil {
			a.log.Warn("buzzer close failed", "error", err)
		}
	}
	if a.journal != nil {
		if err := a.journal.Close(); err != nil {
			a.log.Warn("journal close failed", "error", err)
		}
	}
	if a.store != nil {
		a.store.Close()
	}
}
