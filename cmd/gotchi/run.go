package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var flagDuration time.Duration

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the pet headless",
	Long: `Run the pet without a screen. Everything the pet does is logged to
stderr; the buzzer, beacon, discovery, journal and history database work
as usual.

Examples:
  gotchi run
  gotchi run --log-level debug
  gotchi run --duration 10m --preset hard`,
	Args: cobra.NoArgs,
	RunE: runHeadless,
}

func init() {
	runCmd.Flags().DurationVar(&flagDuration, "duration", 0, "Stop after this long (0 = until interrupted)")
}

func runHeadless(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr)
	a, err := newApp(cfg, logger, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if flagDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flagDuration)
		defer cancel()
	}

	err = a.run(ctx)
	s := a.dev.Snapshot()
	logger.Info("pet stopped",
		"ticks", s.Tick,
		"level", s.Level,
		"frameworks", s.Framework,
		"state", s.AvatarState,
	)
	return err
}
