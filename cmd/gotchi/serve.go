package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/jsgotchi/internal/platform/tui"
	"github.com/vovakirdan/jsgotchi/internal/visitor"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Share one pet with everyone over SSH",
	Long: `Start an SSH server showing one shared pet.

Every connected session counts as someone standing next to the pet, so
the pet stays happy while anyone is watching and gets lonely once the
last visitor leaves. Everyone sees the same display and can switch
screens or hand out energy drinks.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, uses ssh.host_key from the config (~/.gotchi/host_key)

Examples:
  gotchi serve                           # Listen on :23234
  gotchi serve --ssh :2222               # Listen on port 2222
  gotchi serve --host-key ./my_host_key  # Use specific host key

Visitors connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (overrides ssh.listen)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (overrides ssh.host_key)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (overrides ssh.idle_timeout)")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagSSHAddr != "" {
		cfg.SSH.Listen = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.SSH.HostKey = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.SSH.IdleTimeout = flagIdleTimeout
	}

	logger := newLogger(os.Stderr)
	a, err := newApp(cfg, logger, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	visitors := visitor.NewRegistry(a.dev.SetSensor)
	a.dev.AddSink("visitors", visitors)

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     cfg.SSH.Listen,
		HostKeyPath: cfg.SSH.HostKey,
		IdleTimeout: cfg.SSH.IdleTimeout,
		Name:        a.name,
		PetID:       a.petID.String(),
	}, a.dev, a.panel, visitors, a.store, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() { done <- a.run(ctx) }()

	fmt.Printf("Sharing %s over SSH on %s\n", a.name, server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	serveErr := server.Serve(ctx)
	stop()
	if devErr := <-done; devErr != nil && serveErr == nil {
		serveErr = devErr
	}
	return serveErr
}
