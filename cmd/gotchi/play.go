package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/jsgotchi/internal/config"
	"github.com/vovakirdan/jsgotchi/internal/platform/tui"
	"github.com/vovakirdan/jsgotchi/internal/visitor"
)

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Look after the pet in the terminal",
	Long: `Show the pet's display in the terminal and take care of it.

Controls:
  N/Tab      - Next screen (experience, energy and clock, frameworks)
  E/Space    - Give an energy drink
  P          - Stand close to the pet / walk away
  H          - Framework history
  Z          - Zoom on the avatar
  Q/Ctrl+C   - Quit

Logs go to ~/.gotchi/gotchi.log while the screen is in use.
Without a terminal the pet runs headless, like 'gotchi run'.

Examples:
  gotchi play
  gotchi play --preset easy
  gotchi play --seed 42 --preset fixed`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "~/.gotchi/gotchi.log", "Where to write logs while playing")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Not a terminal, running headless.")
		return runHeadless(cmd, nil)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logOut := openLogFile(flagLogFile)
	if c, ok := logOut.(io.Closer); ok {
		defer c.Close()
	}
	logger := newLogger(logOut)

	a, err := newApp(cfg, logger, os.Stdout)
	if err != nil {
		return err
	}
	defer a.Close()

	screen := visitor.NewChannelSession("local", 16)
	defer screen.Close()
	viewers := visitor.NewRegistry(nil)
	viewers.Register(screen)
	a.dev.AddSink("screen", viewers)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() { done <- a.run(ctx) }()

	runErr := tui.Run(a.dev, a.panel, tui.Options{
		Name:   a.name,
		PetID:  a.petID.String(),
		Store:  a.store,
		Events: screen.Events(),
		Sensor: true,
	})

	stop()
	if devErr := <-done; devErr != nil && runErr == nil {
		runErr = devErr
	}
	return runErr
}

// openLogFile opens path for appending, falling back to discarding logs.
func openLogFile(path string) io.Writer {
	path, err := config.ExpandHome(path)
	if err != nil || path == "" {
		return io.Discard
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return io.Discard
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return io.Discard
	}
	return f
}
