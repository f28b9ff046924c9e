// gotchi is a virtual pet that writes JavaScript frameworks in your terminal.
//
// Usage:
//
//	gotchi play              - Look after the pet in the terminal
//	gotchi run               - Run the pet headless, logging to stderr
//	gotchi serve             - Share one pet with everyone over SSH
//	gotchi stats             - Show the pet's history
//	gotchi journal [file]    - Dump the event journal
//	gotchi config            - Print or check the configuration
//	gotchi backends          - List buzzer backends
//
// Global flags:
//
//	--config <path>   - Use a specific config YAML
//	--preset <name>   - Apply a preset: easy, normal, hard, fixed
//	--seed <value>    - Set RNG seed for reproducible quality rolls
//	--db <path>       - Set database path (default: ~/.gotchi/gotchi.db)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagPreset   string
	flagSeed     int64
	flagDBPath   string
	flagEnvFile  string
	flagName     string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gotchi",
	Short: "JSgotchi - a virtual pet that ships JavaScript frameworks",
	Long: `JSgotchi is a little creature living on a 16x2 display. It drinks
energy drinks, gets lonely, cries for company and, whenever it is in the
mood, ships yet another JavaScript framework.

Available commands:
  play      - Look after the pet in the terminal
  run       - Run the pet headless
  serve     - Share one pet with everyone over SSH
  stats     - Show the pet's history
  journal   - Dump the event journal
  config    - Print or check the configuration
  backends  - List buzzer backends

Examples:
  gotchi play
  gotchi play --preset easy
  gotchi serve --ssh :2222
  gotchi stats`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to history database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "Environment file with GOTCHI_* overrides")
	rootCmd.PersistentFlags().StringVar(&flagName, "name", "JSgotchi", "Pet name")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(backendsCmd)
}

// newLogger creates the process logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "gotchi",
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
	}
	return logger
}
