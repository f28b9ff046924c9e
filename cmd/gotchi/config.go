package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/jsgotchi/internal/config"
)

var (
	flagConfigCheck    bool
	flagConfigDefaults bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or check the configuration",
	Long: `Print the effective configuration as YAML, after the config file,
preset, GOTCHI_* environment variables and flags have been applied.

Lookup order for the config file:
  1. --config <path>
  2. ~/.gotchi/gotchi.yaml
  3. ./configs/gotchi.yaml
  4. built-in defaults

Examples:
  gotchi config > ~/.gotchi/gotchi.yaml
  gotchi config --preset hard
  gotchi config --check --config ./gotchi.yaml
  gotchi config --defaults`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigCheck, "check", false, "Only validate the configuration")
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in default file")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagConfigDefaults {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagConfigCheck {
		fmt.Println("Configuration is valid.")
		return nil
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
