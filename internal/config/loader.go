package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load loads the pet configuration. Values missing from the file keep
// their defaults.
// Search order: customPath -> ~/.gotchi/gotchi.yaml -> ./configs/gotchi.yaml -> embedded default
func Load(customPath string) (Config, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("gotchi.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if parsed, err := parse(data); err == nil {
				return parsed, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "gotchi.yaml")); err == nil {
		if parsed, err := parse(data); err == nil {
			return parsed, nil
		}
	}

	// Use embedded default YAML
	parsed, err := parse(defaultGotchiYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return parsed, nil
}

// parse decodes data over the hardcoded defaults.
func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gotchi", filename)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// LoadEnv loads .env files into the process environment. Missing files are
// not an error. With no arguments it reads ./.env.
func LoadEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: cannot load env file: %w", err)
	}
	return nil
}

// Environment variables read by ApplyEnv.
const (
	EnvDBPath     = "GOTCHI_DB"
	EnvJournalDir = "GOTCHI_JOURNAL_DIR"
	EnvListen     = "GOTCHI_LISTEN"
	EnvPeers      = "GOTCHI_PEERS"
	EnvName       = "GOTCHI_NAME"
	EnvSound      = "GOTCHI_SOUND"
	EnvSSHListen  = "GOTCHI_SSH_LISTEN"
)

// ApplyEnv overrides cfg with GOTCHI_* environment variables.
func ApplyEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvDBPath); ok && v != "" {
		cfg.Storage.Path = v
	}
	if v, ok := os.LookupEnv(EnvJournalDir); ok && v != "" {
		cfg.Journal.Dir = v
	}
	if v, ok := os.LookupEnv(EnvListen); ok && v != "" {
		cfg.Peer.Listen = v
	}
	if v, ok := os.LookupEnv(EnvPeers); ok {
		cfg.Peer.Peers = splitList(v)
	}
	if v, ok := os.LookupEnv(EnvName); ok && v != "" {
		cfg.Peer.Name = v
	}
	if v, ok := os.LookupEnv(EnvSound); ok && v != "" {
		cfg.Sound.Backend = v
	}
	if v, ok := os.LookupEnv(EnvSSHListen); ok && v != "" {
		cfg.SSH.Listen = v
	}
}

// splitList splits a comma separated list, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
