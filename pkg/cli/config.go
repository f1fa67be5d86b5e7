package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/sortviz/pkg/execution"
	"github.com/dshills/sortviz/pkg/sorting"
	"gopkg.in/yaml.v3"
)

// configVersion is written to new config files.
const configVersion = "1.0"

// Settings is the content of config.yaml.
type Settings struct {
	Version      string          `yaml:"version"`
	DefaultSize  int             `yaml:"default_size"`
	MaxArraySize int             `yaml:"max_array_size"`
	DefaultMode  string          `yaml:"default_mode"`
	Server       ServerSettings  `yaml:"server"`
	History      HistorySettings `yaml:"history"`
}

// ServerSettings configures the serve command.
type ServerSettings struct {
	Addr string `yaml:"addr"`
}

// HistorySettings configures run-history persistence.
type HistorySettings struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// DefaultSettings returns the settings used when config.yaml omits a value.
func DefaultSettings(configDir string) *Settings {
	return &Settings{
		Version:      configVersion,
		DefaultSize:  10,
		MaxArraySize: execution.DefaultMaxArraySize,
		DefaultMode:  string(sorting.ModeRandom),
		Server:       ServerSettings{Addr: ":5000"},
		History: HistorySettings{
			Enabled: true,
			Path:    filepath.Join(configDir, "history.db"),
		},
	}
}

// LoadSettings reads path over the defaults for configDir.
func LoadSettings(path, configDir string) (*Settings, error) {
	settings := DefaultSettings(configDir)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if settings.History.Path == "" {
		settings.History.Path = DefaultSettings(configDir).History.Path
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return settings, nil
}

// Validate checks value ranges.
func (s *Settings) Validate() error {
	if s.DefaultSize < 0 {
		return fmt.Errorf("default_size cannot be negative: %d", s.DefaultSize)
	}
	if s.MaxArraySize <= 0 {
		return fmt.Errorf("max_array_size must be positive: %d", s.MaxArraySize)
	}
	if s.DefaultSize > s.MaxArraySize {
		return fmt.Errorf("default_size %d exceeds max_array_size %d", s.DefaultSize, s.MaxArraySize)
	}
	if _, ok := sorting.ParseMode(s.DefaultMode); !ok {
		return fmt.Errorf("unknown default_mode %q (valid: sorted, reverse_sorted, random)", s.DefaultMode)
	}
	if s.Server.Addr == "" {
		return fmt.Errorf("server.addr cannot be empty")
	}
	return nil
}

// writeDefaultSettings creates path with the default settings.
func writeDefaultSettings(path, configDir string) error {
	data, err := yaml.Marshal(DefaultSettings(configDir))
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}
	return nil
}
