package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/filetidy/filetidy/internal/rename"
)

// Config holds all filetidy configuration
type Config struct {
	Rename   RenameConfig   `toml:"rename"`
	Organize OrganizeConfig `toml:"organize"`
	History  HistoryConfig  `toml:"history"`
	Security SecurityConfig `toml:"security"`
}

// RenameConfig holds template and normalization defaults
type RenameConfig struct {
	Template              string `toml:"template"`
	DateFormat            string `toml:"date_format"`
	CaseStyle             string `toml:"case_style"`
	StripExistingPatterns bool   `toml:"strip_existing_patterns"`
}

// OrganizeConfig holds folder-organization defaults
type OrganizeConfig struct {
	Mode          string `toml:"mode"` // rename-only, organize
	FolderPattern string `toml:"folder_pattern"`
	Destination   string `toml:"destination"`
}

// HistoryConfig controls the undo history store
type HistoryConfig struct {
	MaxEntries int `toml:"max_entries"`
}

// SecurityConfig restricts where renames may write
type SecurityConfig struct {
	AllowedRoots []string `toml:"allowed_roots"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Rename: RenameConfig{
			Template:   "{name}.{ext}",
			DateFormat: rename.DefaultDateFormat,
			CaseStyle:  string(rename.CaseNone),
		},
		Organize: OrganizeConfig{
			Mode: string(rename.ModeRenameOnly),
		},
		History: HistoryConfig{
			MaxEntries: 500,
		},
		Security: SecurityConfig{
			AllowedRoots: []string{},
		},
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}

	return filepath.Join(configDir, "filetidy", "config.toml"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	configFile, err := ConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return nil
}

// Load reads the config file, creating it with defaults if it doesn't exist
func Load() (*Config, error) {
	configFile, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	if err := EnsureConfigDir(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := Save(cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	var cfg Config
	if _, err := toml.DecodeFile(configFile, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

// Save writes the config to disk
func Save(cfg *Config) error {
	configFile, err := ConfigPath()
	if err != nil {
		return err
	}

	if err := EnsureConfigDir(); err != nil {
		return err
	}

	f, err := os.Create(configFile)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks if the config is valid
func (c *Config) Validate() error {
	if !rename.ValidCaseStyle(rename.CaseStyle(c.Rename.CaseStyle)) {
		return fmt.Errorf("invalid case style: %s", c.Rename.CaseStyle)
	}

	switch rename.ReorganizationMode(c.Organize.Mode) {
	case rename.ModeRenameOnly, rename.ModeOrganize:
	default:
		return fmt.Errorf("invalid organize mode: %s (must be rename-only or organize)", c.Organize.Mode)
	}

	if c.Organize.Mode == string(rename.ModeOrganize) && c.Organize.FolderPattern == "" {
		return fmt.Errorf("organize mode requires a folder_pattern")
	}

	if c.History.MaxEntries < 0 {
		return fmt.Errorf("history max_entries cannot be negative")
	}

	for _, root := range c.Security.AllowedRoots {
		info, err := os.Stat(root)
		if err != nil {
			return fmt.Errorf("allowed root %s: %w", root, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("allowed root %s is not a directory", root)
		}
	}

	return nil
}

// PreviewOptions builds engine preview options from the configured
// defaults; flag values override these at the CLI layer.
func (c *Config) PreviewOptions() *rename.PreviewOptions {
	opts := &rename.PreviewOptions{
		DateFormat:            c.Rename.DateFormat,
		CaseStyle:             rename.CaseStyle(c.Rename.CaseStyle),
		StripExistingPatterns: c.Rename.StripExistingPatterns,
		ReorganizationMode:    rename.ReorganizationMode(c.Organize.Mode),
	}

	if opts.ReorganizationMode == rename.ModeOrganize && c.Organize.FolderPattern != "" {
		opts.OrganizeOptions = &rename.OrganizeOptions{
			DestinationDirectory: c.Organize.Destination,
			FolderPattern:        c.Organize.FolderPattern,
		}
	}

	return opts
}
