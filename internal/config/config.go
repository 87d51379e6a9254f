package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides DefaultConfigPath when set
const EnvConfigPath = "DEPOBILL_CONFIG"

type Config struct {
	// Database settings
	Database DatabaseConfig `yaml:"database"`

	// Where and how invoices are written
	Export ExportConfig `yaml:"export"`

	Log LogConfig `yaml:"log"`

	// Default rates for the prefill forms
	Prefill PrefillConfig `yaml:"prefill"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"` // Path to the encrypted SQLite database
}

type ExportConfig struct {
	OutputDir  string `yaml:"output_dir"`  // Directory for saved invoices
	Format     string `yaml:"format"`      // "pdf" or "html"
	PromptSave bool   `yaml:"prompt_save"` // Ask for a destination before saving
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	Path  string `yaml:"path"`
}

// PrefillConfig holds rates as decimal strings so they survive YAML
// without float rounding.
type PrefillConfig struct {
	DepositionRate   string `yaml:"deposition_rate"`
	CopyRate         string `yaml:"copy_rate"`
	AppearanceHours  string `yaml:"appearance_hours"`
	AppearanceRate   string `yaml:"appearance_rate"`
	ExhibitBWRate    string `yaml:"exhibit_bw_rate"`
	ExhibitColorRate string `yaml:"exhibit_color_rate"`
	CopyOfDepoRate   string `yaml:"copy_of_deposition_rate"`
}

func baseDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		homeDir = "."
	}
	return filepath.Join(homeDir, ".config", "depobill")
}

// DefaultConfigPath returns $DEPOBILL_CONFIG or ~/.config/depobill/config.yaml
func DefaultConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return filepath.Join(baseDir(), "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	dir := baseDir()
	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(dir, "depobill.db"),
		},
		Export: ExportConfig{
			OutputDir:  filepath.Join(dir, "invoices"),
			Format:     "pdf",
			PromptSave: true,
		},
		Log: LogConfig{
			Level: "info",
			Path:  filepath.Join(dir, "depobill.log"),
		},
		Prefill: PrefillConfig{
			DepositionRate:   "5.50",
			CopyRate:         "0.95",
			AppearanceHours:  "3",
			AppearanceRate:   "49.50",
			ExhibitBWRate:    "0.25",
			ExhibitColorRate: "1.00",
			CopyOfDepoRate:   "2.25",
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Keys absent from the file keep their defaults
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Validate rejects settings the exporter cannot honour
func (c *Config) Validate() error {
	switch c.Export.Format {
	case "pdf", "html":
	default:
		return fmt.Errorf("invalid export.format %q: want pdf or html", c.Export.Format)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	return nil
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates the database, output and log directories
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		filepath.Dir(c.Database.Path),
		c.Export.OutputDir,
	}
	if c.Log.Path != "" {
		dirs = append(dirs, filepath.Dir(c.Log.Path))
	}

	for _, d := range dirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", d, err)
		}
	}
	return nil
}
