package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
// Every field has a default so the pipeline runs without a config file at all.
type Config struct {
	JAO        JAOConfig `yaml:"jao"`
	PSE        PSEConfig `yaml:"pse"`
	WindowDays int       `yaml:"window_days"`

	// Directories for working artifacts. Raw downloads and normalized side
	// files land in DownloadDir; the joined report lands in ResultsDir unless
	// an explicit output path overrides it.
	DownloadDir string `yaml:"download_dir"`
	ResultsDir  string `yaml:"results_dir"`
}

type JAOConfig struct {
	BaseURL    string `yaml:"base_url"`
	Corridor   string `yaml:"corridor"`
	Horizon    string `yaml:"horizon"`
	APIKeyFile string `yaml:"api_key_file"`
}

type PSEConfig struct {
	BaseURL string `yaml:"base_url"`
	// Report identifier in the PSE CSV export path, e.g. "PL_BPKD"
	// (daily coordination plan, basic quantities).
	Report string `yaml:"report"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		JAO: JAOConfig{
			BaseURL:    "https://api.jao.eu",
			Corridor:   "PL-UA",
			Horizon:    "daily",
			APIKeyFile: ".JAO_API_KEY",
		},
		PSE: PSEConfig{
			BaseURL: "https://www.pse.pl",
			Report:  "PL_BPKD",
		},
		WindowDays:  30,
		DownloadDir: "downloads",
		ResultsDir:  "results",
	}
}

// Load reads a YAML config file, fills unset fields with defaults and
// validates the result.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s invalid: %w", path, err)
	}
	return c, nil
}

// applyDefaults restores defaults for fields an explicit config file set to
// empty, since yaml.Unmarshal overwrites fields mapped to null or "".
func (c *Config) applyDefaults() {
	d := Default()
	if c.JAO.BaseURL == "" {
		c.JAO.BaseURL = d.JAO.BaseURL
	}
	if c.JAO.Corridor == "" {
		c.JAO.Corridor = d.JAO.Corridor
	}
	if c.JAO.Horizon == "" {
		c.JAO.Horizon = d.JAO.Horizon
	}
	if c.JAO.APIKeyFile == "" {
		c.JAO.APIKeyFile = d.JAO.APIKeyFile
	}
	if c.PSE.BaseURL == "" {
		c.PSE.BaseURL = d.PSE.BaseURL
	}
	if c.PSE.Report == "" {
		c.PSE.Report = d.PSE.Report
	}
	if c.WindowDays == 0 {
		c.WindowDays = d.WindowDays
	}
	if c.DownloadDir == "" {
		c.DownloadDir = d.DownloadDir
	}
	if c.ResultsDir == "" {
		c.ResultsDir = d.ResultsDir
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.WindowDays < 1 || c.WindowDays > 31 {
		// The JAO API rejects windows longer than 31 days.
		return fmt.Errorf("window_days must be between 1 and 31, got %d", c.WindowDays)
	}
	switch c.JAO.Horizon {
	case "daily", "monthly", "yearly":
	default:
		return fmt.Errorf("jao.horizon must be daily, monthly or yearly, got %q", c.JAO.Horizon)
	}
	return nil
}

// EnsureDirs creates the artifact directories if they do not exist.
func (c *Config) EnsureDirs() error {
	if err := os.MkdirAll(c.DownloadDir, 0o755); err != nil {
		return err
	}
	return os.MkdirAll(c.ResultsDir, 0o755)
}

// Artifact paths derived from the configured directories.

func (c *Config) RawJAOPath() string      { return filepath.Join(c.DownloadDir, "JAO.json") }
func (c *Config) RawPSEPath() string      { return filepath.Join(c.DownloadDir, "PSE.csv") }
func (c *Config) JAOModifiedPath() string { return filepath.Join(c.DownloadDir, "JAO_modified.csv") }
func (c *Config) PSEModifiedPath() string { return filepath.Join(c.DownloadDir, "PSE_modified.csv") }
func (c *Config) JoinedPath() string      { return filepath.Join(c.ResultsDir, "JOINED.csv") }
