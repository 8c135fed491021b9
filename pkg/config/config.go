// Package config handles workspace configuration for the orchestrator.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Kasrastar/SeleniumOrchestrator/pkg/driver"
)

// Defaults applied by Load when the file leaves a field unset.
const (
	DefaultFindTimeoutSeconds = 10
	DefaultPollIntervalMillis = 500
	DefaultMaxSessions        = 5
	DefaultWindowWidth        = 1280
	DefaultWindowHeight       = 720
)

// Config represents the workspace configuration (orchestrator.yaml).
type Config struct {
	// Browser launch settings
	Headless     bool   `yaml:"headless"`
	WindowWidth  int    `yaml:"windowWidth"`
	WindowHeight int    `yaml:"windowHeight"`
	UserAgent    string `yaml:"userAgent"`
	BrowserPath  string `yaml:"browserPath"`

	// Wait-resolution settings
	FindTimeoutSeconds int `yaml:"findTimeout"`  // seconds
	PollIntervalMillis int `yaml:"pollInterval"` // milliseconds

	// Registry settings
	MaxSessions int `yaml:"maxSessions"`

	// Connection describes the driver process to attach to.
	Connection driver.Connection `yaml:"connection"`

	// LogDir overrides the log directory.
	LogDir string `yaml:"logDir"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a file, applying defaults to unset fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromDir looks for orchestrator.yaml or orchestrator.yml in the
// directory, returning defaults when neither exists.
func LoadFromDir(dir string) (*Config, error) {
	for _, name := range []string{"orchestrator.yaml", "orchestrator.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

func (c *Config) applyDefaults() {
	if c.FindTimeoutSeconds <= 0 {
		c.FindTimeoutSeconds = DefaultFindTimeoutSeconds
	}
	if c.PollIntervalMillis <= 0 {
		c.PollIntervalMillis = DefaultPollIntervalMillis
	}
	if c.MaxSessions <= 0 {
		c.MaxSessions = DefaultMaxSessions
	}
	if c.WindowWidth <= 0 {
		c.WindowWidth = DefaultWindowWidth
	}
	if c.WindowHeight <= 0 {
		c.WindowHeight = DefaultWindowHeight
	}
	if c.Connection.Kind == "" {
		c.Connection.Kind = driver.KindChrome
	}
}

// FindTimeout returns the element-resolution timeout as a duration.
func (c *Config) FindTimeout() time.Duration {
	return time.Duration(c.FindTimeoutSeconds) * time.Second
}

// PollInterval returns the resolver polling interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMillis) * time.Millisecond
}

// Options renders the launch settings as a driver option set.
func (c *Config) Options() *driver.Options {
	opts := driver.NewOptions().WindowSize(c.WindowWidth, c.WindowHeight)
	if c.Headless {
		opts.Headless()
	}
	if c.UserAgent != "" {
		opts.UserAgent(c.UserAgent)
	}
	if c.BrowserPath != "" {
		opts.BrowserPath(c.BrowserPath)
	}
	return opts
}
