// Package config loads and validates the application configuration from a
// YAML file, with CHAINED_* environment variable overrides for deployment
// and secret injection.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Agents  AgentsConfig  `yaml:"agents"`
	Tracker TrackerConfig `yaml:"tracker"`
	Logger  LoggerConfig  `yaml:"logger"`
}

// ServerConfig names the tool server as advertised to connecting clients.
type ServerConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// AgentsConfig locates the agent definition documents.
type AgentsConfig struct {
	// Dir is the directory scanned for agent definition documents.
	Dir string `yaml:"dir"`
	// Index is the directory index file skipped during the scan.
	Index string `yaml:"index"`
}

// TrackerConfig configures the work tracker that receives delegated tasks.
type TrackerConfig struct {
	Owner   string        `yaml:"owner"`
	Repo    string        `yaml:"repo"`
	Token   string        `yaml:"token"`
	APIBase string        `yaml:"api_base"`
	Timeout time.Duration `yaml:"timeout"`
	// Simulation swaps the real tracker for an in-memory one that mints
	// sequential ticket numbers. Useful for local runs without credentials.
	Simulation bool `yaml:"simulation"`
}

// LoggerConfig configures structured logging.
type LoggerConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or text
	Output string `yaml:"output"` // stderr, stdout, or a file path
}

// Defaults returns a Config with sensible defaults.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Name:    "chained-agents",
			Version: "1.0.0",
		},
		Agents: AgentsConfig{
			Dir:   "agents",
			Index: "README.md",
		},
		Tracker: TrackerConfig{
			APIBase:    "https://api.github.com",
			Timeout:    30 * time.Second,
			Simulation: true,
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Load reads a YAML config file and applies env var overrides. A missing
// file is not an error: defaults plus env overrides are used instead.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			ApplyEnvOverrides(cfg)
			if err := Validate(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	ApplyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyEnvOverrides maps CHAINED_* env vars to config fields.
func ApplyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CHAINED_AGENTS_DIR"); v != "" {
		cfg.Agents.Dir = v
	}
	if v := os.Getenv("CHAINED_TRACKER_OWNER"); v != "" {
		cfg.Tracker.Owner = v
	}
	if v := os.Getenv("CHAINED_TRACKER_REPO"); v != "" {
		cfg.Tracker.Repo = v
	}
	if v := os.Getenv("CHAINED_TRACKER_TOKEN"); v != "" {
		cfg.Tracker.Token = v
	} else if v := os.Getenv("GITHUB_TOKEN"); v != "" && cfg.Tracker.Token == "" {
		cfg.Tracker.Token = v
	}
	if v := os.Getenv("CHAINED_TRACKER_API_BASE"); v != "" {
		cfg.Tracker.APIBase = v
	}
	switch os.Getenv("CHAINED_TRACKER_SIMULATION") {
	case "true":
		cfg.Tracker.Simulation = true
	case "false":
		cfg.Tracker.Simulation = false
	}
	if v := os.Getenv("CHAINED_LOGGER_LEVEL"); v != "" {
		cfg.Logger.Level = v
	}
	if v := os.Getenv("CHAINED_LOGGER_FORMAT"); v != "" {
		cfg.Logger.Format = v
	}
	if v := os.Getenv("CHAINED_LOGGER_OUTPUT"); v != "" {
		cfg.Logger.Output = v
	}
}
