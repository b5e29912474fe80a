package config

import (
	"fmt"
	"strings"
)

// ValidationError accumulates config validation errors.
type ValidationError struct {
	Errors []string
}

func (v *ValidationError) Error() string {
	return "config validation failed:\n  - " + strings.Join(v.Errors, "\n  - ")
}

// HasErrors reports whether any validation errors have been recorded.
func (v *ValidationError) HasErrors() bool {
	return len(v.Errors) > 0
}

// Add records a formatted validation error.
func (v *ValidationError) Add(format string, args ...interface{}) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json": true,
	"text": true,
}

// Validate checks cfg for structural correctness. It returns a *ValidationError
// when one or more problems are found, allowing callers to inspect all issues.
func Validate(cfg *Config) error {
	ve := &ValidationError{}
	validateServer(cfg, ve)
	validateAgents(cfg, ve)
	validateTracker(cfg, ve)
	validateLogger(cfg, ve)
	if ve.HasErrors() {
		return ve
	}
	return nil
}

func validateServer(cfg *Config, ve *ValidationError) {
	if cfg.Server.Name == "" {
		ve.Add("server.name must not be empty")
	}
	if cfg.Server.Version == "" {
		ve.Add("server.version must not be empty")
	}
}

func validateAgents(cfg *Config, ve *ValidationError) {
	if cfg.Agents.Dir == "" {
		ve.Add("agents.dir must not be empty")
	}
	if cfg.Agents.Index == "" {
		ve.Add("agents.index must not be empty")
	}
}

func validateTracker(cfg *Config, ve *ValidationError) {
	if cfg.Tracker.Timeout <= 0 {
		ve.Add("tracker.timeout must be > 0")
	}
	if cfg.Tracker.Simulation {
		return
	}
	if cfg.Tracker.Owner == "" {
		ve.Add("tracker.owner must not be empty (set via CHAINED_TRACKER_OWNER)")
	}
	if cfg.Tracker.Repo == "" {
		ve.Add("tracker.repo must not be empty (set via CHAINED_TRACKER_REPO)")
	}
	if cfg.Tracker.Token == "" {
		ve.Add("tracker.token must not be empty (set via CHAINED_TRACKER_TOKEN or GITHUB_TOKEN)")
	}
}

func validateLogger(cfg *Config, ve *ValidationError) {
	if !validLogLevels[cfg.Logger.Level] {
		ve.Add("logger.level %q is invalid (want: debug, info, warn, error)", cfg.Logger.Level)
	}
	if !validLogFormats[cfg.Logger.Format] {
		ve.Add("logger.format %q is invalid (want: json, text)", cfg.Logger.Format)
	}
	if cfg.Logger.Output == "" {
		ve.Add("logger.output must not be empty")
	}
}
