package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.Agents.Dir != "agents" {
		t.Errorf("Agents.Dir = %q, want %q", cfg.Agents.Dir, "agents")
	}
	if cfg.Agents.Index != "README.md" {
		t.Errorf("Agents.Index = %q, want %q", cfg.Agents.Index, "README.md")
	}
	if cfg.Tracker.Timeout != 30*time.Second {
		t.Errorf("Tracker.Timeout = %v, want 30s", cfg.Tracker.Timeout)
	}
	if !cfg.Tracker.Simulation {
		t.Error("Tracker.Simulation should default to true")
	}
	if cfg.Logger.Level != "info" {
		t.Errorf("Logger.Level = %q, want %q", cfg.Logger.Level, "info")
	}
}

func TestLoadNonExistentReturnsDefaults(t *testing.T) {
	cfg, err := Load("/tmp/nonexistent-config-12345.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Agents.Dir != "agents" {
		t.Errorf("expected defaults, got Agents.Dir=%q", cfg.Agents.Dir)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  name: "chained"
agents:
  dir: "/srv/agents"
tracker:
  simulation: false
  owner: "enufacas"
  repo: "chained"
  token: "test-token"
  timeout: 10s
logger:
  level: "debug"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Name != "chained" {
		t.Errorf("Server.Name = %q, want %q", cfg.Server.Name, "chained")
	}
	if cfg.Agents.Dir != "/srv/agents" {
		t.Errorf("Agents.Dir = %q, want %q", cfg.Agents.Dir, "/srv/agents")
	}
	if cfg.Tracker.Simulation {
		t.Error("Tracker.Simulation should be false")
	}
	if cfg.Tracker.Timeout != 10*time.Second {
		t.Errorf("Tracker.Timeout = %v, want 10s", cfg.Tracker.Timeout)
	}
	// Unset fields keep their defaults.
	if cfg.Server.Version != "1.0.0" {
		t.Errorf("Server.Version = %q, want default", cfg.Server.Version)
	}
	if cfg.Tracker.APIBase != "https://api.github.com" {
		t.Errorf("Tracker.APIBase = %q, want default", cfg.Tracker.APIBase)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CHAINED_AGENTS_DIR", "/opt/agents")
	t.Setenv("CHAINED_TRACKER_TOKEN", "env-token")
	t.Setenv("CHAINED_LOGGER_LEVEL", "debug")

	cfg := Defaults()
	ApplyEnvOverrides(cfg)

	if cfg.Agents.Dir != "/opt/agents" {
		t.Errorf("Agents.Dir = %q, want %q", cfg.Agents.Dir, "/opt/agents")
	}
	if cfg.Tracker.Token != "env-token" {
		t.Errorf("Tracker.Token = %q, want %q", cfg.Tracker.Token, "env-token")
	}
	if cfg.Logger.Level != "debug" {
		t.Errorf("Logger.Level = %q, want %q", cfg.Logger.Level, "debug")
	}
}

func TestGitHubTokenFallback(t *testing.T) {
	t.Setenv("CHAINED_TRACKER_TOKEN", "")
	t.Setenv("GITHUB_TOKEN", "ambient-token")

	cfg := Defaults()
	ApplyEnvOverrides(cfg)

	if cfg.Tracker.Token != "ambient-token" {
		t.Errorf("Tracker.Token = %q, want %q", cfg.Tracker.Token, "ambient-token")
	}
}

func TestSimulationEnvOverride(t *testing.T) {
	t.Setenv("CHAINED_TRACKER_SIMULATION", "false")
	t.Setenv("CHAINED_TRACKER_OWNER", "o")
	t.Setenv("CHAINED_TRACKER_REPO", "r")
	t.Setenv("CHAINED_TRACKER_TOKEN", "t")

	cfg := Defaults()
	ApplyEnvOverrides(cfg)

	if cfg.Tracker.Simulation {
		t.Error("Tracker.Simulation should be false after override")
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidateMissingCredentials(t *testing.T) {
	cfg := Defaults()
	cfg.Tracker.Simulation = false

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for missing tracker credentials")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	if len(ve.Errors) != 3 {
		t.Errorf("got %d errors, want 3: %v", len(ve.Errors), ve.Errors)
	}
	if !strings.Contains(err.Error(), "tracker.owner") {
		t.Errorf("error should name tracker.owner: %v", err)
	}
}

func TestValidateLogger(t *testing.T) {
	cfg := Defaults()
	cfg.Logger.Level = "verbose"
	cfg.Logger.Format = "xml"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "logger.level") || !strings.Contains(msg, "logger.format") {
		t.Errorf("error should name both logger fields: %v", err)
	}
}

func TestValidateAccumulates(t *testing.T) {
	cfg := Defaults()
	cfg.Server.Name = ""
	cfg.Agents.Dir = ""
	cfg.Tracker.Timeout = 0

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	ve := err.(*ValidationError)
	if len(ve.Errors) != 3 {
		t.Errorf("got %d errors, want 3: %v", len(ve.Errors), ve.Errors)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("tracker: ["), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
