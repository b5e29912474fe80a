package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"chained-agents/internal/adapter/mcpserver"
	"chained-agents/internal/adapter/profile"
	"chained-agents/internal/adapter/source"
	"chained-agents/internal/adapter/tracker"
	"chained-agents/internal/domain"
	"chained-agents/internal/infra/config"
	"chained-agents/internal/infra/logger"
	"chained-agents/internal/usecase/bridge"
	"chained-agents/internal/usecase/eventbus"
	"chained-agents/internal/usecase/registry"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "--help", "-h", "help":
			showUsage()
			return
		}
	}

	if len(os.Args) < 2 || strings.HasPrefix(os.Args[1], "-") {
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
			os.Exit(1)
		}
		return
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
			os.Exit(1)
		}
	case "list":
		if err := runList(); err != nil {
			fmt.Fprintf(os.Stderr, "list: %v\n", err)
			os.Exit(1)
		}
	case "invoke":
		if err := runInvoke(); err != nil {
			fmt.Fprintf(os.Stderr, "invoke: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\nRun 'agentserver --help' for usage information.\n", os.Args[1])
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Println(`agentserver - expose markdown-defined agents as callable tools

USAGE:
    agentserver [COMMAND]

COMMANDS:
    serve       Load the agent registry and serve tools over stdio (default)
    list        Load the agent registry and print the tool catalog
    invoke      One-shot invocation: invoke AGENT TASK...

FLAGS:
    -h, --help         Show this help message
    --config PATH      Config file path (default: ./config.yaml)

CONFIGURATION:
    Config file: ./config.yaml
    Environment: CHAINED_* variables override config

EXAMPLES:
    agentserver                          # Serve over stdio
    agentserver list                     # Show registered agents and tool names
    agentserver invoke bug-hunter "Track down the flaky login test"`)
}

// app bundles the wired components shared by every subcommand.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	bus      *eventbus.Bus
	registry *registry.Registry
	bridge   *bridge.Bridge
	cleanup  func()
}

// bootstrap wires config, logger, event bus, registry, tracker, and bridge.
// The registry is not loaded yet; callers load it with the context they own.
func bootstrap() (*app, error) {
	cfg, err := config.Load(configPath())
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	log, logCloser, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	bus := eventbus.New(log)
	unsub := bus.SubscribeAll(func(event domain.Event) {
		log.Debug("event", "type", event.Type, "payload", string(event.Payload))
	})

	src := source.NewDir(cfg.Agents.Dir, cfg.Agents.Index)
	reg := registry.New(src, profile.Parse, bus, log)

	var wt domain.WorkTracker
	if cfg.Tracker.Simulation {
		wt = tracker.NewSim("sim://tickets")
	} else {
		wt = tracker.NewGitHub(tracker.GitHubOptions{
			Owner:   cfg.Tracker.Owner,
			Repo:    cfg.Tracker.Repo,
			Token:   cfg.Tracker.Token,
			APIBase: cfg.Tracker.APIBase,
			Timeout: cfg.Tracker.Timeout,
		}, log)
	}
	log.Info("work tracker ready", "tracker", wt.Name())

	br := bridge.New(reg, wt, bus, log, cfg.Tracker.Timeout)

	cleanup := func() {
		unsub()
		logCloser()
	}
	return &app{cfg: cfg, log: log, bus: bus, registry: reg, bridge: br, cleanup: cleanup}, nil
}

func runServe() error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := a.registry.Load(ctx)
	if err != nil {
		return fmt.Errorf("load agents from %s: %w", a.cfg.Agents.Dir, err)
	}
	a.log.Info("registry loaded", "loaded", summary.Loaded, "skipped", summary.Skipped)

	srv, err := mcpserver.New(a.cfg.Server.Name, a.cfg.Server.Version, a.registry.List(), a.bridge, a.log)
	if err != nil {
		return fmt.Errorf("tool server: %w", err)
	}

	a.log.Info("serving tools over stdio", "agents", a.registry.Len())
	return srv.ServeStdio()
}

func runList() error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := a.registry.Load(ctx); err != nil {
		return fmt.Errorf("load agents from %s: %w", a.cfg.Agents.Dir, err)
	}

	profiles := a.registry.List()
	if len(profiles) == 0 {
		fmt.Println("no agents registered")
		return nil
	}
	for _, prof := range profiles {
		fmt.Printf("%-32s %s (%s)\n",
			mcpserver.ToolName(prof.Name),
			prof.Personality.DisplayName,
			strings.Join(prof.Specialization, ", "))
	}
	return nil
}

func runInvoke() error {
	if len(os.Args) < 4 {
		return fmt.Errorf("usage: agentserver invoke AGENT TASK...")
	}
	agentName := os.Args[2]
	task := strings.Join(os.Args[3:], " ")

	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := a.registry.Load(ctx); err != nil {
		return fmt.Errorf("load agents from %s: %w", a.cfg.Agents.Dir, err)
	}

	result, err := a.bridge.Invoke(ctx, agentName, task, nil)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Println(string(out))

	if result.Status == domain.StatusFailed {
		os.Exit(1)
	}
	return nil
}

func configPath() string {
	for i, arg := range os.Args {
		if arg == "--config" && i+1 < len(os.Args) {
			return os.Args[i+1]
		}
		if strings.HasPrefix(arg, "--config=") {
			return strings.TrimPrefix(arg, "--config=")
		}
	}
	if p := os.Getenv("CHAINED_CONFIG"); p != "" {
		return p
	}
	return "config.yaml"
}
