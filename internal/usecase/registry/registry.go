// Package registry owns the collection of loaded agent profiles.
package registry

import (
	"bytes"
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"chained-agents/internal/domain"
)

// maxConcurrentReads bounds the document reads issued in parallel per load pass.
const maxConcurrentReads = 8

// DocumentSource abstracts where agent definition documents live.
type DocumentSource interface {
	// List returns the names of all eligible documents.
	List(ctx context.Context) ([]string, error)
	// Read returns the raw text of one document by name. A failed read skips
	// that document without aborting the pass.
	Read(ctx context.Context, name string) ([]byte, error)
	// Name returns the source identifier (e.g. "dir").
	Name() string
}

// ParseFunc converts one document into a profile. Wired to profile.Parse.
type ParseFunc func(doc []byte, fallbackName string) (*domain.AgentProfile, error)

// LoadSummary reports the outcome of one load pass.
type LoadSummary struct {
	Loaded  int `json:"loaded"`
	Skipped int `json:"skipped"`
}

type loadState int

const (
	stateEmpty loadState = iota
	stateLoading
	stateReady
)

// Registry maps agent names to their loaded profiles. Load is single-flight
// and idempotent: the first pass populates the registry, later calls return
// the cached summary without re-touching the document source, and concurrent
// callers of an in-flight pass block until it finishes and share its result.
type Registry struct {
	src    DocumentSource
	parse  ParseFunc
	bus    domain.EventBus
	logger *slog.Logger

	mu       sync.Mutex
	state    loadState
	done     chan struct{}
	summary  LoadSummary
	loadErr  error
	profiles map[string]domain.AgentProfile
	order    []string
}

// New creates an empty registry backed by the given document source.
func New(src DocumentSource, parse ParseFunc, bus domain.EventBus, logger *slog.Logger) *Registry {
	return &Registry{
		src:      src,
		parse:    parse,
		bus:      bus,
		logger:   logger,
		profiles: make(map[string]domain.AgentProfile),
	}
}

// Load reads every eligible document from the source, parses each, and
// commits the successes. Per-document failures are logged and counted as
// skipped; a source enumeration failure fails the whole pass with no partial
// state retained, so a retry is possible.
func (r *Registry) Load(ctx context.Context) (LoadSummary, error) {
	r.mu.Lock()
	switch r.state {
	case stateReady:
		summary := r.summary
		r.mu.Unlock()
		return summary, nil
	case stateLoading:
		done := r.done
		r.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
			return LoadSummary{}, ctx.Err()
		}
		r.mu.Lock()
		summary, err := r.summary, r.loadErr
		r.mu.Unlock()
		return summary, err
	}
	r.state = stateLoading
	r.done = make(chan struct{})
	r.mu.Unlock()

	summary, err := r.load(ctx)

	r.mu.Lock()
	if err != nil {
		// Stay retryable: the registry is still empty.
		r.state = stateEmpty
	} else {
		r.state = stateReady
		r.summary = summary
	}
	r.loadErr = err
	close(r.done)
	r.mu.Unlock()

	return summary, err
}

// load performs one pass: concurrent fetch, ordered commit.
func (r *Registry) load(ctx context.Context) (LoadSummary, error) {
	names, err := r.src.List(ctx)
	if err != nil {
		err = domain.WrapOp("Registry.Load", err)
		r.logger.Error("document source unavailable", "source", r.src.Name(), "error", err)
		r.bus.Publish(domain.NewEvent(domain.EventServerError, domain.ServerErrorPayload{Error: err.Error()}))
		return LoadSummary{}, err
	}

	// Reads are issued concurrently; commits below follow lexical document
	// order so List() is deterministic across runs.
	sort.Strings(names)
	docs := make([][]byte, len(names))
	readErrs := make([]error, len(names))
	p := pool.New().WithMaxGoroutines(maxConcurrentReads)
	for i, name := range names {
		p.Go(func() {
			docs[i], readErrs[i] = r.src.Read(ctx, name)
		})
	}
	p.Wait()

	var summary LoadSummary
	loaded := make(map[string]domain.AgentProfile, len(names))
	var order []string
	var events []domain.Event

	for i, name := range names {
		if readErrs[i] != nil {
			r.logger.Warn("skipping unreadable document", "document", name, "error", readErrs[i])
			summary.Skipped++
			continue
		}
		if len(bytes.TrimSpace(docs[i])) == 0 {
			r.logger.Warn("skipping empty document", "document", name)
			summary.Skipped++
			continue
		}

		prof, parseErr := r.parse(docs[i], strings.TrimSuffix(name, ".md"))
		if parseErr != nil {
			r.logger.Warn("skipping unparseable document", "document", name, "error", parseErr)
			summary.Skipped++
			continue
		}

		// Last-load-wins on duplicate names; the first occurrence keeps its slot.
		if _, exists := loaded[prof.Name]; !exists {
			order = append(order, prof.Name)
		}
		loaded[prof.Name] = *prof
		summary.Loaded++
		events = append(events, domain.NewEvent(domain.EventAgentLoaded, prof))
		r.logger.Info("agent loaded", "agent", prof.Name, "responsibilities", len(prof.CoreResponsibilities))
	}

	r.mu.Lock()
	r.profiles = loaded
	r.order = order
	r.mu.Unlock()

	for _, e := range events {
		r.bus.Publish(e)
	}
	r.bus.Publish(domain.NewEvent(domain.EventServerReady, domain.ServerReadyPayload{AgentCount: len(order)}))
	r.logger.Info("registry ready", "agents", len(order), "skipped", summary.Skipped)

	return summary, nil
}

// Get retrieves a profile by name.
func (r *Registry) Get(name string) (domain.AgentProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prof, ok := r.profiles[name]
	if !ok {
		return domain.AgentProfile{}, domain.NewDomainError("Registry.Get", domain.ErrAgentNotFound, name)
	}
	return prof, nil
}

// List returns all loaded profiles in insertion order. The order is stable
// across repeated calls within one process run.
func (r *Registry) List() []domain.AgentProfile {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.AgentProfile, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.profiles[name])
	}
	return out
}

// Names returns the sorted names of all loaded profiles.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	sort.Strings(names)
	return names
}

// Len reports the number of loaded profiles.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.profiles)
}
