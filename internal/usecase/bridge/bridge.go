// Package bridge accepts tool calls, validates them against the registry, and
// delegates work creation to the external tracker.
package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"chained-agents/internal/domain"
)

// defaultTrackerTimeout bounds the single outbound call per invocation.
const defaultTrackerTimeout = 30 * time.Second

// ProfileStore is the read side of the agent registry.
type ProfileStore interface {
	Get(name string) (domain.AgentProfile, error)
	Names() []string
}

// Bridge turns validated tool calls into tracked work.
type Bridge struct {
	store   ProfileStore
	tracker domain.WorkTracker
	bus     domain.EventBus
	logger  *slog.Logger
	timeout time.Duration
}

// New creates an invocation bridge. timeout bounds each tracker call; zero
// means the 30s default.
func New(store ProfileStore, tracker domain.WorkTracker, bus domain.EventBus, logger *slog.Logger, timeout time.Duration) *Bridge {
	if timeout <= 0 {
		timeout = defaultTrackerTimeout
	}
	return &Bridge{
		store:   store,
		tracker: tracker,
		bus:     bus,
		logger:  logger,
		timeout: timeout,
	}
}

// Invoke runs one invocation of the named agent against a task description.
//
// Caller errors (unknown agent, empty task) are returned as errors before any
// tracker call. Tracker faults are mapped into a failed InvocationResult with
// a nil error: tool-calling clients branch on the result status, they do not
// catch faults.
func (b *Bridge) Invoke(ctx context.Context, agentName, task string, tctx *domain.TaskContext) (*domain.InvocationResult, error) {
	prof, err := b.store.Get(agentName)
	if err != nil {
		known := strings.Join(b.store.Names(), ", ")
		detail := fmt.Sprintf("%q; known agents: %s", agentName, known)
		return nil, domain.NewDomainError("Bridge.Invoke", domain.ErrAgentNotFound, detail)
	}

	if strings.TrimSpace(task) == "" {
		return nil, domain.NewDomainError("Bridge.Invoke", domain.ErrInvalidTask, "")
	}

	invocationID := ulid.Make().String()
	b.bus.Publish(domain.NewEvent(domain.EventAgentInvoke, domain.AgentInvokePayload{
		InvocationID: invocationID,
		AgentName:    prof.Name,
		Task:         task,
	}))
	b.logger.Info("invocation started", "invocation_id", invocationID, "agent", prof.Name)

	callCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	receipt, err := b.tracker.CreateTask(callCtx, domain.TaskRequest{
		Assignee: prof.Name,
		Title:    taskTitle(prof, task),
		Body:     taskBody(prof, task, tctx),
	})
	if err != nil {
		b.logger.Warn("tracker fault", "invocation_id", invocationID, "agent", prof.Name, "error", err)
		return &domain.InvocationResult{
			Status:  domain.StatusFailed,
			Message: err.Error(),
		}, nil
	}

	b.logger.Info("invocation queued",
		"invocation_id", invocationID, "agent", prof.Name, "ticket", receipt.Number)
	return &domain.InvocationResult{
		Status:       domain.StatusQueued,
		TicketNumber: &receipt.Number,
		TicketURL:    receipt.URL,
		Message:      fmt.Sprintf("Task queued for %s (ticket #%d)", prof.Personality.DisplayName, receipt.Number),
	}, nil
}

// titleMaxLen caps the ticket title at one readable line.
const titleMaxLen = 80

func taskTitle(prof domain.AgentProfile, task string) string {
	line := strings.TrimSpace(task)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	if len(line) > titleMaxLen {
		line = line[:titleMaxLen-3] + "..."
	}
	return fmt.Sprintf("[%s] %s", prof.Personality.DisplayName, line)
}

func taskBody(prof domain.AgentProfile, task string, tctx *domain.TaskContext) string {
	var sb strings.Builder
	sb.WriteString(task)
	sb.WriteString("\n\n---\nAssigned agent: ")
	sb.WriteString(prof.Name)
	if tctx == nil {
		return sb.String()
	}
	if tctx.Priority != "" {
		sb.WriteString("\nPriority: ")
		sb.WriteString(string(tctx.Priority))
	}
	writeList(&sb, "Files", tctx.Files)
	writeList(&sb, "References", tctx.References)
	return sb.String()
}

func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString("\n")
	sb.WriteString(heading)
	sb.WriteString(":")
	for _, item := range items {
		sb.WriteString("\n- ")
		sb.WriteString(item)
	}
}
