package tracker

import (
	"context"
	"fmt"
	"sync/atomic"

	"chained-agents/internal/domain"
)

// SimTracker fabricates receipts without touching any external system. It
// serves local runs and tests behind the same interface as the real tracker.
type SimTracker struct {
	baseURL string
	next    atomic.Int64
}

// NewSim creates a simulation tracker. baseURL shapes the fabricated ticket
// URLs, e.g. "https://github.com/acme/chained/issues".
func NewSim(baseURL string) *SimTracker {
	return &SimTracker{baseURL: baseURL}
}

func (s *SimTracker) Name() string { return "sim" }

// CreateTask returns a fabricated receipt with a monotonically increasing
// ticket number.
func (s *SimTracker) CreateTask(_ context.Context, _ domain.TaskRequest) (*domain.TaskReceipt, error) {
	n := int(s.next.Add(1))
	return &domain.TaskReceipt{
		Number: n,
		URL:    fmt.Sprintf("%s/%d", s.baseURL, n),
	}, nil
}
