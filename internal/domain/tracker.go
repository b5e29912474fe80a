package domain

import "context"

// TaskRequest asks the work tracker to create one unit of tracked work.
type TaskRequest struct {
	Assignee string `json:"assignee"`
	Title    string `json:"title"`
	Body     string `json:"body"`
}

// TaskReceipt acknowledges created work. Only creation is synchronous; the
// work itself completes asynchronously on the tracking platform.
type TaskReceipt struct {
	Number int    `json:"number"`
	URL    string `json:"url"`
}

// WorkTracker abstracts the external work-tracking platform. It is the only
// network-facing dependency of the invocation bridge.
type WorkTracker interface {
	// CreateTask creates tracked work and returns its receipt.
	CreateTask(ctx context.Context, req TaskRequest) (*TaskReceipt, error)
	// Name returns the tracker identifier (e.g. "github").
	Name() string
}
