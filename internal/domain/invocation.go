package domain

// InvocationStatus is the lifecycle state of one invocation. The enum values
// are wire contract for tool-calling clients and must not be renamed.
type InvocationStatus string

const (
	StatusQueued     InvocationStatus = "queued"
	StatusInProgress InvocationStatus = "in_progress"
	StatusCompleted  InvocationStatus = "completed"
	StatusFailed     InvocationStatus = "failed"
)

// statusTransitions encodes the strictly linear lifecycle:
// queued -> in_progress -> completed | failed. No backward transitions.
var statusTransitions = map[InvocationStatus][]InvocationStatus{
	StatusQueued:     {StatusInProgress},
	StatusInProgress: {StatusCompleted, StatusFailed},
	StatusCompleted:  {},
	StatusFailed:     {},
}

// CanTransition reports whether moving from one invocation status to another
// is legal.
func CanTransition(from, to InvocationStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is one of the four known statuses.
func ValidStatus(s InvocationStatus) bool {
	_, ok := statusTransitions[s]
	return ok
}

// Priority ranks a task. Four ordered severity levels, part of the tool input
// schema wire contract.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Priorities lists the levels in ascending severity order, as rendered into
// the generated input schema enum.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// TaskContext is the optional structured context a caller may attach to an
// invocation.
type TaskContext struct {
	Files      []string `json:"files,omitempty"`
	References []string `json:"references,omitempty"`
	Priority   Priority `json:"priority,omitempty"`
}

// InvocationResult is the outcome of one call into the bridge. Field names
// and the status enum are part of the external contract.
type InvocationResult struct {
	Status       InvocationStatus `json:"status"`
	TicketNumber *int             `json:"ticketNumber,omitempty"`
	TicketURL    string           `json:"ticketUrl,omitempty"`
	Message      string           `json:"message"`
}
