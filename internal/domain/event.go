package domain

import (
	"encoding/json"
	"time"
)

// EventType identifies the kind of event being published.
type EventType string

// The four named channels and their payload shapes are a stable contract for
// listeners (CLI drivers, logging sinks).
const (
	// EventAgentLoaded carries one AgentProfile, emitted once per
	// successfully parsed document during a load pass.
	EventAgentLoaded EventType = "agent:loaded"
	// EventServerReady carries ServerReadyPayload after a load pass completes.
	EventServerReady EventType = "server:ready"
	// EventServerError carries ServerErrorPayload for load-time faults.
	EventServerError EventType = "server:error"
	// EventAgentInvoke carries AgentInvokePayload, emitted before the bridge
	// delegates to the work tracker.
	EventAgentInvoke EventType = "agent:invoke"
)

// ServerReadyPayload reports the final loaded count of a load pass.
type ServerReadyPayload struct {
	AgentCount int `json:"agentCount"`
}

// ServerErrorPayload carries a load-time fault.
type ServerErrorPayload struct {
	Error string `json:"error"`
}

// AgentInvokePayload announces an invocation before delegation.
type AgentInvokePayload struct {
	InvocationID string `json:"invocationId"`
	AgentName    string `json:"agentName"`
	Task         string `json:"task"`
}

// Event is the envelope published on the event bus.
type Event struct {
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// EventHandler is a callback invoked when an event is received.
type EventHandler func(event Event)

// EventBus provides a publish/subscribe mechanism for domain events.
// Delivery is synchronous and in subscription order; a panicking handler must
// not prevent delivery to subsequent handlers.
type EventBus interface {
	// Publish delivers an event to all matching subscribers before returning.
	Publish(event Event)
	// Subscribe registers a handler for a specific event type.
	// Returns an unsubscribe function.
	Subscribe(eventType EventType, handler EventHandler) func()
	// SubscribeAll registers a handler that receives every event.
	// Returns an unsubscribe function.
	SubscribeAll(handler EventHandler) func()
}

// NewEvent builds an event envelope with the payload marshaled to JSON.
// Marshal failures leave the payload empty rather than blocking the emit.
func NewEvent(t EventType, payload any) Event {
	e := Event{Type: t, Timestamp: time.Now()}
	if payload != nil {
		if data, err := json.Marshal(payload); err == nil {
			e.Payload = data
		}
	}
	return e
}
