package domain

import "encoding/json"

// ToolDescriptor is the derived, read-only projection of an AgentProfile
// advertised to tool-calling clients. Descriptors are regenerated on every
// catalog read; profiles are immutable post-load, so callers may cache.
type ToolDescriptor struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}
