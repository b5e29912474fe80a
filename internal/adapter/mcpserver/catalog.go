// Package mcpserver projects registered agent profiles into a callable tool
// catalog and serves it over the Model Context Protocol.
package mcpserver

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"chained-agents/internal/domain"
)

var toolNameRe = regexp.MustCompile(`[^a-z0-9]+`)

// ToolName is the protocol-safe transform of a profile name: lowercased, with
// every run of non-alphanumeric characters collapsed to a single underscore.
// It is a pure function of the profile name.
func ToolName(name string) string {
	return strings.Trim(toolNameRe.ReplaceAllString(strings.ToLower(name), "_"), "_")
}

// schemaProperty is one property of the generated input schema.
type schemaProperty struct {
	Type                 string                    `json:"type"`
	Description          string                    `json:"description,omitempty"`
	Enum                 []domain.Priority         `json:"enum,omitempty"`
	Items                *schemaProperty           `json:"items,omitempty"`
	Properties           map[string]schemaProperty `json:"properties,omitempty"`
	AdditionalProperties *bool                     `json:"additionalProperties,omitempty"`
}

type inputSchema struct {
	Type                 string                    `json:"type"`
	Properties           map[string]schemaProperty `json:"properties"`
	Required             []string                  `json:"required"`
	AdditionalProperties *bool                     `json:"additionalProperties,omitempty"`
}

// buildInputSchema renders the fixed tool input shape: one required "task"
// string and one optional structured "context".
func buildInputSchema() json.RawMessage {
	no := false
	schema := inputSchema{
		Type: "object",
		Properties: map[string]schemaProperty{
			"task": {
				Type:        "string",
				Description: "The task for the agent to perform",
			},
			"context": {
				Type:        "object",
				Description: "Optional task context",
				Properties: map[string]schemaProperty{
					"files": {
						Type:  "array",
						Items: &schemaProperty{Type: "string"},
					},
					"references": {
						Type:  "array",
						Items: &schemaProperty{Type: "string"},
					},
					"priority": {
						Type: "string",
						Enum: domain.Priorities,
					},
				},
				AdditionalProperties: &no,
			},
		},
		Required:             []string{"task"},
		AdditionalProperties: &no,
	}
	// Marshal of a fixed struct is deterministic; map keys are sorted.
	data, err := json.Marshal(schema)
	if err != nil {
		panic(fmt.Sprintf("marshal input schema: %v", err))
	}
	return data
}

// Descriptor projects one profile into its tool descriptor. Deterministic:
// the same profile always yields a byte-identical descriptor.
func Descriptor(prof domain.AgentProfile) domain.ToolDescriptor {
	return domain.ToolDescriptor{
		Name:        ToolName(prof.Name),
		Description: describe(prof),
		InputSchema: buildInputSchema(),
	}
}

// Catalog projects every profile, preserving registry order.
func Catalog(profiles []domain.AgentProfile) []domain.ToolDescriptor {
	out := make([]domain.ToolDescriptor, 0, len(profiles))
	for _, prof := range profiles {
		out = append(out, Descriptor(prof))
	}
	return out
}

// describe composes the tool description in fixed order: profile description,
// specialization list, numbered responsibilities. Empty pieces render
// nothing rather than an empty enumeration marker.
func describe(prof domain.AgentProfile) string {
	var sb strings.Builder
	sb.WriteString(prof.Description)
	if len(prof.Specialization) > 0 {
		sb.WriteString("\n\nSpecializes in: ")
		sb.WriteString(strings.Join(prof.Specialization, ", "))
	}
	if len(prof.CoreResponsibilities) > 0 {
		sb.WriteString("\n\nCapabilities:")
		for i, r := range prof.CoreResponsibilities {
			fmt.Fprintf(&sb, "\n%d. %s", i+1, r)
		}
	}
	return sb.String()
}
