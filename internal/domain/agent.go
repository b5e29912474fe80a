package domain

// Personality describes how an agent presents itself in generated work.
type Personality struct {
	DisplayName        string   `json:"displayName"`
	Traits             []string `json:"traits"`
	CommunicationStyle string   `json:"communicationStyle"`
}

// AgentProfile is the canonical identity of one capability provider, parsed
// from its definition document. Name is unique within a registry and is never
// reassigned after load; reloading a document with the same name replaces the
// whole profile instead. CoreResponsibilities order is significant and must
// survive projection into tool descriptions unchanged.
type AgentProfile struct {
	Name                 string      `json:"name"`
	Description          string      `json:"description"`
	Personality          Personality `json:"personality"`
	Specialization       []string    `json:"specialization"`
	CoreResponsibilities []string    `json:"coreResponsibilities"`
}

// Defaults applied by the parser when a definition document omits a field.
const (
	DefaultCommunicationStyle = "professional"
	DefaultDescription        = "A specialized autonomous agent."
)
