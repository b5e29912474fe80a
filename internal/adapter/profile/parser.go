// Package profile parses agent definition documents into domain profiles.
//
// A definition document is markdown following a heading + labeled-field
// convention:
//
//	# Display Name
//	One free-text paragraph describing the agent.
//	**Traits:** fast, thorough
//	**Communication Style:** direct
//	## Core Responsibilities
//	1. **First capability** - elaboration
//	2. **Second capability** - elaboration
//
// Every section is independently optional; missing sections degrade to the
// documented defaults instead of failing the parse.
package profile

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"chained-agents/internal/domain"
)

var (
	titleRe    = regexp.MustCompile(`^#\s+(.+)$`)
	headingRe  = regexp.MustCompile(`^#{1,6}\s`)
	labelRe    = regexp.MustCompile(`^\*\*([^:*]+):\*\*\s*(.*)$`)
	numberedRe = regexp.MustCompile(`^\s*\d+[.)]\s+(.*)$`)
	boldLeadRe = regexp.MustCompile(`\*\*(.+?)\*\*`)
	sepRe      = regexp.MustCompile(`[-_\s]+`)
)

// Parse converts one definition document into an AgentProfile. It is a pure
// function of its input: no I/O, no shared state. fallbackName becomes the
// profile name (documents are keyed by file name, not by title).
//
// Returns ErrParseFailure only when the document cannot be decoded at all;
// structurally poor documents still produce a profile with defaults.
func Parse(doc []byte, fallbackName string) (*domain.AgentProfile, error) {
	if !utf8.Valid(doc) {
		return nil, domain.NewDomainError("Parse", domain.ErrParseFailure, fallbackName)
	}

	p := &domain.AgentProfile{
		Name:        fallbackName,
		Description: domain.DefaultDescription,
		Personality: domain.Personality{
			DisplayName:        displayName(fallbackName),
			Traits:             []string{},
			CommunicationStyle: domain.DefaultCommunicationStyle,
		},
		Specialization:       splitName(fallbackName),
		CoreResponsibilities: []string{},
	}

	lines := strings.Split(string(doc), "\n")
	inResponsibilities := false
	haveDescription := false

	for i := 0; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], " \t\r")
		trimmed := strings.TrimSpace(line)

		if m := titleRe.FindStringSubmatch(trimmed); m != nil {
			p.Personality.DisplayName = strings.TrimSpace(m[1])
			continue
		}

		if strings.HasPrefix(trimmed, "##") {
			inResponsibilities = sectionIs(trimmed, "core responsibilities")
			continue
		}

		if m := labelRe.FindStringSubmatch(trimmed); m != nil {
			applyLabel(p, strings.TrimSpace(m[1]), strings.TrimSpace(m[2]))
			continue
		}

		if inResponsibilities {
			if m := numberedRe.FindStringSubmatch(line); m != nil {
				if r := responsibility(m[1]); r != "" {
					p.CoreResponsibilities = append(p.CoreResponsibilities, r)
				}
			}
			continue
		}

		// First body paragraph after the title becomes the description.
		if !haveDescription && trimmed != "" && !headingRe.MatchString(trimmed) {
			p.Description = trimmed
			haveDescription = true
		}
	}

	return p, nil
}

// applyLabel routes one "**Label:** value" line into the profile.
func applyLabel(p *domain.AgentProfile, label, value string) {
	switch strings.ToLower(label) {
	case "traits":
		if value != "" {
			p.Personality.Traits = splitCommas(value)
		}
	case "communication style":
		if value != "" {
			p.Personality.CommunicationStyle = value
		}
	case "specialization", "specializations":
		if value != "" {
			p.Specialization = splitCommas(value)
		}
	}
}

// responsibility extracts the emphasized lead phrase of a numbered item.
// Items without emphasis fall back to the text before the first dash.
func responsibility(item string) string {
	if m := boldLeadRe.FindStringSubmatch(item); m != nil {
		return strings.TrimSpace(m[1])
	}
	lead, _, _ := strings.Cut(item, " - ")
	return strings.TrimSpace(lead)
}

func sectionIs(heading, want string) bool {
	title := strings.TrimSpace(strings.TrimLeft(heading, "#"))
	return strings.EqualFold(title, want)
}

func splitCommas(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// splitName derives specialization tags from a slug name: "bug-hunter"
// yields ["bug", "hunter"].
func splitName(name string) []string {
	parts := sepRe.Split(strings.ToLower(name), -1)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// displayName turns a slug into a human-readable name: "bug-hunter" becomes
// "Bug Hunter". Used until the document's own title overrides it.
func displayName(name string) string {
	parts := splitName(name)
	for i, part := range parts {
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}
