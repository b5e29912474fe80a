package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chained-agents/internal/domain"
)

const bugHunterDoc = `# Bug Hunter

Relentless tracker of elusive defects.

**Traits:** fast, thorough
**Communication Style:** direct

## Core Responsibilities

1. **Diagnose failures** - reproduce and bisect reported crashes
2. **Write regression tests** - lock in every fix
`

func TestParseFullDocument(t *testing.T) {
	p, err := Parse([]byte(bugHunterDoc), "bug-hunter")
	require.NoError(t, err)

	assert.Equal(t, "bug-hunter", p.Name)
	assert.Equal(t, "Relentless tracker of elusive defects.", p.Description)
	assert.Equal(t, "Bug Hunter", p.Personality.DisplayName)
	assert.Equal(t, []string{"fast", "thorough"}, p.Personality.Traits)
	assert.Equal(t, "direct", p.Personality.CommunicationStyle)
	assert.Equal(t, []string{"bug", "hunter"}, p.Specialization)
	assert.Equal(t, []string{"Diagnose failures", "Write regression tests"}, p.CoreResponsibilities)
}

func TestParseDefaults(t *testing.T) {
	p, err := Parse([]byte(""), "code-reviewer")
	require.NoError(t, err)

	assert.Equal(t, "code-reviewer", p.Name)
	assert.Equal(t, domain.DefaultDescription, p.Description)
	assert.Equal(t, "Code Reviewer", p.Personality.DisplayName)
	assert.Empty(t, p.Personality.Traits)
	assert.Equal(t, domain.DefaultCommunicationStyle, p.Personality.CommunicationStyle)
	assert.Equal(t, []string{"code", "reviewer"}, p.Specialization)
	assert.Empty(t, p.CoreResponsibilities)
}

func TestParseTitleOverridesDisplayName(t *testing.T) {
	p, err := Parse([]byte("# The Architect\n\nDesigns systems.\n"), "architect")
	require.NoError(t, err)
	assert.Equal(t, "The Architect", p.Personality.DisplayName)
	assert.Equal(t, "Designs systems.", p.Description)
}

func TestParseTraitsTrimmed(t *testing.T) {
	p, err := Parse([]byte("**Traits:**  bold ,  careful , , curious \n"), "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"bold", "careful", "curious"}, p.Personality.Traits)
}

func TestParseExplicitSpecialization(t *testing.T) {
	p, err := Parse([]byte("**Specialization:** security, fuzzing\n"), "sec-agent")
	require.NoError(t, err)
	assert.Equal(t, []string{"security", "fuzzing"}, p.Specialization)
}

func TestParseResponsibilityOrderPreserved(t *testing.T) {
	doc := `## Core Responsibilities
1. **Third first** - order comes from the document, not the rank word
2. **Second**
3. **First last**
`
	p, err := Parse([]byte(doc), "ordered")
	require.NoError(t, err)
	assert.Equal(t, []string{"Third first", "Second", "First last"}, p.CoreResponsibilities)
}

func TestParseResponsibilityWithoutEmphasis(t *testing.T) {
	doc := `## Core Responsibilities
1. Plain lead phrase - with elaboration
`
	p, err := Parse([]byte(doc), "plain")
	require.NoError(t, err)
	assert.Equal(t, []string{"Plain lead phrase"}, p.CoreResponsibilities)
}

func TestParseIgnoresNumbersOutsideResponsibilities(t *testing.T) {
	doc := `# Agent

Intro paragraph.

1. **Not a responsibility** - outside any section

## Core Responsibilities

1. **Real one**

## Notes

2. **Not one either**
`
	p, err := Parse([]byte(doc), "agent")
	require.NoError(t, err)
	assert.Equal(t, []string{"Real one"}, p.CoreResponsibilities)
}

func TestParseInvalidEncoding(t *testing.T) {
	_, err := Parse([]byte{0xff, 0xfe, 0xfd}, "broken")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrParseFailure)
}

func TestParseLabelLinesNotDescription(t *testing.T) {
	doc := `# Agent

**Traits:** calm

Actual description paragraph.
`
	p, err := Parse([]byte(doc), "agent")
	require.NoError(t, err)
	assert.Equal(t, "Actual description paragraph.", p.Description)
}
