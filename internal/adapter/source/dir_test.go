package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chained-agents/internal/domain"
)

func writeDoc(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestDirListExcludesIndexAndNonMarkdown(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "bug-hunter.md", "# Bug Hunter")
	writeDoc(t, dir, "architect.md", "# Architect")
	writeDoc(t, dir, "README.md", "# Index")
	writeDoc(t, dir, "notes.txt", "not a doc")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.md"), 0o755))

	src := NewDir(dir, "")
	names, err := src.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"architect.md", "bug-hunter.md"}, names)
}

func TestDirListMissingDirectory(t *testing.T) {
	src := NewDir(filepath.Join(t.TempDir(), "absent"), "")
	_, err := src.List(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestDirRead(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "bug-hunter.md", "# Bug Hunter\n")

	src := NewDir(dir, "")
	data, err := src.Read(context.Background(), "bug-hunter.md")
	require.NoError(t, err)
	assert.Equal(t, "# Bug Hunter\n", string(data))

	_, err = src.Read(context.Background(), "missing.md")
	assert.Error(t, err)
}

func TestDirCustomIndex(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "AGENTS.md", "# Catalog")
	writeDoc(t, dir, "scout.md", "# Scout")

	src := NewDir(dir, "AGENTS.md")
	names, err := src.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"scout.md"}, names)
}
