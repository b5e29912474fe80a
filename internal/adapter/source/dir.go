// Package source provides document source collaborators for the agent
// registry. A source enumerates definition documents and retrieves them
// individually; a failed read of one document must not abort the listing.
package source

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"chained-agents/internal/domain"
)

// DefaultIndexDocument is the catalog document excluded from profile loading.
const DefaultIndexDocument = "README.md"

// Dir serves definition documents from a local directory. Only .md files are
// eligible; the index document is excluded.
type Dir struct {
	path  string
	index string
}

// NewDir creates a directory-backed document source. index names the document
// to exclude from listings; empty means DefaultIndexDocument.
func NewDir(path, index string) *Dir {
	if index == "" {
		index = DefaultIndexDocument
	}
	return &Dir{path: path, index: index}
}

// List returns the eligible document names in lexical order. A missing or
// unreadable directory maps to ErrSourceUnavailable.
func (d *Dir) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, domain.NewDomainError("Dir.List", domain.ErrSourceUnavailable, d.path)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".md") || strings.EqualFold(name, d.index) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Read returns the raw text of one document.
func (d *Dir) Read(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(d.path, name))
	if err != nil {
		return nil, domain.WrapOp("Dir.Read", err)
	}
	return data, nil
}

// Name returns the backend identifier.
func (d *Dir) Name() string { return "dir" }
