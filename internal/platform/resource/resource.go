// Package resource abstracts where a rule-configuration document comes from:
// a local file, an inline string, or a remote URL. Every variant materializes
// to a concrete file-backed form before the engine runs.
package resource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"lintgate/internal/platform/httpclient"
)

// TextResource is a rule-configuration document that can be rendered to a
// file on disk.
type TextResource interface {
	// Name identifies the resource in error messages.
	Name() string

	// Materialize renders the document into dir and returns the absolute
	// path of the resulting file.
	Materialize(ctx context.Context, dir string) (string, error)
}

// FileResource is a document already backed by a local file.
type FileResource struct {
	Path string
}

// Name implements TextResource.
func (r FileResource) Name() string { return r.Path }

// Materialize verifies the file exists and returns its absolute path. No
// copy is made.
func (r FileResource) Materialize(_ context.Context, _ string) (string, error) {
	info, err := os.Stat(r.Path)
	if err != nil {
		return "", fmt.Errorf("rule file %s: %w", r.Path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("rule file %s is a directory", r.Path)
	}
	return filepath.Abs(r.Path)
}

// InlineResource is a document held in memory, written out on demand.
type InlineResource struct {
	// DisplayName identifies the resource; also used as the file name.
	DisplayName string

	// Content is the document text.
	Content string
}

// Name implements TextResource.
func (r InlineResource) Name() string {
	if r.DisplayName != "" {
		return r.DisplayName
	}
	return "inline rule configuration"
}

// Materialize writes the content into dir.
func (r InlineResource) Materialize(_ context.Context, dir string) (string, error) {
	if r.Content == "" {
		return "", fmt.Errorf("inline rule configuration is empty")
	}

	name := r.DisplayName
	if name == "" {
		name = "rules.xml"
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(r.Content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write inline rules: %w", err)
	}
	return filepath.Abs(path)
}

// HTTPResource is a document fetched from a remote URL.
type HTTPResource struct {
	URL    string
	Client *httpclient.Client
}

// Name implements TextResource.
func (r HTTPResource) Name() string { return r.URL }

// Materialize downloads the document into dir.
func (r HTTPResource) Materialize(ctx context.Context, dir string) (string, error) {
	if r.Client == nil {
		return "", fmt.Errorf("no HTTP client configured for %s", r.URL)
	}

	body, err := r.Client.Get(ctx, r.URL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", r.URL, err)
	}

	name := filepath.Base(r.URL)
	if name == "" || name == "." || name == "/" {
		name = "rules.xml"
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("failed to write fetched rules: %w", err)
	}
	return filepath.Abs(path)
}
