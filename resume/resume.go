// Package resume loads executor resume text from local or remote locations.
package resume

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
)

// MaxSize caps how much resume text a single load may return. Analysis
// backends reject oversized payloads anyway, so truncation happens here
// where the caller can still see the original location.
const MaxSize = 256 * 1024

// Loader reads resume documents through the abstract file system, so a URL
// may point at a local path, file://, embed:// or any other supported scheme.
type Loader struct {
	fs afs.Service
}

// NewLoader returns a loader backed by the default abstract file system.
func NewLoader() *Loader {
	return &Loader{fs: afs.New()}
}

// Load downloads the resume at URL and returns its text, truncated to
// MaxSize bytes. An empty document is an error: an executor without resume
// text cannot be analyzed.
func (l *Loader) Load(ctx context.Context, URL string) (string, error) {
	if URL == "" {
		return "", fmt.Errorf("resume URL was empty")
	}
	data, err := l.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return "", fmt.Errorf("failed to load resume from %v: %w", URL, err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("resume at %v was empty", URL)
	}
	if len(text) > MaxSize {
		text = text[:MaxSize]
	}
	return text, nil
}
