// Package catalog loads designer-authored prototype documents into a typed,
// cross-referenced registry. Loading is a synchronous pipeline per batch:
// parse every source, insert the whole batch, then run one resolution pass.
package catalog

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Source supplies one raw prototype document. Production code reads files;
// tests supply in-memory sources.
type Source interface {
	Load() ([]byte, error)
	Path() string
}

type fileSource struct {
	path string
}

func (f fileSource) Load() ([]byte, error) {
	return os.ReadFile(f.path)
}

func (f fileSource) Path() string {
	return f.path
}

// FileSource wraps a path on disk as a document source.
func FileSource(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

// SourcesFromPaths expands a list of paths into document sources. Directories
// contribute every *.json file they contain, sorted by name so load order is
// stable; plain paths pass through as single-file sources.
func SourcesFromPaths(paths []string) []Source {
	sources := make([]Source, 0, len(paths))
	for _, path := range paths {
		trimmed := strings.TrimSpace(path)
		if trimmed == "" {
			continue
		}
		info, err := os.Stat(trimmed)
		if err != nil || !info.IsDir() {
			sources = append(sources, FileSource(trimmed))
			continue
		}
		entries, err := os.ReadDir(trimmed)
		if err != nil {
			sources = append(sources, FileSource(trimmed))
			continue
		}
		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}
			names = append(names, entry.Name())
		}
		sort.Strings(names)
		for _, name := range names {
			sources = append(sources, FileSource(filepath.Join(trimmed, name)))
		}
	}
	return sources
}
