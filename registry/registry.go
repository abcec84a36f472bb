// Package registry loads steering documents from a directory and serves
// immutable snapshots of the document set for concurrent resolution.
package registry

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/c360studio/steering/document"
)

// Directory names skipped during the scan.
var defaultExcludes = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
}

// Registry scans a directory of steering documents and holds the
// current snapshot. Load populates it once at startup; a Watcher may
// call Load again to swap in a fresh snapshot on file changes.
type Registry struct {
	dir      string
	parsers  *document.ParserRegistry
	logger   *slog.Logger
	snapshot atomic.Pointer[Snapshot]
}

// New creates a registry over the given docs directory. A nil parser
// registry uses the default parsers; a nil logger uses slog.Default.
func New(dir string, parsers *document.ParserRegistry, logger *slog.Logger) *Registry {
	if parsers == nil {
		parsers = document.DefaultParsers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		dir:     dir,
		parsers: parsers,
		logger:  logger,
	}
}

// Dir returns the docs directory this registry scans.
func (r *Registry) Dir() string {
	return r.dir
}

// Load scans the docs directory and atomically swaps in a new snapshot.
// A missing directory is fatal and leaves any existing snapshot in
// place. Unreadable files are logged and skipped. Documents with
// invalid metadata are excluded from the snapshot; their errors are
// returned so the caller can surface them.
func (r *Registry) Load() ([]*LoadError, error) {
	info, err := os.Stat(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, r.dir)
		}
		return nil, fmt.Errorf("stat docs directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, r.dir)
	}

	var docs []*document.Document
	var invalid []*LoadError

	walkErr := filepath.WalkDir(r.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			r.logger.Warn("Skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			base := d.Name()
			if path != r.dir && (defaultExcludes[base] || strings.HasPrefix(base, ".")) {
				return filepath.SkipDir
			}
			return nil
		}

		if r.parsers.ForPath(path) == nil {
			return nil
		}

		rel, err := filepath.Rel(r.dir, path)
		if err != nil {
			return nil
		}
		id := filepath.ToSlash(rel)

		content, err := os.ReadFile(path)
		if err != nil {
			r.logger.Warn("Skipping unreadable document", "id", id, "error", err)
			return nil
		}

		doc, err := r.parsers.Parse(id, content)
		if err != nil {
			invalid = append(invalid, &LoadError{Path: id, Err: err})
			return nil
		}
		if err := doc.Validate(); err != nil {
			invalid = append(invalid, &LoadError{Path: id, Err: err})
			return nil
		}

		docs = append(docs, doc)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("scan docs directory: %w", walkErr)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].ID < docs[j].ID
	})

	r.snapshot.Store(newSnapshot(docs))

	r.logger.Info("Loaded document registry",
		"dir", r.dir,
		"documents", len(docs),
		"invalid", len(invalid))

	return invalid, nil
}

// Snapshot returns the current snapshot. Nil-safe for callers: an
// unloaded registry yields an empty snapshot.
func (r *Registry) Snapshot() *Snapshot {
	if s := r.snapshot.Load(); s != nil {
		return s
	}
	return newSnapshot(nil)
}
