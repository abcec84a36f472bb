// Package activation decides which steering documents apply to a given
// development task. Resolution is a pure function of an immutable
// registry snapshot and the task context, so any number of tasks can be
// resolved concurrently without synchronization.
package activation

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/c360studio/steering/document"
	"github.com/c360studio/steering/registry"
)

// TaskContext describes the task a caller is assembling context for.
type TaskContext struct {
	// ActiveFile is the path of the file being worked on, relative to
	// the project root. Optional.
	ActiveFile string `json:"active_file,omitempty"`

	// Tags are the explicitly referenced activation tags.
	Tags []string `json:"tags,omitempty"`

	// Description is the free-text task description, used by the
	// relevance ranker.
	Description string `json:"description,omitempty"`
}

// Result is the ordered set of documents activated for a task.
// Order follows registry order (lexicographic by ID), never match
// strength.
type Result struct {
	Documents []*document.Document
}

// IDs returns the activated document identifiers in result order.
func (r Result) IDs() []string {
	ids := make([]string, len(r.Documents))
	for i, d := range r.Documents {
		ids[i] = d.ID
	}
	return ids
}

// Resolve computes the activation for a task. Inclusion rules are
// mutually exclusive per document mode:
//
//   - always: included in every result
//   - file-match: included iff the active file matches the pattern
//     (doublestar glob semantics: * within a path segment, ** across)
//   - manual: included iff the document's tag is referenced
//
// An empty task context yields only always-mode documents.
func Resolve(snap *registry.Snapshot, tc TaskContext) Result {
	tags := make(map[string]bool, len(tc.Tags))
	for _, t := range tc.Tags {
		tags[t] = true
	}

	var result Result
	for _, doc := range snap.All() {
		switch doc.Mode {
		case document.ModeAlways:
			result.Documents = append(result.Documents, doc)
		case document.ModeFileMatch:
			if tc.ActiveFile != "" && MatchesFile(doc.Pattern, tc.ActiveFile) {
				result.Documents = append(result.Documents, doc)
			}
		case document.ModeManual:
			if tags[doc.Tag] {
				result.Documents = append(result.Documents, doc)
			}
		}
	}
	return result
}

// MatchesFile reports whether a file path matches a document pattern.
// Paths are compared slash-separated. A pattern with no separator also
// matches against the file's base name, so "*.sql" activates for
// "migrations/schema.sql".
func MatchesFile(pattern, file string) bool {
	file = path.Clean(filepath.ToSlash(file))

	if ok, err := doublestar.Match(pattern, file); err == nil && ok {
		return true
	}

	if !strings.Contains(pattern, "/") {
		if ok, err := doublestar.Match(pattern, path.Base(file)); err == nil && ok {
			return true
		}
	}

	return false
}
