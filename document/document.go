// Package document defines the steering document model: a standards file
// carrying an inclusion header that controls when it is loaded into the
// context for a development task.
package document

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// Mode is the inclusion policy for a document.
type Mode string

const (
	// ModeAlways includes the document in every activation.
	ModeAlways Mode = "always"

	// ModeFileMatch includes the document when the task's active file
	// matches the document's glob pattern.
	ModeFileMatch Mode = "file-match"

	// ModeManual includes the document when its tag is explicitly
	// referenced by the task.
	ModeManual Mode = "manual"
)

// IsValid returns true if the mode is recognized.
func (m Mode) IsValid() bool {
	switch m {
	case ModeAlways, ModeFileMatch, ModeManual:
		return true
	}
	return false
}

// Document is a single steering document loaded from the docs directory.
// Documents are immutable after load and safe for concurrent read access.
type Document struct {
	// ID is the path relative to the docs root, slash-separated.
	ID string `json:"id"`

	// Mode is the inclusion policy.
	Mode Mode `json:"mode"`

	// Pattern is the glob pattern for file-match documents.
	Pattern string `json:"pattern,omitempty"`

	// Tag is the activation tag for manual documents.
	Tag string `json:"tag,omitempty"`

	// Title is the display title, from the header or the first heading.
	Title string `json:"title,omitempty"`

	// Body is the document text with the header stripped.
	Body string `json:"body"`

	// Hash is a short content hash for staleness detection.
	Hash string `json:"hash,omitempty"`

	// Size is the body length in bytes.
	Size int `json:"size"`
}

// Validate checks the inclusion metadata invariants: exactly one
// recognized mode, a non-empty valid pattern for file-match, and a
// non-empty tag for manual.
func (d *Document) Validate() error {
	if !d.Mode.IsValid() {
		return fmt.Errorf("%w: %s: unknown mode %q", ErrInvalidMetadata, d.ID, d.Mode)
	}

	switch d.Mode {
	case ModeFileMatch:
		if d.Pattern == "" {
			return fmt.Errorf("%w: %s: file-match requires a pattern", ErrInvalidMetadata, d.ID)
		}
		if !doublestar.ValidatePattern(d.Pattern) {
			return fmt.Errorf("%w: %s: malformed pattern %q", ErrInvalidMetadata, d.ID, d.Pattern)
		}
		if d.Tag != "" {
			return fmt.Errorf("%w: %s: file-match does not accept a tag", ErrInvalidMetadata, d.ID)
		}
	case ModeManual:
		if d.Tag == "" {
			return fmt.Errorf("%w: %s: manual requires a tag", ErrInvalidMetadata, d.ID)
		}
		if d.Pattern != "" {
			return fmt.Errorf("%w: %s: manual does not accept a pattern", ErrInvalidMetadata, d.ID)
		}
	case ModeAlways:
		if d.Pattern != "" || d.Tag != "" {
			return fmt.Errorf("%w: %s: always does not accept a pattern or tag", ErrInvalidMetadata, d.ID)
		}
	}

	return nil
}

// EstimatedTokens returns a rough token count for the body
// (roughly 4 chars per token).
func (d *Document) EstimatedTokens() int {
	return d.Size / 4
}
