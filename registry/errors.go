package registry

import (
	"errors"
	"fmt"
)

// Common registry errors.
var (
	// ErrDirectoryNotFound is returned when the configured docs
	// directory does not exist. Fatal: no documents are usable.
	ErrDirectoryNotFound = errors.New("document directory not found")
)

// LoadError records a document that was excluded from a snapshot
// because its metadata or content could not be parsed.
type LoadError struct {
	// Path is the document path relative to the docs root.
	Path string

	// Err is the underlying metadata or parse error.
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
