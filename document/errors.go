package document

import (
	"errors"
	"fmt"
)

// Common document errors.
var (
	// ErrInvalidMetadata is returned when a document's inclusion header
	// is malformed: unknown mode, file-match without a pattern, or
	// manual without a tag.
	ErrInvalidMetadata = errors.New("invalid document metadata")

	// ErrUnsupportedFormat is returned when no parser is registered for
	// a file's extension.
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

// ParseError wraps a parse failure with the offending document ID.
type ParseError struct {
	ID  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.ID, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
