package document

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// Parser converts a raw file into a Document.
type Parser interface {
	// Parse parses file content into a Document. The id is the
	// slash-separated path relative to the docs root.
	Parse(id string, content []byte) (*Document, error)

	// Extensions returns the file extensions this parser handles,
	// lowercase with leading dot.
	Extensions() []string
}

// ParserRegistry maps file extensions to parsers.
type ParserRegistry struct {
	mu      sync.RWMutex
	parsers map[string]Parser // keyed by extension
}

// DefaultParsers is the global parser registry with default parsers.
var DefaultParsers = NewParserRegistry()

// NewParserRegistry creates a registry with the default parsers.
func NewParserRegistry() *ParserRegistry {
	r := &ParserRegistry{
		parsers: make(map[string]Parser),
	}

	r.Register(NewMarkdownParser())
	r.Register(NewHTMLParser())

	return r
}

// Register adds a parser for its declared extensions.
func (r *ParserRegistry) Register(p Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ext := range p.Extensions() {
		r.parsers[ext] = p
	}
}

// ForPath returns the parser for a file path, or nil if the extension
// is not handled.
func (r *ParserRegistry) ForPath(path string) Parser {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.parsers[strings.ToLower(filepath.Ext(path))]
}

// Parse parses a file using the parser registered for its extension.
func (r *ParserRegistry) Parse(id string, content []byte) (*Document, error) {
	p := r.ForPath(id)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(id))
	}
	return p.Parse(id, content)
}

// Extensions returns all registered extensions.
func (r *ParserRegistry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.parsers))
	for ext := range r.parsers {
		exts = append(exts, ext)
	}
	return exts
}
