package document

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// MarkdownParser parses markdown and plain-text documents with an
// optional YAML inclusion header.
type MarkdownParser struct{}

// NewMarkdownParser creates a new markdown parser.
func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{}
}

// Parse extracts the inclusion header and body. A malformed header is
// a metadata error; content without a header defaults to mode always.
func (p *MarkdownParser) Parse(id string, content []byte) (*Document, error) {
	header, body, _, err := ExtractHeader(string(content))
	if err != nil {
		return nil, &ParseError{ID: id, Err: err}
	}

	doc := &Document{
		ID:   id,
		Body: body,
		Hash: contentHash(content),
		Size: len(body),
	}
	header.apply(doc)

	if doc.Title == "" {
		doc.Title = headingTitle(body)
	}

	return doc, nil
}

// Extensions implements Parser.
func (p *MarkdownParser) Extensions() []string {
	return []string{".md", ".markdown", ".txt"}
}

// headingTitle returns the first ATX heading in the body, if any.
func headingTitle(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "#"))
		}
		if line != "" {
			break
		}
	}
	return ""
}

// contentHash returns a short hash of the raw file content
// (12 hex chars, used only for staleness detection).
func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])[:12]
}
