package document

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Header is the structured inclusion block at the top of a document:
// YAML key-value pairs delimited by "---" lines before the free-text body.
type Header struct {
	// Mode is the inclusion mode: "always", "file-match", or "manual".
	// An absent header or empty mode defaults to always.
	Mode string `yaml:"mode"`

	// Pattern is the glob pattern for file-match documents.
	Pattern string `yaml:"pattern"`

	// Tag is the activation tag for manual documents.
	Tag string `yaml:"tag"`

	// Title overrides the title derived from the body.
	Title string `yaml:"title"`
}

// ExtractHeader parses the inclusion header from document content.
// Returns the header, the remaining body, and whether a header block
// was present. A malformed header block is an error; content with no
// opening delimiter is returned unchanged with an empty header.
func ExtractHeader(content string) (Header, string, bool, error) {
	var header Header

	if !strings.HasPrefix(content, "---\n") && !strings.HasPrefix(content, "---\r\n") {
		return header, content, false, nil
	}

	const delimiter = "---"

	// Skip the opening delimiter line.
	start := len(delimiter)
	if len(content) > start && content[start] == '\r' {
		start++
	}
	if len(content) > start && content[start] == '\n' {
		start++
	}

	closeIdx := strings.Index(content[start:], "\n"+delimiter)
	if closeIdx == -1 {
		closeIdx = strings.Index(content[start:], "\r\n"+delimiter)
	}
	if closeIdx == -1 {
		return header, content, false, fmt.Errorf("no closing header delimiter")
	}

	yamlContent := content[start : start+closeIdx]

	// Body starts after the closing delimiter and its newline.
	bodyStart := start + closeIdx + 1 + len(delimiter)
	for bodyStart < len(content) && (content[bodyStart] == '\n' || content[bodyStart] == '\r') {
		bodyStart++
	}

	body := ""
	if bodyStart < len(content) {
		body = content[bodyStart:]
	}

	if err := yaml.Unmarshal([]byte(yamlContent), &header); err != nil {
		return Header{}, content, false, fmt.Errorf("parse header: %w", err)
	}

	return header, body, true, nil
}

// apply maps the header onto a document, defaulting an absent mode to
// always. Unknown modes are carried through so Validate can reject them
// with the document's path attached.
func (h Header) apply(doc *Document) {
	mode := strings.TrimSpace(h.Mode)
	if mode == "" {
		doc.Mode = ModeAlways
	} else {
		doc.Mode = Mode(mode)
	}
	doc.Pattern = strings.TrimSpace(h.Pattern)
	doc.Tag = strings.TrimSpace(h.Tag)
	if h.Title != "" {
		doc.Title = h.Title
	}
}
