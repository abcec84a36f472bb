package document

import (
	"bytes"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"golang.org/x/net/html"
)

// Pre-compiled regexes to avoid runtime compilation on every document.
var (
	scriptRe         = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe          = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	excessiveLinesRe = regexp.MustCompile(`\n{4,}`)
)

// HTMLParser converts HTML standards documents to markdown. HTML files
// carry no inclusion header, so they load as mode always; per-file
// inclusion rules belong in markdown documents.
type HTMLParser struct {
	converter *md.Converter
}

// NewHTMLParser creates a new HTML parser.
func NewHTMLParser() *HTMLParser {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	return &HTMLParser{converter: converter}
}

// Parse converts HTML content to a markdown-bodied document.
func (p *HTMLParser) Parse(id string, content []byte) (*Document, error) {
	title := extractHTMLTitle(content)

	cleaned := scriptRe.ReplaceAllString(string(content), "")
	cleaned = styleRe.ReplaceAllString(cleaned, "")

	markdown, err := p.converter.ConvertString(cleaned)
	if err != nil {
		return nil, &ParseError{ID: id, Err: err}
	}

	markdown = strings.TrimSpace(excessiveLinesRe.ReplaceAllString(markdown, "\n\n\n"))

	doc := &Document{
		ID:    id,
		Mode:  ModeAlways,
		Title: title,
		Body:  markdown,
		Hash:  contentHash(content),
		Size:  len(markdown),
	}

	if doc.Title == "" {
		doc.Title = headingTitle(markdown)
	}

	return doc, nil
}

// Extensions implements Parser.
func (p *HTMLParser) Extensions() []string {
	return []string{".html", ".htm"}
}

// extractHTMLTitle returns the content of the <title> element, or the
// first <h1> if no title is present.
func extractHTMLTitle(content []byte) string {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return ""
	}

	var title, h1 string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if title == "" && n.FirstChild != nil {
					title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "h1":
				if h1 == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					h1 = strings.TrimSpace(n.FirstChild.Data)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if title != "" {
		return title
	}
	return h1
}
