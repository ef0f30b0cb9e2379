package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"

	"wiki-summary/config"
)

// Extractor turns raw HTML into plain text suitable for summarization.
// Implementations never fail: unusable input yields "".
type Extractor interface {
	Extract(htmlStr string) string
}

// New builds the extractor selected by cfg.Strategy.
// Every strategy falls back to the selector strategy when it finds nothing.
func New(cfg config.ExtractorConfig) Extractor {
	selector := NewSelectorExtractor(cfg.ContentSelectors, cfg.StripSelectors)
	switch cfg.Strategy {
	case "readability":
		return &ReadabilityExtractor{fallback: selector}
	case "trafilatura":
		return &TrafilaturaExtractor{fallback: selector}
	default:
		return selector
	}
}

// SelectorExtractor strips boilerplate subtrees and, when one of the content
// selectors matches (wikipedia: #mw-content-text), keeps only its paragraphs.
type SelectorExtractor struct {
	contentSelectors []string
	stripSelector    string
}

func NewSelectorExtractor(contentSelectors, stripSelectors []string) *SelectorExtractor {
	return &SelectorExtractor{
		contentSelectors: contentSelectors,
		stripSelector:    strings.Join(stripSelectors, ", "),
	}
}

func (e *SelectorExtractor) Extract(htmlStr string) string {
	// no markup at all is not an HTML document
	if !strings.Contains(htmlStr, "<") {
		return ""
	}

	// html.Parse recovers from malformed markup the way browsers do
	root, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return ""
	}
	doc := goquery.NewDocumentFromNode(root)
	if e.stripSelector != "" {
		doc.Find(e.stripSelector).Remove()
	}

	for _, sel := range e.contentSelectors {
		main := doc.Find(sel).First()
		if main.Length() == 0 {
			continue
		}
		var paragraphs []string
		main.Find("p").Each(func(_ int, p *goquery.Selection) {
			if text := normalizeSpace(p.Text()); text != "" {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) > 0 {
			return strings.Join(paragraphs, "\n")
		}
		return normalizeLines(main.Text())
	}

	body := doc.Find("body")
	if body.Length() == 0 {
		return normalizeLines(doc.Text())
	}
	return normalizeLines(body.Text())
}

// ReadabilityExtractor uses go-readability's article detection.
type ReadabilityExtractor struct {
	fallback Extractor
}

func (e *ReadabilityExtractor) Extract(htmlStr string) string {
	if !strings.Contains(htmlStr, "<") {
		return ""
	}
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return ""
	}
	article, err := readability.FromDocument(doc, nil)
	if err == nil {
		if text := normalizeLines(article.TextContent); text != "" {
			return text
		}
	}
	return e.fallback.Extract(htmlStr)
}

// TrafilaturaExtractor uses go-trafilatura's main content extraction.
type TrafilaturaExtractor struct {
	fallback Extractor
}

func (e *TrafilaturaExtractor) Extract(htmlStr string) string {
	if !strings.Contains(htmlStr, "<") {
		return ""
	}
	result, err := trafilatura.Extract(strings.NewReader(htmlStr), trafilatura.Options{
		ExcludeComments: true,
	})
	if err == nil && result != nil {
		if text := normalizeLines(result.ContentText); text != "" {
			return text
		}
	}
	return e.fallback.Extract(htmlStr)
}

// normalizeSpace collapses every whitespace run into a single space.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// normalizeLines keeps line structure but trims each line and drops blank ones.
func normalizeLines(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = normalizeSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
