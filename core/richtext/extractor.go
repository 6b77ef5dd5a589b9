// ABOUTME: Rich text extractor turns styled text spans into renderable inline nodes
// ABOUTME: Rewrites links to other store documents into internal viewer routes

// Package richtext resolves annotated text spans into inline nodes with
// style classes and classified links.
package richtext

import (
	"strings"

	"blockpress-api/core/domain"
	"blockpress-api/core/ids"
)

// literalNewline is the two-character escape some documents carry instead of
// a real line break
const literalNewline = `\n`

// Extractor renders text spans. The zero value routes internal links to
// ids.DefaultViewerRoute.
type Extractor struct {
	viewerRoute string
}

// NewExtractor creates an extractor that rewrites internal links to viewerRoute
func NewExtractor(viewerRoute string) *Extractor {
	return &Extractor{viewerRoute: viewerRoute}
}

// Render converts spans into inline nodes. Each span yields one text node,
// split around line breaks which become explicit LineBreak nodes.
func (e *Extractor) Render(spans []domain.TextSpan) []domain.InlineNode {
	if len(spans) == 0 {
		return nil
	}

	nodes := make([]domain.InlineNode, 0, len(spans))
	for _, span := range spans {
		template := domain.InlineNode{Classes: Classes(span.Annotations)}
		if span.Href != nil && *span.Href != "" {
			template.Href, template.Internal = e.ResolveHref(*span.Href)
			template.External = !template.Internal
		}

		lines := strings.Split(NormalizeNewlines(span.Text), "\n")
		for i, line := range lines {
			if i > 0 {
				nodes = append(nodes, domain.InlineNode{LineBreak: true})
			}
			if line == "" && len(lines) > 1 {
				continue
			}
			node := template
			node.Text = line
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// ResolveHref returns the route for href and whether it points inside the store
func (e *Extractor) ResolveHref(href string) (string, bool) {
	if id, ok := ids.InternalTarget(href); ok {
		return ids.ViewerRoute(e.viewerRoute, id), true
	}
	return href, false
}

// NormalizeNewlines replaces literal "\n" escapes and CRLF with real line breaks
func NormalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, literalNewline, "\n")
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// Classes returns the style classes for a set of annotations, in a fixed order
func Classes(a domain.Annotations) []string {
	var classes []string
	if a.Bold {
		classes = append(classes, "bold")
	}
	if a.Italic {
		classes = append(classes, "italic")
	}
	if a.Underline {
		classes = append(classes, "underline")
	}
	if a.Strikethrough {
		classes = append(classes, "strikethrough")
	}
	if a.Code {
		classes = append(classes, "code")
	}

	color := domain.NormalizeColor(string(a.Color))
	if color != domain.ColorDefault {
		if color.IsBackground() {
			classes = append(classes, "bg-"+color.Name())
		} else {
			classes = append(classes, "color-"+color.Name())
		}
	}
	return classes
}

// PlainText returns the spans' text with escapes normalized
func PlainText(spans []domain.TextSpan) string {
	return NormalizeNewlines(domain.PlainText(spans))
}
