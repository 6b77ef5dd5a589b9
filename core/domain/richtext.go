// ABOUTME: Rich text domain types for styled text spans and rendered inline nodes
// ABOUTME: Colors are normalized to the fixed palette the document store exposes

package domain

import "strings"

// Color is a foreground or background color annotation
type Color string

// ColorDefault is the unstyled color
const ColorDefault Color = "default"

// namedColors is the palette shared by text and background annotations
var namedColors = []string{"gray", "brown", "orange", "yellow", "green", "blue", "purple", "pink", "red"}

// NormalizeColor maps any value outside the known palette to ColorDefault
func NormalizeColor(raw string) Color {
	name := strings.ToLower(strings.TrimSpace(raw))
	base := strings.TrimSuffix(name, "_background")
	for _, c := range namedColors {
		if c == base {
			return Color(name)
		}
	}
	return ColorDefault
}

// IsBackground reports whether the color is a background highlight
func (c Color) IsBackground() bool {
	return strings.HasSuffix(string(c), "_background")
}

// Name returns the palette name without the background suffix
func (c Color) Name() string {
	return strings.TrimSuffix(string(c), "_background")
}

// Annotations are the style flags of a text span
type Annotations struct {
	Bold          bool  `json:"bold,omitempty"`
	Italic        bool  `json:"italic,omitempty"`
	Underline     bool  `json:"underline,omitempty"`
	Strikethrough bool  `json:"strikethrough,omitempty"`
	Code          bool  `json:"code,omitempty"`
	Color         Color `json:"color,omitempty"`
}

// TextSpan is a run of text sharing one set of annotations
type TextSpan struct {
	Text        string      `json:"text"`
	Annotations Annotations `json:"annotations"`
	Href        *string     `json:"href,omitempty"`
}

// PlainText concatenates the text of all spans
func PlainText(spans []TextSpan) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// InlineNode is a span resolved for rendering
type InlineNode struct {
	Text      string   `json:"text,omitempty" doc:"Text content"`
	Classes   []string `json:"classes,omitempty" doc:"Style classes derived from annotations"`
	Href      string   `json:"href,omitempty" doc:"Resolved link target"`
	Internal  bool     `json:"internal,omitempty" doc:"Link points at another document of the store"`
	External  bool     `json:"external,omitempty" doc:"Link opens in a new context"`
	LineBreak bool     `json:"line_break,omitempty" doc:"Node is a hard line break"`
}
