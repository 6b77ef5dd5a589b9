package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blockpress-api/core/domain"
)

func href(s string) *string { return &s }

func TestRender_InternalLinkRewrite(t *testing.T) {
	e := NewExtractor("")

	nodes := e.Render([]domain.TextSpan{
		{Text: "see also", Href: href("/3f1a2b3c4d5e6f708192a3b4c5d6e7f8")},
	})

	require.Len(t, nodes, 1)
	assert.Equal(t, "/viewer?id=3f1a2b3c4d5e6f708192a3b4c5d6e7f8", nodes[0].Href)
	assert.True(t, nodes[0].Internal)
	assert.False(t, nodes[0].External)
}

func TestRender_HyphenatedInternalLinkWithFragment(t *testing.T) {
	e := NewExtractor("/docs/view")

	nodes := e.Render([]domain.TextSpan{
		{Text: "x", Href: href("/3f1a2b3c-4d5e-6f70-8192-a3b4c5d6e7f8#heading")},
	})

	require.Len(t, nodes, 1)
	assert.Equal(t, "/docs/view?id=3f1a2b3c4d5e6f708192a3b4c5d6e7f8", nodes[0].Href)
	assert.True(t, nodes[0].Internal)
}

func TestRender_ExternalLinkUnchanged(t *testing.T) {
	e := NewExtractor("")

	for _, link := range []string{
		"https://example.com",
		"/about",
		"/3f1a2b3c4d5e6f708192a3b4c5d6e7f8/extra",
		"mailto:someone@example.com",
	} {
		t.Run(link, func(t *testing.T) {
			nodes := e.Render([]domain.TextSpan{{Text: "x", Href: href(link)}})
			require.Len(t, nodes, 1)
			assert.Equal(t, link, nodes[0].Href)
			assert.True(t, nodes[0].External)
			assert.False(t, nodes[0].Internal)
		})
	}
}

func TestRender_Classes(t *testing.T) {
	e := NewExtractor("")

	nodes := e.Render([]domain.TextSpan{
		{Text: "styled", Annotations: domain.Annotations{
			Bold: true, Italic: true, Underline: true, Strikethrough: true, Code: true, Color: "red",
		}},
		{Text: "highlight", Annotations: domain.Annotations{Color: "yellow_background"}},
		{Text: "plain", Annotations: domain.Annotations{Color: "not-a-color"}},
	})

	require.Len(t, nodes, 3)
	assert.Equal(t, []string{"bold", "italic", "underline", "strikethrough", "code", "color-red"}, nodes[0].Classes)
	assert.Equal(t, []string{"bg-yellow"}, nodes[1].Classes)
	assert.Empty(t, nodes[2].Classes)
	assert.Empty(t, nodes[2].Href)
}

func TestRender_LiteralNewlines(t *testing.T) {
	e := NewExtractor("")

	nodes := e.Render([]domain.TextSpan{
		{Text: `first\nsecond`, Annotations: domain.Annotations{Bold: true}},
	})

	require.Len(t, nodes, 3)
	assert.Equal(t, "first", nodes[0].Text)
	assert.Equal(t, []string{"bold"}, nodes[0].Classes)
	assert.True(t, nodes[1].LineBreak)
	assert.Equal(t, "second", nodes[2].Text)
	assert.Equal(t, []string{"bold"}, nodes[2].Classes)
}

func TestRender_TrailingNewline(t *testing.T) {
	e := NewExtractor("")

	nodes := e.Render([]domain.TextSpan{{Text: "line\n"}})

	require.Len(t, nodes, 2)
	assert.Equal(t, "line", nodes[0].Text)
	assert.True(t, nodes[1].LineBreak)
}

func TestRender_Empty(t *testing.T) {
	assert.Nil(t, NewExtractor("").Render(nil))
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "a\nb", PlainText([]domain.TextSpan{{Text: `a\n`}, {Text: "b"}}))
}
