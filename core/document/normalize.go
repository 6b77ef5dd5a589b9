package document

import (
	"strings"

	"blockpress-api/core/blocktree"
	"blockpress-api/core/domain"
	"blockpress-api/core/ids"
	"blockpress-api/core/panel"
	"blockpress-api/core/richtext"
)

// Normalizer resolves flat blocks into their rendering form
type Normalizer struct {
	viewerRoute string
	text        *richtext.Extractor
	panels      *panel.Parser
}

// NewNormalizer creates a normalizer whose internal links point at viewerRoute
func NewNormalizer(viewerRoute string, panels *panel.Parser) *Normalizer {
	if panels == nil {
		panels = panel.NewParser(viewerRoute, nil)
	}
	return &Normalizer{
		viewerRoute: viewerRoute,
		text:        richtext.NewExtractor(viewerRoute),
		panels:      panels,
	}
}

// NormalizeAll normalizes a flat sequence in order
func (n *Normalizer) NormalizeAll(flat []domain.Block) []domain.NormalizedBlock {
	out := make([]domain.NormalizedBlock, 0, len(flat))
	for _, b := range flat {
		out = append(out, n.Normalize(b))
	}
	return out
}

// Normalize resolves one block. A container's children are flattened and
// normalized beneath it; other blocks carry no children.
func (n *Normalizer) Normalize(b domain.Block) domain.NormalizedBlock {
	nb := domain.NormalizedBlock{
		ID:          b.ID,
		Type:        b.Type,
		HasChildren: b.HasChildren,
	}

	switch c := b.Content.(type) {
	case domain.Paragraph:
		nb.Inline, nb.Color = n.text.Render(c.RichText), domain.NormalizeColor(string(c.Color))
	case domain.Heading:
		nb.Inline, nb.Color = n.text.Render(c.RichText), domain.NormalizeColor(string(c.Color))
	case domain.ListItem:
		nb.Inline, nb.Color = n.text.Render(c.RichText), domain.NormalizeColor(string(c.Color))
	case domain.Quote:
		nb.Inline, nb.Color = n.text.Render(c.RichText), domain.NormalizeColor(string(c.Color))
	case domain.Toggle:
		nb.Inline, nb.Color = n.text.Render(c.RichText), domain.NormalizeColor(string(c.Color))
	case domain.ToDo:
		checked := c.Checked
		nb.Inline, nb.Checked = n.text.Render(c.RichText), &checked
	case domain.Code:
		nb.Inline, nb.Caption, nb.Language = n.text.Render(c.RichText), n.text.Render(c.Caption), c.Language
	case domain.Callout:
		nb.Inline, nb.Icon = n.text.Render(c.RichText), c.Icon
		nb.Color = domain.NormalizeColor(string(c.Color))
		nb.Panel = n.panels.Parse(b)
	case domain.Image:
		nb.Image = &domain.ImageRef{URL: c.URL, Alt: strings.TrimSpace(richtext.PlainText(c.Caption))}
		nb.Caption = n.text.Render(c.Caption)
	case domain.Bookmark:
		nb.Link = &domain.LinkRef{Href: c.URL}
		nb.Caption = n.text.Render(c.Caption)
	case domain.ChildPage:
		nb.Inline = n.text.Render(b.RichText())
		nb.Link = &domain.LinkRef{Href: ids.ViewerRoute(n.viewerRoute, b.ID), Internal: true}
	case domain.ChildDatabase:
		nb.Inline = n.text.Render(b.RichText())
	case domain.LinkToPage:
		if c.TargetID != "" {
			nb.Link = &domain.LinkRef{Href: ids.ViewerRoute(n.viewerRoute, c.TargetID), Internal: true}
		}
	case domain.SyncedBlock:
		if c.SourceID != "" {
			nb.Link = &domain.LinkRef{Href: ids.ViewerRoute(n.viewerRoute, c.SourceID), Internal: true}
		}
	case domain.Unsupported:
		nb.RawType = c.RawType
	}

	if blocktree.IsContainer(b.Type) && len(b.Children) > 0 {
		nb.Children = n.NormalizeAll(blocktree.Flatten(b.Children))
	}
	return nb
}
