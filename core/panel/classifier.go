// ABOUTME: Callout classifier maps marker words in a callout's own text to a panel kind
// ABOUTME: Markers are checked in a fixed priority order; the first match wins

// Package panel classifies marker-annotated callouts and parses their
// descendants into structured records.
package panel

import (
	"strings"

	"blockpress-api/core/domain"
	"blockpress-api/core/richtext"
)

// marker binds a panel kind to the substrings that select it
type marker struct {
	kind    domain.PanelKind
	phrases []string
}

// priority is the tie-break order when a callout carries several markers
var priority = []marker{
	{domain.PanelApplySlot, []string{"apply-slot", "apply slot"}},
	{domain.PanelInfo, []string{"info-panel", "info panel"}},
	{domain.PanelPromo, []string{"promo"}},
	{domain.PanelDetailGallery, []string{"detail-page", "detail page"}},
	{domain.PanelThumbnail, []string{"thumbnail"}},
}

// Classify returns the panel kind of a callout, or PanelNone for other
// blocks and for callouts without a known marker
func Classify(b domain.Block) domain.PanelKind {
	if b.Type != domain.BlockCallout {
		return domain.PanelNone
	}
	kind, _ := match(ownText(b))
	return kind
}

// match returns the first marker found in text and the phrase that matched
func match(text string) (domain.PanelKind, string) {
	lower := strings.ToLower(text)
	for _, m := range priority {
		for _, phrase := range m.phrases {
			if strings.Contains(lower, phrase) {
				return m.kind, phrase
			}
		}
	}
	return domain.PanelNone, ""
}

func ownText(b domain.Block) string {
	return richtext.PlainText(b.RichText())
}
