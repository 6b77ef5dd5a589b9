// ABOUTME: Structured panel records derived from marker-annotated callouts
// ABOUTME: Covers promo cards, image galleries, info panels and action slots

package domain

// PanelKind classifies a callout by the marker found in its own text
type PanelKind string

const (
	PanelNone          PanelKind = ""
	PanelThumbnail     PanelKind = "thumbnail"
	PanelDetailGallery PanelKind = "detail-gallery"
	PanelInfo          PanelKind = "info-panel"
	PanelApplySlot     PanelKind = "apply-slot"
	PanelPromo         PanelKind = "promo"
)

// LayoutType selects how a multi-image promo is presented
type LayoutType string

const (
	LayoutBanner   LayoutType = "banner"
	LayoutCarousel LayoutType = "carousel"
)

// AspectRatio is the intended image orientation of a promo
type AspectRatio string

const (
	AspectHorizontal AspectRatio = "horizontal"
	AspectVertical   AspectRatio = "vertical"
)

// Presentation is the renderer's layout choice for a promo card
type Presentation string

const (
	PresentationPlaceholder Presentation = "placeholder"
	PresentationSingle      Presentation = "single"
	PresentationGallery     Presentation = "gallery"
	PresentationStrip       Presentation = "strip"
)

// PromoImage is one picture of a promo or gallery
type PromoImage struct {
	URL       string  `json:"url"`
	ClickHref *string `json:"click_href,omitempty"`
	Alt       *string `json:"alt,omitempty"`
}

// PromoCard is the record parsed from a promo panel. Every field except
// Images is optional; Images may be empty.
type PromoCard struct {
	Title       *string      `json:"title,omitempty"`
	Description *string      `json:"description,omitempty"`
	LayoutType  LayoutType   `json:"layout_type"`
	AspectRatio AspectRatio  `json:"aspect_ratio"`
	Images      []PromoImage `json:"images"`
	CTAHref     *string      `json:"cta_href,omitempty"`
}

// Presentation picks the layout a renderer should use for the card
func (p PromoCard) Presentation() Presentation {
	switch {
	case len(p.Images) == 0:
		return PresentationPlaceholder
	case len(p.Images) == 1:
		return PresentationSingle
	case p.LayoutType == LayoutCarousel:
		return PresentationGallery
	default:
		return PresentationStrip
	}
}

// Gallery is an ordered image set from a thumbnail or detail-page panel
type Gallery struct {
	Title  *string      `json:"title,omitempty"`
	Images []PromoImage `json:"images"`
}

// InfoRow is one key/value line of an info panel
type InfoRow struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// InfoPanel holds the structured lines of an info panel
type InfoPanel struct {
	Title *string   `json:"title,omitempty"`
	Rows  []InfoRow `json:"rows"`
	Notes []string  `json:"notes,omitempty"`
}

// ActionSlot marks a place where the UI injects an action (e.g. an apply button)
type ActionSlot struct {
	Name string  `json:"name,omitempty"`
	Href *string `json:"href,omitempty"`
}

// Panel is a classified callout with its parsed structure
type Panel struct {
	Kind    PanelKind   `json:"kind"`
	Promo   *PromoCard  `json:"promo,omitempty"`
	Gallery *Gallery    `json:"gallery,omitempty"`
	Info    *InfoPanel  `json:"info,omitempty"`
	Slot    *ActionSlot `json:"slot,omitempty"`
}
