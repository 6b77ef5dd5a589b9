// ABOUTME: Structured panel parser reads promo cards, galleries and info panels from callouts
// ABOUTME: Parsing is best effort: malformed lines are skipped and nothing panics

package panel

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"blockpress-api/core/domain"
	"blockpress-api/core/ids"
	"blockpress-api/core/interfaces"
	"blockpress-api/core/richtext"
)

// Parser extracts structured records from classified callouts
type Parser struct {
	viewerRoute string
	logger      interfaces.Logger
}

// NewParser creates a parser that routes page-id captions to viewerRoute
func NewParser(viewerRoute string, logger interfaces.Logger) *Parser {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &Parser{viewerRoute: viewerRoute, logger: logger}
}

// Parse classifies b and returns its parsed panel, or nil when b is not a
// marker-annotated callout
func (p *Parser) Parse(b domain.Block) *domain.Panel {
	kind := Classify(b)
	if kind == domain.PanelNone {
		return nil
	}

	panel := &domain.Panel{Kind: kind}
	switch kind {
	case domain.PanelPromo:
		card := p.ParsePromo(b)
		panel.Promo = &card
	case domain.PanelThumbnail, domain.PanelDetailGallery:
		gallery := p.ParseGallery(b)
		panel.Gallery = &gallery
	case domain.PanelInfo:
		info := p.ParseInfo(b)
		panel.Info = &info
	case domain.PanelApplySlot:
		slot := p.ParseSlot(b)
		panel.Slot = &slot
	}
	return panel
}

// ParsePromo reads a promo card from every descendant of the panel.
// Images contribute pictures; other blocks contribute "key: value" lines
// for title, description, layout type, aspect ratio and url. The first
// usable occurrence of each key wins.
func (p *Parser) ParsePromo(b domain.Block) (card domain.PromoCard) {
	card = domain.PromoCard{
		LayoutType:  domain.LayoutBanner,
		AspectRatio: domain.AspectVertical,
		Images:      []domain.PromoImage{},
	}
	defer p.guard("promo", b.ID)

	var layoutSet, aspectSet bool
	b.Walk(func(d domain.Block) {
		if img, ok := d.Content.(domain.Image); ok {
			card.Images = append(card.Images, p.image(img))
			return
		}

		for _, line := range textLines(richtext.PlainText(d.RichText())) {
			key, value, ok := splitKeyValue(line)
			if !ok || value == "" {
				continue
			}
			lower := strings.ToLower(value)

			switch key {
			case "title":
				if card.Title == nil {
					card.Title = strPtr(value)
				}
			case "description":
				if card.Description == nil {
					card.Description = strPtr(value)
				}
			case "layouttype":
				if layoutSet {
					continue
				}
				switch {
				case strings.Contains(lower, "carousel"):
					card.LayoutType, layoutSet = domain.LayoutCarousel, true
				case strings.Contains(lower, "banner"):
					card.LayoutType, layoutSet = domain.LayoutBanner, true
				}
			case "aspectratio":
				if aspectSet {
					continue
				}
				switch {
				case strings.Contains(lower, "horizontal"):
					card.AspectRatio, aspectSet = domain.AspectHorizontal, true
				case strings.Contains(lower, "vertical"):
					card.AspectRatio, aspectSet = domain.AspectVertical, true
				}
			case "url":
				if card.CTAHref == nil {
					if u, found := firstURL(value); found {
						card.CTAHref = strPtr(u)
					} else {
						card.CTAHref = strPtr(value)
					}
				}
			}
		}
	})
	return card
}

// ParseGallery collects the ordered images of a thumbnail or detail-page
// panel, with an optional "title:" line
func (p *Parser) ParseGallery(b domain.Block) (gallery domain.Gallery) {
	gallery = domain.Gallery{Images: []domain.PromoImage{}}
	defer p.guard("gallery", b.ID)

	b.Walk(func(d domain.Block) {
		if img, ok := d.Content.(domain.Image); ok {
			gallery.Images = append(gallery.Images, p.image(img))
			return
		}
		if gallery.Title != nil {
			return
		}
		for _, line := range textLines(richtext.PlainText(d.RichText())) {
			if key, value, ok := splitKeyValue(line); ok && key == "title" && value != "" {
				gallery.Title = strPtr(value)
				return
			}
		}
	})
	return gallery
}

// ParseInfo reads an info panel. "key: value" lines become rows in order;
// a "title:" line sets the title; any other text becomes a note.
func (p *Parser) ParseInfo(b domain.Block) (info domain.InfoPanel) {
	info = domain.InfoPanel{Rows: []domain.InfoRow{}}
	defer p.guard("info-panel", b.ID)

	b.Walk(func(d domain.Block) {
		if _, ok := d.Content.(domain.Image); ok {
			return
		}
		for _, line := range textLines(richtext.PlainText(d.RichText())) {
			key, value, ok := splitKeyValue(line)
			if ok && isURLScheme(key) {
				ok = false
			}
			switch {
			case ok && key == "title" && info.Title == nil:
				info.Title = strPtr(value)
			case ok:
				info.Rows = append(info.Rows, domain.InfoRow{Key: rawKey(line), Value: value})
			default:
				info.Notes = append(info.Notes, stripListMarker(line))
			}
		}
	})
	return info
}

// ParseSlot reads an action slot. The slot name is whatever follows the
// marker in the callout's own text; a "url:" line or an embedded URL sets
// the target.
func (p *Parser) ParseSlot(b domain.Block) (slot domain.ActionSlot) {
	defer p.guard("apply-slot", b.ID)

	own := ownText(b)
	if _, phrase := match(own); phrase != "" {
		if i, n := indexFold(own, phrase); i >= 0 {
			rest := own[i+n:]
			if u, ok := firstURL(rest); ok {
				slot.Href = strPtr(u)
				rest = strings.Replace(rest, u, "", 1)
			}
			slot.Name = strings.Trim(rest, " \t\n:-–()[]")
		}
	}

	b.Walk(func(d domain.Block) {
		if slot.Href != nil {
			return
		}
		for _, line := range textLines(richtext.PlainText(d.RichText())) {
			if key, value, ok := splitKeyValue(line); ok && key == "url" {
				if u, found := firstURL(value); found {
					slot.Href = strPtr(u)
				} else if value != "" {
					slot.Href = strPtr(value)
				}
				return
			}
		}
	})
	return slot
}

// indexFold returns the byte offset and byte length in s of the first
// case-insensitive occurrence of phrase, which must be lower case. Offsets
// refer to s itself, not to a lower-cased copy.
func indexFold(s, phrase string) (int, int) {
	for i := range s {
		if n := prefixFold(s[i:], phrase); n > 0 {
			return i, n
		}
	}
	return -1, 0
}

func prefixFold(s, phrase string) int {
	n := 0
	for _, want := range phrase {
		r, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 || unicode.ToLower(r) != want {
			return 0
		}
		n += size
	}
	return n
}

// image converts an image block. A caption containing an http(s) URL sets
// the click target; a caption that is a page id links to that document.
func (p *Parser) image(img domain.Image) domain.PromoImage {
	out := domain.PromoImage{URL: img.URL}
	caption := strings.TrimSpace(richtext.PlainText(img.Caption))
	if caption == "" {
		return out
	}

	if u, ok := firstURL(caption); ok {
		out.ClickHref = strPtr(u)
		if alt := strings.TrimSpace(strings.Replace(caption, u, "", 1)); alt != "" {
			out.Alt = strPtr(alt)
		}
		return out
	}

	target := strings.TrimPrefix(caption, "/")
	if ids.IsPageID(target) {
		out.ClickHref = strPtr(ids.ViewerRoute(p.viewerRoute, target))
		return out
	}

	out.Alt = strPtr(caption)
	return out
}

// guard recovers from a panic during parsing and logs it. The caller's
// named result keeps whatever was parsed before the failure.
func (p *Parser) guard(kind, blockID string) {
	r := recover()
	if r == nil {
		return
	}
	p.logger.Warn("Recovered from panel parse failure", map[string]interface{}{
		"panel":    kind,
		"block_id": blockID,
		"panic":    r,
	})
}

func rawKey(line string) string {
	line = strings.TrimSpace(stripListMarker(line))
	return strings.TrimSpace(line[:strings.Index(line, ":")])
}

func isURLScheme(key string) bool {
	return key == "http" || key == "https"
}

func strPtr(s string) *string {
	return &s
}
