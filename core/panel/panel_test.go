package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blockpress-api/core/domain"
)

func spans(s string) []domain.TextSpan {
	return []domain.TextSpan{{Text: s}}
}

func callout(marker string, children ...domain.Block) domain.Block {
	return domain.NewBlock("panel", domain.Callout{RichText: spans(marker)}, children...)
}

func para(s string, children ...domain.Block) domain.Block {
	return domain.NewBlock("p-"+s, domain.Paragraph{RichText: spans(s)}, children...)
}

func bullet(s string) domain.Block {
	return domain.NewBlock("li-"+s, domain.ListItem{RichText: spans(s)})
}

func image(url, caption string) domain.Block {
	img := domain.Image{URL: url}
	if caption != "" {
		img.Caption = spans(caption)
	}
	return domain.NewBlock("img-"+url, img)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want domain.PanelKind
	}{
		{"thumbnail", domain.PanelThumbnail},
		{"Detail-Page gallery", domain.PanelDetailGallery},
		{"detail page", domain.PanelDetailGallery},
		{"INFO-PANEL", domain.PanelInfo},
		{"info panel: schedule", domain.PanelInfo},
		{"apply-slot", domain.PanelApplySlot},
		{"Promo", domain.PanelPromo},
		{"just a note", domain.PanelNone},
		{"", domain.PanelNone},
		// several markers: fixed priority decides
		{"promo thumbnail", domain.PanelPromo},
		{"thumbnail info-panel", domain.PanelInfo},
		{"promo apply slot", domain.PanelApplySlot},
		{"detail-page thumbnail", domain.PanelDetailGallery},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(callout(tt.text)))
		})
	}
}

func TestClassify_OnlyCallouts(t *testing.T) {
	assert.Equal(t, domain.PanelNone, Classify(para("promo")))
	assert.Equal(t, domain.PanelNone, Classify(domain.NewBlock("t", domain.Toggle{RichText: spans("promo")})))
}

func TestParsePromo_Tolerance(t *testing.T) {
	p := NewParser("", nil)

	card := p.ParsePromo(callout("promo",
		image("https://cdn.example.com/1.png", ""),
		image("https://cdn.example.com/2.png", ""),
	))

	assert.Equal(t, domain.LayoutBanner, card.LayoutType)
	assert.Equal(t, domain.AspectVertical, card.AspectRatio)
	assert.Equal(t, []domain.PromoImage{
		{URL: "https://cdn.example.com/1.png"},
		{URL: "https://cdn.example.com/2.png"},
	}, card.Images)
	assert.Nil(t, card.Title)
	assert.Nil(t, card.Description)
	assert.Nil(t, card.CTAHref)
}

func TestParsePromo_EmptyPanel(t *testing.T) {
	card := NewParser("", nil).ParsePromo(callout("promo"))

	assert.NotNil(t, card.Images)
	assert.Empty(t, card.Images)
	assert.Equal(t, domain.PresentationPlaceholder, card.Presentation())
}

func TestParsePromo_KeyValueLines(t *testing.T) {
	p := NewParser("", nil)

	card := p.ParsePromo(callout("promo",
		para("- Title: Summer Sale"),
		para("url: check https://example.com/x now"),
	))

	require.NotNil(t, card.Title)
	assert.Equal(t, "Summer Sale", *card.Title)
	require.NotNil(t, card.CTAHref)
	assert.Equal(t, "https://example.com/x", *card.CTAHref)
}

func TestParsePromo_FullCard(t *testing.T) {
	p := NewParser("/viewer", nil)

	card := p.ParsePromo(callout("promo",
		para("metadata",
			bullet("Title: Summer Sale"),
			bullet("Title: ignored second title"),
			bullet("Description: Everything must go"),
		),
		para("1. Layout Type: Carousel please"),
		para("2) aspect_ratio: HORIZONTAL"),
		para("CTA url: /signup"),
		para("url: /signup"),
		para("color: red"),
		para("not a key value line"),
		image("https://cdn.example.com/1.png", "Spring look https://shop.example.com/spring"),
		image("https://cdn.example.com/2.png", "3f1a2b3c-4d5e-6f70-8192-a3b4c5d6e7f8"),
		image("https://cdn.example.com/3.png", "just an alt"),
	))

	require.NotNil(t, card.Title)
	assert.Equal(t, "Summer Sale", *card.Title)
	require.NotNil(t, card.Description)
	assert.Equal(t, "Everything must go", *card.Description)
	assert.Equal(t, domain.LayoutCarousel, card.LayoutType)
	assert.Equal(t, domain.AspectHorizontal, card.AspectRatio)
	require.NotNil(t, card.CTAHref)
	assert.Equal(t, "/signup", *card.CTAHref)

	require.Len(t, card.Images, 3)
	assert.Equal(t, "https://shop.example.com/spring", *card.Images[0].ClickHref)
	assert.Equal(t, "Spring look", *card.Images[0].Alt)
	assert.Equal(t, "/viewer?id=3f1a2b3c4d5e6f708192a3b4c5d6e7f8", *card.Images[1].ClickHref)
	assert.Nil(t, card.Images[2].ClickHref)
	assert.Equal(t, "just an alt", *card.Images[2].Alt)
	assert.Equal(t, domain.PresentationGallery, card.Presentation())
}

func TestParsePromo_UnrecognizedLayoutKeepsDefault(t *testing.T) {
	card := NewParser("", nil).ParsePromo(callout("promo",
		para("layouttype: grid"),
		para("layouttype: carousel"),
		para("aspectratio: square"),
	))

	assert.Equal(t, domain.LayoutCarousel, card.LayoutType)
	assert.Equal(t, domain.AspectVertical, card.AspectRatio)
}

func TestParsePromo_MultilineParagraph(t *testing.T) {
	card := NewParser("", nil).ParsePromo(callout("promo",
		para(`title: Launch\ndescription: New things`),
	))

	require.NotNil(t, card.Title)
	assert.Equal(t, "Launch", *card.Title)
	require.NotNil(t, card.Description)
	assert.Equal(t, "New things", *card.Description)
}

func TestParseGallery(t *testing.T) {
	gallery := NewParser("", nil).ParseGallery(callout("thumbnail",
		para("title: Venue"),
		image("https://cdn.example.com/a.png", ""),
		para("wrapper", image("https://cdn.example.com/b.png", "https://example.com/b")),
	))

	require.NotNil(t, gallery.Title)
	assert.Equal(t, "Venue", *gallery.Title)
	require.Len(t, gallery.Images, 2)
	assert.Equal(t, "https://cdn.example.com/b.png", gallery.Images[1].URL)
	assert.Equal(t, "https://example.com/b", *gallery.Images[1].ClickHref)
}

func TestParseInfo(t *testing.T) {
	info := NewParser("", nil).ParseInfo(callout("info-panel",
		para("Title: Key facts"),
		bullet("When: Saturday 10:00"),
		bullet("Where: Main hall"),
		para("Bring your own cup"),
		para("https://example.com/map"),
	))

	require.NotNil(t, info.Title)
	assert.Equal(t, "Key facts", *info.Title)
	assert.Equal(t, []domain.InfoRow{
		{Key: "When", Value: "Saturday 10:00"},
		{Key: "Where", Value: "Main hall"},
	}, info.Rows)
	assert.Equal(t, []string{"Bring your own cup", "https://example.com/map"}, info.Notes)
}

func TestParseSlot(t *testing.T) {
	p := NewParser("", nil)

	slot := p.ParseSlot(callout("apply-slot: volunteer"))
	assert.Equal(t, "volunteer", slot.Name)
	assert.Nil(t, slot.Href)

	slot = p.ParseSlot(callout("Apply Slot", para("url: https://forms.example.com/apply")))
	assert.Equal(t, "", slot.Name)
	require.NotNil(t, slot.Href)
	assert.Equal(t, "https://forms.example.com/apply", *slot.Href)

	slot = p.ParseSlot(callout("apply-slot mentor https://forms.example.com/m"))
	assert.Equal(t, "mentor", slot.Name)
	assert.Equal(t, "https://forms.example.com/m", *slot.Href)
}

func TestParseSlot_NameAfterMultiByteText(t *testing.T) {
	p := NewParser("", nil)

	tests := []struct {
		name string
		text string
	}{
		{"dotted capital I", "İİİİİİ apply slot: Register"},
		{"kelvin sign", "\u212A\u212A\u212A\u212A apply slot: Register"},
		{"mixed case marker", "Événement APPLY-SLOT: Register"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := p.ParseSlot(callout(tt.text))
			assert.Equal(t, "Register", slot.Name)
		})
	}
}

func TestIndexFold(t *testing.T) {
	i, n := indexFold("ÄÖ Apply Slot x", "apply slot")
	assert.Equal(t, len("ÄÖ "), i)
	assert.Equal(t, len("apply slot"), n)

	i, _ = indexFold("nothing here", "apply slot")
	assert.Equal(t, -1, i)
}

func TestParse_Dispatch(t *testing.T) {
	p := NewParser("", nil)

	assert.Nil(t, p.Parse(para("promo")))
	assert.Nil(t, p.Parse(callout("plain note")))

	promo := p.Parse(callout("promo"))
	require.NotNil(t, promo)
	assert.Equal(t, domain.PanelPromo, promo.Kind)
	assert.NotNil(t, promo.Promo)

	gallery := p.Parse(callout("detail-page"))
	require.NotNil(t, gallery)
	assert.NotNil(t, gallery.Gallery)

	info := p.Parse(callout("info-panel"))
	require.NotNil(t, info)
	assert.NotNil(t, info.Info)

	slot := p.Parse(callout("apply-slot"))
	require.NotNil(t, slot)
	assert.NotNil(t, slot.Slot)
}
