// ABOUTME: Normalized document model handed to the rendering layer
// ABOUTME: A flat, order-preserving block sequence with derived inline text and panels

package domain

import "time"

// Document is a normalized, renderer-agnostic document
type Document struct {
	ID         string            `json:"id" doc:"Document identifier (32-character form)"`
	Title      *string           `json:"title" doc:"Document title, null when the store has none"`
	Cover      string            `json:"cover,omitempty" doc:"Cover image URL"`
	Icon       string            `json:"icon,omitempty" doc:"Document icon"`
	LastEdited *time.Time        `json:"last_edited,omitempty" doc:"Last edit time"`
	Blocks     []NormalizedBlock `json:"blocks" doc:"Flattened block sequence"`
}

// ImageRef is a resolved image
type ImageRef struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// LinkRef is a resolved link target
type LinkRef struct {
	Href     string `json:"href"`
	Internal bool   `json:"internal,omitempty"`
}

// NormalizedBlock is one element of a flat sequence with its rendering data
// resolved. Only container types carry Children.
type NormalizedBlock struct {
	ID          string            `json:"id"`
	Type        BlockType         `json:"type"`
	Inline      []InlineNode      `json:"inline,omitempty"`
	Caption     []InlineNode      `json:"caption,omitempty"`
	Color       Color             `json:"color,omitempty"`
	Icon        string            `json:"icon,omitempty"`
	Checked     *bool             `json:"checked,omitempty"`
	Language    string            `json:"language,omitempty"`
	Image       *ImageRef         `json:"image,omitempty"`
	Link        *LinkRef          `json:"link,omitempty"`
	Panel       *Panel            `json:"panel,omitempty"`
	RawType     string            `json:"raw_type,omitempty"`
	HasChildren bool              `json:"has_children,omitempty"`
	Children    []NormalizedBlock `json:"children,omitempty"`
}
