// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts for the secondary enrichment services used by listings

package interfaces

import (
	"context"

	"blockpress-api/core/domain"
)

// ThumbnailColorService extracts colors from cover images
type ThumbnailColorService interface {
	ExtractColor(ctx context.Context, imageURL string) (*domain.RGBColor, error)
	ExtractColorBatch(ctx context.Context, imageURLs []string) map[string]*domain.RGBColor
}

// MetadataResult contains extracted metadata from a webpage
type MetadataResult struct {
	Title       string
	Description string
	Thumbnail   string // Primary image URL
	Images      []string
	Domain      string
	Favicon     string
}

// MetadataService extracts metadata from web pages
type MetadataService interface {
	ExtractMetadata(ctx context.Context, url string) (*MetadataResult, error)
	ExtractMetadataBatch(ctx context.Context, urls []string) map[string]*MetadataResult
}

// ContentEnrichmentService combines the secondary enrichment services
type ContentEnrichmentService interface {
	MetadataService
	ThumbnailColorService
}
