// ABOUTME: Content enrichment service combining link metadata and cover color extraction
// ABOUTME: Provides the single enrichment dependency used by collection listings

package services

import (
	"context"
	"time"

	"blockpress-api/core/domain"
	"blockpress-api/core/interfaces"
)

// ContentEnrichmentService combines metadata and color extraction
type ContentEnrichmentService struct {
	metadata       *MetadataService
	thumbnailColor *ThumbnailColorService
}

// NewContentEnrichmentService creates a new unified enrichment service.
// A zero colorCacheTTL keeps the default of one day.
func NewContentEnrichmentService(deps interfaces.Dependencies, colorCacheTTL time.Duration) *ContentEnrichmentService {
	thumbnailService := NewThumbnailColorService(deps)
	if colorCacheTTL > 0 {
		thumbnailService.cacheTTL = colorCacheTTL
	}

	return &ContentEnrichmentService{
		metadata:       NewMetadataService(deps),
		thumbnailColor: thumbnailService,
	}
}

// ExtractMetadata extracts metadata from a URL
func (s *ContentEnrichmentService) ExtractMetadata(ctx context.Context, url string) (*interfaces.MetadataResult, error) {
	return s.metadata.ExtractMetadata(ctx, url)
}

// ExtractMetadataBatch extracts metadata for multiple URLs
func (s *ContentEnrichmentService) ExtractMetadataBatch(ctx context.Context, urls []string) map[string]*interfaces.MetadataResult {
	return s.metadata.ExtractMetadataBatch(ctx, urls)
}

// ExtractColor extracts the prominent color from an image URL
func (s *ContentEnrichmentService) ExtractColor(ctx context.Context, imageURL string) (*domain.RGBColor, error) {
	return s.thumbnailColor.ExtractColor(ctx, imageURL)
}

// ExtractColorBatch extracts colors for multiple URLs
func (s *ContentEnrichmentService) ExtractColorBatch(ctx context.Context, imageURLs []string) map[string]*domain.RGBColor {
	return s.thumbnailColor.ExtractColorBatch(ctx, imageURLs)
}
