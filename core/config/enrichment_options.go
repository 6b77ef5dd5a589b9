// ABOUTME: Enrichment configuration for service-level control of listing enrichment
// ABOUTME: Provides configuration options independent of HTTP request structures

package config

// EnrichmentConfig controls which listing enrichment steps run
type EnrichmentConfig struct {
	// LinkPreviews fills a missing cover from the entry link's preview image
	LinkPreviews bool

	// CoverColors computes the dominant color of the cover image
	CoverColors bool
}

// DefaultEnrichmentConfig returns the default configuration with all steps enabled
func DefaultEnrichmentConfig() EnrichmentConfig {
	return EnrichmentConfig{
		LinkPreviews: true,
		CoverColors:  true,
	}
}

// EnrichmentOption is a functional option for configuring enrichment
type EnrichmentOption func(*EnrichmentConfig)

// WithLinkPreviews enables or disables link preview lookups
func WithLinkPreviews(enabled bool) EnrichmentOption {
	return func(c *EnrichmentConfig) {
		c.LinkPreviews = enabled
	}
}

// WithCoverColors enables or disables cover color extraction
func WithCoverColors(enabled bool) EnrichmentOption {
	return func(c *EnrichmentConfig) {
		c.CoverColors = enabled
	}
}

// WithoutLinkPreviews disables link preview lookups
func WithoutLinkPreviews() EnrichmentOption {
	return WithLinkPreviews(false)
}

// WithoutCoverColors disables cover color extraction
func WithoutCoverColors() EnrichmentOption {
	return WithCoverColors(false)
}

// NewEnrichmentConfig creates a new enrichment configuration with the given options
func NewEnrichmentConfig(opts ...EnrichmentOption) EnrichmentConfig {
	config := DefaultEnrichmentConfig()

	for _, opt := range opts {
		opt(&config)
	}

	return config
}

// Enabled reports whether any step is on
func (c EnrichmentConfig) Enabled() bool {
	return c.LinkPreviews || c.CoverColors
}
