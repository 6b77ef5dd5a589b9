// ABOUTME: Cover color extraction service for listing cover images
// ABOUTME: Uses K-means clustering to find the most prominent color of a cover

package services

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/EdlinOrg/prominentcolor"
	_ "golang.org/x/image/webp" // WebP support
	"golang.org/x/sync/errgroup"

	"blockpress-api/core/domain"
	"blockpress-api/core/interfaces"
)

const (
	defaultColorTTL  = 24 * time.Hour
	batchConcurrency = 5
	httpTimeout      = 10 * time.Second
	userAgent        = "Mozilla/5.0 (compatible; BlockpressBot/1.0)"
	maxImageBytes    = 10 << 20
)

// ThumbnailColorService extracts the prominent color of cover images
type ThumbnailColorService struct {
	deps       interfaces.Dependencies
	httpClient *http.Client
	cacheTTL   time.Duration
}

// NewThumbnailColorService creates a new thumbnail color service. Images are
// downloaded with a dedicated client so store credentials never reach
// third-party image hosts.
func NewThumbnailColorService(deps interfaces.Dependencies) *ThumbnailColorService {
	if deps.Logger == nil {
		deps.Logger = interfaces.NopLogger{}
	}
	return &ThumbnailColorService{
		deps:       deps,
		httpClient: &http.Client{Timeout: httpTimeout},
		cacheTTL:   defaultColorTTL,
	}
}

// ExtractColor returns the prominent color of the image at imageURL.
// Results are cached as "R,G,B".
func (s *ThumbnailColorService) ExtractColor(ctx context.Context, imageURL string) (*domain.RGBColor, error) {
	if imageURL == "" {
		return nil, fmt.Errorf("empty image URL")
	}

	cacheKey := "coverColor:" + imageURL
	if s.deps.Cache != nil {
		if data, err := s.deps.Cache.Get(ctx, cacheKey); err == nil && data != nil {
			var color domain.RGBColor
			if _, err := fmt.Sscanf(string(data), "%d,%d,%d", &color.R, &color.G, &color.B); err == nil {
				return &color, nil
			}
		}
	}

	color, err := s.extractColorFromURL(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	// Cache the result (ignore cache errors)
	if s.deps.Cache != nil {
		data := fmt.Sprintf("%d,%d,%d", color.R, color.G, color.B)
		_ = s.deps.Cache.Set(ctx, cacheKey, []byte(data), s.cacheTTL)
	}
	return color, nil
}

// extractColorFromURL downloads and clusters the image
func (s *ThumbnailColorService) extractColorFromURL(ctx context.Context, imageURL string) (color *domain.RGBColor, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			s.deps.Logger.Debug("Recovered from panic in color extraction", map[string]interface{}{
				"url":   imageURL,
				"panic": fmt.Sprintf("%v", rec),
			})
			color, err = nil, fmt.Errorf("panic recovered: %v", rec)
		}
	}()

	parsedURL, parseErr := url.Parse(imageURL)
	if parseErr != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid image URL: %s", imageURL)
	}
	if strings.HasSuffix(strings.ToLower(parsedURL.Path), ".svg") {
		return nil, fmt.Errorf("SVG images are not supported")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("image has empty bounds")
	}
	nrgba := image.NewNRGBA(bounds)
	draw.Draw(nrgba, bounds, img, bounds.Min, draw.Src)

	colors, err := prominentcolor.KmeansWithAll(prominentcolor.ArgumentDefault, nrgba, prominentcolor.DefaultK, 1, prominentcolor.GetDefaultMasks())
	if err != nil || len(colors) == 0 {
		s.deps.Logger.Debug("Retrying color extraction without masks", map[string]interface{}{
			"url": imageURL,
		})
		colors, err = prominentcolor.KmeansWithAll(prominentcolor.ArgumentDefault, nrgba, prominentcolor.DefaultK, 1, nil)
		if err != nil || len(colors) == 0 {
			return nil, fmt.Errorf("no colors extracted from image")
		}
	}

	return &domain.RGBColor{
		R: uint8(colors[0].Color.R),
		G: uint8(colors[0].Color.G),
		B: uint8(colors[0].Color.B),
	}, nil
}

// ExtractColorBatch extracts colors for several images with bounded
// concurrency. Failed images are absent from the result.
func (s *ThumbnailColorService) ExtractColorBatch(ctx context.Context, imageURLs []string) map[string]*domain.RGBColor {
	results := make(map[string]*domain.RGBColor, len(imageURLs))
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(batchConcurrency)
	for _, imageURL := range imageURLs {
		imageURL := imageURL
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			color, err := s.ExtractColor(ctx, imageURL)
			if err != nil {
				s.deps.Logger.Debug("Failed to extract color in batch", map[string]interface{}{
					"url":   imageURL,
					"error": err.Error(),
				})
				return nil
			}
			mu.Lock()
			results[imageURL] = color
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	s.deps.Logger.Debug("Completed batch color extraction", map[string]interface{}{
		"requested": len(imageURLs),
		"extracted": len(results),
	})
	return results
}
