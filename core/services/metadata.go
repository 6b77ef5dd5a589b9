// ABOUTME: Link metadata service scrapes preview data for external event links
// ABOUTME: Uses colly and goquery to read Open Graph tags, JSON-LD and page images

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"
	"golang.org/x/sync/errgroup"

	"blockpress-api/core/interfaces"
)

const (
	collyUserAgent   = "facebookexternalhit/1.1 (+http://www.facebook.com/externalhit_uatext.php)"
	metadataCacheTTL = 24 * time.Hour
)

// MetadataService extracts link previews from web pages
type MetadataService struct {
	deps interfaces.Dependencies
}

// NewMetadataService creates a new metadata service
func NewMetadataService(deps interfaces.Dependencies) *MetadataService {
	if deps.Logger == nil {
		deps.Logger = interfaces.NopLogger{}
	}
	return &MetadataService{deps: deps}
}

// ExtractMetadata extracts metadata from a single URL
func (s *MetadataService) ExtractMetadata(ctx context.Context, targetURL string) (*interfaces.MetadataResult, error) {
	cacheKey := "metadata:" + targetURL
	if s.deps.Cache != nil {
		if data, err := s.deps.Cache.Get(ctx, cacheKey); err == nil && data != nil {
			var result interfaces.MetadataResult
			if err := json.Unmarshal(data, &result); err == nil {
				return &result, nil
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result, err := s.extractFromURL(targetURL)
	if err != nil {
		return nil, err
	}

	// Cache the result (ignore cache errors)
	if s.deps.Cache != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = s.deps.Cache.Set(ctx, cacheKey, data, metadataCacheTTL)
		}
	}
	return result, nil
}

// ExtractMetadataBatch extracts metadata for multiple URLs concurrently.
// Failed URLs are absent from the result.
func (s *MetadataService) ExtractMetadataBatch(ctx context.Context, urls []string) map[string]*interfaces.MetadataResult {
	results := make(map[string]*interfaces.MetadataResult, len(urls))
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(batchConcurrency)
	for _, targetURL := range urls {
		targetURL := targetURL
		g.Go(func() error {
			if result, err := s.ExtractMetadata(ctx, targetURL); err == nil {
				mu.Lock()
				results[targetURL] = result
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// extractFromURL visits the page once and collects preview data
func (s *MetadataService) extractFromURL(targetURL string) (*interfaces.MetadataResult, error) {
	parsed, err := url.Parse(targetURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("invalid link URL: %q", targetURL)
	}

	c := colly.NewCollector(
		colly.UserAgent(collyUserAgent),
		colly.MaxBodySize(5*1024*1024),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(10 * time.Second)

	result := &interfaces.MetadataResult{Images: []string{}, Domain: parsed.Host}
	var pageImages []string

	c.OnHTML("meta", func(e *colly.HTMLElement) {
		property, name, content := e.Attr("property"), e.Attr("name"), e.Attr("content")
		if content == "" {
			return
		}
		if name == "twitter:image" && result.Thumbnail == "" {
			result.Thumbnail = e.Request.AbsoluteURL(content)
		}
		switch property {
		case "og:title":
			if result.Title == "" {
				result.Title = content
			}
		case "og:description":
			if result.Description == "" {
				result.Description = content
			}
		case "og:image":
			abs := e.Request.AbsoluteURL(content)
			result.Images = append(result.Images, abs)
			if result.Thumbnail == "" {
				result.Thumbnail = abs
			}
		}
	})

	c.OnHTML("head", func(e *colly.HTMLElement) {
		if result.Title == "" {
			result.Title = strings.TrimSpace(e.DOM.Find("title").First().Text())
		}
		if result.Description == "" {
			if content, ok := e.DOM.Find("meta[name='description']").First().Attr("content"); ok {
				result.Description = content
			}
		}
		e.DOM.Find("link[rel]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			href := sel.AttrOr("href", "")
			for _, rel := range strings.Fields(sel.AttrOr("rel", "")) {
				if href != "" && (rel == "icon" || rel == "apple-touch-icon") {
					result.Favicon = e.Request.AbsoluteURL(href)
					return false
				}
			}
			return true
		})
	})

	c.OnHTML("script[type='application/ld+json']", func(e *colly.HTMLElement) {
		var ld map[string]interface{}
		if err := json.Unmarshal([]byte(e.Text), &ld); err != nil || result.Thumbnail != "" {
			return
		}
		switch img := ld["image"].(type) {
		case string:
			result.Thumbnail = img
		case map[string]interface{}:
			if u, ok := img["url"].(string); ok {
				result.Thumbnail = u
			}
		}
	})

	c.OnHTML("img", func(e *colly.HTMLElement) {
		if src := e.Attr("src"); src != "" && isSignificantImage(e) {
			pageImages = append(pageImages, e.Request.AbsoluteURL(src))
		}
	})

	var visitErr error
	c.OnError(func(r *colly.Response, err error) {
		visitErr = fmt.Errorf("status %d: %w", r.StatusCode, err)
	})

	if err := c.Visit(targetURL); err != nil {
		return nil, err
	}
	if visitErr != nil {
		return nil, visitErr
	}

	if result.Thumbnail == "" && len(pageImages) > 0 {
		result.Thumbnail = pageImages[0]
		result.Images = append(result.Images, pageImages...)
	}
	return result, nil
}

// isSignificantImage checks if an image is likely to be content (not logo/icon)
func isSignificantImage(e *colly.HTMLElement) bool {
	if width, height := e.Attr("width"), e.Attr("height"); width != "" && height != "" {
		w, _ := strconv.Atoi(width)
		h, _ := strconv.Atoi(height)
		if w < 200 || h < 200 {
			return false
		}
	}

	class := strings.ToLower(e.Attr("class"))
	id := strings.ToLower(e.Attr("id"))
	alt := strings.ToLower(e.Attr("alt"))
	for _, pattern := range []string{"logo", "icon", "avatar", "profile", "user", "author"} {
		if strings.Contains(class, pattern) || strings.Contains(id, pattern) || strings.Contains(alt, pattern) {
			return false
		}
	}
	return true
}
