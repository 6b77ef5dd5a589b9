// ABOUTME: Document service fetches, flattens and normalizes documents for rendering
// ABOUTME: Metadata and body are fetched concurrently and results cached with a TTL

// Package document exposes the normalized-document retrieval operation.
package document

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"blockpress-api/core/blocktree"
	"blockpress-api/core/domain"
	coreerrors "blockpress-api/core/errors"
	"blockpress-api/core/ids"
	"blockpress-api/core/interfaces"
	"blockpress-api/core/panel"
)

// DefaultTTL is how long a normalized document stays cached
const DefaultTTL = 5 * time.Minute

// Options configures a Service
type Options struct {
	// ViewerRoute is the route internal links are rewritten to
	ViewerRoute string
	// TTL is the cache lifetime of a normalized document; negative disables caching
	TTL time.Duration
	// Fetch tunes the block tree fetcher
	Fetch blocktree.Options
}

// Service implements normalized document retrieval
type Service struct {
	deps       interfaces.Dependencies
	fetcher    *blocktree.Fetcher
	normalizer *Normalizer
	ttl        time.Duration
}

// NewService creates a document service over deps.Source
func NewService(deps interfaces.Dependencies, opts Options) *Service {
	if deps.Logger == nil {
		deps.Logger = interfaces.NopLogger{}
	}
	if opts.ViewerRoute == "" {
		opts.ViewerRoute = ids.DefaultViewerRoute
	}
	if opts.TTL == 0 {
		opts.TTL = DefaultTTL
	}

	return &Service{
		deps:       deps,
		fetcher:    blocktree.NewFetcher(deps.Source, deps.Logger, opts.Fetch),
		normalizer: NewNormalizer(opts.ViewerRoute, panel.NewParser(opts.ViewerRoute, deps.Logger)),
		ttl:        opts.TTL,
	}
}

// GetDocument returns the referenced document as a flat, normalized block
// sequence. ref may be a bare id in either form or a document URL.
func (s *Service) GetDocument(ctx context.Context, ref string) (*domain.Document, error) {
	id, err := ids.Normalize(ref)
	if err != nil {
		return nil, err
	}

	if doc := s.getCachedDocument(ctx, id); doc != nil {
		s.deps.Logger.Debug("Document cache hit", map[string]interface{}{"document_id": id})
		return doc, nil
	}

	var (
		meta *domain.PageMeta
		tree []domain.Block
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page, err := s.deps.Source.GetPage(gctx, id)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			s.deps.Logger.Warn("Document metadata unavailable", map[string]interface{}{
				"document_id": id,
				"error":       (&coreerrors.PartialDataError{Operation: "metadata", Target: id, Cause: err}).Error(),
			})
			return nil
		}
		meta = page
		return nil
	})
	g.Go(func() error {
		blocks, err := s.fetcher.FetchDocumentTree(gctx, id)
		if err != nil {
			return err
		}
		tree = blocks
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	doc := &domain.Document{
		ID:     ids.Compact(id),
		Blocks: s.normalizer.NormalizeAll(blocktree.Flatten(tree)),
	}
	if meta != nil {
		if meta.Title != "" {
			title := meta.Title
			doc.Title = &title
		}
		doc.Cover, doc.Icon = meta.Cover, meta.Icon
		if !meta.LastEditedTime.IsZero() {
			edited := meta.LastEditedTime
			doc.LastEdited = &edited
		}
	}

	s.deps.Logger.Info("Normalized document", map[string]interface{}{
		"document_id": id,
		"blocks":      len(doc.Blocks),
	})

	// Cache the document (ignore cache errors)
	if meta != nil {
		_ = s.cacheDocument(ctx, id, doc)
	}
	return doc, nil
}

// getCachedDocument returns a cached document, or nil on a miss
func (s *Service) getCachedDocument(ctx context.Context, id string) *domain.Document {
	if s.deps.Cache == nil || s.ttl < 0 {
		return nil
	}

	data, err := s.deps.Cache.Get(ctx, cacheKey(id))
	if err != nil || data == nil {
		return nil
	}

	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}
	return &doc
}

// cacheDocument stores a document in the cache
func (s *Service) cacheDocument(ctx context.Context, id string, doc *domain.Document) error {
	if s.deps.Cache == nil || s.ttl < 0 {
		return nil
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return s.deps.Cache.Set(ctx, cacheKey(id), data, s.ttl)
}

func cacheKey(id string) string {
	return "document:" + ids.Compact(id)
}
