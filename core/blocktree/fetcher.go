// ABOUTME: Block tree fetcher resolves a document's complete node tree from the store
// ABOUTME: Walks cursor pages depth-first with bounded parallel sibling fan-out

// Package blocktree fetches nested node trees and linearizes them for rendering.
package blocktree

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"blockpress-api/core/domain"
	coreerrors "blockpress-api/core/errors"
	"blockpress-api/core/ids"
	"blockpress-api/core/interfaces"
)

const (
	// DefaultMaxDepth bounds recursion on pathological trees
	DefaultMaxDepth = 16
	// DefaultConcurrency is the number of in-flight children requests
	DefaultConcurrency = 4
	// DefaultPageSize is the number of children requested per page
	DefaultPageSize = 100
)

// Options tunes a Fetcher. Zero values select the defaults.
type Options struct {
	MaxDepth    int
	Concurrency int
	PageSize    int
}

// Fetcher retrieves complete block trees through a BlockSource
type Fetcher struct {
	source   interfaces.BlockSource
	logger   interfaces.Logger
	maxDepth int
	pageSize int
	slots    *semaphore.Weighted
}

// NewFetcher creates a fetcher over source
func NewFetcher(source interfaces.BlockSource, logger interfaces.Logger, opts Options) *Fetcher {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.PageSize <= 0 || opts.PageSize > 100 {
		opts.PageSize = DefaultPageSize
	}
	if logger == nil {
		logger = interfaces.NopLogger{}
	}

	return &Fetcher{
		source:   source,
		logger:   logger,
		maxDepth: opts.MaxDepth,
		pageSize: opts.PageSize,
		slots:    semaphore.NewWeighted(int64(opts.Concurrency)),
	}
}

// FetchDocumentTree returns the top-level blocks of the referenced document
// with every descendable subtree resolved, in authoring order
func (f *Fetcher) FetchDocumentTree(ctx context.Context, documentRef string) ([]domain.Block, error) {
	id, err := ids.Normalize(documentRef)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	blocks, err := f.fetchChildren(ctx, id, 1)
	if err != nil {
		f.logger.Error("Failed to fetch document tree", map[string]interface{}{
			"document_id": id,
			"error":       err.Error(),
		})
		return nil, err
	}

	f.logger.Debug("Fetched document tree", map[string]interface{}{
		"document_id": id,
		"top_level":   len(blocks),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return blocks, nil
}

// fetchChildren lists every direct child of parentID and resolves their
// subtrees. Subtrees are fetched concurrently; each result is written back
// to its sibling index.
func (f *Fetcher) fetchChildren(ctx context.Context, parentID string, depth int) ([]domain.Block, error) {
	if depth > f.maxDepth {
		return nil, &coreerrors.DepthExceededError{BlockID: parentID, MaxDepth: f.maxDepth}
	}

	children, err := f.listAll(ctx, parentID)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range children {
		if !Descendable(children[i]) {
			continue
		}
		i := i
		g.Go(func() error {
			nested, err := f.fetchChildren(gctx, children[i].ID, depth+1)
			if err != nil {
				return err
			}
			children[i].Children = nested
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return children, nil
}

// listAll follows the cursor until the store reports no further page
func (f *Fetcher) listAll(ctx context.Context, parentID string) ([]domain.Block, error) {
	var (
		all    []domain.Block
		cursor string
	)
	for page := 1; ; page++ {
		result, err := f.listPage(ctx, parentID, cursor)
		if err != nil {
			return nil, err
		}

		f.logger.Debug("Fetched children page", map[string]interface{}{
			"block_id": parentID,
			"page":     page,
			"results":  len(result.Results),
			"has_more": result.HasMore,
		})

		all = append(all, result.Results...)
		if !result.HasMore || result.NextCursor == "" {
			return all, nil
		}
		cursor = result.NextCursor
	}
}

// listPage performs one outbound request while holding a concurrency slot
func (f *Fetcher) listPage(ctx context.Context, parentID, cursor string) (*domain.ChildrenPage, error) {
	if err := f.slots.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer f.slots.Release(1)

	page, err := f.source.ListChildren(ctx, parentID, cursor, f.pageSize)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, &coreerrors.SourceUnavailableError{
			API:     "blocks",
			Message: fmt.Sprintf("empty children response for %s", parentID),
		}
	}
	return page, nil
}

// Descendable reports whether the fetcher resolves the block's children.
// Child pages and databases are separate documents and stay unresolved.
func Descendable(b domain.Block) bool {
	if !b.HasChildren {
		return false
	}
	return b.Type != domain.BlockChildPage && b.Type != domain.BlockChildDatabase
}
