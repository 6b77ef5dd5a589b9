// ABOUTME: Contract for the external block-based document store
// ABOUTME: Cursor-paginated children, page metadata, collection schema and queries

package interfaces

import (
	"context"

	"blockpress-api/core/domain"
)

// BlockSource reads documents and collections from the external store.
// Implementations return *errors.SourceUnavailableError for transport
// failures and non-success statuses, and *errors.NotFoundError for 404s.
type BlockSource interface {
	// ListChildren returns one page of a node's direct children.
	// An empty cursor requests the first page.
	ListChildren(ctx context.Context, blockID, cursor string, pageSize int) (*domain.ChildrenPage, error)

	// GetPage returns a document's metadata
	GetPage(ctx context.Context, pageID string) (*domain.PageMeta, error)

	// GetCollection returns a collection's title, cover and property schema
	GetCollection(ctx context.Context, collectionID string) (*domain.CollectionMeta, error)

	// QueryCollection returns one page of rows matching the query
	QueryCollection(ctx context.Context, collectionID string, query domain.CollectionQuery) (*domain.QueryPage, error)
}
