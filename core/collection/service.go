// ABOUTME: Collection service lists content and events and builds form schemas
// ABOUTME: Rows are projected into typed records; event listings get best-effort enrichment

// Package collection exposes the collection-listing and form-schema operations.
package collection

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"blockpress-api/core/config"
	"blockpress-api/core/domain"
	coreerrors "blockpress-api/core/errors"
	"blockpress-api/core/interfaces"
	"blockpress-api/core/projector"
)

const (
	// DefaultPageSize is used when a query does not set one
	DefaultPageSize = 20
	// MaxPageSize is the store's page size limit
	MaxPageSize = 100
	// enrichConcurrency bounds concurrent enrichment calls per listing
	enrichConcurrency = 5
	// maxFormPages bounds the rows read for one form schema
	maxFormPages = 10
)

// ListQuery selects a page of a collection
type ListQuery struct {
	CollectionID string
	Statuses     []string
	Category     string
	Cursor       string
	PageSize     int
}

// Options configures a Service
type Options struct {
	// ContentCollectionID is used when a content query names no collection
	ContentCollectionID string
	// EventsCollectionID is used when an event query names no collection
	EventsCollectionID string
	// StatusProperty and CategoryProperty name the filterable properties
	StatusProperty   string
	CategoryProperty string
	// EnrichListings turns on cover colors and link previews for events
	EnrichListings bool
	// Enrichment selects the steps; nil runs all of them
	Enrichment *config.EnrichmentConfig
}

// Service implements collection listing and form schema retrieval
type Service struct {
	deps     interfaces.Dependencies
	schemas  *projector.SchemaCache
	filters  *projector.FilterBuilder
	enricher interfaces.ContentEnrichmentService
	steps    config.EnrichmentConfig
	opts     Options
}

// NewService creates a collection service. enricher may be nil.
func NewService(deps interfaces.Dependencies, schemas *projector.SchemaCache, enricher interfaces.ContentEnrichmentService, opts Options) *Service {
	if deps.Logger == nil {
		deps.Logger = interfaces.NopLogger{}
	}
	if schemas == nil {
		schemas = projector.NewSchemaCache(deps.Source, deps.Logger)
	}
	if opts.StatusProperty == "" {
		opts.StatusProperty = "Status"
	}
	if opts.CategoryProperty == "" {
		opts.CategoryProperty = "Category"
	}
	steps := config.DefaultEnrichmentConfig()
	if opts.Enrichment != nil {
		steps = *opts.Enrichment
	}

	return &Service{
		deps:     deps,
		schemas:  schemas,
		filters:  projector.NewFilterBuilder(schemas),
		enricher: enricher,
		steps:    steps,
		opts:     opts,
	}
}

// ListContent returns a page of content entries
func (s *Service) ListContent(ctx context.Context, q ListQuery) (*domain.ContentListing, error) {
	page, err := s.query(ctx, q, s.opts.ContentCollectionID, []domain.Sort{
		{Timestamp: "last_edited_time", Direction: "descending"},
	})
	if err != nil {
		return nil, err
	}

	listing := &domain.ContentListing{
		Items:      make([]domain.ContentEntry, 0, len(page.Results)),
		HasMore:    page.HasMore,
		NextCursor: cursorPtr(page),
	}
	for _, row := range page.Results {
		listing.Items = append(listing.Items, projector.ProjectContent(row))
	}
	return listing, nil
}

// ListEvents returns a page of events ordered by their date property when
// the collection declares one
func (s *Service) ListEvents(ctx context.Context, q ListQuery) (*domain.EventListing, error) {
	if q.CollectionID == "" {
		q.CollectionID = s.opts.EventsCollectionID
	}

	var sorts []domain.Sort
	if q.CollectionID != "" {
		if name := s.dateProperty(ctx, q.CollectionID); name != "" {
			sorts = []domain.Sort{{Property: name, Direction: "ascending"}}
		}
	}

	page, err := s.query(ctx, q, s.opts.EventsCollectionID, sorts)
	if err != nil {
		return nil, err
	}

	listing := &domain.EventListing{
		Items:      make([]domain.EventEntry, 0, len(page.Results)),
		HasMore:    page.HasMore,
		NextCursor: cursorPtr(page),
	}
	for _, row := range page.Results {
		listing.Items = append(listing.Items, projector.ProjectEvent(row))
	}

	if s.opts.EnrichListings && s.enricher != nil && s.steps.Enabled() {
		s.enrichEvents(ctx, listing.Items)
	}
	return listing, nil
}

// GetFormSchema returns the fields of a form collection in display order
// together with the collection's cover
func (s *Service) GetFormSchema(ctx context.Context, collectionID string) (*domain.FormSchema, error) {
	if strings.TrimSpace(collectionID) == "" {
		return nil, &coreerrors.ValidationError{Field: "collection_id", Message: "collection id is required"}
	}

	meta, err := s.schemas.Get(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	var fields []domain.FormField
	cursor := ""
	for page := 0; page < maxFormPages; page++ {
		result, err := s.deps.Source.QueryCollection(ctx, collectionID, domain.CollectionQuery{
			Cursor:   cursor,
			PageSize: MaxPageSize,
		})
		if err != nil {
			return nil, err
		}
		for _, row := range result.Results {
			fields = append(fields, projector.ProjectFormField(row))
		}
		if !result.HasMore || result.NextCursor == "" {
			break
		}
		cursor = result.NextCursor
	}

	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Order < fields[j].Order
	})

	schema := &domain.FormSchema{
		ID:     meta.ID,
		Title:  meta.Title,
		Fields: fields,
	}
	if schema.Fields == nil {
		schema.Fields = []domain.FormField{}
	}
	if meta.Cover != "" {
		cover := meta.Cover
		schema.Cover = &cover
	}
	return schema, nil
}

// query validates q and runs one filtered collection query
func (s *Service) query(ctx context.Context, q ListQuery, fallbackID string, sorts []domain.Sort) (*domain.QueryPage, error) {
	if q.CollectionID == "" {
		q.CollectionID = fallbackID
	}
	if q.CollectionID == "" {
		return nil, &coreerrors.ValidationError{Field: "collection_id", Message: "collection id is required"}
	}
	if q.PageSize < 0 || q.PageSize > MaxPageSize {
		return nil, &coreerrors.ValidationError{Field: "page_size", Message: "must be between 1 and 100"}
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultPageSize
	}

	var predicates []projector.Predicate
	if len(q.Statuses) > 0 {
		predicates = append(predicates, projector.Predicate{Property: s.opts.StatusProperty, Values: q.Statuses})
	}
	if q.Category != "" {
		predicates = append(predicates, projector.Predicate{Property: s.opts.CategoryProperty, Values: []string{q.Category}})
	}

	filter, err := s.filters.Build(ctx, q.CollectionID, predicates...)
	if err != nil {
		return nil, err
	}

	page, err := s.deps.Source.QueryCollection(ctx, q.CollectionID, domain.CollectionQuery{
		Filter:   filter,
		Sorts:    sorts,
		Cursor:   q.Cursor,
		PageSize: q.PageSize,
	})
	if err != nil {
		s.deps.Logger.Error("Collection query failed", map[string]interface{}{
			"collection_id": q.CollectionID,
			"error":         err.Error(),
		})
		return nil, err
	}

	s.deps.Logger.Debug("Queried collection", map[string]interface{}{
		"collection_id": q.CollectionID,
		"results":       len(page.Results),
		"has_more":      page.HasMore,
	})
	return page, nil
}

// dateProperty returns the first date property of the collection in name
// order, or "" when the schema is unavailable or has none
func (s *Service) dateProperty(ctx context.Context, collectionID string) string {
	types, err := s.schemas.PropertyTypes(ctx, collectionID)
	if err != nil {
		return ""
	}
	var names []string
	for name, t := range types {
		if t == projector.TypeDate {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return names[0]
}

// enrichEvents fills missing covers from link previews and computes cover
// colors. Failures degrade the single item and are logged.
func (s *Service) enrichEvents(ctx context.Context, events []domain.EventEntry) {
	g := new(errgroup.Group)
	g.SetLimit(enrichConcurrency)

	for i := range events {
		i := i
		g.Go(func() error {
			event := &events[i]

			if s.steps.LinkPreviews && event.Cover == "" && event.Link != "" {
				meta, err := s.enricher.ExtractMetadata(ctx, event.Link)
				if err != nil {
					s.degraded(&coreerrors.PartialDataError{Operation: "link preview", Target: event.Link, Cause: err})
				} else if meta != nil {
					event.Cover = meta.Thumbnail
				}
			}

			if s.steps.CoverColors && event.Cover != "" {
				color, err := s.enricher.ExtractColor(ctx, event.Cover)
				if err != nil {
					s.degraded(&coreerrors.PartialDataError{Operation: "cover color", Target: event.Cover, Cause: err})
				} else {
					event.CoverColor = color
				}
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (s *Service) degraded(err *coreerrors.PartialDataError) {
	s.deps.Logger.Warn("Listing enrichment degraded", map[string]interface{}{
		"operation": err.Operation,
		"target":    err.Target,
		"error":     err.Error(),
	})
}

func cursorPtr(page *domain.QueryPage) *string {
	if !page.HasMore || page.NextCursor == "" {
		return nil
	}
	cursor := page.NextCursor
	return &cursor
}
