// ABOUTME: Collection handlers for the Huma API
// ABOUTME: Serves content catalogs, event listings and dynamic form schemas

package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"blockpress-api/core/collection"
	"blockpress-api/core/domain"
)

// CollectionService interface defines the methods needed from the collection service
type CollectionService interface {
	ListContent(ctx context.Context, q collection.ListQuery) (*domain.ContentListing, error)
	ListEvents(ctx context.Context, q collection.ListQuery) (*domain.EventListing, error)
	GetFormSchema(ctx context.Context, collectionID string) (*domain.FormSchema, error)
}

// CollectionHandler handles collection HTTP requests
type CollectionHandler struct {
	collectionService CollectionService
	defaultFormID     string
}

// NewCollectionHandler creates a new collection handler. defaultFormID
// backs GET /form when set.
func NewCollectionHandler(collectionService CollectionService, defaultFormID string) *CollectionHandler {
	return &CollectionHandler{
		collectionService: collectionService,
		defaultFormID:     defaultFormID,
	}
}

// RegisterRoutes registers all collection routes
func (h *CollectionHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listContent",
		Method:      http.MethodGet,
		Path:        "/collections/{id}/content",
		Summary:     "List content entries",
		Description: "Queries a content collection with optional status and category filters, newest edits first",
		Tags:        []string{"Collections"},
	}, h.ListContent)

	huma.Register(api, huma.Operation{
		OperationID: "listDefaultContent",
		Method:      http.MethodGet,
		Path:        "/content",
		Summary:     "List entries of the configured content collection",
		Tags:        []string{"Collections"},
	}, h.ListDefaultContent)

	huma.Register(api, huma.Operation{
		OperationID: "listEvents",
		Method:      http.MethodGet,
		Path:        "/collections/{id}/events",
		Summary:     "List events",
		Description: "Queries an events collection ordered by date, enriched with link previews and cover colors",
		Tags:        []string{"Collections"},
	}, h.ListEvents)

	huma.Register(api, huma.Operation{
		OperationID: "listDefaultEvents",
		Method:      http.MethodGet,
		Path:        "/events",
		Summary:     "List events of the configured events collection",
		Tags:        []string{"Collections"},
	}, h.ListDefaultEvents)

	huma.Register(api, huma.Operation{
		OperationID: "getFormSchema",
		Method:      http.MethodGet,
		Path:        "/forms/{id}",
		Summary:     "Get a form schema",
		Description: "Builds an ordered list of form fields from a form-definition collection",
		Tags:        []string{"Forms"},
	}, h.GetFormSchema)

	huma.Register(api, huma.Operation{
		OperationID: "getDefaultFormSchema",
		Method:      http.MethodGet,
		Path:        "/form",
		Summary:     "Get the configured form schema",
		Tags:        []string{"Forms"},
	}, h.GetDefaultFormSchema)
}

// ListingParams are the shared query parameters of listing endpoints
type ListingParams struct {
	Status   []string `query:"status" doc:"Status values to include; repeat or comma-separate"`
	Category string   `query:"category" doc:"Category to match"`
	Cursor   string   `query:"cursor" doc:"Cursor from a previous page"`
	PageSize int      `query:"page_size" doc:"Items per page (default 20, at most 100)"`
}

func (p ListingParams) query(collectionID string) collection.ListQuery {
	var statuses []string
	for _, s := range p.Status {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				statuses = append(statuses, part)
			}
		}
	}
	return collection.ListQuery{
		CollectionID: collectionID,
		Statuses:     statuses,
		Category:     strings.TrimSpace(p.Category),
		Cursor:       p.Cursor,
		PageSize:     p.PageSize,
	}
}

// ListCollectionInput defines the input for listings of an explicit collection
type ListCollectionInput struct {
	ID string `path:"id" doc:"Collection id"`
	ListingParams
}

// ListDefaultInput defines the input for listings of a configured collection
type ListDefaultInput struct {
	ListingParams
}

// ContentListingOutput defines the output for content listings
type ContentListingOutput struct {
	Body *domain.ContentListing
}

// EventListingOutput defines the output for event listings
type EventListingOutput struct {
	Body *domain.EventListing
}

// ListContent handles the GET /collections/{id}/content endpoint
func (h *CollectionHandler) ListContent(ctx context.Context, input *ListCollectionInput) (*ContentListingOutput, error) {
	return h.listContent(ctx, input.query(input.ID))
}

// ListDefaultContent handles the GET /content endpoint
func (h *CollectionHandler) ListDefaultContent(ctx context.Context, input *ListDefaultInput) (*ContentListingOutput, error) {
	return h.listContent(ctx, input.query(""))
}

func (h *CollectionHandler) listContent(ctx context.Context, q collection.ListQuery) (*ContentListingOutput, error) {
	listing, err := h.collectionService.ListContent(ctx, q)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &ContentListingOutput{Body: listing}, nil
}

// ListEvents handles the GET /collections/{id}/events endpoint
func (h *CollectionHandler) ListEvents(ctx context.Context, input *ListCollectionInput) (*EventListingOutput, error) {
	return h.listEvents(ctx, input.query(input.ID))
}

// ListDefaultEvents handles the GET /events endpoint
func (h *CollectionHandler) ListDefaultEvents(ctx context.Context, input *ListDefaultInput) (*EventListingOutput, error) {
	return h.listEvents(ctx, input.query(""))
}

func (h *CollectionHandler) listEvents(ctx context.Context, q collection.ListQuery) (*EventListingOutput, error) {
	listing, err := h.collectionService.ListEvents(ctx, q)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &EventListingOutput{Body: listing}, nil
}

// GetFormSchemaInput defines the input for the GetFormSchema operation
type GetFormSchemaInput struct {
	ID string `path:"id" doc:"Form-definition collection id"`
}

// FormSchemaOutput defines the output for form schema operations
type FormSchemaOutput struct {
	Body *domain.FormSchema
}

// GetFormSchema handles the GET /forms/{id} endpoint
func (h *CollectionHandler) GetFormSchema(ctx context.Context, input *GetFormSchemaInput) (*FormSchemaOutput, error) {
	return h.formSchema(ctx, input.ID)
}

// GetDefaultFormSchema handles the GET /form endpoint
func (h *CollectionHandler) GetDefaultFormSchema(ctx context.Context, _ *struct{}) (*FormSchemaOutput, error) {
	if h.defaultFormID == "" {
		return nil, huma.Error400BadRequest("no form collection configured")
	}
	return h.formSchema(ctx, h.defaultFormID)
}

func (h *CollectionHandler) formSchema(ctx context.Context, id string) (*FormSchemaOutput, error) {
	schema, err := h.collectionService.GetFormSchema(ctx, id)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &FormSchemaOutput{Body: schema}, nil
}
