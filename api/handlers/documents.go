// ABOUTME: Document handlers for the Huma API
// ABOUTME: Serves normalized, flattened documents by id or URL

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"blockpress-api/core/domain"
)

// DocumentService interface defines the methods needed from the document service
type DocumentService interface {
	GetDocument(ctx context.Context, ref string) (*domain.Document, error)
}

// DocumentHandler handles document HTTP requests
type DocumentHandler struct {
	documentService DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// RegisterRoutes registers all document routes
func (h *DocumentHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getDocument",
		Method:      http.MethodGet,
		Path:        "/documents",
		Summary:     "Get a normalized document",
		Description: "Fetches a document's block tree, flattens it and resolves inline text, links and panels for rendering",
		Tags:        []string{"Documents"},
	}, h.GetDocument)
}

// GetDocumentInput defines the input for the GetDocument operation
type GetDocumentInput struct {
	Ref string `query:"ref" required:"true" doc:"Document id (32 or 36 characters) or document URL"`
}

// GetDocumentOutput defines the output for the GetDocument operation
type GetDocumentOutput struct {
	Body *domain.Document
}

// GetDocument handles the GET /documents endpoint
func (h *DocumentHandler) GetDocument(ctx context.Context, input *GetDocumentInput) (*GetDocumentOutput, error) {
	doc, err := h.documentService.GetDocument(ctx, input.Ref)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &GetDocumentOutput{Body: doc}, nil
}
