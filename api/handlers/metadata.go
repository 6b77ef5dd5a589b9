// ABOUTME: Link preview handler for extracting Open Graph and meta tags from web pages
// ABOUTME: Lets editors check how an event or bookmark link will be previewed

package handlers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"blockpress-api/core/interfaces"
)

const maxPreviewURLs = 20

// MetadataHandler handles link preview extraction
type MetadataHandler struct {
	metadataService interfaces.MetadataService
}

// NewMetadataHandler creates a new metadata handler
func NewMetadataHandler(metadataService interfaces.MetadataService) *MetadataHandler {
	return &MetadataHandler{metadataService: metadataService}
}

// RegisterRoutes registers metadata routes
func (h *MetadataHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "extractMetadata",
		Method:      http.MethodPost,
		Path:        "/metadata",
		Summary:     "Extract link previews",
		Description: "Extracts Open Graph tags, JSON-LD data and other metadata from the provided URLs",
		Tags:        []string{"Metadata"},
	}, h.ExtractMetadata)
}

// MetadataInput defines the input for metadata extraction
type MetadataInput struct {
	Body struct {
		URLs []string `json:"urls" minItems:"1" doc:"URLs to extract metadata from"`
	}
}

// MetadataItem represents extracted metadata
type MetadataItem struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	Images      []string `json:"images,omitempty"`
	Domain      string   `json:"domain"`
	Favicon     string   `json:"favicon,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// MetadataOutput defines the output for metadata extraction
type MetadataOutput struct {
	Body struct {
		Metadata []MetadataItem `json:"metadata" doc:"Extracted metadata for each URL, in request order"`
	}
}

// ExtractMetadata handles the POST /metadata endpoint. URLs that fail are
// reported per item rather than failing the request.
func (h *MetadataHandler) ExtractMetadata(ctx context.Context, input *MetadataInput) (*MetadataOutput, error) {
	if len(input.Body.URLs) == 0 {
		return nil, huma.Error400BadRequest("No URLs provided")
	}
	if len(input.Body.URLs) > maxPreviewURLs {
		return nil, huma.Error400BadRequest("Too many URLs")
	}

	var valid []string
	for _, u := range input.Body.URLs {
		if isFetchableURL(u) {
			valid = append(valid, u)
		}
	}
	results := map[string]*interfaces.MetadataResult{}
	if len(valid) > 0 {
		results = h.metadataService.ExtractMetadataBatch(ctx, valid)
	}

	out := &MetadataOutput{}
	out.Body.Metadata = make([]MetadataItem, 0, len(input.Body.URLs))
	for _, u := range input.Body.URLs {
		item := MetadataItem{URL: u}
		switch res, ok := results[u]; {
		case !isFetchableURL(u):
			item.Error = "invalid URL"
		case !ok || res == nil:
			item.Error = "metadata unavailable"
		default:
			item.Title = res.Title
			item.Description = res.Description
			item.Thumbnail = res.Thumbnail
			item.Images = res.Images
			item.Domain = res.Domain
			item.Favicon = res.Favicon
		}
		out.Body.Metadata = append(out.Body.Metadata, item)
	}
	return out, nil
}

func isFetchableURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
