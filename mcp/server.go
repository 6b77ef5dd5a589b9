// ABOUTME: MCP server exposing documents, listings and form schemas as tools
// ABOUTME: Lets assistants read normalized content over stdio or streamable HTTP

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"blockpress-api/core/collection"
	"blockpress-api/core/domain"
)

const Version = "1.0.0"

// DocumentService is the document retrieval the tools need
type DocumentService interface {
	GetDocument(ctx context.Context, ref string) (*domain.Document, error)
}

// CollectionService is the collection access the tools need
type CollectionService interface {
	ListContent(ctx context.Context, q collection.ListQuery) (*domain.ContentListing, error)
	ListEvents(ctx context.Context, q collection.ListQuery) (*domain.EventListing, error)
	GetFormSchema(ctx context.Context, collectionID string) (*domain.FormSchema, error)
}

type GetDocumentRequest struct {
	Ref string `json:"ref"` // Document id or URL
}

type ListRequest struct {
	CollectionID string `json:"collectionId"`
	Status       string `json:"status"` // comma-separated statuses
	Category     string `json:"category"`
	Cursor       string `json:"cursor"`
	PageSize     int    `json:"pageSize"`
}

type GetFormSchemaRequest struct {
	CollectionID string `json:"collectionId"`
}

// NewServer creates an MCP server. Collection tools are registered only
// when collections is non-nil.
func NewServer(documents DocumentService, collections CollectionService) *server.MCPServer {
	s := server.NewMCPServer(
		"Blockpress MCP",
		Version,
		server.WithToolCapabilities(false),
	)

	getDocumentTool := mcp.NewTool("getDocument",
		mcp.WithDescription("Get a normalized document: a flat list of blocks with resolved text, links and structured panels"),
		mcp.WithString("ref",
			mcp.Required(),
			mcp.Description("Document id (32 or 36 characters) or a document URL"),
		),
	)
	s.AddTool(getDocumentTool, mcp.NewTypedToolHandler(getDocumentHandler(documents)))

	if collections == nil {
		return s
	}

	listOptions := []mcp.ToolOption{
		mcp.WithString("collectionId", mcp.Description("Collection id; omit to use the configured collection")),
		mcp.WithString("status", mcp.Description("Comma-separated status values to include")),
		mcp.WithString("category", mcp.Description("Category to match")),
		mcp.WithString("cursor", mcp.Description("Cursor from a previous page")),
		mcp.WithNumber("pageSize", mcp.Description("Items per page, at most 100")),
	}

	listContentTool := mcp.NewTool("listContent", append([]mcp.ToolOption{
		mcp.WithDescription("List content catalog entries, most recently edited first"),
	}, listOptions...)...)
	s.AddTool(listContentTool, mcp.NewTypedToolHandler(listContentHandler(collections)))

	listEventsTool := mcp.NewTool("listEvents", append([]mcp.ToolOption{
		mcp.WithDescription("List events ordered by date"),
	}, listOptions...)...)
	s.AddTool(listEventsTool, mcp.NewTypedToolHandler(listEventsHandler(collections)))

	getFormSchemaTool := mcp.NewTool("getFormSchema",
		mcp.WithDescription("Get the ordered fields of a form-definition collection"),
		mcp.WithString("collectionId",
			mcp.Required(),
			mcp.Description("Form-definition collection id"),
		),
	)
	s.AddTool(getFormSchemaTool, mcp.NewTypedToolHandler(getFormSchemaHandler(collections)))

	return s
}

func getDocumentHandler(documents DocumentService) func(ctx context.Context, request mcp.CallToolRequest, args GetDocumentRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args GetDocumentRequest) (*mcp.CallToolResult, error) {
		if strings.TrimSpace(args.Ref) == "" {
			return mcp.NewToolResultError("ref is required"), nil
		}

		doc, err := documents.GetDocument(ctx, args.Ref)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to get document: %v", err)), nil
		}
		return jsonResult(doc)
	}
}

func listContentHandler(collections CollectionService) func(ctx context.Context, request mcp.CallToolRequest, args ListRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args ListRequest) (*mcp.CallToolResult, error) {
		listing, err := collections.ListContent(ctx, args.query())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to list content: %v", err)), nil
		}
		return jsonResult(listing)
	}
}

func listEventsHandler(collections CollectionService) func(ctx context.Context, request mcp.CallToolRequest, args ListRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args ListRequest) (*mcp.CallToolResult, error) {
		listing, err := collections.ListEvents(ctx, args.query())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to list events: %v", err)), nil
		}
		return jsonResult(listing)
	}
}

func getFormSchemaHandler(collections CollectionService) func(ctx context.Context, request mcp.CallToolRequest, args GetFormSchemaRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args GetFormSchemaRequest) (*mcp.CallToolResult, error) {
		if strings.TrimSpace(args.CollectionID) == "" {
			return mcp.NewToolResultError("collectionId is required"), nil
		}

		schema, err := collections.GetFormSchema(ctx, args.CollectionID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to get form schema: %v", err)), nil
		}
		return jsonResult(schema)
	}
}

func (r ListRequest) query() collection.ListQuery {
	q := collection.ListQuery{
		CollectionID: strings.TrimSpace(r.CollectionID),
		Category:     strings.TrimSpace(r.Category),
		Cursor:       r.Cursor,
		PageSize:     r.PageSize,
	}
	for _, s := range strings.Split(r.Status, ",") {
		if s = strings.TrimSpace(s); s != "" {
			q.Statuses = append(q.Statuses, s)
		}
	}
	return q
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
