// ABOUTME: Block store client implements BlockSource over the external document HTTP API
// ABOUTME: Maps non-success statuses to typed errors and decodes paginated results

package blockstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"blockpress-api/core/domain"
	coreerrors "blockpress-api/core/errors"
	"blockpress-api/core/ids"
	"blockpress-api/core/interfaces"
)

const (
	// DefaultBaseURL is the public endpoint of the document API
	DefaultBaseURL = "https://api.notion.com"
	// DefaultAPIVersion is the API version header value
	DefaultAPIVersion = "2022-06-28"

	apiName         = "blocks"
	maxErrorBody    = 64 << 10
	maxResponseBody = 32 << 20
)

// Headers returns the request headers the document API expects. Pass them
// to the HTTP client that backs the Client.
func Headers(token, version string) map[string]string {
	if version == "" {
		version = DefaultAPIVersion
	}
	h := map[string]string{
		"Notion-Version": version,
		"Content-Type":   "application/json",
		"Accept":         "application/json",
	}
	if token != "" {
		h["Authorization"] = "Bearer " + token
	}
	return h
}

// Client reads documents and collections from the document API
type Client struct {
	baseURL    string
	httpClient interfaces.HTTPClient
	logger     interfaces.Logger
}

// NewClient creates a client for the API at baseURL. Authentication headers
// are the HTTP client's concern.
func NewClient(baseURL string, httpClient interfaces.HTTPClient, logger interfaces.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// ListChildren returns one page of a node's direct children
func (c *Client) ListChildren(ctx context.Context, blockID, cursor string, pageSize int) (*domain.ChildrenPage, error) {
	id, err := ids.Canonical(blockID)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	if cursor != "" {
		q.Set("start_cursor", cursor)
	}
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}
	endpoint := c.baseURL + "/v1/blocks/" + id + "/children"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var list wireList
	if err := c.getJSON(ctx, endpoint, "block", id, &list); err != nil {
		return nil, err
	}

	page := &domain.ChildrenPage{
		Results: make([]domain.Block, 0, len(list.Results)),
		HasMore: list.HasMore,
	}
	if list.NextCursor != nil {
		page.NextCursor = *list.NextCursor
	}
	for _, raw := range list.Results {
		b, err := decodeBlock(raw)
		if err != nil {
			return nil, &coreerrors.SourceUnavailableError{
				API:     apiName,
				Message: "malformed block in children of " + id,
				Cause:   err,
			}
		}
		page.Results = append(page.Results, b)
	}

	c.logger.Debug("Fetched children page", map[string]interface{}{
		"block_id": id,
		"results":  len(page.Results),
		"has_more": page.HasMore,
	})
	return page, nil
}

// GetPage returns a document's metadata
func (c *Client) GetPage(ctx context.Context, pageID string) (*domain.PageMeta, error) {
	id, err := ids.Canonical(pageID)
	if err != nil {
		return nil, err
	}

	var page wirePage
	if err := c.getJSON(ctx, c.baseURL+"/v1/pages/"+id, "page", id, &page); err != nil {
		return nil, err
	}
	meta := convertPage(page)
	return &meta, nil
}

// GetCollection returns a collection's title, cover and property schema
func (c *Client) GetCollection(ctx context.Context, collectionID string) (*domain.CollectionMeta, error) {
	id, err := ids.Canonical(collectionID)
	if err != nil {
		return nil, err
	}

	var db wireDatabase
	if err := c.getJSON(ctx, c.baseURL+"/v1/databases/"+id, "collection", id, &db); err != nil {
		return nil, err
	}
	meta := convertDatabase(db)
	return &meta, nil
}

type queryRequest struct {
	Filter      domain.Filter `json:"filter,omitempty"`
	Sorts       []domain.Sort `json:"sorts,omitempty"`
	StartCursor string        `json:"start_cursor,omitempty"`
	PageSize    int           `json:"page_size,omitempty"`
}

// QueryCollection returns one page of rows matching the query
func (c *Client) QueryCollection(ctx context.Context, collectionID string, query domain.CollectionQuery) (*domain.QueryPage, error) {
	id, err := ids.Canonical(collectionID)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(queryRequest{
		Filter:      query.Filter,
		Sorts:       query.Sorts,
		StartCursor: query.Cursor,
		PageSize:    query.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode collection query: %w", err)
	}

	resp, err := c.httpClient.Post(ctx, c.baseURL+"/v1/databases/"+id+"/query", bytes.NewReader(body))
	if err != nil {
		return nil, transportError(err)
	}

	var list struct {
		Results    []wirePage `json:"results"`
		HasMore    bool       `json:"has_more"`
		NextCursor *string    `json:"next_cursor"`
	}
	if err := c.decode(resp, "collection", id, &list); err != nil {
		return nil, err
	}

	page := &domain.QueryPage{
		Results: make([]domain.Row, 0, len(list.Results)),
		HasMore: list.HasMore,
	}
	if list.NextCursor != nil {
		page.NextCursor = *list.NextCursor
	}
	for _, p := range list.Results {
		page.Results = append(page.Results, convertRow(p))
	}

	c.logger.Debug("Queried collection", map[string]interface{}{
		"collection_id": id,
		"results":       len(page.Results),
		"has_more":      page.HasMore,
	})
	return page, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, resource, id string, out interface{}) error {
	resp, err := c.httpClient.Get(ctx, endpoint)
	if err != nil {
		return transportError(err)
	}
	return c.decode(resp, resource, id, out)
}

// decode closes the response body. 404 becomes NotFoundError; any other
// non-2xx status becomes SourceUnavailableError carrying the API's message.
func (c *Client) decode(resp interfaces.Response, resource, id string, out interface{}) error {
	body := resp.Body()
	defer body.Close()

	status := resp.StatusCode()
	if status == http.StatusNotFound {
		io.Copy(io.Discard, io.LimitReader(body, maxErrorBody))
		return &coreerrors.NotFoundError{Resource: resource, ID: id}
	}
	if status < 200 || status > 299 {
		srcErr := &coreerrors.SourceUnavailableError{
			API:        apiName,
			StatusCode: status,
			Message:    http.StatusText(status),
			RetryAfter: retryAfter(resp.Header("Retry-After")),
		}
		var apiErr wireError
		if data, err := io.ReadAll(io.LimitReader(body, maxErrorBody)); err == nil {
			if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
				srcErr.Message = apiErr.Message
			}
		}
		c.logger.Warn("Document API returned an error", map[string]interface{}{
			"resource":    resource,
			"id":          id,
			"status_code": status,
			"code":        apiErr.Code,
		})
		return srcErr
	}

	if err := json.NewDecoder(io.LimitReader(body, maxResponseBody)).Decode(out); err != nil {
		return &coreerrors.SourceUnavailableError{
			API:        apiName,
			StatusCode: status,
			Message:    "malformed response for " + resource + " " + id,
			Cause:      err,
		}
	}
	return nil
}

func transportError(err error) error {
	return &coreerrors.SourceUnavailableError{API: apiName, Message: err.Error(), Cause: err}
}

// retryAfter parses a Retry-After header given in seconds or as an HTTP date
func retryAfter(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}
