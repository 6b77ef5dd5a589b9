package blockpress

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blockpress-api/core/domain"
	coreerrors "blockpress-api/core/errors"
)

const (
	pageID     = "3f1a2b3c-4d5e-6f70-8192-a3b4c5d6e7f8"
	pageIDFlat = "3f1a2b3c4d5e6f708192a3b4c5d6e7f8"
	otherFlat  = "0123456789abcdef0123456789abcdef"
)

func newSourceServer(t *testing.T, children *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/v1/pages/" + pageID:
			io.WriteString(w, `{
				"id": "`+pageID+`",
				"last_edited_time": "2024-05-01T10:00:00.000Z",
				"properties": {"Name": {"type": "title", "title": [{"type": "text", "plain_text": "Handbook"}]}}
			}`)
		case "/v1/blocks/" + pageID + "/children":
			atomic.AddInt32(children, 1)
			io.WriteString(w, `{
				"results": [
					{"id": "b1", "type": "heading_1", "has_children": false,
					 "heading_1": {"rich_text": [{"type": "text", "plain_text": "Welcome"}]}},
					{"id": "b2", "type": "paragraph", "has_children": false,
					 "paragraph": {"rich_text": [{"type": "text", "plain_text": "next",
					   "href": "/`+otherFlat+`", "annotations": {}}]}}
				],
				"has_more": false,
				"next_cursor": null
			}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"object": "error", "status": 404, "message": "not found"}`)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewClient_RequiresTokenOrSource(t *testing.T) {
	_, err := NewClient()
	require.Error(t, err)

	var libErr *Error
	require.True(t, errors.As(err, &libErr))
	assert.Equal(t, ErrorTypeConfiguration, libErr.Type)
}

func TestNewClient_InvalidFetchLimits(t *testing.T) {
	_, err := NewClient(WithToken("secret"), WithFetchLimits(0, 4))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch limits")
}

func TestClient_GetDocument(t *testing.T) {
	var children int32
	srv := newSourceServer(t, &children)

	client, err := NewClient(
		WithToken("secret"),
		WithBaseURL(srv.URL),
		WithViewerRoute("/read"),
		WithQuietMode(),
	)
	require.NoError(t, err)

	doc, err := client.GetDocument(context.Background(), "https://team.example.site/Handbook-"+pageIDFlat)
	require.NoError(t, err)

	assert.Equal(t, pageIDFlat, doc.ID)
	require.NotNil(t, doc.Title)
	assert.Equal(t, "Handbook", *doc.Title)
	require.Len(t, doc.Blocks, 2)
	assert.Equal(t, domain.BlockHeading1, doc.Blocks[0].Type)
	require.NotEmpty(t, doc.Blocks[1].Inline)
	assert.Equal(t, "/read?id="+otherFlat, doc.Blocks[1].Inline[0].Href)

	// Served from cache the second time
	_, err = client.GetDocument(context.Background(), pageID)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&children))
}

func TestClient_GetDocument_CacheDisabled(t *testing.T) {
	var children int32
	srv := newSourceServer(t, &children)

	client, err := NewClient(WithToken("secret"), WithBaseURL(srv.URL), WithDocumentTTL(-1), WithQuietMode())
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = client.GetDocument(context.Background(), pageID)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&children))
}

func TestClient_GetDocument_InvalidReference(t *testing.T) {
	client, err := NewClient(WithToken("secret"), WithBaseURL("http://127.0.0.1:1"), WithQuietMode())
	require.NoError(t, err)

	_, err = client.GetDocument(context.Background(), "not a document")
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.True(t, coreerrors.IsInvalidReference(err))
}

func TestClient_ListContent_RequiresCollection(t *testing.T) {
	client, err := NewClient(WithToken("secret"), WithQuietMode())
	require.NoError(t, err)

	_, err = client.ListContent(context.Background(), "", WithStatus("Published"))
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestClient_GetFormSchema_NotFound(t *testing.T) {
	var children int32
	srv := newSourceServer(t, &children)

	client, err := NewClient(WithToken("secret"), WithBaseURL(srv.URL), WithQuietMode())
	require.NoError(t, err)

	_, err = client.GetFormSchema(context.Background(), otherFlat)
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestWrapError(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"invalid reference", &coreerrors.InvalidReferenceError{Reference: "x", Reason: "bad"}, IsValidationError},
		{"not found", &coreerrors.NotFoundError{Resource: "page", ID: "x"}, IsNotFoundError},
		{"too deep", &coreerrors.DepthExceededError{MaxDepth: 16}, IsTooDeepError},
		{"source", &coreerrors.SourceUnavailableError{API: "blocks", StatusCode: 502}, IsSourceError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(wrapError(tt.err)))
		})
	}

	assert.Nil(t, wrapError(nil))
	err := wrapError(errors.New("boom"))
	assert.True(t, strings.HasPrefix(err.Error(), "internal"))
}
