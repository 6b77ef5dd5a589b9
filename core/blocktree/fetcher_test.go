package blocktree

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blockpress-api/core/domain"
	coreerrors "blockpress-api/core/errors"
)

const (
	docRef = "https://team.example.site/Handbook-3f1a2b3c4d5e6f708192a3b4c5d6e7f8"
	docID  = "3f1a2b3c-4d5e-6f70-8192-a3b4c5d6e7f8"
)

func text(s string) []domain.TextSpan {
	return []domain.TextSpan{{Text: s}}
}

func block(id string, content domain.BlockContent, hasChildren bool) domain.Block {
	b := domain.NewBlock(id, content)
	b.HasChildren = hasChildren
	return b
}

func TestFetchDocumentTree_Scenario(t *testing.T) {
	src := newTreeSource()
	src.add(docID,
		block("child1", domain.Paragraph{RichText: text("intro")}, false),
		block("callout", domain.Callout{RichText: text("note")}, true),
		block("child3", domain.Paragraph{RichText: text("list follows")}, true),
	)
	src.add("callout",
		block("c-p1", domain.Paragraph{RichText: text("one")}, false),
		block("c-p2", domain.Paragraph{RichText: text("two")}, false),
		block("c-img", domain.Image{URL: "https://example.com/a.png"}, false),
	)
	src.add("child3",
		block("bullet1", domain.ListItem{RichText: text("a")}, false),
		block("bullet2", domain.ListItem{RichText: text("b")}, false),
	)

	f := NewFetcher(src, nil, Options{})
	tree, err := f.FetchDocumentTree(context.Background(), docRef)
	require.NoError(t, err)
	require.Len(t, tree, 3)
	require.Len(t, tree[1].Children, 3)
	require.Len(t, tree[2].Children, 2)

	flat := Flatten(tree)
	require.Len(t, flat, 5)

	var order []string
	for _, b := range flat {
		order = append(order, b.ID)
	}
	assert.Equal(t, []string{"child1", "callout", "child3", "bullet1", "bullet2"}, order)
	assert.Equal(t, tree[1].Children, flat[1].Children)
	assert.Empty(t, flat[2].Children)
}

func TestFetchDocumentTree_FollowsCursor(t *testing.T) {
	src := new(mockSource)
	src.On("ListChildren", mock.Anything, docID, "", 2).Return(&domain.ChildrenPage{
		Results:    []domain.Block{block("a", domain.Paragraph{}, false), block("b", domain.Paragraph{}, false)},
		HasMore:    true,
		NextCursor: "cur-2",
	}, nil).Once()
	src.On("ListChildren", mock.Anything, docID, "cur-2", 2).Return(&domain.ChildrenPage{
		Results: []domain.Block{block("c", domain.Paragraph{}, false)},
	}, nil).Once()

	f := NewFetcher(src, nil, Options{PageSize: 2})
	tree, err := f.FetchDocumentTree(context.Background(), docID)

	require.NoError(t, err)
	require.Len(t, tree, 3)
	assert.Equal(t, "c", tree[2].ID)
	src.AssertExpectations(t)
}

func TestFetchDocumentTree_HasMoreWithoutCursorStops(t *testing.T) {
	src := new(mockSource)
	src.On("ListChildren", mock.Anything, docID, "", DefaultPageSize).Return(&domain.ChildrenPage{
		Results: []domain.Block{block("a", domain.Paragraph{}, false)},
		HasMore: true,
	}, nil).Once()

	tree, err := NewFetcher(src, nil, Options{}).FetchDocumentTree(context.Background(), docID)

	require.NoError(t, err)
	assert.Len(t, tree, 1)
	src.AssertExpectations(t)
}

func TestFetchDocumentTree_SkipsChildPagesAndDatabases(t *testing.T) {
	src := new(mockSource)
	src.On("ListChildren", mock.Anything, docID, "", DefaultPageSize).Return(&domain.ChildrenPage{
		Results: []domain.Block{
			block("page", domain.ChildPage{Title: "Sub"}, true),
			block("db", domain.ChildDatabase{Title: "Table"}, true),
		},
	}, nil).Once()

	tree, err := NewFetcher(src, nil, Options{}).FetchDocumentTree(context.Background(), docID)

	require.NoError(t, err)
	require.Len(t, tree, 2)
	for _, b := range tree {
		assert.True(t, b.HasChildren)
		assert.Empty(t, b.Children)
	}
	src.AssertExpectations(t)
}

func TestFetchDocumentTree_DepthExceeded(t *testing.T) {
	src := newTreeSource()
	src.add(docID, block("a", domain.Toggle{}, true))
	src.add("a", block("b", domain.Toggle{}, true))
	src.add("b", block("c", domain.Paragraph{}, false))

	_, err := NewFetcher(src, nil, Options{MaxDepth: 2}).FetchDocumentTree(context.Background(), docID)

	require.Error(t, err)
	assert.True(t, coreerrors.IsDepthExceeded(err))

	var depthErr *coreerrors.DepthExceededError
	require.True(t, errors.As(err, &depthErr))
	assert.Equal(t, "b", depthErr.BlockID)
}

func TestFetchDocumentTree_PropagatesSourceErrors(t *testing.T) {
	src := new(mockSource)
	src.On("ListChildren", mock.Anything, docID, "", DefaultPageSize).Return(&domain.ChildrenPage{
		Results: []domain.Block{block("a", domain.Toggle{}, true)},
	}, nil)
	src.On("ListChildren", mock.Anything, "a", "", DefaultPageSize).Return(nil,
		&coreerrors.SourceUnavailableError{API: "blocks", StatusCode: 502, Message: "bad gateway"})

	tree, err := NewFetcher(src, nil, Options{}).FetchDocumentTree(context.Background(), docID)

	assert.Nil(t, tree)
	assert.True(t, coreerrors.IsSourceUnavailable(err))
}

func TestFetchDocumentTree_InvalidReference(t *testing.T) {
	src := new(mockSource)

	_, err := NewFetcher(src, nil, Options{}).FetchDocumentTree(context.Background(), "not-a-document")

	assert.True(t, coreerrors.IsInvalidReference(err))
	src.AssertNotCalled(t, "ListChildren")
}

func TestFetchDocumentTree_CancelledContext(t *testing.T) {
	src := newTreeSource()
	src.add(docID, block("a", domain.Paragraph{}, false))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFetcher(src, nil, Options{}).FetchDocumentTree(ctx, docID)
	assert.ErrorIs(t, err, context.Canceled)
}

// buildWideTree creates fanout^depth nested toggles with paragraphs at the leaves
func buildWideTree(src *treeSource, parent string, fanout, depth int) {
	for i := 0; i < fanout; i++ {
		id := fmt.Sprintf("%s/%d", parent, i)
		if depth == 0 {
			src.add(parent, block(id, domain.Paragraph{RichText: text(id)}, false))
			continue
		}
		src.add(parent, block(id, domain.Paragraph{RichText: text(id)}, true))
		buildWideTree(src, id, fanout, depth-1)
	}
}

func TestFetchDocumentTree_ParallelPreservesOrder(t *testing.T) {
	src := newTreeSource()
	buildWideTree(src, docID, 4, 2)
	src.pageSize = 3

	sequential, err := NewFetcher(src, nil, Options{Concurrency: 1}).FetchDocumentTree(context.Background(), docID)
	require.NoError(t, err)
	assert.Equal(t, int32(1), src.peak)

	src.jitter = 3 * time.Millisecond
	src.peak = 0
	parallel, err := NewFetcher(src, nil, Options{Concurrency: 4}).FetchDocumentTree(context.Background(), docID)
	require.NoError(t, err)

	assert.Equal(t, sequential, parallel)
	assert.LessOrEqual(t, src.peak, int32(4))
}
