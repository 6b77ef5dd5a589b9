package blocktree

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stretchr/testify/mock"

	"blockpress-api/core/domain"
)

// treeSource serves children from an in-memory tree keyed by parent id
type treeSource struct {
	children map[string][]domain.Block
	pageSize int
	jitter   time.Duration

	mu       sync.Mutex
	calls    []string
	inFlight int32
	peak     int32
}

func newTreeSource() *treeSource {
	return &treeSource{children: make(map[string][]domain.Block)}
}

// add registers kids under parent and marks them as the parent's children
func (s *treeSource) add(parent string, kids ...domain.Block) {
	for i := range kids {
		kids[i].Children = nil
	}
	s.children[parent] = append(s.children[parent], kids...)
}

func (s *treeSource) ListChildren(ctx context.Context, blockID, cursor string, pageSize int) (*domain.ChildrenPage, error) {
	n := atomic.AddInt32(&s.inFlight, 1)
	defer atomic.AddInt32(&s.inFlight, -1)
	for {
		p := atomic.LoadInt32(&s.peak)
		if n <= p || atomic.CompareAndSwapInt32(&s.peak, p, n) {
			break
		}
	}

	s.mu.Lock()
	s.calls = append(s.calls, blockID+"@"+cursor)
	s.mu.Unlock()

	if s.jitter > 0 {
		select {
		case <-time.After(time.Duration(rand.Int63n(int64(s.jitter)))):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	all := s.children[blockID]
	size := s.pageSize
	if size <= 0 {
		size = len(all)
	}
	start := 0
	if cursor != "" {
		for i, b := range all {
			if b.ID == cursor {
				start = i
			}
		}
	}
	end := start + size
	if end >= len(all) {
		return &domain.ChildrenPage{Results: append([]domain.Block(nil), all[start:]...)}, nil
	}
	return &domain.ChildrenPage{
		Results:    append([]domain.Block(nil), all[start:end]...),
		HasMore:    true,
		NextCursor: all[end].ID,
	}, nil
}

func (s *treeSource) GetPage(ctx context.Context, id string) (*domain.PageMeta, error) {
	return &domain.PageMeta{ID: id}, nil
}

func (s *treeSource) GetCollection(ctx context.Context, id string) (*domain.CollectionMeta, error) {
	return &domain.CollectionMeta{ID: id}, nil
}

func (s *treeSource) QueryCollection(ctx context.Context, id string, q domain.CollectionQuery) (*domain.QueryPage, error) {
	return &domain.QueryPage{}, nil
}

// mockSource is a testify mock of interfaces.BlockSource
type mockSource struct {
	mock.Mock
}

func (m *mockSource) ListChildren(ctx context.Context, blockID, cursor string, pageSize int) (*domain.ChildrenPage, error) {
	args := m.Called(ctx, blockID, cursor, pageSize)
	page, _ := args.Get(0).(*domain.ChildrenPage)
	return page, args.Error(1)
}

func (m *mockSource) GetPage(ctx context.Context, id string) (*domain.PageMeta, error) {
	args := m.Called(ctx, id)
	page, _ := args.Get(0).(*domain.PageMeta)
	return page, args.Error(1)
}

func (m *mockSource) GetCollection(ctx context.Context, id string) (*domain.CollectionMeta, error) {
	args := m.Called(ctx, id)
	meta, _ := args.Get(0).(*domain.CollectionMeta)
	return meta, args.Error(1)
}

func (m *mockSource) QueryCollection(ctx context.Context, id string, q domain.CollectionQuery) (*domain.QueryPage, error) {
	args := m.Called(ctx, id, q)
	page, _ := args.Get(0).(*domain.QueryPage)
	return page, args.Error(1)
}
