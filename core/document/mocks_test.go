package document

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"blockpress-api/core/domain"
	"blockpress-api/core/interfaces"
)

// mockSource is a BlockSource with overridable behavior
type mockSource struct {
	children map[string][]domain.Block
	page     *domain.PageMeta
	pageErr  error
	listErr  error

	listCalls int32
	pageCalls int32
}

func (m *mockSource) ListChildren(ctx context.Context, blockID, cursor string, pageSize int) (*domain.ChildrenPage, error) {
	atomic.AddInt32(&m.listCalls, 1)
	if m.listErr != nil {
		return nil, m.listErr
	}
	return &domain.ChildrenPage{Results: append([]domain.Block(nil), m.children[blockID]...)}, nil
}

func (m *mockSource) GetPage(ctx context.Context, id string) (*domain.PageMeta, error) {
	atomic.AddInt32(&m.pageCalls, 1)
	if m.pageErr != nil {
		return nil, m.pageErr
	}
	return m.page, nil
}

func (m *mockSource) GetCollection(ctx context.Context, id string) (*domain.CollectionMeta, error) {
	return &domain.CollectionMeta{ID: id}, nil
}

func (m *mockSource) QueryCollection(ctx context.Context, id string, q domain.CollectionQuery) (*domain.QueryPage, error) {
	return &domain.QueryPage{}, nil
}

// mockCache is an in-memory Cache
type mockCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMockCache() *mockCache {
	return &mockCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, interfaces.ErrCacheMiss
	}
	return v, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
