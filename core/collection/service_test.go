package collection

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blockpress-api/core/config"
	"blockpress-api/core/domain"
	coreerrors "blockpress-api/core/errors"
	"blockpress-api/core/interfaces"
	"blockpress-api/core/projector"
)

const collectionID = "0123456789abcdef0123456789abcdef"

// fakeSource serves a fixed schema and records collection queries
type fakeSource struct {
	meta    *domain.CollectionMeta
	pages   map[string]*domain.QueryPage
	err     error
	mu      sync.Mutex
	queries []domain.CollectionQuery
}

func (f *fakeSource) ListChildren(ctx context.Context, blockID, cursor string, pageSize int) (*domain.ChildrenPage, error) {
	return &domain.ChildrenPage{}, nil
}

func (f *fakeSource) GetPage(ctx context.Context, id string) (*domain.PageMeta, error) {
	return &domain.PageMeta{ID: id}, nil
}

func (f *fakeSource) GetCollection(ctx context.Context, id string) (*domain.CollectionMeta, error) {
	return f.meta, nil
}

func (f *fakeSource) QueryCollection(ctx context.Context, id string, q domain.CollectionQuery) (*domain.QueryPage, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if page, ok := f.pages[q.Cursor]; ok {
		return page, nil
	}
	return &domain.QueryPage{}, nil
}

// fakeEnricher returns canned previews and colors
type fakeEnricher struct {
	thumbnails map[string]string
	colors     map[string]*domain.RGBColor
}

func (f *fakeEnricher) ExtractMetadata(ctx context.Context, url string) (*interfaces.MetadataResult, error) {
	if thumb, ok := f.thumbnails[url]; ok {
		return &interfaces.MetadataResult{Thumbnail: thumb}, nil
	}
	return nil, errors.New("preview failed")
}

func (f *fakeEnricher) ExtractMetadataBatch(ctx context.Context, urls []string) map[string]*interfaces.MetadataResult {
	return nil
}

func (f *fakeEnricher) ExtractColor(ctx context.Context, imageURL string) (*domain.RGBColor, error) {
	if c, ok := f.colors[imageURL]; ok {
		return c, nil
	}
	return nil, errors.New("decode failed")
}

func (f *fakeEnricher) ExtractColorBatch(ctx context.Context, imageURLs []string) map[string]*domain.RGBColor {
	return nil
}

// recordingLogger keeps warnings
type recordingLogger struct {
	interfaces.NopLogger
	mu    sync.Mutex
	warns []map[string]interface{}
}

func (l *recordingLogger) Warn(msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fields)
}

func title(s string) domain.PropertyValue {
	return domain.PropertyValue{Type: projector.TypeTitle, Title: []domain.TextSpan{{Text: s}}}
}

func schema() *domain.CollectionMeta {
	return &domain.CollectionMeta{
		ID:    "01234567-89ab-cdef-0123-456789abcdef",
		Title: "Catalog",
		Cover: "https://cdn.example.com/form.png",
		Properties: map[string]domain.PropertySchema{
			"Name":     {Name: "Name", Type: projector.TypeTitle},
			"Status":   {Name: "Status", Type: projector.TypeStatus},
			"Category": {Name: "Category", Type: projector.TypeSelect},
			"When":     {Name: "When", Type: projector.TypeDate},
		},
	}
}

func newService(src *fakeSource, enricher interfaces.ContentEnrichmentService, logger interfaces.Logger, opts Options) *Service {
	return NewService(interfaces.Dependencies{Source: src, Logger: logger}, nil, enricher, opts)
}

func TestListContent(t *testing.T) {
	src := &fakeSource{meta: schema(), pages: map[string]*domain.QueryPage{
		"": {
			Results: []domain.Row{
				{ID: "11111111111111111111111111111111", Properties: map[string]domain.PropertyValue{"Name": title("First")}},
				{ID: "22222222222222222222222222222222", Properties: map[string]domain.PropertyValue{"Name": title("Second")}},
			},
			HasMore:    true,
			NextCursor: "next-1",
		},
	}}
	svc := newService(src, nil, nil, Options{ContentCollectionID: collectionID})

	listing, err := svc.ListContent(context.Background(), ListQuery{
		Statuses: []string{"Published", "Featured"},
		Category: "Guides",
	})
	require.NoError(t, err)

	require.Len(t, listing.Items, 2)
	assert.Equal(t, "First", listing.Items[0].Title)
	assert.True(t, listing.HasMore)
	require.NotNil(t, listing.NextCursor)
	assert.Equal(t, "next-1", *listing.NextCursor)

	require.Len(t, src.queries, 1)
	q := src.queries[0]
	assert.Equal(t, DefaultPageSize, q.PageSize)
	assert.Equal(t, domain.Filter{"and": []interface{}{
		domain.Filter{"or": []interface{}{
			domain.Filter{"property": "Status", "status": map[string]interface{}{"equals": "Published"}},
			domain.Filter{"property": "Status", "status": map[string]interface{}{"equals": "Featured"}},
		}},
		domain.Filter{"property": "Category", "select": map[string]interface{}{"equals": "Guides"}},
	}}, q.Filter)
}

func TestListContent_Validation(t *testing.T) {
	svc := newService(&fakeSource{meta: schema()}, nil, nil, Options{})

	_, err := svc.ListContent(context.Background(), ListQuery{})
	assert.True(t, coreerrors.IsValidation(err))

	_, err = svc.ListContent(context.Background(), ListQuery{CollectionID: collectionID, PageSize: 500})
	assert.True(t, coreerrors.IsValidation(err))
}

func TestListContent_SourceError(t *testing.T) {
	src := &fakeSource{meta: schema(), err: &coreerrors.SourceUnavailableError{API: "databases", StatusCode: 503, Message: "down"}}
	svc := newService(src, nil, nil, Options{})

	listing, err := svc.ListContent(context.Background(), ListQuery{CollectionID: collectionID})

	assert.Nil(t, listing)
	assert.True(t, coreerrors.IsSourceUnavailable(err))
}

func TestListEvents_EnrichmentDegrades(t *testing.T) {
	row := func(id, name, link, cover string) domain.Row {
		props := map[string]domain.PropertyValue{"Name": title(name)}
		if link != "" {
			l := link
			props["Link"] = domain.PropertyValue{Type: projector.TypeURL, URL: &l}
		}
		return domain.Row{ID: id, Cover: cover, Properties: props}
	}
	src := &fakeSource{meta: schema(), pages: map[string]*domain.QueryPage{
		"": {Results: []domain.Row{
			row("11111111111111111111111111111111", "Has cover", "", "https://cdn.example.com/a.png"),
			row("22222222222222222222222222222222", "Link only", "https://events.example.com/b", ""),
			row("33333333333333333333333333333333", "Broken link", "https://events.example.com/broken", ""),
			row("44444444444444444444444444444444", "Bad cover", "", "https://cdn.example.com/bad.png"),
		}},
	}}
	enricher := &fakeEnricher{
		thumbnails: map[string]string{"https://events.example.com/b": "https://cdn.example.com/b.png"},
		colors: map[string]*domain.RGBColor{
			"https://cdn.example.com/a.png": {R: 1, G: 2, B: 3},
			"https://cdn.example.com/b.png": {R: 4, G: 5, B: 6},
		},
	}
	logger := &recordingLogger{}
	svc := newService(src, enricher, logger, Options{EventsCollectionID: collectionID, EnrichListings: true})

	listing, err := svc.ListEvents(context.Background(), ListQuery{})
	require.NoError(t, err)
	require.Len(t, listing.Items, 4)

	assert.Equal(t, &domain.RGBColor{R: 1, G: 2, B: 3}, listing.Items[0].CoverColor)
	assert.Equal(t, "https://cdn.example.com/b.png", listing.Items[1].Cover)
	assert.Equal(t, &domain.RGBColor{R: 4, G: 5, B: 6}, listing.Items[1].CoverColor)
	assert.Empty(t, listing.Items[2].Cover)
	assert.Nil(t, listing.Items[2].CoverColor)
	assert.Nil(t, listing.Items[3].CoverColor)
	assert.Len(t, logger.warns, 2)
	assert.Nil(t, listing.NextCursor)

	require.Len(t, src.queries, 1)
	assert.Equal(t, []domain.Sort{{Property: "When", Direction: "ascending"}}, src.queries[0].Sorts)
	assert.Nil(t, src.queries[0].Filter)
}

func TestListEvents_EnrichmentDisabled(t *testing.T) {
	src := &fakeSource{meta: schema(), pages: map[string]*domain.QueryPage{
		"": {Results: []domain.Row{{ID: "11111111111111111111111111111111", Cover: "https://cdn.example.com/a.png"}}},
	}}
	svc := newService(src, &fakeEnricher{}, nil, Options{EventsCollectionID: collectionID})

	listing, err := svc.ListEvents(context.Background(), ListQuery{})
	require.NoError(t, err)
	assert.Nil(t, listing.Items[0].CoverColor)
}

func TestListEvents_CoverColorsOnly(t *testing.T) {
	link := "https://events.example.com/b"
	src := &fakeSource{meta: schema(), pages: map[string]*domain.QueryPage{
		"": {Results: []domain.Row{
			{ID: "11111111111111111111111111111111", Cover: "https://cdn.example.com/a.png"},
			{ID: "22222222222222222222222222222222", Properties: map[string]domain.PropertyValue{
				"Link": {Type: projector.TypeURL, URL: &link},
			}},
		}},
	}}
	enricher := &fakeEnricher{
		thumbnails: map[string]string{link: "https://cdn.example.com/b.png"},
		colors:     map[string]*domain.RGBColor{"https://cdn.example.com/a.png": {R: 1, G: 2, B: 3}},
	}
	steps := config.NewEnrichmentConfig(config.WithoutLinkPreviews())
	svc := newService(src, enricher, nil, Options{EventsCollectionID: collectionID, EnrichListings: true, Enrichment: &steps})

	listing, err := svc.ListEvents(context.Background(), ListQuery{})
	require.NoError(t, err)
	require.Len(t, listing.Items, 2)
	assert.Equal(t, &domain.RGBColor{R: 1, G: 2, B: 3}, listing.Items[0].CoverColor)
	assert.Empty(t, listing.Items[1].Cover)
}

func TestGetFormSchema(t *testing.T) {
	order := func(n float64) domain.PropertyValue {
		return domain.PropertyValue{Type: projector.TypeNumber, Number: &n}
	}
	src := &fakeSource{meta: schema(), pages: map[string]*domain.QueryPage{
		"": {
			Results: []domain.Row{
				{ID: "11111111111111111111111111111111", Properties: map[string]domain.PropertyValue{"Name": title("Email"), "Order": order(2)}},
				{ID: "22222222222222222222222222222222", Properties: map[string]domain.PropertyValue{"Name": title("Full name"), "Order": order(1)}},
			},
			HasMore:    true,
			NextCursor: "p2",
		},
		"p2": {
			Results: []domain.Row{
				{ID: "33333333333333333333333333333333", Properties: map[string]domain.PropertyValue{"Name": title("Notes"), "Order": order(3)}},
			},
		},
	}}
	svc := newService(src, nil, nil, Options{})

	form, err := svc.GetFormSchema(context.Background(), collectionID)
	require.NoError(t, err)

	require.Len(t, form.Fields, 3)
	assert.Equal(t, "Full name", form.Fields[0].Label)
	assert.Equal(t, "Email", form.Fields[1].Label)
	assert.Equal(t, "Notes", form.Fields[2].Label)
	require.NotNil(t, form.Cover)
	assert.Equal(t, "https://cdn.example.com/form.png", *form.Cover)
	assert.Equal(t, "Catalog", form.Title)
	assert.Len(t, src.queries, 2)
}

func TestGetFormSchema_RequiresID(t *testing.T) {
	_, err := newService(&fakeSource{}, nil, nil, Options{}).GetFormSchema(context.Background(), " ")
	assert.True(t, coreerrors.IsValidation(err))
}
