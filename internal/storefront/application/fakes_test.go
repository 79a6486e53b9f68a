package application

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/wyfcoding/marketstore/internal/storefront/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeProductGateway struct {
	mu sync.Mutex

	page    domain.ProductPage
	byID    map[string]domain.ProductRecord
	byIDErr map[string]error

	filterErr error
	searchErr error
	listErr   error

	filterCalls int
	searchCalls int
	listCalls   int
	getCalls    []string

	lastFilter   domain.ProductFilter
	lastKeyword  string
	lastStatus   domain.ProductStatus
	lastPage     int
	lastPageSize int

	// Filter 首次命中这个关键字时阻塞，直到 release 被关闭
	blockKeyword string
	release      chan struct{}
	blocked      bool
}

func (f *fakeProductGateway) FetchByIDs(ctx context.Context, ids []string) ([]domain.ProductRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.ProductRecord, 0, len(ids))
	for _, id := range ids {
		if p, ok := f.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductGateway) GetByID(ctx context.Context, id string) (*domain.ProductRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls = append(f.getCalls, id)
	if err, ok := f.byIDErr[id]; ok {
		return nil, err
	}
	p, ok := f.byID[id]
	if !ok {
		return nil, &domain.UpstreamError{Endpoint: "/products/" + id, StatusCode: 404}
	}
	return &p, nil
}

func (f *fakeProductGateway) FetchPage(ctx context.Context, status domain.ProductStatus, page, pageSize int) (*domain.ProductPage, error) {
	f.mu.Lock()
	f.listCalls++
	f.lastStatus = status
	f.lastPage = page
	f.lastPageSize = pageSize
	err := f.listErr
	result := f.page
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (f *fakeProductGateway) Search(ctx context.Context, keyword string, page, pageSize int) (*domain.ProductPage, error) {
	f.mu.Lock()
	f.searchCalls++
	f.lastKeyword = keyword
	f.lastPage = page
	f.lastPageSize = pageSize
	err := f.searchErr
	result := f.page
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (f *fakeProductGateway) Filter(ctx context.Context, filter domain.ProductFilter) (*domain.ProductPage, error) {
	f.mu.Lock()
	f.filterCalls++
	f.lastFilter = filter
	err := f.filterErr
	result := f.page
	block := f.blockKeyword != "" && filter.Keyword == f.blockKeyword && !f.blocked
	if block {
		f.blocked = true
	}
	release := f.release
	f.mu.Unlock()
	if block {
		<-release
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

type fakeStoreGateway struct {
	mu     sync.Mutex
	stores []domain.StoreRecord
	err    error
	gotIDs [][]string
}

func (f *fakeStoreGateway) FetchByIDs(ctx context.Context, ids []string) ([]domain.StoreRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotIDs = append(f.gotIDs, ids)
	if f.err != nil {
		return nil, f.err
	}
	return f.stores, nil
}

type fakeCategoryGateway struct {
	mu         sync.Mutex
	categories []domain.CategoryRecord
	err        error
	listErr    error
	gotIDs     [][]string
	listCalls  int
}

func (f *fakeCategoryGateway) FetchByIDs(ctx context.Context, ids []string) ([]domain.CategoryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotIDs = append(f.gotIDs, ids)
	if f.err != nil {
		return nil, f.err
	}
	return f.categories, nil
}

func (f *fakeCategoryGateway) ListAll(ctx context.Context) ([]domain.CategoryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.categories, nil
}

type fakeSellerGateway struct {
	mu      sync.Mutex
	sellers []domain.SellerRecord
	err     error
	gotIDs  [][]string
}

func (f *fakeSellerGateway) FetchByIDs(ctx context.Context, ids []string) ([]domain.SellerRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotIDs = append(f.gotIDs, ids)
	if f.err != nil {
		return nil, f.err
	}
	return f.sellers, nil
}

type fakeMarketGateway struct {
	markets []domain.MarketRecord
	err     error
}

func (f *fakeMarketGateway) ListAll(ctx context.Context) ([]domain.MarketRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.markets, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []domain.SearchExecutedEvent
	err    error
}

func (f *fakePublisher) PublishSearchExecuted(ctx context.Context, event domain.SearchExecutedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*domain.Session
	err      error
}

func (f *fakeSessionRepo) Get(ctx context.Context, token string) (*domain.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions[token], nil
}

func (f *fakeSessionRepo) Save(ctx context.Context, session *domain.Session) error { return nil }

func (f *fakeSessionRepo) Delete(ctx context.Context, token string) error { return nil }

type fakeRecommendationGateway struct {
	mu      sync.Mutex
	entries []domain.RecommendationEntry
	err     error
	calls   int
}

func (f *fakeRecommendationGateway) Fetch(ctx context.Context, token string, count int) ([]domain.RecommendationEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

func newEmptyResolver() *BatchResolver {
	return NewBatchResolver(&fakeStoreGateway{}, &fakeCategoryGateway{}, &fakeSellerGateway{}, discardLogger())
}
