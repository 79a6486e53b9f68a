package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/marketstore/internal/storefront/domain"
)

type listenerRecorder struct {
	mu      sync.Mutex
	seqs    []uint64
	results []*SearchResult
	errs    []error
}

func (l *listenerRecorder) listen(seq uint64, result *SearchResult, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seqs = append(l.seqs, seq)
	l.results = append(l.results, result)
	l.errs = append(l.errs, err)
}

func (l *listenerRecorder) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.seqs)
}

func TestQuerySessionDebouncesKeywordChanges(t *testing.T) {
	products := &fakeProductGateway{}
	svc := newCatalogService(products, nil)
	recorder := &listenerRecorder{}
	session := NewQuerySession(svc, 40*time.Millisecond, recorder.listen)
	defer session.Close()

	ctx := context.Background()
	session.SetKeyword(ctx, "c")
	session.SetKeyword(ctx, "cà")
	session.SetKeyword(ctx, "cà chua")

	require.Eventually(t, func() bool { return recorder.count() == 1 }, time.Second, 10*time.Millisecond)

	// 静默间隔内的连续变更合并成一轮解析，用的是最后一次的关键字
	products.mu.Lock()
	defer products.mu.Unlock()
	assert.Equal(t, 1, products.filterCalls)
	assert.Equal(t, "cà chua", products.lastFilter.Keyword)
	assert.Equal(t, 1, products.lastFilter.Page)
}

func TestQuerySessionKeywordChangeResetsPage(t *testing.T) {
	products := &fakeProductGateway{}
	svc := newCatalogService(products, nil)
	recorder := &listenerRecorder{}
	session := NewQuerySession(svc, 20*time.Millisecond, recorder.listen)
	defer session.Close()

	ctx := context.Background()
	session.SetPage(ctx, 5)
	require.Eventually(t, func() bool { return recorder.count() == 1 }, time.Second, 10*time.Millisecond)

	session.SetKeyword(ctx, "rau")
	require.Eventually(t, func() bool { return recorder.count() == 2 }, time.Second, 10*time.Millisecond)

	assert.Equal(t, domain.QueryState{Keyword: "rau", Page: 1}, session.State())
}

func TestQuerySessionCategoryChangeResolvesImmediately(t *testing.T) {
	products := &fakeProductGateway{}
	svc := newCatalogService(products, nil)
	recorder := &listenerRecorder{}
	session := NewQuerySession(svc, time.Hour, recorder.listen)
	defer session.Close()

	session.SetCategory(context.Background(), "c-veg")

	// 防抖只针对关键字，分类变更不等待
	require.Eventually(t, func() bool { return recorder.count() == 1 }, time.Second, 10*time.Millisecond)
	products.mu.Lock()
	defer products.mu.Unlock()
	assert.Equal(t, "c-veg", products.lastFilter.CategoryID)
}

func TestQuerySessionLastWriterWins(t *testing.T) {
	release := make(chan struct{})
	products := &fakeProductGateway{
		blockKeyword: "slow",
		release:      release,
		page: domain.ProductPage{
			Items:      []domain.ProductRecord{{ID: "p1"}},
			TotalCount: 1,
		},
	}
	svc := newCatalogService(products, nil)
	recorder := &listenerRecorder{}
	session := NewQuerySession(svc, 5*time.Millisecond, recorder.listen)
	defer session.Close()

	ctx := context.Background()

	// 第一轮：关键字 "slow"，网关挂起直到 release
	session.SetKeyword(ctx, "slow")
	require.Eventually(t, func() bool {
		products.mu.Lock()
		defer products.mu.Unlock()
		return products.filterCalls == 1
	}, time.Second, 5*time.Millisecond)

	// 第二轮：分类变更立即解析并先行完成
	session.SetCategory(ctx, "c-veg")
	require.Eventually(t, func() bool { return recorder.count() == 1 }, time.Second, 10*time.Millisecond)

	// 放行第一轮，其结果必须被丢弃
	close(release)
	time.Sleep(50 * time.Millisecond)

	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	require.Len(t, recorder.seqs, 1)
	assert.Equal(t, uint64(2), recorder.seqs[0])
}

func TestQuerySessionCloseDropsPendingResolve(t *testing.T) {
	release := make(chan struct{})
	products := &fakeProductGateway{blockKeyword: "slow", release: release}
	svc := newCatalogService(products, nil)
	recorder := &listenerRecorder{}
	session := NewQuerySession(svc, 5*time.Millisecond, recorder.listen)

	session.SetKeyword(context.Background(), "slow")
	require.Eventually(t, func() bool {
		products.mu.Lock()
		defer products.mu.Unlock()
		return products.filterCalls == 1
	}, time.Second, 5*time.Millisecond)

	session.Close()
	close(release)
	time.Sleep(50 * time.Millisecond)

	assert.Zero(t, recorder.count())
}

func TestQuerySessionClosedIgnoresChanges(t *testing.T) {
	products := &fakeProductGateway{}
	svc := newCatalogService(products, nil)
	recorder := &listenerRecorder{}
	session := NewQuerySession(svc, 5*time.Millisecond, recorder.listen)
	session.Close()

	session.SetKeyword(context.Background(), "rau")
	time.Sleep(30 * time.Millisecond)

	assert.Zero(t, recorder.count())
	products.mu.Lock()
	defer products.mu.Unlock()
	assert.Zero(t, products.filterCalls)
}

func TestNewSessionFromService(t *testing.T) {
	products := &fakeProductGateway{}
	svc := newCatalogService(products, nil)
	recorder := &listenerRecorder{}
	session := svc.NewSession(recorder.listen)
	defer session.Close()

	session.SetCategory(context.Background(), "c-veg")

	require.Eventually(t, func() bool { return recorder.count() == 1 }, time.Second, 10*time.Millisecond)
}

func TestQuerySessionRetryRestartsChain(t *testing.T) {
	products := &fakeProductGateway{}
	svc := newCatalogService(products, nil)
	recorder := &listenerRecorder{}
	session := NewQuerySession(svc, time.Hour, recorder.listen)
	defer session.Close()

	session.Retry(context.Background())

	require.Eventually(t, func() bool { return recorder.count() == 1 }, time.Second, 10*time.Millisecond)
	products.mu.Lock()
	defer products.mu.Unlock()
	assert.Equal(t, 1, products.listCalls)
}
