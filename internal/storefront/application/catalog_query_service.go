package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wyfcoding/marketstore/internal/storefront/domain"
	"github.com/wyfcoding/marketstore/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// SearchResult 一次搜索解析的结果
type SearchResult struct {
	Items      []domain.DisplayProduct `json:"items"`
	TotalCount int64                   `json:"total_count"`
	// Page/PageSize 归一化后的实际分页参数
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	// Tier 本次命中的能力层级
	Tier domain.SearchTier `json:"tier"`
	// Fallbacks 本次解析经历的降级次数
	Fallbacks int `json:"fallbacks"`
}

// InitialLoadResult 初始加载结果：默认在售商品页加上分类/市场参考列表
type InitialLoadResult struct {
	Products   []domain.DisplayProduct `json:"products"`
	TotalCount int64                   `json:"total_count"`
	Categories []domain.CategoryRecord `json:"categories"`
	Markets    []domain.MarketRecord   `json:"markets"`
}

// CatalogQueryService 目录查询服务。
// 持有搜索解析链、批量关联解析器与合成逻辑，对外输出聚合商品视图。
type CatalogQueryService struct {
	products   domain.ProductGateway
	categories domain.CategoryGateway
	markets    domain.MarketGateway
	resolver   *BatchResolver
	publisher  domain.EventPublisher
	metrics    *metrics.Metrics
	logger     *slog.Logger

	defaultPageSize int
	debounce        time.Duration
}

// NewCatalogQueryService 创建目录查询服务实例
func NewCatalogQueryService(
	products domain.ProductGateway,
	categories domain.CategoryGateway,
	markets domain.MarketGateway,
	resolver *BatchResolver,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
	logger *slog.Logger,
	defaultPageSize int,
	debounceMs int,
) *CatalogQueryService {
	if defaultPageSize <= 0 {
		defaultPageSize = 12
	}
	if debounceMs <= 0 {
		debounceMs = 300
	}
	return &CatalogQueryService{
		products:        products,
		categories:      categories,
		markets:         markets,
		resolver:        resolver,
		publisher:       publisher,
		metrics:         m,
		logger:          logger,
		defaultPageSize: defaultPageSize,
		debounce:        time.Duration(debounceMs) * time.Millisecond,
	}
}

// NewSession 基于本服务创建交互式查询会话，使用配置的关键字防抖间隔
func (s *CatalogQueryService) NewSession(listener ResultListener) *QuerySession {
	return NewQuerySession(s, s.debounce, listener)
}

// plan 按查询状态给出本轮解析要尝试的层级序列。
// 设了任何筛选条件从 Tier 1 开始逐级回退；否则直接走普通列表。
func plan(q domain.QueryState) []domain.SearchTier {
	if !q.HasFilter() {
		return []domain.SearchTier{domain.TierListing}
	}
	return []domain.SearchTier{domain.TierFilter, domain.TierKeyword, domain.TierListing}
}

// Search 执行一轮搜索解析。
// 每个层级在一轮内至多尝试一次，失败立即转入下一层级；任一层级成功即终止。
// 所有层级都失败时对外只浮出 ErrSearchExhausted，结果列表清空。
func (s *CatalogQueryService) Search(ctx context.Context, q domain.QueryState) (*SearchResult, error) {
	q = s.normalize(q)

	var page *domain.ProductPage
	var served domain.SearchTier
	fallbacks := 0

	for i, tier := range plan(q) {
		if i > 0 {
			fallbacks++
			if s.metrics != nil {
				s.metrics.SearchFallbacksTotal.Inc()
			}
		}

		result, err := s.attempt(ctx, tier, q)
		if err != nil {
			s.logger.WarnContext(ctx, "search tier failed",
				"tier", tier.String(),
				"keyword", q.Keyword,
				"error", err,
			)
			continue
		}
		page = result
		served = tier
		break
	}

	if page == nil {
		if s.metrics != nil {
			s.metrics.SearchExhaustedTotal.Inc()
		}
		return nil, fmt.Errorf("resolve query %q: %w", q.Keyword, domain.ErrSearchExhausted)
	}

	related := s.resolver.ResolveRelated(ctx, page.Items)
	result := &SearchResult{
		Items:      ComposeAll(page.Items, related),
		TotalCount: page.TotalCount,
		Page:       q.Page,
		PageSize:   q.PageSize,
		Tier:       served,
		Fallbacks:  fallbacks,
	}

	if s.metrics != nil {
		s.metrics.SearchesTotal.Inc()
	}
	s.publishExecuted(ctx, q, result)

	return result, nil
}

// attempt 尝试单个层级，一次请求，层级内不重试
func (s *CatalogQueryService) attempt(ctx context.Context, tier domain.SearchTier, q domain.QueryState) (*domain.ProductPage, error) {
	switch tier {
	case domain.TierFilter:
		return s.products.Filter(ctx, q.Filter())
	case domain.TierKeyword:
		// 回退层级只保留关键字，其余条件忽略
		return s.products.Search(ctx, q.Keyword, q.Page, q.PageSize)
	default:
		return s.products.FetchPage(ctx, "", q.Page, q.PageSize)
	}
}

// InitialLoad 初始加载：绕过搜索链，默认在售商品页与分类/市场参考列表并发获取。
// 参考列表失败降级为空，商品页失败原样上抛。
func (s *CatalogQueryService) InitialLoad(ctx context.Context) (*InitialLoadResult, error) {
	out := &InitialLoadResult{}

	g, gctx := errgroup.WithContext(ctx)

	var page *domain.ProductPage
	g.Go(func() error {
		var err error
		page, err = s.products.FetchPage(gctx, domain.ProductStatusActive, 1, s.defaultPageSize)
		return err
	})

	g.Go(func() error {
		categories, err := s.categories.ListAll(gctx)
		if err != nil {
			s.logger.WarnContext(ctx, "category reference list degraded to empty", "error", err)
			return nil
		}
		out.Categories = categories
		return nil
	})

	g.Go(func() error {
		markets, err := s.markets.ListAll(gctx)
		if err != nil {
			s.logger.WarnContext(ctx, "market reference list degraded to empty", "error", err)
			return nil
		}
		out.Markets = markets
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("initial load: %w", err)
	}

	related := s.resolver.ResolveRelated(ctx, page.Items)
	out.Products = ComposeAll(page.Items, related)
	out.TotalCount = page.TotalCount

	return out, nil
}

// GetProduct 获取单个商品的聚合视图
func (s *CatalogQueryService) GetProduct(ctx context.Context, id string) (*domain.DisplayProduct, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	related := s.resolver.ResolveRelated(ctx, []domain.ProductRecord{*product})
	dp := Compose(*product, related)
	return &dp, nil
}

// ListCategories 获取分类参考列表
func (s *CatalogQueryService) ListCategories(ctx context.Context) ([]domain.CategoryRecord, error) {
	return s.categories.ListAll(ctx)
}

// ListMarkets 获取市场参考列表
func (s *CatalogQueryService) ListMarkets(ctx context.Context) ([]domain.MarketRecord, error) {
	return s.markets.ListAll(ctx)
}

func (s *CatalogQueryService) normalize(q domain.QueryState) domain.QueryState {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = s.defaultPageSize
	}
	return q
}

// publishExecuted 发布搜索分析事件，失败只记日志不影响结果
func (s *CatalogQueryService) publishExecuted(ctx context.Context, q domain.QueryState, result *SearchResult) {
	if s.publisher == nil {
		return
	}
	event := domain.SearchExecutedEvent{
		Keyword:     q.Keyword,
		CategoryID:  q.CategoryID,
		MarketID:    q.MarketID,
		Tier:        result.Tier.String(),
		Fallbacks:   result.Fallbacks,
		ResultCount: len(result.Items),
		TotalCount:  result.TotalCount,
		ExecutedAt:  time.Now(),
	}
	if err := s.publisher.PublishSearchExecuted(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish search event", "error", err)
	}
}
