package application

import (
	"context"
	"log/slog"

	"github.com/wyfcoding/marketstore/internal/storefront/domain"
	"golang.org/x/sync/errgroup"
)

// BatchResolver 批量关联解析器。
// 从一页商品中收集去重后的外键集合，通过实体网关做有界并发的批量查找，
// 构建 id→实体 查找表。解析永不报错：子查询失败降级为对应空表。
type BatchResolver struct {
	stores     domain.StoreGateway
	categories domain.CategoryGateway
	sellers    domain.SellerGateway
	logger     *slog.Logger
}

// NewBatchResolver 创建批量关联解析器实例
func NewBatchResolver(
	stores domain.StoreGateway,
	categories domain.CategoryGateway,
	sellers domain.SellerGateway,
	logger *slog.Logger,
) *BatchResolver {
	return &BatchResolver{
		stores:     stores,
		categories: categories,
		sellers:    sellers,
		logger:     logger,
	}
}

// ResolveRelated 解析一组商品的店铺/分类/卖家关联。
// 店铺与分类并发获取；卖家是经由店铺的二阶关联，需等店铺返回后再取。
func (r *BatchResolver) ResolveRelated(ctx context.Context, products []domain.ProductRecord) domain.RelatedEntities {
	related := domain.RelatedEntities{
		StoresByID:     make(map[string]domain.StoreRecord),
		CategoriesByID: make(map[string]domain.CategoryRecord),
		SellersByID:    make(map[string]domain.SellerRecord),
	}

	storeIDs := distinct(products, func(p domain.ProductRecord) string { return p.StoreID })
	categoryIDs := distinct(products, func(p domain.ProductRecord) string { return p.CategoryID })

	g, gctx := errgroup.WithContext(ctx)

	var stores []domain.StoreRecord
	g.Go(func() error {
		var err error
		stores, err = r.stores.FetchByIDs(gctx, storeIDs)
		if err != nil {
			r.logger.WarnContext(ctx, "store lookup degraded to empty", "count", len(storeIDs), "error", err)
			stores = nil
		}
		return nil
	})

	var categories []domain.CategoryRecord
	g.Go(func() error {
		var err error
		categories, err = r.categories.FetchByIDs(gctx, categoryIDs)
		if err != nil {
			r.logger.WarnContext(ctx, "category lookup degraded to empty", "count", len(categoryIDs), "error", err)
			categories = nil
		}
		return nil
	})

	// 子查询各自吞掉错误，Wait 不会失败
	_ = g.Wait()

	for _, s := range stores {
		related.StoresByID[s.ID] = s
	}
	for _, c := range categories {
		related.CategoriesByID[c.ID] = c
	}

	sellerIDs := distinct(stores, func(s domain.StoreRecord) string { return s.SellerID })
	sellers, err := r.sellers.FetchByIDs(ctx, sellerIDs)
	if err != nil {
		r.logger.WarnContext(ctx, "seller lookup degraded to empty", "count", len(sellerIDs), "error", err)
		sellers = nil
	}
	for _, s := range sellers {
		related.SellersByID[s.ID] = s
	}

	return related
}

// distinct 收集去重后的非空外键
func distinct[T any](items []T, key func(T) string) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		id := key(item)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
