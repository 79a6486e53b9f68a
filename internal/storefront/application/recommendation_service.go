package application

import (
	"context"
	"log/slog"

	"github.com/wyfcoding/marketstore/internal/storefront/domain"
	"github.com/wyfcoding/marketstore/pkg/metrics"
)

// RecommendationService 推荐富化服务。
// 把推荐源给出的 (productId, score) 排序列表逐条解析成聚合商品视图，
// 单条失败只丢弃该条，剩余条目保持输入排序。
type RecommendationService struct {
	sessions        domain.SessionRepository
	recommendations domain.RecommendationGateway
	products        domain.ProductGateway
	resolver        *BatchResolver
	metrics         *metrics.Metrics
	logger          *slog.Logger
}

// NewRecommendationService 创建推荐富化服务实例
func NewRecommendationService(
	sessions domain.SessionRepository,
	recommendations domain.RecommendationGateway,
	products domain.ProductGateway,
	resolver *BatchResolver,
	m *metrics.Metrics,
	logger *slog.Logger,
) *RecommendationService {
	return &RecommendationService{
		sessions:        sessions,
		recommendations: recommendations,
		products:        products,
		resolver:        resolver,
		metrics:         m,
		logger:          logger,
	}
}

// Recommend 获取并富化推荐列表。
// 会话校验在任何网络调用之前：token 无效直接返回 ErrUnauthenticated。
// 推荐条数很小，商品按条单独获取而非批量。
func (s *RecommendationService) Recommend(ctx context.Context, token string, count int) ([]domain.DisplayProduct, error) {
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if !session.Valid() {
		return nil, domain.ErrUnauthenticated
	}

	entries, err := s.recommendations.Fetch(ctx, token, count)
	if err != nil {
		return nil, err
	}

	type resolved struct {
		entry   domain.RecommendationEntry
		product domain.ProductRecord
	}

	kept := make([]resolved, 0, len(entries))
	for _, entry := range entries {
		product, err := s.products.GetByID(ctx, entry.ProductID)
		if err != nil {
			s.logger.WarnContext(ctx, "recommendation entry dropped",
				"product_id", entry.ProductID,
				"error", err,
			)
			if s.metrics != nil {
				s.metrics.RecommendationDropsTotal.Inc()
			}
			continue
		}
		kept = append(kept, resolved{entry: entry, product: *product})
	}

	products := make([]domain.ProductRecord, len(kept))
	for i, r := range kept {
		products[i] = r.product
	}
	related := s.resolver.ResolveRelated(ctx, products)

	out := make([]domain.DisplayProduct, len(kept))
	for i, r := range kept {
		dp := Compose(r.product, related)
		score := r.entry.Score
		dp.RecommendationScore = &score
		dp.SuggestedPrice = r.entry.Price
		out[i] = dp
	}

	if s.metrics != nil {
		s.metrics.RecommendationsTotal.Inc()
	}
	return out, nil
}
