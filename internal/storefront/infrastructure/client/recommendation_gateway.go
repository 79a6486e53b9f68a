package client

import (
	"context"
	"strconv"

	"github.com/wyfcoding/marketstore/internal/storefront/domain"
)

// RecommendationGateway 推荐源网关实现，请求需携带 Bearer token
type RecommendationGateway struct {
	client *Client
}

// NewRecommendationGateway 创建推荐网关实例
func NewRecommendationGateway(client *Client) *RecommendationGateway {
	return &RecommendationGateway{client: client}
}

// Fetch 获取按相关度降序排列的推荐条目
func (g *RecommendationGateway) Fetch(ctx context.Context, token string, count int) ([]domain.RecommendationEntry, error) {
	var entries []domain.RecommendationEntry
	if err := g.client.getJSON(ctx, "/recommendations/"+strconv.Itoa(count), nil, token, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
