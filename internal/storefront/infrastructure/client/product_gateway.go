package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/wyfcoding/marketstore/internal/storefront/domain"
)

// ProductGateway 商品实体网关实现
type ProductGateway struct {
	client *Client
}

// NewProductGateway 创建商品网关实例
func NewProductGateway(client *Client) *ProductGateway {
	return &ProductGateway{client: client}
}

// FetchByIDs 按 ID 批量获取商品；空入参直接返回空列表，不发请求
func (g *ProductGateway) FetchByIDs(ctx context.Context, ids []string) ([]domain.ProductRecord, error) {
	if len(ids) == 0 {
		return []domain.ProductRecord{}, nil
	}
	var items []domain.ProductRecord
	if err := g.client.getJSON(ctx, "/products/batch", idsQuery(ids), "", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID 获取单个商品
func (g *ProductGateway) GetByID(ctx context.Context, id string) (*domain.ProductRecord, error) {
	var item domain.ProductRecord
	if err := g.client.getJSON(ctx, "/products/"+url.PathEscape(id), nil, "", &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// FetchPage 普通分页列表（Tier 3）
func (g *ProductGateway) FetchPage(ctx context.Context, status domain.ProductStatus, page, pageSize int) (*domain.ProductPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))
	if status != "" {
		q.Set("status", string(status))
	}
	var result domain.ProductPage
	if err := g.client.getJSON(ctx, "/products", q, "", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Search 仅关键字搜索（Tier 2）
func (g *ProductGateway) Search(ctx context.Context, keyword string, page, pageSize int) (*domain.ProductPage, error) {
	body := map[string]interface{}{
		"keyword":   keyword,
		"page":      page,
		"page_size": pageSize,
	}
	var result domain.ProductPage
	if err := g.client.postJSON(ctx, "/products/search", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Filter 高级筛选（Tier 1）
func (g *ProductGateway) Filter(ctx context.Context, filter domain.ProductFilter) (*domain.ProductPage, error) {
	var result domain.ProductPage
	if err := g.client.postJSON(ctx, "/products/filter", filter, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
