package client

import (
	"context"

	"github.com/wyfcoding/marketstore/internal/storefront/domain"
)

// StoreGateway 店铺实体网关实现
type StoreGateway struct {
	client *Client
}

// NewStoreGateway 创建店铺网关实例
func NewStoreGateway(client *Client) *StoreGateway {
	return &StoreGateway{client: client}
}

// FetchByIDs 按 ID 批量获取店铺；空入参直接返回空列表
func (g *StoreGateway) FetchByIDs(ctx context.Context, ids []string) ([]domain.StoreRecord, error) {
	if len(ids) == 0 {
		return []domain.StoreRecord{}, nil
	}
	var items []domain.StoreRecord
	if err := g.client.getJSON(ctx, "/stores", idsQuery(ids), "", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CategoryGateway 分类实体网关实现
type CategoryGateway struct {
	client *Client
}

// NewCategoryGateway 创建分类网关实例
func NewCategoryGateway(client *Client) *CategoryGateway {
	return &CategoryGateway{client: client}
}

// FetchByIDs 按 ID 批量获取分类；空入参直接返回空列表
func (g *CategoryGateway) FetchByIDs(ctx context.Context, ids []string) ([]domain.CategoryRecord, error) {
	if len(ids) == 0 {
		return []domain.CategoryRecord{}, nil
	}
	var items []domain.CategoryRecord
	if err := g.client.getJSON(ctx, "/categories", idsQuery(ids), "", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListAll 获取全部分类参考列表
func (g *CategoryGateway) ListAll(ctx context.Context) ([]domain.CategoryRecord, error) {
	var items []domain.CategoryRecord
	if err := g.client.getJSON(ctx, "/categories", nil, "", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// MarketGateway 市场实体网关实现
type MarketGateway struct {
	client *Client
}

// NewMarketGateway 创建市场网关实例
func NewMarketGateway(client *Client) *MarketGateway {
	return &MarketGateway{client: client}
}

// ListAll 获取全部市场参考列表
func (g *MarketGateway) ListAll(ctx context.Context) ([]domain.MarketRecord, error) {
	var items []domain.MarketRecord
	if err := g.client.getJSON(ctx, "/markets", nil, "", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SellerGateway 卖家实体网关实现
type SellerGateway struct {
	client *Client
}

// NewSellerGateway 创建卖家网关实例
func NewSellerGateway(client *Client) *SellerGateway {
	return &SellerGateway{client: client}
}

// FetchByIDs 按 ID 批量获取卖家；空入参直接返回空列表
func (g *SellerGateway) FetchByIDs(ctx context.Context, ids []string) ([]domain.SellerRecord, error) {
	if len(ids) == 0 {
		return []domain.SellerRecord{}, nil
	}
	var items []domain.SellerRecord
	if err := g.client.getJSON(ctx, "/sellers", idsQuery(ids), "", &items); err != nil {
		return nil, err
	}
	return items, nil
}
