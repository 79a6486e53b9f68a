package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus 商品状态
type ProductStatus string

const (
	// ProductStatusActive 在售
	ProductStatusActive ProductStatus = "active"
	// ProductStatusOutOfStock 缺货
	ProductStatusOutOfStock ProductStatus = "out_of_stock"
	// ProductStatusInactive 下架
	ProductStatusInactive ProductStatus = "inactive"
)

// ProductRecord 目录后端持有的商品记录，本服务只读
type ProductRecord struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Status      ProductStatus   `json:"status"`
	MinQuantity int             `json:"min_quantity"`
	CategoryID  string          `json:"category_id,omitempty"`
	StoreID     string          `json:"store_id,omitempty"`
	Images      []string        `json:"images,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// DisplayProduct 聚合商品视图：商品记录加上按 ID 关联出的店铺/卖家/分类冗余字段。
// 仅在一次渲染周期内存在，不落库、不修改。
// 关联目标缺失时对应冗余字段保持零值，绝不伪造占位数据。
type DisplayProduct struct {
	ProductRecord

	StoreName    string `json:"store_name,omitempty"`
	StoreAddress string `json:"store_address,omitempty"`
	SellerID     string `json:"seller_id,omitempty"`
	SellerName   string `json:"seller_name,omitempty"`
	CategoryName string `json:"category_name,omitempty"`

	// 推荐链路附加字段
	RecommendationScore *float64         `json:"recommendation_score,omitempty"`
	SuggestedPrice      *decimal.Decimal `json:"suggested_price,omitempty"`
}
