package domain

import "github.com/shopspring/decimal"

// StoreRecord 店铺记录，属于某个实体市场，由一个卖家经营
type StoreRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address,omitempty"`
	MarketID    string `json:"market_id,omitempty"`
	SellerID    string `json:"seller_id,omitempty"`
	Description string `json:"description,omitempty"`
}

// CategoryRecord 商品分类记录
type CategoryRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MarketRecord 实体市场记录，店铺按市场分组
type MarketRecord struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// SellerRecord 卖家记录
type SellerRecord struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
}

// RecommendationEntry 推荐源返回的条目，score 越高越相关，顺序必须在富化后保持
type RecommendationEntry struct {
	ProductID string           `json:"product_id"`
	Score     float64          `json:"score"`
	Price     *decimal.Decimal `json:"price,omitempty"`
}
