package domain

import "github.com/shopspring/decimal"

// FilterAll 分类/市场筛选的 “全部” 哨兵值
const FilterAll = "all"

// SearchTier 搜索能力层级，按专用度降序回退
type SearchTier int

const (
	// TierFilter 高级筛选（关键字+分类+市场+价格+状态+排序）
	TierFilter SearchTier = iota + 1
	// TierKeyword 仅关键字搜索
	TierKeyword
	// TierListing 普通分页列表
	TierListing
)

func (t SearchTier) String() string {
	switch t {
	case TierFilter:
		return "filter"
	case TierKeyword:
		return "keyword"
	case TierListing:
		return "listing"
	default:
		return "unknown"
	}
}

// QueryState 当前查询状态，仅由用户交互变更，驱动搜索链重新解析
type QueryState struct {
	Keyword    string `json:"keyword,omitempty"`
	CategoryID string `json:"category_id,omitempty"`
	MarketID   string `json:"market_id,omitempty"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	SortBy     string `json:"sort_by,omitempty"`
	Ascending  bool   `json:"ascending"`
}

// HasFilter 是否设置了任意筛选条件；没有任何条件时搜索链直接走普通列表
func (q QueryState) HasFilter() bool {
	return q.Keyword != "" || q.hasCategory() || q.hasMarket() || q.SortBy != ""
}

func (q QueryState) hasCategory() bool {
	return q.CategoryID != "" && q.CategoryID != FilterAll
}

func (q QueryState) hasMarket() bool {
	return q.MarketID != "" && q.MarketID != FilterAll
}

// ProductFilter 高级筛选端点的请求参数
type ProductFilter struct {
	Keyword    string           `json:"keyword,omitempty"`
	CategoryID string           `json:"category_id,omitempty"`
	MarketID   string           `json:"market_id,omitempty"`
	StoreID    string           `json:"store_id,omitempty"`
	MinPrice   *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice   *decimal.Decimal `json:"max_price,omitempty"`
	Status     ProductStatus    `json:"status,omitempty"`
	SortBy     string           `json:"sort_by,omitempty"`
	Ascending  bool             `json:"ascending,omitempty"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
}

// Filter 将查询状态转换为高级筛选参数；“全部” 哨兵不下发
func (q QueryState) Filter() ProductFilter {
	f := ProductFilter{
		Keyword:   q.Keyword,
		SortBy:    q.SortBy,
		Ascending: q.Ascending,
		Page:      q.Page,
		PageSize:  q.PageSize,
	}
	if q.hasCategory() {
		f.CategoryID = q.CategoryID
	}
	if q.hasMarket() {
		f.MarketID = q.MarketID
	}
	return f
}

// ProductPage 分页商品结果的规范形状
type ProductPage struct {
	Items      []ProductRecord `json:"items"`
	TotalCount int64           `json:"total_count"`
}
