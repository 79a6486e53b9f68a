package domain

import "context"

// ProductGateway 商品实体网关
type ProductGateway interface {
	// FetchByIDs 按 ID 批量获取，未知 ID 静默省略；空入参不发起网络调用
	FetchByIDs(ctx context.Context, ids []string) ([]ProductRecord, error)
	// GetByID 获取单个商品
	GetByID(ctx context.Context, id string) (*ProductRecord, error)
	// FetchPage 普通分页列表（Tier 3 能力）
	FetchPage(ctx context.Context, status ProductStatus, page, pageSize int) (*ProductPage, error)
	// Search 仅关键字搜索（Tier 2 能力）
	Search(ctx context.Context, keyword string, page, pageSize int) (*ProductPage, error)
	// Filter 高级筛选（Tier 1 能力）
	Filter(ctx context.Context, filter ProductFilter) (*ProductPage, error)
}

// StoreGateway 店铺实体网关
type StoreGateway interface {
	FetchByIDs(ctx context.Context, ids []string) ([]StoreRecord, error)
}

// CategoryGateway 分类实体网关
type CategoryGateway interface {
	FetchByIDs(ctx context.Context, ids []string) ([]CategoryRecord, error)
	// ListAll 获取分类参考列表（初始加载用）
	ListAll(ctx context.Context) ([]CategoryRecord, error)
}

// MarketGateway 市场实体网关
type MarketGateway interface {
	// ListAll 获取市场参考列表（初始加载用）
	ListAll(ctx context.Context) ([]MarketRecord, error)
}

// SellerGateway 卖家实体网关
type SellerGateway interface {
	FetchByIDs(ctx context.Context, ids []string) ([]SellerRecord, error)
}

// RecommendationGateway 推荐源网关，需要已认证会话
type RecommendationGateway interface {
	// Fetch 获取按相关度降序排列的推荐条目
	Fetch(ctx context.Context, token string, count int) ([]RecommendationEntry, error)
}

// RelatedEntities 批量关联解析的产物：三张 id→实体 查找表。
// 未解析到的实体直接缺席，不插占位值。
type RelatedEntities struct {
	StoresByID     map[string]StoreRecord
	CategoriesByID map[string]CategoryRecord
	SellersByID    map[string]SellerRecord
}

// EventPublisher 店面事件发布接口
type EventPublisher interface {
	PublishSearchExecuted(ctx context.Context, event SearchExecutedEvent) error
}
