package domain

import "time"

// SearchExecutedEvent 搜索解析完成事件
type SearchExecutedEvent struct {
	Keyword     string    `json:"keyword,omitempty"`
	CategoryID  string    `json:"category_id,omitempty"`
	MarketID    string    `json:"market_id,omitempty"`
	Tier        string    `json:"tier"`
	Fallbacks   int       `json:"fallbacks"`
	ResultCount int       `json:"result_count"`
	TotalCount  int64     `json:"total_count"`
	ExecutedAt  time.Time `json:"executed_at"`
}
