package domain

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated 缺少有效会话，认证链路在任何网络调用前短路
var ErrUnauthenticated = errors.New("not authenticated")

// ErrSearchExhausted 搜索链所有层级均失败，对外只浮出这一个错误
var ErrSearchExhausted = errors.New("all search tiers failed")

// ParseError 上游响应缺少预期的 success 标志或 data 字段时的类型化解析失败。
// 对回退逻辑而言等同于传输失败，不做部分解析。
type ParseError struct {
	Endpoint string
	Reason   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unexpected response shape from %s: %s", e.Endpoint, e.Reason)
}

// UpstreamError 上游返回非 2xx 状态码
type UpstreamError struct {
	Endpoint   string
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s returned status %d", e.Endpoint, e.StatusCode)
}
