package application

import (
	"context"
	"sync"
	"time"

	"github.com/wyfcoding/marketstore/internal/storefront/domain"
)

// ResultListener 接收一次解析的最终结果。
// 只有最新一轮解析会被投递，被取代的轮次直接丢弃。
// 回调在会话锁内执行，不得在回调里再调用本会话的方法。
type ResultListener func(seq uint64, result *SearchResult, err error)

// QuerySession 交互式查询会话，对应一个打开目录页的客户端。
// 维护当前查询状态与单调递增的解析序号：
//   - 关键字变更按静默间隔防抖合并，分类/市场/分页变更立即解析；
//   - 每轮解析带上发起时的序号，完成时序号已不是最新的结果被丢弃
//     （按发起顺序而非返回顺序取最后写者）。
// 取消是协作式的：不硬中断在途请求，只无视其结果。
type QuerySession struct {
	svc      *CatalogQueryService
	debounce time.Duration
	listener ResultListener

	mu     sync.Mutex
	state  domain.QueryState
	seq    uint64
	timer  *time.Timer
	closed bool
}

// NewQuerySession 创建查询会话实例
func NewQuerySession(svc *CatalogQueryService, debounce time.Duration, listener ResultListener) *QuerySession {
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}
	return &QuerySession{
		svc:      svc,
		debounce: debounce,
		listener: listener,
		state:    domain.QueryState{Page: 1},
	}
}

// State 当前查询状态快照
func (s *QuerySession) State() domain.QueryState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetKeyword 更新关键字。防抖：静默间隔内的连续变更合并为一轮解析，
// 使用最后一次的关键字；关键字变更回到第一页。
func (s *QuerySession) SetKeyword(ctx context.Context, keyword string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.state.Keyword = keyword
	s.state.Page = 1

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.resolveLocked(ctx)
	})
}

// SetCategory 更新分类筛选并立即解析
func (s *QuerySession) SetCategory(ctx context.Context, categoryID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CategoryID = categoryID
	s.state.Page = 1
	s.resolveLocked(ctx)
}

// SetMarket 更新市场筛选并立即解析
func (s *QuerySession) SetMarket(ctx context.Context, marketID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.MarketID = marketID
	s.state.Page = 1
	s.resolveLocked(ctx)
}

// SetPage 翻页并立即解析
func (s *QuerySession) SetPage(ctx context.Context, page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Page = page
	s.resolveLocked(ctx)
}

// SetSort 更新排序并立即解析
func (s *QuerySession) SetSort(ctx context.Context, sortBy string, ascending bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SortBy = sortBy
	s.state.Ascending = ascending
	s.resolveLocked(ctx)
}

// Retry 手动重试，从 Tier 1 重新开始整条解析链
func (s *QuerySession) Retry(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolveLocked(ctx)
}

// Close 关闭会话，停掉挂起的防抖定时器；在途解析的结果不再投递
func (s *QuerySession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.seq++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// resolveLocked 发起一轮解析。调用方必须持有 s.mu。
func (s *QuerySession) resolveLocked(ctx context.Context) {
	if s.closed {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	s.seq++
	seq := s.seq
	state := s.state

	go func() {
		result, err := s.svc.Search(ctx, state)

		s.mu.Lock()
		defer s.mu.Unlock()
		if seq != s.seq || s.closed {
			// 已有更新的一轮在途或完成，丢弃本轮结果
			if s.svc.metrics != nil {
				s.svc.metrics.SearchSupersededTotal.Inc()
			}
			return
		}
		if s.listener != nil {
			s.listener(seq, result, err)
		}
	}()
}
