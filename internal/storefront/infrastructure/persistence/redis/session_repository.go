package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/wyfcoding/marketstore/internal/storefront/domain"
	"github.com/wyfcoding/marketstore/pkg/cache"
	"github.com/wyfcoding/marketstore/pkg/metrics"
)

type sessionRepository struct {
	cache   *cache.RedisCache
	metrics *metrics.Metrics
	prefix  string
}

// NewSessionRepository 创建会话仓储实例
func NewSessionRepository(c *cache.RedisCache, m *metrics.Metrics) domain.SessionRepository {
	return &sessionRepository{
		cache:   c,
		metrics: m,
		prefix:  "storefront:session:",
	}
}

// Get 按 token 获取会话，不存在时返回 (nil, nil)
func (r *sessionRepository) Get(ctx context.Context, token string) (*domain.Session, error) {
	key := r.prefix + token
	r.countOp()

	var session domain.Session
	found, err := r.cache.GetJSON(ctx, key, &session)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &session, nil
}

// Save 保存会话，TTL 取自 ExpiresAt
func (r *sessionRepository) Save(ctx context.Context, session *domain.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}
	r.countOp()
	return r.cache.SetJSON(ctx, r.prefix+session.Token, session, ttl)
}

// Delete 删除会话
func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	r.countOp()
	return r.cache.Delete(ctx, r.prefix+token)
}

func (r *sessionRepository) countOp() {
	if r.metrics != nil {
		r.metrics.RedisOpsTotal.Inc()
	}
}
