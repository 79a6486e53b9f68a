package domain

import (
	"context"
	"time"
)

// Session 已认证的调用方会话。认证操作显式携带会话，
// 核心逻辑不读取任何环境存储。
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Valid 会话是否仍然有效
func (s *Session) Valid() bool {
	return s != nil && s.Token != "" && time.Now().Before(s.ExpiresAt)
}

// SessionRepository 会话存取接口
type SessionRepository interface {
	// Get 按 token 获取会话，不存在时返回 (nil, nil)
	Get(ctx context.Context, token string) (*Session, error)
	// Save 保存会话，TTL 取自 ExpiresAt
	Save(ctx context.Context, session *Session) error
	// Delete 删除会话
	Delete(ctx context.Context, token string) error
}
