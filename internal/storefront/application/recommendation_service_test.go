package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/marketstore/internal/storefront/domain"
)

func validSession(token string) *domain.Session {
	return &domain.Session{
		Token:     token,
		UserID:    "u1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestRecommendUnknownTokenShortCircuits(t *testing.T) {
	recommendations := &fakeRecommendationGateway{}
	svc := NewRecommendationService(
		&fakeSessionRepo{sessions: map[string]*domain.Session{}},
		recommendations,
		&fakeProductGateway{},
		newEmptyResolver(),
		nil,
		discardLogger(),
	)

	_, err := svc.Recommend(context.Background(), "unknown", 5)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthenticated))
	// 会话校验在任何网络调用之前
	assert.Zero(t, recommendations.calls)
}

func TestRecommendExpiredSessionShortCircuits(t *testing.T) {
	recommendations := &fakeRecommendationGateway{}
	expired := &domain.Session{Token: "t1", ExpiresAt: time.Now().Add(-time.Minute)}
	svc := NewRecommendationService(
		&fakeSessionRepo{sessions: map[string]*domain.Session{"t1": expired}},
		recommendations,
		&fakeProductGateway{},
		newEmptyResolver(),
		nil,
		discardLogger(),
	)

	_, err := svc.Recommend(context.Background(), "t1", 5)

	assert.True(t, errors.Is(err, domain.ErrUnauthenticated))
	assert.Zero(t, recommendations.calls)
}

func TestRecommendEnrichesEntriesInOrder(t *testing.T) {
	suggested := decimal.NewFromInt(15000)
	recommendations := &fakeRecommendationGateway{entries: []domain.RecommendationEntry{
		{ProductID: "p2", Score: 0.9, Price: &suggested},
		{ProductID: "p1", Score: 0.4},
	}}
	products := &fakeProductGateway{byID: map[string]domain.ProductRecord{
		"p1": {ID: "p1", Name: "Tomato", StoreID: "s1"},
		"p2": {ID: "p2", Name: "Cabbage", StoreID: "s1"},
	}}
	resolver := NewBatchResolver(
		&fakeStoreGateway{stores: []domain.StoreRecord{{ID: "s1", Name: "Fresh Corner"}}},
		&fakeCategoryGateway{},
		&fakeSellerGateway{},
		discardLogger(),
	)
	svc := NewRecommendationService(
		&fakeSessionRepo{sessions: map[string]*domain.Session{"t1": validSession("t1")}},
		recommendations,
		products,
		resolver,
		nil,
		discardLogger(),
	)

	out, err := svc.Recommend(context.Background(), "t1", 2)

	require.NoError(t, err)
	require.Len(t, out, 2)
	// 推荐源给出的相关度排序必须保持
	assert.Equal(t, "p2", out[0].ID)
	assert.Equal(t, "p1", out[1].ID)
	require.NotNil(t, out[0].RecommendationScore)
	assert.Equal(t, 0.9, *out[0].RecommendationScore)
	require.NotNil(t, out[0].SuggestedPrice)
	assert.True(t, suggested.Equal(*out[0].SuggestedPrice))
	assert.Nil(t, out[1].SuggestedPrice)
	assert.Equal(t, "Fresh Corner", out[0].StoreName)
}

func TestRecommendDropsFailedEntries(t *testing.T) {
	recommendations := &fakeRecommendationGateway{entries: []domain.RecommendationEntry{
		{ProductID: "p1", Score: 0.9},
		{ProductID: "p-gone", Score: 0.8},
		{ProductID: "p3", Score: 0.7},
	}}
	products := &fakeProductGateway{
		byID: map[string]domain.ProductRecord{
			"p1": {ID: "p1"},
			"p3": {ID: "p3"},
		},
		byIDErr: map[string]error{"p-gone": errors.New("deleted upstream")},
	}
	svc := NewRecommendationService(
		&fakeSessionRepo{sessions: map[string]*domain.Session{"t1": validSession("t1")}},
		recommendations,
		products,
		newEmptyResolver(),
		nil,
		discardLogger(),
	)

	out, err := svc.Recommend(context.Background(), "t1", 3)

	// 单条失败只丢弃该条，剩余条目保持输入排序
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "p1", out[0].ID)
	assert.Equal(t, "p3", out[1].ID)
}

func TestRecommendSourceFailurePropagates(t *testing.T) {
	recommendations := &fakeRecommendationGateway{err: errors.New("recommendation source down")}
	svc := NewRecommendationService(
		&fakeSessionRepo{sessions: map[string]*domain.Session{"t1": validSession("t1")}},
		recommendations,
		&fakeProductGateway{},
		newEmptyResolver(),
		nil,
		discardLogger(),
	)

	_, err := svc.Recommend(context.Background(), "t1", 5)

	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrUnauthenticated))
}
