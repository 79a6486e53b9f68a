package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/marketstore/internal/storefront/application"
	"github.com/wyfcoding/marketstore/internal/storefront/domain"
	"github.com/wyfcoding/marketstore/pkg/logger"
	"github.com/wyfcoding/marketstore/pkg/response"
	"github.com/wyfcoding/marketstore/pkg/utils"
)

// StorefrontHandler 店面 HTTP 处理器
type StorefrontHandler struct {
	catalog   *application.CatalogQueryService
	recommend *application.RecommendationService

	recommendCount int
}

// NewStorefrontHandler 创建店面 HTTP 处理器实例
func NewStorefrontHandler(
	catalog *application.CatalogQueryService,
	recommend *application.RecommendationService,
	recommendCount int,
) *StorefrontHandler {
	if recommendCount <= 0 {
		recommendCount = 5
	}
	return &StorefrontHandler{
		catalog:        catalog,
		recommend:      recommend,
		recommendCount: recommendCount,
	}
}

// RegisterRoutes 注册路由
func (h *StorefrontHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/storefront")
	{
		api.GET("/catalog", h.SearchCatalog)
		api.GET("/catalog/initial", h.InitialLoad)
		api.GET("/products/:id", h.GetProduct)
		api.GET("/categories", h.ListCategories)
		api.GET("/markets", h.ListMarkets)
		api.GET("/recommendations", h.Recommendations)
	}
}

// SearchCatalog 按当前查询状态解析搜索并返回聚合商品页
func (h *StorefrontHandler) SearchCatalog(c *gin.Context) {
	q := domain.QueryState{
		Keyword:    c.Query("keyword"),
		CategoryID: c.DefaultQuery("category_id", domain.FilterAll),
		MarketID:   c.DefaultQuery("market_id", domain.FilterAll),
		SortBy:     c.Query("sort_by"),
		Ascending:  c.Query("ascending") == "true",
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid page", "")
		return
	}
	q.Page = page

	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "0"))
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid page_size", "")
		return
	}
	q.PageSize = pageSize

	result, err := h.catalog.Search(c.Request.Context(), q)
	if err != nil {
		if errors.Is(err, domain.ErrSearchExhausted) {
			response.ErrorWithStatus(c, http.StatusBadGateway, "search is temporarily unavailable", err.Error())
			return
		}
		logger.Error(c.Request.Context(), "Failed to resolve search", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, gin.H{
		"items":      result.Items,
		"tier":       result.Tier.String(),
		"pagination": utils.NewPagination(result.Page, result.PageSize, result.TotalCount),
	})
}

// InitialLoad 初始加载：默认在售商品页加分类/市场参考列表
func (h *StorefrontHandler) InitialLoad(c *gin.Context) {
	result, err := h.catalog.InitialLoad(c.Request.Context())
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to run initial load", "error", err)
		response.ErrorWithStatus(c, http.StatusBadGateway, "catalog is temporarily unavailable", "")
		return
	}
	response.Success(c, result)
}

// GetProduct 获取单个商品的聚合视图
func (h *StorefrontHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.ErrorWithStatus(c, http.StatusBadRequest, "id is required", "")
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		var upstreamErr *domain.UpstreamError
		if errors.As(err, &upstreamErr) && upstreamErr.StatusCode == http.StatusNotFound {
			response.ErrorWithStatus(c, http.StatusNotFound, "product not found", "")
			return
		}
		logger.Error(c.Request.Context(), "Failed to get product", "id", id, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, product)
}

// ListCategories 获取分类参考列表
func (h *StorefrontHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list categories", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, categories)
}

// ListMarkets 获取市场参考列表
func (h *StorefrontHandler) ListMarkets(c *gin.Context) {
	markets, err := h.catalog.ListMarkets(c.Request.Context())
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list markets", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, markets)
}

// Recommendations 获取富化后的个性化推荐，要求 Bearer token
func (h *StorefrontHandler) Recommendations(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "not authenticated", "")
		return
	}

	count := h.recommendCount
	if raw := c.Query("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.ErrorWithStatus(c, http.StatusBadRequest, "invalid count", "")
			return
		}
		count = parsed
	}

	items, err := h.recommend.Recommend(c.Request.Context(), token, count)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			response.ErrorWithStatus(c, http.StatusUnauthorized, "not authenticated", "")
			return
		}
		logger.Error(c.Request.Context(), "Failed to enrich recommendations", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, items)
}

func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
