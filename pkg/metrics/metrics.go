// Package metrics 提供 Prometheus helper，包含常用 counter/gauge/histogram 模板
package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wyfcoding/marketstore/pkg/logger"
)

// Metrics 指标集合
type Metrics struct {
	// HTTP 请求计数
	HTTPRequestsTotal prometheus.Counter
	// HTTP 请求耗时
	HTTPRequestDuration prometheus.Histogram

	// 上游目录后端请求计数
	UpstreamRequestsTotal prometheus.Counter
	// 上游目录后端请求失败计数
	UpstreamErrorsTotal prometheus.Counter
	// 上游请求耗时
	UpstreamRequestDuration prometheus.Histogram

	// Redis 操作计数
	RedisOpsTotal prometheus.Counter
	// Redis 操作耗时
	RedisOpDuration prometheus.Histogram

	// 业务指标
	SearchesTotal            prometheus.Counter
	SearchFallbacksTotal     prometheus.Counter
	SearchExhaustedTotal     prometheus.Counter
	SearchSupersededTotal    prometheus.Counter
	RecommendationsTotal     prometheus.Counter
	RecommendationDropsTotal prometheus.Counter
}

// New 创建指标实例
func New(serviceName string) *Metrics {
	return &Metrics{
		HTTPRequestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "marketstore",
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}),
		HTTPRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "marketstore",
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),

		UpstreamRequestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "marketstore",
			Subsystem: serviceName,
			Name:      "upstream_requests_total",
			Help:      "Total requests issued to upstream catalog backends",
		}),
		UpstreamErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "marketstore",
			Subsystem: serviceName,
			Name:      "upstream_errors_total",
			Help:      "Total failed upstream requests",
		}),
		UpstreamRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "marketstore",
			Subsystem: serviceName,
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),

		RedisOpsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "marketstore",
			Subsystem: serviceName,
			Name:      "redis_ops_total",
			Help:      "Total Redis operations",
		}),
		RedisOpDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "marketstore",
			Subsystem: serviceName,
			Name:      "redis_op_duration_seconds",
			Help:      "Redis operation duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),

		SearchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "marketstore",
			Subsystem: serviceName,
			Name:      "searches_total",
			Help:      "Total search resolution cycles completed",
		}),
		SearchFallbacksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "marketstore",
			Subsystem: serviceName,
			Name:      "search_fallbacks_total",
			Help:      "Total tier fallbacks during search resolution",
		}),
		SearchExhaustedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "marketstore",
			Subsystem: serviceName,
			Name:      "search_exhausted_total",
			Help:      "Total search cycles where every tier failed",
		}),
		SearchSupersededTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "marketstore",
			Subsystem: serviceName,
			Name:      "search_superseded_total",
			Help:      "Total search results discarded because a newer cycle was issued",
		}),
		RecommendationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "marketstore",
			Subsystem: serviceName,
			Name:      "recommendations_total",
			Help:      "Total recommendation enrichment runs",
		}),
		RecommendationDropsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "marketstore",
			Subsystem: serviceName,
			Name:      "recommendation_drops_total",
			Help:      "Total recommendation entries dropped during enrichment",
		}),
	}
}

// Register 注册所有指标
func (m *Metrics) Register() error {
	collectors := []prometheus.Collector{
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.UpstreamRequestsTotal,
		m.UpstreamErrorsTotal,
		m.UpstreamRequestDuration,
		m.RedisOpsTotal,
		m.RedisOpDuration,
		m.SearchesTotal,
		m.SearchFallbacksTotal,
		m.SearchExhaustedTotal,
		m.SearchSupersededTotal,
		m.RecommendationsTotal,
		m.RecommendationDropsTotal,
	}

	for _, collector := range collectors {
		if err := prometheus.DefaultRegisterer.Register(collector); err != nil {
			logger.Error(context.Background(), "Failed to register metric", "error", err)
			return err
		}
	}

	logger.Info(context.Background(), "Metrics registered successfully")
	return nil
}

// StartHTTPServer 启动 Prometheus HTTP 服务器
func StartHTTPServer(port int, path string) error {
	if path == "" {
		path = "/metrics"
	}

	http.Handle(path, promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	logger.Info(context.Background(), "Starting Prometheus HTTP server", "addr", addr, "path", path)

	go func() {
		if err := http.ListenAndServe(addr, nil); err != nil {
			logger.Error(context.Background(), "Failed to start Prometheus HTTP server", "error", err)
		}
	}()

	return nil
}
