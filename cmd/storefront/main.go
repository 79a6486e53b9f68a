package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/marketstore/internal/storefront/application"
	"github.com/wyfcoding/marketstore/internal/storefront/infrastructure/client"
	"github.com/wyfcoding/marketstore/internal/storefront/infrastructure/messaging"
	storeredis "github.com/wyfcoding/marketstore/internal/storefront/infrastructure/persistence/redis"
	httpserver "github.com/wyfcoding/marketstore/internal/storefront/interfaces/http"
	"github.com/wyfcoding/marketstore/pkg/cache"
	"github.com/wyfcoding/marketstore/pkg/config"
	"github.com/wyfcoding/marketstore/pkg/logger"
	"github.com/wyfcoding/marketstore/pkg/metrics"
	"github.com/wyfcoding/marketstore/pkg/middleware"
	"github.com/wyfcoding/marketstore/pkg/mq"
	"golang.org/x/sync/errgroup"
)

var configPath = flag.String("config", "configs/storefront/config.toml", "config file path")

func main() {
	flag.Parse()

	// 1. 配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 2. 日志
	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}); err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}
	log := logger.Get()

	// 3. 指标
	m := metrics.New(cfg.ServiceName)
	if cfg.Metrics.Enabled {
		if err := m.Register(); err != nil {
			logger.Fatal(context.Background(), "failed to register metrics", "error", err)
		}
		_ = metrics.StartHTTPServer(cfg.Metrics.Port, cfg.Metrics.Path)
	}

	// 4. Redis（会话存储）
	redisCache, err := cache.New(cache.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxPoolSize:  cfg.Redis.MaxPoolSize,
		ConnTimeout:  cfg.Redis.ConnTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		logger.Fatal(context.Background(), "failed to init redis", "error", err)
	}
	defer redisCache.Close()

	// 5. Kafka（搜索分析事件）
	producer, err := mq.NewProducer(mq.KafkaConfig{
		Brokers:      cfg.Kafka.Brokers,
		MaxRetries:   cfg.Kafka.MaxRetries,
		RetryBackoff: cfg.Kafka.RetryBackoff,
	})
	if err != nil {
		logger.Fatal(context.Background(), "failed to init kafka producer", "error", err)
	}
	defer producer.Close()
	publisher := messaging.NewKafkaSearchPublisher(producer, cfg.Kafka.SearchTopic)

	// 6. 实体网关
	upstream := client.New(cfg.Upstream.BaseURL, time.Duration(cfg.Upstream.Timeout)*time.Second, m)
	productGw := client.NewProductGateway(upstream)
	storeGw := client.NewStoreGateway(upstream)
	categoryGw := client.NewCategoryGateway(upstream)
	marketGw := client.NewMarketGateway(upstream)
	sellerGw := client.NewSellerGateway(upstream)
	recommendGw := client.NewRecommendationGateway(upstream)

	// 7. 仓储
	sessionRepo := storeredis.NewSessionRepository(redisCache, m)

	// 8. 应用服务
	resolver := application.NewBatchResolver(storeGw, categoryGw, sellerGw, log)
	catalogSvc := application.NewCatalogQueryService(
		productGw, categoryGw, marketGw,
		resolver, publisher, m, log,
		cfg.Search.DefaultPageSize, cfg.Search.DebounceMs,
	)
	recommendSvc := application.NewRecommendationService(
		sessionRepo, recommendGw, productGw, resolver, m, log,
	)

	// 9. 接口层
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.GinRecovery(), middleware.GinLogging(m), middleware.GinCORS())

	sys := r.Group("/sys")
	{
		sys.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
		sys.GET("/ready", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "READY"}) })
	}

	handler := httpserver.NewStorefrontHandler(catalogSvc, recommendSvc, cfg.Upstream.RecommendCount)
	handler.RegisterRoutes(r)

	// 10. 启动
	g, ctx := errgroup.WithContext(context.Background())

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	g.Go(func() error {
		logger.Info(ctx, "HTTP server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			logger.Info(ctx, "shutting down servers...")
		case <-ctx.Done():
			logger.Info(ctx, "context cancelled, shutting down...")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error(context.Background(), "server exited with error", "error", err)
	}
}
