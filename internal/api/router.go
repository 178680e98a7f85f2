package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	brewHandler "meadery-assistant/internal/api/handlers/brew"
	"meadery-assistant/internal/api/handlers/health"
	inventoryHandler "meadery-assistant/internal/api/handlers/inventory"
	recipeHandler "meadery-assistant/internal/api/handlers/recipe"
	"meadery-assistant/internal/api/middleware"
	"meadery-assistant/internal/core/ai/cache"
	"meadery-assistant/internal/core/ai/service"
	inventoryService "meadery-assistant/internal/core/inventory"
	recipeService "meadery-assistant/internal/core/recipe"
	"meadery-assistant/internal/infrastructure/config"
	"meadery-assistant/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 120 * time.Second
	// 請求體大小限制 (1MB)，純文字 API 不需要更多
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, cacheManager *cache.CacheManager, store *inventoryService.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", "X-Owner"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 重複請求過濾
	router.Use(middleware.Deduplication(cfg))

	// 速率限制
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("model", cfg.OpenRouter.Model),
		zap.String("store_addr", cfg.Store.Addr),
		zap.Duration("timeout", timeoutDuration),
	)

	// 初始化服務
	aiService, err := service.NewService(cfg, cacheManager)
	if err != nil || aiService == nil {
		common.LogError("Failed to initialize AI service", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize AI service: %w", err)
	}

	// 庫存服務建立在共用的 Redis 儲存上
	inventorySvc := inventoryService.NewService(store)
	if inventorySvc == nil {
		common.LogError("Failed to initialize inventory service")
		return nil, fmt.Errorf("failed to initialize inventory service")
	}

	// 食譜相關服務
	generationSvc := recipeService.NewGenerationService(aiService)
	shoppingSvc := recipeService.NewShoppingService()
	if generationSvc == nil || shoppingSvc == nil {
		common.LogError("Failed to initialize recipe services: service returned nil",
			zap.Bool("ai_service_initialized", aiService != nil),
			zap.Bool("cache_manager_initialized", cacheManager != nil),
			zap.String("environment", cfg.App.Env),
		)
		return nil, fmt.Errorf("failed to initialize recipe services: service returned nil")
	}

	common.LogInfo("Services initialized successfully",
		zap.Bool("ai_service_initialized", aiService != nil),
		zap.Bool("cache_manager_initialized", cacheManager != nil),
		zap.String("environment", cfg.App.Env),
	)

	// 全局中間件：設置超時和配置
	router.Use(func(c *gin.Context) {
		// 設置請求超時
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		// 設置配置
		c.Set("config", cfg)

		// 處理請求
		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck(store))
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		recipeHandlerInstance := recipeHandler.NewHandler(generationSvc, shoppingSvc, inventorySvc)
		inventoryHandlerInstance := inventoryHandler.NewHandler(inventorySvc)
		brewHandlerInstance := brewHandler.NewHandler(inventorySvc)

		// 註冊食譜相關路由
		recipeGroup := api.Group("/recipe")
		{
			// 生成蜂蜜酒食譜
			recipeGroup.POST("/generate", recipeHandlerInstance.HandleGenerate)

			// 對照庫存計算成本
			recipeGroup.POST("/cost", recipeHandlerInstance.HandleCost)

			// 組購物清單
			recipeGroup.POST("/shopping-list", recipeHandlerInstance.HandleShoppingList)
		}

		// 庫存 CRUD
		inventoryGroup := api.Group("/inventory")
		{
			inventoryGroup.GET("", inventoryHandlerInstance.HandleList)
			inventoryGroup.POST("", inventoryHandlerInstance.HandleCreate)
			inventoryGroup.GET("/:id", inventoryHandlerInstance.HandleGet)
			inventoryGroup.PUT("/:id", inventoryHandlerInstance.HandleUpdate)
			inventoryGroup.DELETE("/:id", inventoryHandlerInstance.HandleDelete)
		}

		// 釀造操作
		brewGroup := api.Group("/brew")
		{
			brewGroup.POST("/deduct", brewHandlerInstance.HandleDeduct)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
