package router

import (
	"net/http"
	"time"

	"github.com/ZcashUsersGroup/zdabe/internal/coingecko"
	"github.com/ZcashUsersGroup/zdabe/internal/config"
	"github.com/ZcashUsersGroup/zdabe/internal/explorer"
	"github.com/ZcashUsersGroup/zdabe/internal/handler"
	"github.com/ZcashUsersGroup/zdabe/internal/logic"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, explorerClient *explorer.Client, priceClient *coingecko.Client, cfg *config.Config) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()

	// 中间件
	r.Use(accessLogMiddleware())
	r.Use(gin.Recovery())
	r.Use(apiVersionMiddleware())
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	r.Use(cors.New(corsConfig))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found"})
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "zdabe",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API版本组, 组内限流并携带缓存头
	limiter := NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	v1 := r.Group("/api/v1")
	v1.Use(limiter.Middleware())
	v1.Use(cacheControlMiddleware())
	{
		cardLogic := logic.NewCardLogic(db)
		walletLogic := logic.NewWalletLogic(explorerClient, cfg.Wallet.MaxConcurrentLookups)
		rateLogic := logic.NewRateLogic(priceClient, time.Duration(cfg.Rates.CacheTTLSeconds)*time.Second)

		cardHandler := handler.NewCardHandler(cardLogic, walletLogic)
		rateHandler := handler.NewRateHandler(rateLogic)

		// 卡片相关路由
		cards := v1.Group("/cards")
		{
			cards.GET("", cardHandler.ListCards)
			cards.GET("/:id", cardHandler.GetCard)
		}

		v1.GET("/funding-summary", cardHandler.GetFundingSummary)
		v1.GET("/exchange-rate", rateHandler.GetExchangeRate)
	}

	return r
}
