package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ZcashUsersGroup/zdabe/internal/coingecko"
	"github.com/ZcashUsersGroup/zdabe/internal/config"
	"github.com/ZcashUsersGroup/zdabe/internal/database"
	"github.com/ZcashUsersGroup/zdabe/internal/explorer"
	"github.com/ZcashUsersGroup/zdabe/internal/logger"
	"github.com/ZcashUsersGroup/zdabe/internal/metrics"
	"github.com/ZcashUsersGroup/zdabe/internal/router"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志器
	level := logger.ParseLogLevel(cfg.Log.Level)
	if cfg.Log.Output == "file" {
		fileLogger, err := logger.NewWithRotation(level, logger.RotationConfig{
			Filename: cfg.Log.File,
			Compress: true,
		})
		if err != nil {
			logger.Fatal("Failed to initialize file logger: %v", err)
		}
		logger.SetDefaultLogger(fileLogger)
	} else {
		stdLogger, err := logger.New(level)
		if err != nil {
			logger.Fatal("Failed to initialize logger: %v", err)
		}
		logger.SetDefaultLogger(stdLogger)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化上游客户端
	explorerClient := explorer.New(cfg.Explorer)
	priceClient := coingecko.New(cfg.Rates)

	// 注册指标
	metrics.MustRegisterMetrics()

	// 初始化路由
	r := router.Setup(db, explorerClient, priceClient, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	// 启动服务器
	go func() {
		logger.Info("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	// 等待退出信号, 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exiting")
}
