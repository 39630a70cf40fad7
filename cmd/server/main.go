package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/easayliu/drive-exhibit-relay/docs"
	"github.com/easayliu/drive-exhibit-relay/internal/application/container"
	"github.com/easayliu/drive-exhibit-relay/internal/infrastructure/config"
	"github.com/easayliu/drive-exhibit-relay/internal/interfaces/http/routes"
	"github.com/easayliu/drive-exhibit-relay/pkg/logger"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// @title Drive Exhibit Relay API
// @version 1.0
// @description 为展示页面代理Google Drive图片与Google Sheets数据，API Key只保存在服务端

// @license.name MIT

// @host localhost:5000
// @BasePath /api
// @schemes http https
func main() {
	// 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// 初始化日志
	if err := logger.Init(logger.Options{
		Level:     cfg.Log.Level,
		Output:    cfg.Log.Output,
		Format:    cfg.Log.Format,
		FilePath:  cfg.Log.FilePath,
		Colorize:  cfg.Log.Colorize,
		AddSource: cfg.Log.AddSource,
	}); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// 设置Gin模式
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化服务容器
	serviceContainer, err := container.NewServiceContainer(cfg)
	if err != nil {
		log.Fatal("Failed to initialize service container:", err)
	}

	// 初始化路由
	router := routes.SetupRoutes(serviceContainer)

	if err := serviceContainer.Start(); err != nil {
		logger.Error("Failed to start background tasks", "error", err)
	}

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 启动服务器
	go func() {
		logger.Info("Starting server", "address", addr, "api_configured", cfg.Google.APIConfigured())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	serviceContainer.Shutdown()
	logger.Info("Server stopped")
}
