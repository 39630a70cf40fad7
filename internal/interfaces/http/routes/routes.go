package routes

import (
	"github.com/easayliu/drive-exhibit-relay/internal/application/container"
	"github.com/easayliu/drive-exhibit-relay/internal/interfaces/http/handlers"
	"github.com/easayliu/drive-exhibit-relay/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes 创建路由并注册所有接口
func SetupRoutes(c *container.ServiceContainer) *gin.Engine {
	router := gin.New()

	// 全局中间件
	router.Use(middleware.RecoverMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.ErrorHandlerMiddleware())

	router.SetHTMLTemplate(handlers.Templates())

	statusHandler := handlers.NewStatusHandler(c.GetConfig().Google.APIConfigured(), c.GetCache())
	discoveryHandler := handlers.NewDiscoveryHandler(c.GetDiscoveryService())
	proxyHandler := handlers.NewProxyHandler(c.GetProxyService(), c.GetConfig().Drive.ProxyMaxAge)
	sheetsHandler := handlers.NewSheetsHandler(c.GetSheetsService())

	router.GET("/", statusHandler.Index)

	// Swagger文档路由
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API路由组
	api := router.Group("/api")
	api.Use(middleware.RateLimitMiddleware(c.GetRateLimiter()))
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/status", statusHandler.Status)
		api.GET("/discover/:folderId", discoveryHandler.Discover)
		api.GET("/proxy-image/:fileId", proxyHandler.ProxyImage)
		api.GET("/sheets/:sheetId", sheetsHandler.FetchCSV)
	}

	return router
}
