package container

import (
	"github.com/easayliu/drive-exhibit-relay/internal/application/contracts"
	"github.com/easayliu/drive-exhibit-relay/internal/application/services/discovery"
	"github.com/easayliu/drive-exhibit-relay/internal/application/services/proxy"
	"github.com/easayliu/drive-exhibit-relay/internal/application/services/task"
	"github.com/easayliu/drive-exhibit-relay/internal/domain/services/image"
	"github.com/easayliu/drive-exhibit-relay/internal/infrastructure/config"
	"github.com/easayliu/drive-exhibit-relay/internal/infrastructure/drive"
	"github.com/easayliu/drive-exhibit-relay/internal/infrastructure/ratelimit"
	"github.com/easayliu/drive-exhibit-relay/internal/infrastructure/sheets"
	"github.com/easayliu/drive-exhibit-relay/internal/infrastructure/telegram"
	"github.com/easayliu/drive-exhibit-relay/pkg/logger"
)

// ServiceContainer 服务容器 - 实现依赖注入
type ServiceContainer struct {
	config *config.Config

	cache            *discovery.Cache
	notifier         *telegram.Notifier
	rateLimiter      *ratelimit.RateLimiter
	schedulerService *task.SchedulerService

	discoveryService contracts.DiscoveryService
	proxyService     contracts.ImageProxyService
	sheetsService    contracts.SheetsService
}

// NewServiceContainer 创建服务容器并初始化所有服务
func NewServiceContainer(cfg *config.Config) (*ServiceContainer, error) {
	c := &ServiceContainer{config: cfg}
	if err := c.initServices(); err != nil {
		return nil, err
	}
	return c, nil
}

// initServices 初始化所有服务
func (c *ServiceContainer) initServices() error {
	logger.Info("Initializing service container")

	if !c.config.Google.APIConfigured() {
		logger.Warn("Google API key not configured, discovery requests will fail upstream")
	}

	// 1. 基础设施层
	c.notifier = telegram.NewNotifier(c.config.Telegram)
	c.rateLimiter = ratelimit.NewRateLimiter(c.config.Server.QPS)

	driveClient := drive.NewClient(c.config.Drive.APIBaseURL, c.config.Google.APIKey, c.config.Drive.ListTimeout)
	driveClient.SetPageSize(c.config.Drive.PageSize)
	downloader := drive.NewDownloader(c.config.Drive.DownloadBaseURL, c.config.Drive.DownloadTimeout)

	// 2. 领域与应用层
	indexer := image.NewIndexer(c.config.Drive.DownloadBaseURL, c.config.Drive.ProxyPath)
	c.cache = discovery.NewCache(c.config.Drive.CacheTTL)
	c.discoveryService = discovery.NewService(c.cache, driveClient, indexer, c.notifier)
	c.proxyService = proxy.NewImageProxy(downloader, c.notifier)
	c.sheetsService = sheets.NewFetcher(c.config.Sheets.BaseURL, c.config.Sheets.Timeout)

	// 3. 预热调度
	if c.config.Prewarm.Enabled {
		scheduler, err := task.NewSchedulerService(c.discoveryService, c.config.Prewarm.Cron, c.config.Prewarm.FolderIDs)
		if err != nil {
			return err
		}
		c.schedulerService = scheduler
	}

	logger.Info("Service container initialized successfully",
		"api_configured", c.config.Google.APIConfigured(),
		"cache_ttl", c.cache.TTL(),
		"qps", c.rateLimiter.GetQPS(),
		"alerts", c.notifier.Enabled(),
		"prewarm", c.schedulerService != nil)
	return nil
}

// GetConfig 获取配置
func (c *ServiceContainer) GetConfig() *config.Config {
	return c.config
}

// GetCache 获取发现缓存
func (c *ServiceContainer) GetCache() *discovery.Cache {
	return c.cache
}

// GetDiscoveryService 获取发现服务
func (c *ServiceContainer) GetDiscoveryService() contracts.DiscoveryService {
	return c.discoveryService
}

// GetProxyService 获取图片代理服务
func (c *ServiceContainer) GetProxyService() contracts.ImageProxyService {
	return c.proxyService
}

// GetSheetsService 获取表格服务
func (c *ServiceContainer) GetSheetsService() contracts.SheetsService {
	return c.sheetsService
}

// GetRateLimiter 获取入口限流器
func (c *ServiceContainer) GetRateLimiter() *ratelimit.RateLimiter {
	return c.rateLimiter
}

// Start 启动后台任务
func (c *ServiceContainer) Start() error {
	if c.schedulerService == nil {
		return nil
	}
	if err := c.schedulerService.Start(); err != nil {
		return err
	}
	// 启动时先预热一次
	go c.schedulerService.RunOnce()
	return nil
}

// Shutdown 关闭服务容器
func (c *ServiceContainer) Shutdown() {
	logger.Info("Shutting down service container")

	if c.schedulerService != nil {
		c.schedulerService.Stop()
	}
	c.notifier.Wait()

	logger.Info("Service container shutdown completed")
}
