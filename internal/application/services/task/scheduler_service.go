package task

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/easayliu/drive-exhibit-relay/internal/application/contracts"
	"github.com/easayliu/drive-exhibit-relay/pkg/logger"
	"github.com/robfig/cron/v3"
)

const prewarmTimeout = time.Minute

// SchedulerService 定时预热文件夹缓存
// 预热走正常的Discover路径，结果写入同一个缓存
type SchedulerService struct {
	cron      *cron.Cron
	discovery contracts.DiscoveryService
	spec      string
	folderIDs []string
	entryID   cron.EntryID
	mu        sync.Mutex
	running   bool
}

// NewSchedulerService 创建预热调度器，spec为标准5字段cron表达式（分 时 日 月 周）
func NewSchedulerService(discovery contracts.DiscoveryService, spec string, folderIDs []string) (*SchedulerService, error) {
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("invalid cron expression: %w", err)
	}
	return &SchedulerService{
		cron:      cron.New(),
		discovery: discovery,
		spec:      spec,
		folderIDs: append([]string(nil), folderIDs...),
	}, nil
}

// Start 启动调度器
func (s *SchedulerService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}
	if len(s.folderIDs) == 0 {
		logger.Info("No folders configured for prewarm, scheduler not started")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.spec, s.RunOnce)
	if err != nil {
		return fmt.Errorf("failed to schedule prewarm: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.running = true
	logger.Info("Prewarm scheduler started", "cron", s.spec, "folders", len(s.folderIDs),
		"next_run", s.cron.Entry(entryID).Next)
	return nil
}

// Stop 停止调度器并等待正在执行的任务结束
func (s *SchedulerService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)
	s.running = false
	logger.Info("Prewarm scheduler stopped")
}

// IsRunning 调度器是否在运行
func (s *SchedulerService) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// RunOnce 依次预热每个文件夹，单个失败不影响其余
func (s *SchedulerService) RunOnce() {
	start := time.Now()
	warmed := 0

	for _, folderID := range s.folderIDs {
		ctx, cancel := context.WithTimeout(context.Background(), prewarmTimeout)
		result, err := s.discovery.Discover(ctx, folderID)
		cancel()
		if err != nil {
			logger.Warn("Prewarm failed", "folder_id", folderID, "error", err)
			continue
		}
		warmed++
		logger.Debug("Folder prewarmed", "folder_id", folderID, "images", result.TotalFound)
	}

	logger.Info("Prewarm finished", "warmed", warmed, "total", len(s.folderIDs),
		"duration", time.Since(start))
}
