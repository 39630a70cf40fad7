package discovery

import (
	"context"
	"time"

	"github.com/easayliu/drive-exhibit-relay/internal/application/contracts"
	"github.com/easayliu/drive-exhibit-relay/internal/domain/entities"
	apperrors "github.com/easayliu/drive-exhibit-relay/internal/shared/errors"
	"github.com/easayliu/drive-exhibit-relay/pkg/logger"
)

// MsgFetchFailed 上游列表失败时返回给前端的信息
const MsgFetchFailed = "Failed to fetch files from Google Drive"

// Service 图片发现服务：缓存 -> Drive列表 -> 过滤排序 -> 回写缓存
type Service struct {
	cache    *Cache
	lister   contracts.FileLister
	indexer  contracts.ImageIndexer
	notifier contracts.AlertNotifier
	now      func() time.Time
}

// NewService 创建图片发现服务，notifier 可为 nil
func NewService(cache *Cache, lister contracts.FileLister, indexer contracts.ImageIndexer, notifier contracts.AlertNotifier) *Service {
	return &Service{
		cache:    cache,
		lister:   lister,
		indexer:  indexer,
		notifier: notifier,
		now:      time.Now,
	}
}

// SetClock 替换时钟（测试用）
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Cache 返回使用的缓存
func (s *Service) Cache() *Cache {
	return s.cache
}

// Discover 获取文件夹下按序号映射的图片
func (s *Service) Discover(ctx context.Context, folderID string) (*contracts.DiscoveryResult, error) {
	if folderID == "" {
		return nil, apperrors.NewValidationError("No folder ID provided")
	}

	images, err := s.images(ctx, folderID)
	if err != nil {
		return nil, err
	}

	// 相同序号时，序列中靠后的记录覆盖靠前的
	mapping := make(map[int]entities.ImageView, len(images))
	for _, image := range images {
		mapping[image.Index] = image.View()
	}

	return &contracts.DiscoveryResult{
		Success:    true,
		Images:     mapping,
		TotalFound: len(images),
		FolderID:   folderID,
		Timestamp:  s.now(),
	}, nil
}

func (s *Service) images(ctx context.Context, folderID string) ([]entities.ImageRecord, error) {
	if cached, ok := s.cache.Lookup(folderID); ok {
		logger.Info("Returning cached data", "folder_id", folderID, "files", len(cached))
		return cached, nil
	}

	files, err := s.lister.ListFiles(ctx, folderID)
	if err != nil {
		logger.Error("Drive listing failed", "folder_id", folderID, "error", err)
		if s.notifier != nil {
			s.notifier.NotifyUpstreamFailure("discover", folderID, err)
		}
		if _, ok := apperrors.AsUpstream(err); ok {
			return nil, apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeUpstream, MsgFetchFailed, err)
		}
		return nil, apperrors.NewInternalError(MsgFetchFailed, err)
	}

	images := s.indexer.FilterAndIndex(files)
	s.cache.Store(folderID, images)

	logger.Info("Found matching images", "folder_id", folderID, "total_files", len(files), "images", len(images))
	return images, nil
}
