package contracts

import (
	"context"
	"time"

	"github.com/easayliu/drive-exhibit-relay/internal/domain/entities"
)

// DiscoveryResult 文件夹图片发现结果
type DiscoveryResult struct {
	Success    bool                       `json:"success"`
	Images     map[int]entities.ImageView `json:"images"`
	TotalFound int                        `json:"total_found"`
	FolderID   string                     `json:"folder_id"`
	Timestamp  time.Time                  `json:"timestamp"`
}

// FileLister 列出上游文件夹内容
type FileLister interface {
	ListFiles(ctx context.Context, folderID string) ([]entities.DriveFile, error)
}

// ImageIndexer 过滤图片并按序号排序
type ImageIndexer interface {
	FilterAndIndex(files []entities.DriveFile) []entities.ImageRecord
}

// DiscoveryService 图片发现服务
type DiscoveryService interface {
	Discover(ctx context.Context, folderID string) (*DiscoveryResult, error)
}
