package proxy

import (
	"context"

	"github.com/easayliu/drive-exhibit-relay/internal/application/contracts"
	apperrors "github.com/easayliu/drive-exhibit-relay/internal/shared/errors"
	"github.com/easayliu/drive-exhibit-relay/pkg/httpclient"
	"github.com/easayliu/drive-exhibit-relay/pkg/logger"
)

// DefaultContentType 上游未返回Content-Type时使用
const DefaultContentType = "image/jpeg"

// FileDownloader 下载上游文件
type FileDownloader interface {
	Download(ctx context.Context, fileID string) (*httpclient.Response, error)
}

// ImageProxy 同源图片代理，内容不做缓存
type ImageProxy struct {
	downloader FileDownloader
	notifier   contracts.AlertNotifier
}

// NewImageProxy 创建图片代理，notifier 可为 nil
func NewImageProxy(downloader FileDownloader, notifier contracts.AlertNotifier) *ImageProxy {
	return &ImageProxy{
		downloader: downloader,
		notifier:   notifier,
	}
}

// Fetch 获取图片原始内容与类型
func (p *ImageProxy) Fetch(ctx context.Context, fileID string) (*contracts.ImagePayload, error) {
	if fileID == "" {
		return nil, apperrors.NewValidationError("No file ID provided")
	}

	logger.Info("Proxying image", "file_id", fileID)

	resp, err := p.downloader.Download(ctx, fileID)
	if err != nil {
		logger.Error("Proxy image error", "file_id", fileID, "error", err)
		if p.notifier != nil {
			p.notifier.NotifyUpstreamFailure("proxy-image", fileID, err)
		}
		return nil, err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = DefaultContentType
	}

	return &contracts.ImagePayload{
		Body:        resp.Body,
		ContentType: contentType,
	}, nil
}
