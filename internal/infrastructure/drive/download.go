package drive

import (
	"context"
	"net/http"
	"time"

	"github.com/easayliu/drive-exhibit-relay/internal/domain/services/image"
	apperrors "github.com/easayliu/drive-exhibit-relay/internal/shared/errors"
	"github.com/easayliu/drive-exhibit-relay/pkg/httpclient"
	"github.com/easayliu/drive-exhibit-relay/pkg/logger"
)

const (
	defaultDownloadTimeout = 30 * time.Second
	operationDownload      = "download drive file"
	DefaultDownloadBaseURL = "https://drive.google.com/uc"
)

// Downloader 通过公开下载地址获取文件内容
type Downloader struct {
	BaseURL    string
	Timeout    time.Duration
	httpClient *http.Client
}

// NewDownloader 创建下载器
func NewDownloader(baseURL string, timeout time.Duration) *Downloader {
	if baseURL == "" {
		baseURL = DefaultDownloadBaseURL
	}
	if timeout <= 0 {
		timeout = defaultDownloadTimeout
	}
	return &Downloader{
		BaseURL:    baseURL,
		Timeout:    timeout,
		httpClient: &http.Client{},
	}
}

// Download 下载文件，非2xx返回上游状态错误
func (d *Downloader) Download(ctx context.Context, fileID string) (*httpclient.Response, error) {
	downloadURL := image.DownloadURL(d.BaseURL, fileID)
	logger.Debug("Fetching drive file", "file_id", fileID, "url", downloadURL)

	opts := httpclient.DefaultOptions().
		WithContext(ctx).
		WithClient(d.httpClient).
		WithTimeout(d.Timeout)

	resp, err := httpclient.Get(downloadURL, nil, opts)
	if err != nil {
		return nil, apperrors.NewNetworkError(operationDownload, err)
	}

	logger.Debug("Drive download response", "file_id", fileID, "status", resp.StatusCode, "bytes", len(resp.Body))

	if !resp.OK() {
		return nil, apperrors.NewStatusError(operationDownload, resp.StatusCode, truncateBody(resp.Body))
	}
	return resp, nil
}

// truncateBody 错误信息中只保留响应体开头部分
func truncateBody(body []byte) string {
	const limit = 256
	if len(body) <= limit {
		return string(body)
	}
	return string(body[:limit]) + "..."
}
