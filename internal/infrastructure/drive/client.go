package drive

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/easayliu/drive-exhibit-relay/internal/domain/entities"
	apperrors "github.com/easayliu/drive-exhibit-relay/internal/shared/errors"
	"github.com/easayliu/drive-exhibit-relay/pkg/httpclient"
	"github.com/easayliu/drive-exhibit-relay/pkg/logger"
)

const (
	defaultTimeout = 10 * time.Second
	maxPageSize    = 1000
	operationList  = "list drive files"
	DefaultBaseURL = "https://www.googleapis.com/drive/v3"
)

// Client Google Drive files.list 客户端
type Client struct {
	BaseURL    string
	APIKey     string
	PageSize   int
	Timeout    time.Duration
	httpClient *http.Client
}

// NewClient 创建新的Drive客户端
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		PageSize:   maxPageSize,
		Timeout:    timeout,
		httpClient: &http.Client{},
	}
}

// SetPageSize 设置单页数量，上限1000
func (c *Client) SetPageSize(pageSize int) {
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	c.PageSize = pageSize
}

// ListFiles 列出文件夹下的文件，只取第一页，不重试
func (c *Client) ListFiles(ctx context.Context, folderID string) ([]entities.DriveFile, error) {
	query := url.Values{}
	query.Set("q", parentQuery(folderID))
	query.Set("key", c.APIKey)
	query.Set("fields", listFields)
	query.Set("pageSize", strconv.Itoa(c.PageSize))

	logger.Debug("Fetching files from Google Drive folder", "folder_id", folderID, "page_size", c.PageSize)

	opts := httpclient.DefaultOptions().
		WithContext(ctx).
		WithClient(c.httpClient).
		WithTimeout(c.Timeout)

	var listResp FileListResponse
	if err := httpclient.GetJSON(c.BaseURL+"/files", query, &listResp, opts); err != nil {
		return nil, classify(err)
	}

	if listResp.NextPageToken != "" {
		logger.Warn("Folder listing truncated to first page", "folder_id", folderID, "page_size", c.PageSize)
	}

	files := make([]entities.DriveFile, 0, len(listResp.Files))
	for _, item := range listResp.Files {
		logger.Debug("Drive file", "name", item.Name, "mime_type", item.MimeType)
		files = append(files, item.toEntity())
	}

	logger.Info("Drive files listed", "folder_id", folderID, "count", len(files))
	return files, nil
}

// parentQuery 构造 "'<id>' in parents" 查询表达式
func parentQuery(folderID string) string {
	escaped := strings.ReplaceAll(folderID, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `'`, `\'`)
	return fmt.Sprintf("'%s' in parents", escaped)
}

// classify 将httpclient错误转换为上游错误
func classify(err error) error {
	var statusErr *httpclient.StatusError
	switch {
	case errors.As(err, &statusErr):
		return apperrors.NewStatusError(operationList, statusErr.StatusCode, statusErr.Body)
	case errors.Is(err, httpclient.ErrDecode):
		return apperrors.NewShapeError(operationList, err)
	default:
		return apperrors.NewNetworkError(operationList, err)
	}
}
