package sheets

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/easayliu/drive-exhibit-relay/internal/application/contracts"
	"github.com/easayliu/drive-exhibit-relay/pkg/httpclient"
	"github.com/easayliu/drive-exhibit-relay/pkg/logger"
)

const (
	defaultTimeout = 10 * time.Second

	// MsgAllFormatsFailed 所有导出形式均失败时的提示
	MsgAllFormatsFailed = "All URL formats failed. Make sure sheet is published to web as CSV"
)

// Fetcher 依次尝试多种导出地址，直到拿到可用的CSV
type Fetcher struct {
	baseURL    string
	timeout    time.Duration
	formats    []Format
	httpClient *http.Client
	now        func() time.Time
}

// NewFetcher 创建CSV获取器
func NewFetcher(baseURL string, timeout time.Duration) *Fetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Fetcher{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		formats:    DefaultFormats,
		httpClient: &http.Client{},
		now:        time.Now,
	}
}

// Formats 返回尝试顺序
func (f *Fetcher) Formats() []Format {
	return f.formats
}

// FetchCSV 按顺序尝试每种形式，第一种成功即返回；从不返回error
func (f *Fetcher) FetchCSV(ctx context.Context, sheetID string) *contracts.TabularFetchResult {
	if sheetID == "" {
		return &contracts.TabularFetchResult{
			Success: false,
			Error:   "No sheet ID provided",
		}
	}

	for i, format := range f.formats {
		sheetsURL := format.URL(f.baseURL, sheetID)
		logger.Info("Trying sheets format", "attempt", i+1, "format", format.Name, "url", sheetsURL)

		csvText, err := f.try(ctx, sheetsURL)
		if err != nil {
			logger.Warn("Sheets format failed", "attempt", i+1, "format", format.Name, "error", err)
			continue
		}

		logger.Info("Sheets CSV fetched", "attempt", i+1, "format", format.Name, "chars", len(csvText))
		ts := f.now()
		return &contracts.TabularFetchResult{
			Success:   true,
			CSVData:   csvText,
			URLUsed:   sheetsURL,
			Timestamp: &ts,
		}
	}

	return &contracts.TabularFetchResult{
		Success:      false,
		Error:        MsgAllFormatsFailed,
		TriedFormats: len(f.formats),
	}
}

// try 单次尝试，返回经过校验的CSV文本
func (f *Fetcher) try(ctx context.Context, sheetsURL string) (string, error) {
	opts := httpclient.DefaultOptions().
		WithContext(ctx).
		WithClient(f.httpClient).
		WithTimeout(f.timeout)

	resp, err := httpclient.Get(sheetsURL, nil, opts)
	if err != nil {
		return "", err
	}

	// 未发布或无权限时上游返回HTML页面而不是CSV
	mediaType, params := resp.MediaType()
	if isMarkup(mediaType) {
		return "", fmt.Errorf("got %s instead of CSV", mediaType)
	}

	if !resp.OK() {
		return "", &httpclient.StatusError{StatusCode: resp.StatusCode, Body: truncate(string(resp.Body), 200)}
	}

	text, err := decodeText(resp.Body, params["charset"])
	if err != nil {
		return "", err
	}
	text = strings.TrimPrefix(text, "\ufeff")

	if !looksLikeCSV(text) {
		return "", fmt.Errorf("response doesn't look like CSV (%d chars)", len(text))
	}
	return text, nil
}

func isMarkup(mediaType string) bool {
	return strings.Contains(mediaType, "text/html") || strings.Contains(mediaType, "xhtml")
}

// looksLikeCSV 非空且至少包含逗号或换行
func looksLikeCSV(text string) bool {
	return text != "" && strings.ContainsAny(text, ",\n")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
