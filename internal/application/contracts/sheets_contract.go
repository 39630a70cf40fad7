package contracts

import (
	"context"
	"time"
)

// TabularFetchResult 表格CSV获取结果，成功与失败共用
type TabularFetchResult struct {
	Success      bool       `json:"success"`
	CSVData      string     `json:"csv_data,omitempty"`
	URLUsed      string     `json:"url_used,omitempty"`
	Timestamp    *time.Time `json:"timestamp,omitempty"`
	Error        string     `json:"error,omitempty"`
	TriedFormats int        `json:"tried_formats,omitempty"`
}

// SheetsService 已发布表格的CSV获取
type SheetsService interface {
	FetchCSV(ctx context.Context, sheetID string) *TabularFetchResult
}
