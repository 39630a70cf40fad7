package contracts

import "time"

// StatusResponse 服务状态
type StatusResponse struct {
	Status        string    `json:"status"`
	APIConfigured bool      `json:"api_configured"`
	CacheEntries  int       `json:"cache_entries"`
	Timestamp     time.Time `json:"timestamp"`
}

// AlertNotifier 上游失败告警
type AlertNotifier interface {
	NotifyUpstreamFailure(operation, resourceID string, err error)
}
