package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/easayliu/drive-exhibit-relay/internal/application/container"
	"github.com/easayliu/drive-exhibit-relay/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T, upstream string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server: config.ServerConfig{QPS: 0},
		Google: config.GoogleConfig{APIKey: config.PlaceholderAPIKey},
		Drive: config.DriveConfig{
			APIBaseURL:      upstream,
			DownloadBaseURL: upstream + "/uc",
			ProxyPath:       "/api/proxy-image",
			PageSize:        1000,
			ListTimeout:     time.Second,
			DownloadTimeout: time.Second,
			CacheTTL:        30 * time.Second,
			ProxyMaxAge:     time.Hour,
		},
		Sheets: config.SheetsConfig{BaseURL: upstream, Timeout: time.Second},
	}

	c, err := container.NewServiceContainer(cfg)
	if err != nil {
		t.Fatalf("NewServiceContainer() error = %v", err)
	}
	t.Cleanup(c.Shutdown)
	return SetupRoutes(c)
}

func TestSetupRoutes(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/uc":
			w.Header().Set("Content-Type", "image/webp")
			w.Write([]byte("webp-bytes"))
		case "/files":
			w.Write([]byte(`{"files":[]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer upstream.Close()

	router := newTestRouter(t, upstream.URL)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"首页", "/", http.StatusOK, "Drive Exhibit Relay"},
		{"健康检查", "/api/health", http.StatusOK, `"status":"ok"`},
		{"状态", "/api/status", http.StatusOK, `"api_configured":false`},
		{"空文件夹", "/api/discover/folder", http.StatusOK, `"total_found":0`},
		{"图片代理", "/api/proxy-image/f1", http.StatusOK, "webp-bytes"},
		{"表格全部失败", "/api/sheets/s1", http.StatusInternalServerError, `"tried_formats":4`},
		{"未知路由", "/api/unknown", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d, body = %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Errorf("body %q should contain %q", w.Body.String(), tt.wantBody)
			}
			if w.Header().Get("X-Request-ID") == "" {
				t.Error("every response should carry a request id")
			}
		})
	}
}
