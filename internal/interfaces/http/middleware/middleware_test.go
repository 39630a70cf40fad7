package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/easayliu/drive-exhibit-relay/internal/infrastructure/ratelimit"
	apperrors "github.com/easayliu/drive-exhibit-relay/internal/shared/errors"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorHandlerMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"参数错误", apperrors.NewValidationError("No folder ID provided"), http.StatusBadRequest, `{"error":"No folder ID provided"}`},
		{"业务错误只返回Message", apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeUpstream, "Failed to fetch files from Google Drive", errors.New("key=secret")), http.StatusInternalServerError, `{"error":"Failed to fetch files from Google Drive"}`},
		{"上游错误脱敏", apperrors.NewNetworkError("download", errors.New("GET https://x/files?key=AIzaXYZ failed")), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(ErrorHandlerMiddleware())
			router.GET("/x", func(c *gin.Context) { _ = c.Error(tt.err) })

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantBody != "" && w.Body.String() != tt.wantBody {
				t.Errorf("body = %s, want %s", w.Body.String(), tt.wantBody)
			}
			if strings.Contains(w.Body.String(), "AIzaXYZ") || strings.Contains(w.Body.String(), "secret") {
				t.Errorf("body leaked credential: %s", w.Body.String())
			}
		})
	}
}

func TestRecoverMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RecoverMiddleware())
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if w.Body.String() != `{"error":"Internal server error"}` {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestCORSMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(CORSMiddleware())
	router.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/x", nil))
	if w.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", w.Code)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	generated := w.Header().Get(RequestIDHeader)
	if len(generated) != 36 || w.Body.String() != generated {
		t.Errorf("expected generated uuid, header=%q body=%q", generated, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "client-id")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Header().Get(RequestIDHeader) != "client-id" {
		t.Errorf("client request id should be kept, got %q", w.Header().Get(RequestIDHeader))
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RateLimitMiddleware(ratelimit.NewRateLimiter(1)))
	router.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", w.Code)
	}
	if w.Body.String() != `{"error":"Too many requests"}` {
		t.Errorf("body = %s", w.Body.String())
	}
}
