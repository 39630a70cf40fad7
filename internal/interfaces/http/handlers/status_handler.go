package handlers

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/easayliu/drive-exhibit-relay/internal/application/contracts"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// CacheStats 缓存统计
type CacheStats interface {
	Entries() int
}

// StatusHandler 服务状态与首页
type StatusHandler struct {
	apiConfigured bool
	cache         CacheStats
	now           func() time.Time
}

// NewStatusHandler 创建状态处理器
func NewStatusHandler(apiConfigured bool, cache CacheStats) *StatusHandler {
	return &StatusHandler{
		apiConfigured: apiConfigured,
		cache:         cache,
		now:           time.Now,
	}
}

// Templates 首页模板，需通过 router.SetHTMLTemplate 注册
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// Status 服务状态
// @Summary 服务状态
// @Description 返回运行状态、API Key是否配置以及缓存条目数
// @Tags 状态
// @Produce json
// @Success 200 {object} contracts.StatusResponse
// @Router /status [get]
func (h *StatusHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, contracts.StatusResponse{
		Status:        "running",
		APIConfigured: h.apiConfigured,
		CacheEntries:  h.cache.Entries(),
		Timestamp:     h.now(),
	})
}

// Index 首页
func (h *StatusHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"APIConfigured": h.apiConfigured,
		"ServerTime":    h.now().Format("2006-01-02 15:04:05"),
	})
}
