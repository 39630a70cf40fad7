package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/easayliu/drive-exhibit-relay/internal/application/contracts"
	"github.com/gin-gonic/gin"
)

// ProxyHandler 同源图片代理
type ProxyHandler struct {
	proxy  contracts.ImageProxyService
	maxAge time.Duration
}

// NewProxyHandler 创建代理处理器，maxAge 控制浏览器缓存时长
func NewProxyHandler(proxy contracts.ImageProxyService, maxAge time.Duration) *ProxyHandler {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &ProxyHandler{proxy: proxy, maxAge: maxAge}
}

// ProxyImage 代理单张图片
// @Summary 代理图片
// @Description 从Google Drive下载图片并原样返回，避免浏览器跨域限制
// @Tags 图片
// @Produce image/jpeg
// @Param fileId path string true "Google Drive 文件ID"
// @Success 200 {file} binary
// @Failure 400 {object} utils.ErrorResponse "缺少文件ID"
// @Failure 500 {object} utils.ErrorResponse "上游请求失败"
// @Router /proxy-image/{fileId} [get]
func (h *ProxyHandler) ProxyImage(c *gin.Context) {
	ctx := context.WithoutCancel(c.Request.Context())

	payload, err := h.proxy.Fetch(ctx, c.Param("fileId"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", int(h.maxAge.Seconds())))
	c.Header("Access-Control-Allow-Origin", "*")
	c.Data(http.StatusOK, payload.ContentType, payload.Body)
}
