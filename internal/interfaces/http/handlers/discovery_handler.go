package handlers

import (
	"context"
	"net/http"

	"github.com/easayliu/drive-exhibit-relay/internal/application/contracts"
	"github.com/gin-gonic/gin"
)

// DiscoveryHandler 文件夹图片发现
type DiscoveryHandler struct {
	service contracts.DiscoveryService
}

// NewDiscoveryHandler 创建发现处理器
func NewDiscoveryHandler(service contracts.DiscoveryService) *DiscoveryHandler {
	return &DiscoveryHandler{service: service}
}

// Discover 获取文件夹下按序号排列的图片
// @Summary 发现文件夹图片
// @Description 列出文件夹中文件名带数字的图片，按数字序号返回映射，结果缓存30秒
// @Tags 图片
// @Produce json
// @Param folderId path string true "Google Drive 文件夹ID"
// @Success 200 {object} contracts.DiscoveryResult
// @Failure 400 {object} utils.ErrorResponse "缺少文件夹ID"
// @Failure 500 {object} utils.ErrorResponse "上游请求失败"
// @Router /discover/{folderId} [get]
func (h *DiscoveryHandler) Discover(c *gin.Context) {
	// 客户端断开不影响上游请求和缓存回写
	ctx := context.WithoutCancel(c.Request.Context())

	result, err := h.service.Discover(ctx, c.Param("folderId"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}
