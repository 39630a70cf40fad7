package handlers

import (
	"context"
	"net/http"

	"github.com/easayliu/drive-exhibit-relay/internal/application/contracts"
	"github.com/gin-gonic/gin"
)

// SheetsHandler 已发布表格CSV
type SheetsHandler struct {
	service contracts.SheetsService
}

// NewSheetsHandler 创建表格处理器
func NewSheetsHandler(service contracts.SheetsService) *SheetsHandler {
	return &SheetsHandler{service: service}
}

// FetchCSV 获取表格CSV文本
// @Summary 获取表格数据
// @Description 依次尝试多种公开导出地址，返回第一个可用的CSV
// @Tags 表格
// @Produce json
// @Param sheetId path string true "Google Sheets ID"
// @Success 200 {object} contracts.TabularFetchResult
// @Failure 500 {object} contracts.TabularFetchResult "所有导出形式均失败"
// @Router /sheets/{sheetId} [get]
func (h *SheetsHandler) FetchCSV(c *gin.Context) {
	ctx := context.WithoutCancel(c.Request.Context())

	result := h.service.FetchCSV(ctx, c.Param("sheetId"))
	if !result.Success {
		c.JSON(http.StatusInternalServerError, result)
		return
	}

	c.JSON(http.StatusOK, result)
}
