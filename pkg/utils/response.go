package utils

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse 错误响应，所有接口统一为 {"error": "..."}
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error 写入错误响应
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, ErrorResponse{Error: message})
}

// AbortWithError 写入错误响应并终止后续handler
func AbortWithError(c *gin.Context, httpStatus int, message string) {
	c.AbortWithStatusJSON(httpStatus, ErrorResponse{Error: message})
}
