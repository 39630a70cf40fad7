package middleware

import (
	stderrors "errors"
	"net/http"

	apperrors "github.com/easayliu/drive-exhibit-relay/internal/shared/errors"
	"github.com/easayliu/drive-exhibit-relay/pkg/logger"
	"github.com/easayliu/drive-exhibit-relay/pkg/utils"
	"github.com/gin-gonic/gin"
)

// ErrorHandlerMiddleware 统一错误处理中间件
// handler通过c.Error设置错误，这里转换为 {"error": message} 响应
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		utils.Error(c, apperrors.HTTPStatus(err), ErrorMessage(err))
	}
}

// ErrorMessage 返回给客户端的错误信息
// 业务错误只返回Message，其余错误返回脱敏后的原始信息
func ErrorMessage(err error) string {
	var serviceErr *apperrors.ServiceError
	if stderrors.As(err, &serviceErr) {
		return serviceErr.Message
	}
	return logger.SanitizeString(err.Error())
}

// RecoverMiddleware 恢复中间件 - 捕获panic并转换为500错误
func RecoverMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered", "path", c.Request.URL.Path, "panic", err)
				utils.AbortWithError(c, http.StatusInternalServerError, "Internal server error")
			}
		}()
		c.Next()
	}
}
