package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode 业务错误码
type ErrorCode string

const (
	ErrorCodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
	ErrorCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrorCodeInternalError      ErrorCode = "INTERNAL_ERROR"
	ErrorCodeUpstream           ErrorCode = "UPSTREAM_ERROR"
	ErrorCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	ErrorCodeRateLimit          ErrorCode = "RATE_LIMIT"
)

// ServiceError 业务错误
type ServiceError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

func (e *ServiceError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// NewServiceError 创建业务错误
func NewServiceError(code ErrorCode, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// NewServiceErrorWithCause 创建带原因的业务错误
func NewServiceErrorWithCause(code ErrorCode, message string, cause error) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError 调用方参数缺失或非法
func NewValidationError(message string) *ServiceError {
	return NewServiceError(ErrorCodeInvalidRequest, message)
}

// NewInternalError 处理过程中的意外错误
func NewInternalError(message string, cause error) *ServiceError {
	return NewServiceErrorWithCause(ErrorCodeInternalError, message, cause)
}

// UpstreamKind 上游错误类别
type UpstreamKind string

const (
	// UpstreamNetwork 超时或连接失败
	UpstreamNetwork UpstreamKind = "network"
	// UpstreamStatus 上游返回非2xx
	UpstreamStatus UpstreamKind = "status"
	// UpstreamShape 响应内容无法按预期解析
	UpstreamShape UpstreamKind = "shape"
)

// UpstreamError 调用第三方服务失败，不重试
type UpstreamError struct {
	Kind       UpstreamKind
	Operation  string
	StatusCode int
	Body       string
	Cause      error
}

func (e *UpstreamError) Error() string {
	switch e.Kind {
	case UpstreamStatus:
		return fmt.Sprintf("%s: upstream returned status %d: %s", e.Operation, e.StatusCode, e.Body)
	default:
		if e.Cause != nil {
			return fmt.Sprintf("%s: upstream %s error: %v", e.Operation, e.Kind, e.Cause)
		}
		return fmt.Sprintf("%s: upstream %s error", e.Operation, e.Kind)
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// Timeout 是否为超时导致
func (e *UpstreamError) Timeout() bool {
	return e.Kind == UpstreamNetwork && stderrors.Is(e.Cause, context.DeadlineExceeded)
}

// NewNetworkError 构造网络类上游错误
func NewNetworkError(operation string, cause error) *UpstreamError {
	return &UpstreamError{Kind: UpstreamNetwork, Operation: operation, Cause: cause}
}

// NewStatusError 构造状态码类上游错误
func NewStatusError(operation string, statusCode int, body string) *UpstreamError {
	return &UpstreamError{Kind: UpstreamStatus, Operation: operation, StatusCode: statusCode, Body: body}
}

// NewShapeError 构造响应格式类上游错误
func NewShapeError(operation string, cause error) *UpstreamError {
	return &UpstreamError{Kind: UpstreamShape, Operation: operation, Cause: cause}
}

// IsValidation 是否为参数校验错误
func IsValidation(err error) bool {
	var serviceErr *ServiceError
	return stderrors.As(err, &serviceErr) && serviceErr.Code == ErrorCodeInvalidRequest
}

// AsUpstream 提取上游错误
func AsUpstream(err error) (*UpstreamError, bool) {
	var upstreamErr *UpstreamError
	if stderrors.As(err, &upstreamErr) {
		return upstreamErr, true
	}
	return nil, false
}

// HTTPStatus 将错误映射到HTTP状态码
func HTTPStatus(err error) int {
	var serviceErr *ServiceError
	if stderrors.As(err, &serviceErr) {
		switch serviceErr.Code {
		case ErrorCodeInvalidRequest:
			return http.StatusBadRequest
		case ErrorCodeNotFound:
			return http.StatusNotFound
		case ErrorCodeRateLimit:
			return http.StatusTooManyRequests
		case ErrorCodeServiceUnavailable:
			return http.StatusServiceUnavailable
		}
	}
	return http.StatusInternalServerError
}
