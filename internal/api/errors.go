package api

import (
	"foodgram/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// 错误码定义
const (
	// 通用错误码
	ErrCodeInvalidRequest = "ERR_INVALID_REQUEST"
	ErrCodeUnauthorized   = "ERR_UNAUTHORIZED"
	ErrCodeForbidden      = "ERR_FORBIDDEN"
	ErrCodeNotFound       = "ERR_NOT_FOUND"
	ErrCodeInternalError  = "ERR_INTERNAL_ERROR"

	// 认证错误码
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeUserDisabled       = "ERR_USER_DISABLED"
	ErrCodeSessionExpired     = "ERR_SESSION_EXPIRED"
	ErrCodeUserNotFound       = "ERR_USER_NOT_FOUND"

	// 业务错误码
	ErrCodeValidation      = "ERR_VALIDATION"
	ErrCodeAlreadyExists   = "ERR_ALREADY_EXISTS"
	ErrCodeRelationMissing = "ERR_RELATION_MISSING"
	ErrCodeSelfReference   = "ERR_SELF_REFERENCE"
	ErrCodeEmptyCart       = "ERR_EMPTY_CART"
)

// APIError 统一的 API 错误响应结构
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse 返回统一格式的错误响应
func ErrorResponse(c *gin.Context, status int, code string, message string) {
	c.JSON(status, APIError{
		Code:    code,
		Message: message,
	})
}

// ErrorResponseWithDetails 返回带详情的错误响应
func ErrorResponseWithDetails(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, APIError{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// BadRequest 400 错误请求
func BadRequest(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusBadRequest, code, message)
}

// Unauthorized 401 未授权
func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

// Forbidden 403 禁止访问
func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, ErrCodeForbidden, message)
}

// NotFound 404 资源不存在
func NotFound(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusNotFound, code, message)
}

// InternalError 500 服务器内部错误
func InternalError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, ErrCodeInternalError, message)
}

// InvalidPayload 无效的请求体
func InvalidPayload(c *gin.Context, err error) {
	details := any(nil)
	if err != nil {
		details = gin.H{"reason": err.Error()}
	}
	ErrorResponseWithDetails(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request payload", details)
}

// statusForKind 返回业务错误对应的 HTTP 状态码与错误码
func statusForKind(kind service.ErrorKind) (int, string) {
	switch kind {
	case service.KindAlreadyExists:
		return http.StatusBadRequest, ErrCodeAlreadyExists
	case service.KindRelationMissing:
		return http.StatusBadRequest, ErrCodeRelationMissing
	case service.KindSelfReference:
		return http.StatusBadRequest, ErrCodeSelfReference
	case service.KindValidation:
		return http.StatusBadRequest, ErrCodeValidation
	case service.KindEmptyCart:
		return http.StatusBadRequest, ErrCodeEmptyCart
	case service.KindNotFound:
		return http.StatusNotFound, ErrCodeNotFound
	case service.KindForbidden:
		return http.StatusForbidden, ErrCodeForbidden
	case service.KindUnauthorized:
		return http.StatusUnauthorized, ErrCodeInvalidCredentials
	default:
		return http.StatusInternalServerError, ErrCodeInternalError
	}
}

// ServiceError 把服务层错误写成响应；非业务错误记录日志并返回 500
func ServiceError(c *gin.Context, err error, op string) {
	if svcErr, ok := service.AsError(err); ok {
		status, code := statusForKind(svcErr.Kind)
		ErrorResponseWithDetails(c, status, code, svcErr.Message, svcErr.Details)
		return
	}
	logrus.WithError(err).WithFields(logrus.Fields{
		"op":     op,
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}).Error("request failed")
	InternalError(c, "internal server error")
}
