package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrorKind 标识面向用户的业务错误类别。
type ErrorKind string

const (
	KindAlreadyExists   ErrorKind = "already_exists"
	KindNotFound        ErrorKind = "not_found"
	KindRelationMissing ErrorKind = "relation_missing"
	KindSelfReference   ErrorKind = "self_reference"
	KindForbidden       ErrorKind = "forbidden"
	KindValidation      ErrorKind = "validation"
	KindEmptyCart       ErrorKind = "empty_cart"
	KindUnauthorized    ErrorKind = "unauthorized"
)

// Error 是可以直接返回给客户端的业务错误。
type Error struct {
	Kind    ErrorKind
	Message string
	Details interface{}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// AsError 从错误链中提取 *Error。
func AsError(err error) (*Error, bool) {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}

// IsKind 报告 err 是否为指定类别的业务错误。
func IsKind(err error, kind ErrorKind) bool {
	svcErr, ok := AsError(err)
	return ok && svcErr.Kind == kind
}

// notFoundOr 把 gorm.ErrRecordNotFound 转成 NotFound，其他错误原样包装。
func notFoundOr(err error, message, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return newError(KindNotFound, message)
	}
	return fmt.Errorf("%s: %w", op, err)
}
