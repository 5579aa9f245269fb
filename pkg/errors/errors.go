package errors

import (
	"errors"
	"fmt"
)

// Kind 业务错误类型，由 HTTP 边界映射为状态码
type Kind int

const (
	KindUnexpected   Kind = iota // 500
	KindInvalidInput             // 400
	KindNotFound                 // 404
)

// String 返回错误类型名称
func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "InvalidInput"
	case KindNotFound:
		return "NotFound"
	default:
		return "Unexpected"
	}
}

// Error 携带类型与提示信息的业务错误
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// InvalidInput 请求参数非法（日期格式错误或超出范围）
func InvalidInput(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// NotFound 找不到对应的排班数据
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Unexpected 其他错误；消息直接沿用底层错误
func Unexpected(err error) *Error {
	return &Error{Kind: KindUnexpected, Err: err}
}

// KindOf 提取错误类型，非 *Error 一律视为 KindUnexpected
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}
