// Package apperr 定义 tokount 的错误分类。
//
// 致命错误（InvalidArgs、NotFound、IoError）在任何统计开始之前中止运行，
// 单文件错误（DecodeError、TransientIoError）只会让该文件被跳过。
package apperr

import (
	"errors"
	"fmt"
)

// Kind 是错误类别，同时也是对外错误载荷中的 kind 字段。
type Kind string

const (
	InvalidArgs      Kind = "InvalidArgs"
	NotFound         Kind = "NotFound"
	IoError          Kind = "IoError"
	DecodeError      Kind = "DecodeError"
	TransientIoError Kind = "TransientIoError"
)

// IsFatal 判断该类别是否会中止整次运行。
func (k Kind) IsFatal() bool {
	switch k {
	case InvalidArgs, NotFound, IoError:
		return true
	default:
		return false
	}
}

// Error 是带类别的错误。
type Error struct {
	Kind    Kind
	Message string
	Details map[string]string
	Err     error
}

// New 创建一个不包裹底层错误的分类错误。
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap 创建一个包裹底层错误的分类错误，底层错误文本会写入 details.error。
func Wrap(kind Kind, message string, err error) *Error {
	e := &Error{Kind: kind, Message: message, Err: err}
	if err != nil {
		e.Details = map[string]string{"error": err.Error()}
	}
	return e
}

// WithDetail 追加一条详情并返回自身，便于链式构造。
func (e *Error) WithDetail(key string, value string) *Error {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf 返回错误链上第一个分类错误的类别。
// 未分类的错误返回空字符串。
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// As 是 errors.As 的便捷封装。
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
