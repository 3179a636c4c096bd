// Package validation 表单校验：项目创建表单与贡献金额。
// 所有函数均为纯函数，校验失败以返回值表达，不会panic。
package validation

import (
	"fmt"
	"strings"
)

// Code 校验错误类别
type Code string

const (
	RequiredField    Code = "RequiredField"
	LengthOutOfRange Code = "LengthOutOfRange"
	FormatInvalid    Code = "FormatInvalid"
	RangeInvalid     Code = "RangeInvalid"
	PastDate         Code = "PastDate"
	OrderInvalid     Code = "OrderInvalid"
	BelowMinimum     Code = "BelowMinimum"
	AboveMaximum     Code = "AboveMaximum"
)

// FieldError 单个字段错误
type FieldError struct {
	Field   string `json:"field"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// Result 校验结果，Errors 保持字段声明顺序
type Result struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors"`
}

func newResult(errs []FieldError) Result {
	if errs == nil {
		errs = []FieldError{}
	}
	return Result{Valid: len(errs) == 0, Errors: errs}
}

// Merge 追加另一个结果的错误
func (r Result) Merge(other Result) Result {
	errs := make([]FieldError, 0, len(r.Errors)+len(other.Errors))
	errs = append(errs, r.Errors...)
	errs = append(errs, other.Errors...)
	return newResult(errs)
}

// Has 是否包含指定字段与类别的错误
func (r Result) Has(field string, code Code) bool {
	for _, e := range r.Errors {
		if e.Field == field && e.Code == code {
			return true
		}
	}
	return false
}

// FirstMessage 第一条错误信息，贡献表单只展示这一条
func (r Result) FirstMessage() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// Err 校验失败时返回 *Error，否则返回nil
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &Error{Result: r}
}

// Error 包装校验失败的结果，供logic层向上返回
type Error struct {
	Result Result
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Result.Errors))
	for _, fe := range e.Result.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
