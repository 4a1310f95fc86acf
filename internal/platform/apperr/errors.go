// Package apperr defines the error kinds understood by the HTTP error handler.
// Handlers and middleware attach an *Error to the gin context with c.Error
// and the error handler turns it into a response envelope.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an *Error.
type Kind int

const (
	// KindAuth は未認証アクセスです（401）。
	KindAuth Kind = iota + 1
	// KindLogin は業務ルールによる拒否です。
	KindLogin
	// KindModelValidation はモデル単位の検証失敗です。
	KindModelValidation
	// KindPermission は権限不足です（403）。
	KindPermission
	// KindService はサービス層で宣言されたエラーです（500）。
	KindService
	// KindServiceWarning はサービス層で宣言された警告です。
	KindServiceWarning
	// KindHTTP はフレームワークレベルのHTTP例外です（元のステータスを維持）。
	KindHTTP
	// KindRequestValidation はリクエストボディ/パスパラメータの検証失敗です（400）。
	KindRequestValidation
)

// Error is an application error carrying a kind, a client-facing message and optional data.
type Error struct {
	Kind    Kind
	Message string
	Data    any
	// Status is only used by KindHTTP.
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// As returns the *Error wrapped in err, if any.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func Unauthorized(msg string) *Error { return &Error{Kind: KindAuth, Message: msg} }

func Rejected(msg string, data any) *Error {
	return &Error{Kind: KindLogin, Message: msg, Data: data}
}

func ModelValidation(msg string, data any) *Error {
	return &Error{Kind: KindModelValidation, Message: msg, Data: data}
}

func Forbidden(msg string) *Error { return &Error{Kind: KindPermission, Message: msg} }

func Service(msg string, err error) *Error {
	return &Error{Kind: KindService, Message: msg, Err: err}
}

func ServiceWarning(msg string) *Error { return &Error{Kind: KindServiceWarning, Message: msg} }

// HTTP builds a framework-level HTTP exception that keeps its status code.
func HTTP(status int, detail string) *Error {
	return &Error{Kind: KindHTTP, Status: status, Message: detail}
}

// RequestValidation wraps a binding error (validator.ValidationErrors, JSON syntax errors, ...).
func RequestValidation(err error) *Error {
	return &Error{Kind: KindRequestValidation, Message: "request parameter validation failed", Err: err}
}

// FieldError is a request validation failure on a single field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

// InvalidParam builds a request validation error for a single path or query parameter.
func InvalidParam(field, message string) *Error {
	return RequestValidation(&FieldError{Field: field, Message: message})
}
