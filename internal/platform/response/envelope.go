// Package response はすべての操作結果を包む統一レスポンスエンベロープを提供します。
package response

import (
	"fmt"
	"net/http"
	"time"
)

// エンベロープの code に入る値です。
const (
	CodeSuccess      = http.StatusOK
	CodeBadRequest   = http.StatusBadRequest
	CodeUnauthorized = http.StatusUnauthorized
	CodeForbidden    = http.StatusForbidden
	CodeNotFound     = http.StatusNotFound
	CodeError        = http.StatusInternalServerError
	// CodeFailure は業務レベルの失敗（警告）を表し、HTTPステータスではありません。
	CodeFailure = 601
)

const (
	// MsgSuccess is the default message of a successful Data envelope.
	MsgSuccess = "success"
	// MsgValidationFailed is the message of a request validation failure.
	MsgValidationFailed = "request parameter validation failed"
)

// Envelope is implemented by every envelope a handler writes.
type Envelope interface {
	HTTPStatus() int
}

// Data はデータを伴う操作結果のエンベロープです。
type Data[T any] struct {
	Code    int    `json:"code"`
	Msg     string `json:"msg"`
	Success bool   `json:"success"`
	Data    *T     `json:"data"`
}

// OK wraps v in a successful Data envelope.
func OK[T any](v T) Data[T] {
	return Data[T]{Code: CodeSuccess, Msg: MsgSuccess, Success: true, Data: &v}
}

// Fail builds an unsuccessful Data envelope with a null payload.
func Fail[T any](code int, msg string) Data[T] {
	return Data[T]{Code: code, Msg: msg, Success: false}
}

// NotFound builds a 404 Data envelope.
func NotFound[T any](msg string) Data[T] { return Fail[T](CodeNotFound, msg) }

// Failure builds a business-level failure (601) Data envelope.
func Failure[T any](msg string) Data[T] { return Fail[T](CodeFailure, msg) }

// Error builds a 500 Data envelope whose message is "<op> failed: <cause>".
func Error[T any](op string, err error) Data[T] {
	return Fail[T](CodeError, fmt.Sprintf("%s failed: %v", op, err))
}

func (d Data[T]) HTTPStatus() int { return StatusFor(d.Code) }

// Crud は削除系の確認応答エンベロープです。HTTPステータスはシリアライズされません。
type Crud struct {
	IsSuccess bool           `json:"is_success"`
	Message   string         `json:"message"`
	Result    map[string]any `json:"result"`
	Status    int            `json:"-"`
}

// Deleted builds a successful Crud envelope carrying the deleted id under key.
func Deleted(msg, key string, id uint) Crud {
	return Crud{IsSuccess: true, Message: msg, Result: map[string]any{key: id}, Status: http.StatusOK}
}

// CrudNotFound builds an unsuccessful Crud envelope for a missing entity.
func CrudNotFound(msg string) Crud {
	return Crud{IsSuccess: false, Message: msg, Status: http.StatusNotFound}
}

// CrudError builds an unsuccessful Crud envelope for a storage failure.
func CrudError(op string, err error) Crud {
	return Crud{IsSuccess: false, Message: fmt.Sprintf("%s failed: %v", op, err), Status: http.StatusInternalServerError}
}

func (c Crud) HTTPStatus() int {
	if c.Status == 0 {
		return http.StatusOK
	}
	return c.Status
}

// HTTPError はフレームワークレベルのHTTP例外のレスポンスボディです。
type HTTPError struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func (e HTTPError) HTTPStatus() int { return e.Code }

// FieldError is one entry of a request validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationFailure はリクエストパラメータ検証失敗時のレスポンスボディです。
type ValidationFailure struct {
	Code    int          `json:"code"`
	Msg     string       `json:"msg"`
	Success bool         `json:"success"`
	Data    []FieldError `json:"data"`
	Time    time.Time    `json:"time"`
}

// NewValidationFailure builds the 400 body listing every failing field.
func NewValidationFailure(fields []FieldError, now time.Time) ValidationFailure {
	if fields == nil {
		fields = []FieldError{}
	}
	return ValidationFailure{
		Code:    CodeBadRequest,
		Msg:     MsgValidationFailed,
		Success: false,
		Data:    fields,
		Time:    now,
	}
}

func (v ValidationFailure) HTTPStatus() int { return http.StatusBadRequest }

// StatusFor maps an envelope code to the HTTP status written on the wire.
// CodeFailure and anything outside the HTTP range become 400.
func StatusFor(code int) int {
	if code < 100 || code > 599 {
		return http.StatusBadRequest
	}
	return code
}
