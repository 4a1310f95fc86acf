// Package middleware はアプリケーション全体に適用するGinミドルウェアを提供します。
package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"

	"account_backend/internal/domain"
	"account_backend/internal/platform/apperr"
	"account_backend/internal/platform/response"
	"account_backend/internal/platform/validation"
)

// ErrorHandler は c.Error で積まれたエラーとパニックを統一エンベロープに変換します。
// ハンドラーがすでにレスポンスを書き込んでいる場合は何もしません。
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic recovered",
					"panic", rec,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"request_id", c.GetString(ContextRequestID),
					"stack", string(debug.Stack()),
				)
				if !c.Writer.Written() {
					response.Abort(c, response.Fail[any](response.CodeError, fmt.Sprint(rec)))
				}
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		response.Abort(c, Normalize(c, err))
	}
}

// Normalize maps err onto the envelope written for it and logs it at the level its kind asks for.
func Normalize(c *gin.Context, err error) response.Envelope {
	attrs := []any{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"request_id", c.GetString(ContextRequestID),
		"error", err,
	}

	if ae, ok := apperr.As(err); ok {
		switch ae.Kind {
		case apperr.KindAuth:
			return dataEnvelope(response.CodeUnauthorized, ae.Message, ae.Data)
		case apperr.KindLogin:
			return dataEnvelope(response.CodeFailure, ae.Message, ae.Data)
		case apperr.KindModelValidation:
			slog.Warn("model validation failed", attrs...)
			return dataEnvelope(response.CodeFailure, ae.Message, ae.Data)
		case apperr.KindPermission:
			return dataEnvelope(response.CodeForbidden, ae.Message, ae.Data)
		case apperr.KindService:
			slog.Error("service error", attrs...)
			return dataEnvelope(response.CodeError, ae.Message, ae.Data)
		case apperr.KindServiceWarning:
			slog.Warn("service warning", attrs...)
			return dataEnvelope(response.CodeFailure, ae.Message, ae.Data)
		case apperr.KindHTTP:
			return response.HTTPError{Code: ae.Status, Msg: ae.Message}
		case apperr.KindRequestValidation:
			fields := validation.Describe(ae.Err)
			slog.Warn("request validation failed", append(attrs, "fields", fields)...)
			return response.NewValidationFailure(fields, time.Now())
		}
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		slog.Warn("field validation failed", attrs...)
		return dataEnvelope(response.CodeFailure, ve.Error(), nil)
	}

	slog.Error("unhandled error", append(attrs, "stack", string(debug.Stack()))...)
	return dataEnvelope(response.CodeError, err.Error(), nil)
}

func dataEnvelope(code int, msg string, data any) response.Data[any] {
	env := response.Fail[any](code, msg)
	if data != nil {
		env.Data = &data
	}
	return env
}

// NoRoute は未定義のパスを404のHTTP例外として扱います。
func NoRoute(c *gin.Context) {
	_ = c.Error(apperr.HTTP(http.StatusNotFound, http.StatusText(http.StatusNotFound)))
}

// NoMethod は許可されていないメソッドを405のHTTP例外として扱います。
func NoMethod(c *gin.Context) {
	_ = c.Error(apperr.HTTP(http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed)))
}
