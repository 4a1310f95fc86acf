// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"account_backend/internal/api"
)

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// HTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
func Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// Pinger はストアへの疎通確認を行います。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Ready は /readyz を処理し、ストアに到達できない場合は503を返します。
func Ready(db Pinger, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			slog.Warn("readiness check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}

// Root は GET / でアプリケーション情報を返します。
func Root(info api.AppInfo) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, info)
	}
}

// Docs は GET /docs で登録済みのルート一覧を返します。
// routes はリクエスト時に評価されるため、後から登録されたルートも含まれます。
func Docs(routes func() gin.RoutesInfo) gin.HandlerFunc {
	return func(c *gin.Context) {
		list := make([]api.RouteInfo, 0)
		for _, rt := range routes() {
			list = append(list, api.RouteInfo{Method: rt.Method, Path: rt.Path})
		}
		sort.Slice(list, func(i, j int) bool {
			if list[i].Path != list[j].Path {
				return list[i].Path < list[j].Path
			}
			return list[i].Method < list[j].Method
		})
		c.JSON(http.StatusOK, gin.H{"routes": list})
	}
}
