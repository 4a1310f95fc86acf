package router

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"account_backend/internal/api"
	"account_backend/internal/app/di"
	"account_backend/internal/platform/http/handler"
	"account_backend/internal/platform/http/middleware"
	"account_backend/internal/platform/validation"
	jwtmw "account_backend/internal/platform/jwt"
	"account_backend/internal/shared/ratelimiter"
)

// Options は任意機能の設定です。ゼロ値の場合は各機能を無効にします。
type Options struct {
	// JWTSecret が設定されている場合、リソースのルートはBearerトークンを必須とします。
	JWTSecret string
	// RateLimiter が設定されている場合、リソースのルートをクライアント単位で制限します。
	RateLimiter ratelimiter.RateLimiterInterface
	// Metrics が設定されている場合、リクエストを計測し /metrics を公開します。
	Metrics *middleware.Metrics
	// DB が設定されている場合、/readyz で疎通確認を行います。
	DB handler.Pinger
}

const readyTimeout = 2 * time.Second

var appInfo = api.AppInfo{
	Message: "user and address account service",
	Docs:    "/docs",
}

// NewRouter はグローバルミドルウェアとルートを登録した gin.Engine を返します。
// リクエストのバインディングが username / fullname / mailaddr タグを使うため、
// カスタムバリデーションをここで登録します（登録は一度だけ行われます）。
func NewRouter(h di.Handlers, opts Options) *gin.Engine {
	if err := validation.Register(); err != nil {
		slog.Error("failed to register validators", "error", err)
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(middleware.RequestID(), middleware.AccessLog())
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Instrument())
	}
	r.Use(middleware.ErrorHandler())
	r.NoRoute(middleware.NoRoute)
	r.NoMethod(middleware.NoMethod)

	// 認証不要
	r.GET("/", handler.Root(appInfo))
	r.GET(appInfo.Docs, handler.Docs(r.Routes))
	r.Match([]string{"GET", "HEAD", "OPTIONS"}, "/healthz", handler.Health)
	if opts.DB != nil {
		r.GET("/readyz", handler.Ready(opts.DB, readyTimeout))
	}
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	// リソースのルート
	var resource []gin.HandlerFunc
	if opts.RateLimiter != nil {
		resource = append(resource, middleware.RateLimit(opts.RateLimiter))
	}
	// 削除は管理者ロールのみ
	var admin []gin.HandlerFunc
	if opts.JWTSecret != "" {
		resource = append(resource, jwtmw.AuthRequired(opts.JWTSecret))
		admin = append(admin, jwtmw.RequireRole(jwtmw.RoleAdmin))
	}

	users := r.Group("/users", resource...)
	{
		users.POST("", h.Users.Create)
		users.POST("/", h.Users.Create)
		users.GET("", h.Users.List)
		users.GET("/", h.Users.List)
		users.GET("/:user_id", h.Users.Get)
		users.PUT("/:user_id", h.Users.Update)
		users.DELETE("/:user_id", append(admin, h.Users.Delete)...)
	}

	addresses := r.Group("/addresses", resource...)
	{
		addresses.POST("/users/:user_id", h.Addresses.Create)
		addresses.GET("/users/:user_id", h.Addresses.ListByUser)
		addresses.GET("/:address_id", h.Addresses.Get)
		addresses.DELETE("/:address_id", append(admin, h.Addresses.Delete)...)
	}

	return r
}
