// Package jwtmw はBearerトークンによる認証と認可のGinミドルウェアを提供します。
package jwtmw

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"account_backend/internal/platform/apperr"
)

const (
	// ContextUserID はトークンの sub クレームを保持するコンテキストキーです。
	ContextUserID = "userID"
	// ContextRole はトークンの role クレームを保持するコンテキストキーです。
	ContextRole = "role"

	// RoleAdmin は削除操作を許可されたロールです。
	RoleAdmin = "admin"
)

// AuthRequired returns a Gin middleware function that validates JWT tokens
// signed with secret and restricts access to authenticated clients only.
// Failures are attached to the context for the error handler and the chain is aborted.
func AuthRequired(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		if len(key) == 0 {
			// Server misconfiguration (JWT_SECRET not set)
			_ = c.Error(apperr.Service("server misconfigured", nil))
			c.Abort()
			return
		}

		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			_ = c.Error(apperr.Unauthorized("missing bearer token"))
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
			// Only HMAC is accepted
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return key, nil
		})
		if err != nil || !token.Valid {
			_ = c.Error(apperr.Unauthorized("invalid token"))
			c.Abort()
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if sub, ok := claims["sub"].(float64); ok { // JWT numbers are decoded as float64
				c.Set(ContextUserID, uint(sub))
			}
			if role, ok := claims["role"].(string); ok {
				c.Set(ContextRole, role)
			}
		}
		c.Next()
	}
}

// RequireRole は AuthRequired の後段で使い、指定ロールを持たないクライアントを403で拒否します。
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != role {
			_ = c.Error(apperr.Forbidden("permission denied"))
			c.Abort()
			return
		}
		c.Next()
	}
}
