package jwtmw

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"account_backend/internal/platform/apperr"
)

const testSecret = "test-secret-key"

// TestMain はテスト実行前にGinをテストモードに設定します。
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// runMiddleware は単体のハンドラーをテスト用コンテキストで実行します。
func runMiddleware(h gin.HandlerFunc, authHeader string) *gin.Context {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}
	h(c)
	return c
}

// lastKind はコンテキストに積まれた最後のエラーの種別を返します。
func lastKind(t *testing.T, c *gin.Context) apperr.Kind {
	t.Helper()
	if len(c.Errors) == 0 {
		t.Fatal("expected an error to be attached to the context")
	}
	ae, ok := apperr.As(c.Errors.Last().Err)
	if !ok {
		t.Fatalf("expected *apperr.Error, got %T", c.Errors.Last().Err)
	}
	return ae.Kind
}

// TestAuthRequired_MissingBearerToken はBearerトークンがない場合やプレフィックスが不正な場合に認証エラーになることを検証します。
func TestAuthRequired_MissingBearerToken(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
	}{
		{"no header", ""},
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"bearer lowercase", "bearer token123"},
		{"no space after Bearer", "Bearertoken123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := runMiddleware(AuthRequired(testSecret), tt.authHeader)

			if !c.IsAborted() {
				t.Error("expected request to be aborted")
			}
			if kind := lastKind(t, c); kind != apperr.KindAuth {
				t.Errorf("expected KindAuth, got %v", kind)
			}
		})
	}
}

// TestAuthRequired_MissingSecret はシークレット未設定の場合にサービスエラーになることを検証します。
func TestAuthRequired_MissingSecret(t *testing.T) {
	c := runMiddleware(AuthRequired(""), "Bearer sometoken")

	if !c.IsAborted() {
		t.Error("expected request to be aborted")
	}
	if kind := lastKind(t, c); kind != apperr.KindService {
		t.Errorf("expected KindService, got %v", kind)
	}
}

// TestAuthRequired_InvalidToken は不正なトークン（改ざん・期限切れ等）で認証エラーになることを検証します。
func TestAuthRequired_InvalidToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"malformed token", "not.a.valid.token"},
		{"random string", "randomstring"},
		{"wrong secret", createToken(t, "wrong-secret", 1, RoleAdmin, time.Hour)},
		{"expired token", createToken(t, testSecret, 1, RoleAdmin, -time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := runMiddleware(AuthRequired(testSecret), "Bearer "+tt.token)

			if !c.IsAborted() {
				t.Error("expected request to be aborted")
			}
			if kind := lastKind(t, c); kind != apperr.KindAuth {
				t.Errorf("expected KindAuth, got %v", kind)
			}
		})
	}
}

// TestAuthRequired_ValidToken は有効なトークンでリクエストが通過し、コンテキストにIDとロールが設定されることを検証します。
func TestAuthRequired_ValidToken(t *testing.T) {
	tests := []struct {
		name    string
		subject uint
		role    string
	}{
		{"admin", 1, RoleAdmin},
		{"reader", 42, "reader"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := createToken(t, testSecret, tt.subject, tt.role, time.Hour)
			c := runMiddleware(AuthRequired(testSecret), "Bearer "+token)

			if c.IsAborted() {
				t.Fatalf("expected request not to be aborted, errors: %v", c.Errors)
			}
			if got := c.GetUint(ContextUserID); got != tt.subject {
				t.Errorf("expected userID %d, got %d", tt.subject, got)
			}
			if got := c.GetString(ContextRole); got != tt.role {
				t.Errorf("expected role %q, got %q", tt.role, got)
			}
		})
	}
}

// TestAuthRequired_InvalidSigningMethod はnoneアルゴリズム（未署名）のトークンが拒否されることを検証します。
func TestAuthRequired_InvalidSigningMethod(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":  float64(1),
		"role": RoleAdmin,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	tokenStr, _ := token.SignedString(jwt.UnsafeAllowNoneSignatureType)

	c := runMiddleware(AuthRequired(testSecret), "Bearer "+tokenStr)

	if kind := lastKind(t, c); kind != apperr.KindAuth {
		t.Errorf("expected KindAuth, got %v", kind)
	}
}

// TestRequireRole はロールが一致しない場合に権限エラーになることを検証します。
func TestRequireRole(t *testing.T) {
	tests := []struct {
		name      string
		role      string
		wantAbort bool
	}{
		{"admin passes", RoleAdmin, false},
		{"reader is rejected", "reader", true},
		{"missing role is rejected", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodDelete, "/", nil)
			if tt.role != "" {
				c.Set(ContextRole, tt.role)
			}

			RequireRole(RoleAdmin)(c)

			if c.IsAborted() != tt.wantAbort {
				t.Fatalf("expected aborted=%v, got %v", tt.wantAbort, c.IsAborted())
			}
			if tt.wantAbort {
				if kind := lastKind(t, c); kind != apperr.KindPermission {
					t.Errorf("expected KindPermission, got %v", kind)
				}
			}
		})
	}
}

// createToken はテスト用に指定されたシークレットで署名済みJWTトークンを生成します。
func createToken(t *testing.T, secret string, subject uint, role string, expiration time.Duration) string {
	t.Helper()
	signed, err := NewGenerator(secret, expiration).GenerateToken(subject, role)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}
