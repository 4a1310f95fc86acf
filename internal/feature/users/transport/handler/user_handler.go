// Package handler はusersフィーチャーのHTTPハンドラーを提供します。
// ハンドラーはユースケースが返すエンベロープをそのまま書き出します。
package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"account_backend/internal/api"
	"account_backend/internal/feature/users/usecase"
	"account_backend/internal/platform/apperr"
	"account_backend/internal/platform/http/param"
	"account_backend/internal/platform/response"
)

// UserUsecase はユーザー操作のユースケースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type UserUsecase interface {
	CreateUser(ctx context.Context, in usecase.UserInput) response.Data[api.UserResponse]
	GetUser(ctx context.Context, id uint) response.Data[api.UserResponse]
	ListUsers(ctx context.Context) response.Data[[]api.UserResponse]
	UpdateUser(ctx context.Context, id uint, in usecase.UserInput) response.Data[api.UserResponse]
	DeleteUser(ctx context.Context, id uint) response.Crud
}

// UserHandler はユーザー操作のHTTPリクエストを処理します。
type UserHandler struct {
	uc UserUsecase
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(uc UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Create は POST /users/ を処理します。
// バリデーションエラーはエラーハンドラーに渡し、400 として返却されます。
func (h *UserHandler) Create(c *gin.Context) {
	var req api.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.RequestValidation(err))
		return
	}
	response.Write(c, h.uc.CreateUser(c.Request.Context(), toInput(req)))
}

// List は GET /users/ を処理します。
func (h *UserHandler) List(c *gin.Context) {
	response.Write(c, h.uc.ListUsers(c.Request.Context()))
}

// Get は GET /users/:user_id を処理します。
func (h *UserHandler) Get(c *gin.Context) {
	id, err := param.PathID(c, "user_id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Write(c, h.uc.GetUser(c.Request.Context(), id))
}

// Update は PUT /users/:user_id を処理します。
func (h *UserHandler) Update(c *gin.Context) {
	id, err := param.PathID(c, "user_id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	var req api.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.RequestValidation(err))
		return
	}
	response.Write(c, h.uc.UpdateUser(c.Request.Context(), id, toInput(req)))
}

// Delete は DELETE /users/:user_id を処理します。
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := param.PathID(c, "user_id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Write(c, h.uc.DeleteUser(c.Request.Context(), id))
}

func toInput(req api.UserRequest) usecase.UserInput {
	return usecase.UserInput{Name: req.Name, Fullname: req.Fullname}
}
