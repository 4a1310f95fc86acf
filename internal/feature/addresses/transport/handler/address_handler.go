// Package handler はaddressesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"account_backend/internal/api"
	"account_backend/internal/feature/addresses/usecase"
	"account_backend/internal/platform/apperr"
	"account_backend/internal/platform/http/param"
	"account_backend/internal/platform/response"
)

// AddressUsecase はアドレス操作のユースケースを定義します。
type AddressUsecase interface {
	CreateAddress(ctx context.Context, userID uint, in usecase.AddressInput) response.Data[api.AddressResponse]
	GetAddress(ctx context.Context, id uint) response.Data[api.AddressResponse]
	ListAddresses(ctx context.Context, userID uint) response.Data[[]api.AddressResponse]
	DeleteAddress(ctx context.Context, id uint) response.Crud
}

// AddressHandler はアドレス操作のHTTPリクエストを処理します。
type AddressHandler struct {
	uc AddressUsecase
}

// NewAddressHandler はAddressHandlerの新しいインスタンスを生成します。
func NewAddressHandler(uc AddressUsecase) *AddressHandler {
	return &AddressHandler{uc: uc}
}

// Create は POST /addresses/users/:user_id を処理します。
func (h *AddressHandler) Create(c *gin.Context) {
	userID, err := param.PathID(c, "user_id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	var req api.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.RequestValidation(err))
		return
	}
	in := usecase.AddressInput{EmailAddress: req.EmailAddress}
	response.Write(c, h.uc.CreateAddress(c.Request.Context(), userID, in))
}

// ListByUser は GET /addresses/users/:user_id を処理します。
func (h *AddressHandler) ListByUser(c *gin.Context) {
	userID, err := param.PathID(c, "user_id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Write(c, h.uc.ListAddresses(c.Request.Context(), userID))
}

// Get は GET /addresses/:address_id を処理します。
func (h *AddressHandler) Get(c *gin.Context) {
	id, err := param.PathID(c, "address_id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Write(c, h.uc.GetAddress(c.Request.Context(), id))
}

// Delete は DELETE /addresses/:address_id を処理します。
func (h *AddressHandler) Delete(c *gin.Context) {
	id, err := param.PathID(c, "address_id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Write(c, h.uc.DeleteAddress(c.Request.Context(), id))
}
