// Package usecase はaddressesフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"log/slog"

	"account_backend/internal/api"
	"account_backend/internal/domain"
	"account_backend/internal/domain/entity"
	"account_backend/internal/platform/response"
)

const msgAddressDeleted = "address deleted"

// AddressRepository はアドレスエンティティの永続化層を抽象化します。
type AddressRepository interface {
	// CreateForUser はユーザーの存在を確認してアドレスを追加します。存在しない場合は domain.ErrUserNotFound を返します。
	CreateForUser(ctx context.Context, a *entity.Address) error
	// FindByID は存在しない場合 domain.ErrAddressNotFound を返します。
	FindByID(ctx context.Context, id uint) (*entity.Address, error)
	// ListByUser はユーザーが存在しない場合 domain.ErrUserNotFound を返します。
	ListByUser(ctx context.Context, userID uint) ([]entity.Address, error)
	// Delete は削除したアドレスを返します。存在しない場合は domain.ErrAddressNotFound を返します。
	Delete(ctx context.Context, id uint) (*entity.Address, error)
}

// UserInvalidator はユーザーのキャッシュを無効化します。
// アドレスの追加・削除でユーザーのレスポンスが変わるため使用します。
type UserInvalidator interface {
	Invalidate(ctx context.Context, userID uint) error
}

// AddressInput はアドレス作成時の入力値です。
type AddressInput struct {
	EmailAddress string
}

// AddressUsecase はアドレス操作のユースケースです。
type AddressUsecase struct {
	addrs AddressRepository
	users UserInvalidator
}

// NewAddressUsecase はAddressUsecaseの新しいインスタンスを生成します。users は nil でも構いません。
func NewAddressUsecase(addrs AddressRepository, users UserInvalidator) *AddressUsecase {
	return &AddressUsecase{addrs: addrs, users: users}
}

// CreateAddress はユーザーにアドレスを追加します。email_address は小文字で保存されます。
func (uc *AddressUsecase) CreateAddress(ctx context.Context, userID uint, in AddressInput) response.Data[api.AddressResponse] {
	email, err := domain.NormalizeEmail(in.EmailAddress)
	if err != nil {
		slog.Warn("create address rejected", "user_id", userID, "error", err)
		return response.Failure[api.AddressResponse](err.Error())
	}

	a := &entity.Address{EmailAddress: email, UserID: userID}
	if err := uc.addrs.CreateForUser(ctx, a); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound[api.AddressResponse](domain.ErrUserNotFound.Error())
		}
		slog.Error("create address failed", "user_id", userID, "error", err)
		return response.Error[api.AddressResponse]("create address", err)
	}
	uc.invalidate(ctx, userID)
	return response.OK(api.NewAddressResponse(*a))
}

// GetAddress はIDに一致するアドレスを返します。
func (uc *AddressUsecase) GetAddress(ctx context.Context, id uint) response.Data[api.AddressResponse] {
	a, err := uc.addrs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAddressNotFound) {
			return response.NotFound[api.AddressResponse](domain.ErrAddressNotFound.Error())
		}
		slog.Error("get address failed", "address_id", id, "error", err)
		return response.Error[api.AddressResponse]("get address", err)
	}
	return response.OK(api.NewAddressResponse(*a))
}

// ListAddresses はユーザーが所有するすべてのアドレスを返します。
func (uc *AddressUsecase) ListAddresses(ctx context.Context, userID uint) response.Data[[]api.AddressResponse] {
	addrs, err := uc.addrs.ListByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound[[]api.AddressResponse](domain.ErrUserNotFound.Error())
		}
		slog.Error("list addresses failed", "user_id", userID, "error", err)
		return response.Error[[]api.AddressResponse]("list addresses", err)
	}
	return response.OK(api.NewAddressResponses(addrs))
}

// DeleteAddress はアドレスを削除します。
func (uc *AddressUsecase) DeleteAddress(ctx context.Context, id uint) response.Crud {
	a, err := uc.addrs.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAddressNotFound) {
			return response.CrudNotFound(domain.ErrAddressNotFound.Error())
		}
		slog.Error("delete address failed", "address_id", id, "error", err)
		return response.CrudError("delete address", err)
	}
	uc.invalidate(ctx, a.UserID)
	return response.Deleted(msgAddressDeleted, "address_id", id)
}

// invalidate はベストエフォートでユーザーのキャッシュを破棄します。
func (uc *AddressUsecase) invalidate(ctx context.Context, userID uint) {
	if uc.users == nil {
		return
	}
	if err := uc.users.Invalidate(ctx, userID); err != nil {
		slog.Warn("user cache invalidation failed", "user_id", userID, "error", err)
	}
}
