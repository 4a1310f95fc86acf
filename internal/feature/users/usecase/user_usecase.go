// Package usecase はusersフィーチャーのビジネスロジックを実装します。
// 各操作は結果を response エンベロープに包んで返し、ストレージのエラーを外に伝播しません。
package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"account_backend/internal/api"
	"account_backend/internal/domain"
	"account_backend/internal/domain/entity"
	"account_backend/internal/platform/response"
)

const msgUserDeleted = "user deleted"

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーを永続化します。
	Create(ctx context.Context, u *entity.User) error
	// FindByID はIDに一致するユーザーをアドレス付きで取得します。存在しない場合は domain.ErrUserNotFound を返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
	// List はすべてのユーザーを取得します。
	List(ctx context.Context) ([]entity.User, error)
	// Update はユーザーを読み込み apply を適用して保存します。存在しない場合は domain.ErrUserNotFound を返します。
	Update(ctx context.Context, id uint, apply func(u *entity.User)) (*entity.User, error)
	// Delete はユーザーと所有するアドレスを削除します。存在しない場合は domain.ErrUserNotFound を返します。
	Delete(ctx context.Context, id uint) error
}

// UserInput は作成・更新時の入力値です。
type UserInput struct {
	Name     string
	Fullname *string
}

// normalize はドメインルールで入力値を検証・正規化します。
func (in UserInput) normalize() (UserInput, error) {
	name, err := domain.NormalizeName(in.Name)
	if err != nil {
		return UserInput{}, err
	}
	fullname, err := domain.NormalizeFullname(in.Fullname)
	if err != nil {
		return UserInput{}, err
	}
	return UserInput{Name: name, Fullname: fullname}, nil
}

// UserUsecase はユーザー操作のユースケースです。
type UserUsecase struct {
	users UserRepository
	now   func() time.Time
}

// NewUserUsecase はUserUsecaseの新しいインスタンスを生成します。
func NewUserUsecase(users UserRepository) *UserUsecase {
	return &UserUsecase{users: users, now: time.Now}
}

// CreateUser は正規化した name / fullname で新しいユーザーを作成します。
func (uc *UserUsecase) CreateUser(ctx context.Context, in UserInput) response.Data[api.UserResponse] {
	in, err := in.normalize()
	if err != nil {
		slog.Warn("create user rejected", "error", err)
		return response.Failure[api.UserResponse](err.Error())
	}

	u := &entity.User{Name: in.Name, Fullname: in.Fullname}
	if err := uc.users.Create(ctx, u); err != nil {
		slog.Error("create user failed", "error", err)
		return response.Error[api.UserResponse]("create user", err)
	}
	return response.OK(api.NewUserResponse(*u))
}

// GetUser はIDに一致するユーザーを返します。
func (uc *UserUsecase) GetUser(ctx context.Context, id uint) response.Data[api.UserResponse] {
	u, err := uc.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound[api.UserResponse](domain.ErrUserNotFound.Error())
		}
		slog.Error("get user failed", "user_id", id, "error", err)
		return response.Error[api.UserResponse]("get user", err)
	}
	return response.OK(api.NewUserResponse(*u))
}

// ListUsers はすべてのユーザーを返します。
func (uc *UserUsecase) ListUsers(ctx context.Context) response.Data[[]api.UserResponse] {
	users, err := uc.users.List(ctx)
	if err != nil {
		slog.Error("list users failed", "error", err)
		return response.Error[[]api.UserResponse]("list users", err)
	}
	return response.OK(api.NewUserResponses(users))
}

// UpdateUser は name / fullname を上書きし update_time を更新します。
func (uc *UserUsecase) UpdateUser(ctx context.Context, id uint, in UserInput) response.Data[api.UserResponse] {
	in, err := in.normalize()
	if err != nil {
		slog.Warn("update user rejected", "user_id", id, "error", err)
		return response.Failure[api.UserResponse](err.Error())
	}

	now := uc.now()
	u, err := uc.users.Update(ctx, id, func(u *entity.User) {
		u.Name = in.Name
		u.Fullname = in.Fullname
		u.UpdateTime = &now
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound[api.UserResponse](domain.ErrUserNotFound.Error())
		}
		slog.Error("update user failed", "user_id", id, "error", err)
		return response.Error[api.UserResponse]("update user", err)
	}
	return response.OK(api.NewUserResponse(*u))
}

// DeleteUser はユーザーと所有する全アドレスを削除します。
func (uc *UserUsecase) DeleteUser(ctx context.Context, id uint) response.Crud {
	if err := uc.users.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.CrudNotFound(domain.ErrUserNotFound.Error())
		}
		slog.Error("delete user failed", "user_id", id, "error", err)
		return response.CrudError("delete user", err)
	}
	slog.Info("user deleted", "user_id", id)
	return response.Deleted(msgUserDeleted, "user_id", id)
}
