// Package adapters はaddressesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"account_backend/internal/domain"
	"account_backend/internal/domain/entity"
	"account_backend/internal/feature/addresses/usecase"
	"account_backend/internal/platform/db"
)

// addressGorm はAddressRepositoryインターフェースのgorm実装です。
type addressGorm struct {
	db *gorm.DB
}

var _ usecase.AddressRepository = (*addressGorm)(nil)

// NewAddressRepository は指定されたgorm.DB接続でaddressGormの新しいインスタンスを生成します。
func NewAddressRepository(db *gorm.DB) *addressGorm {
	return &addressGorm{db: db}
}

// CreateForUser はユーザーの存在確認とアドレスの追加を同一トランザクションで行います。
// ユーザーが存在しない場合（並行削除による外部キー違反を含む）、domain.ErrUserNotFoundを返します。
func (r *addressGorm) CreateForUser(ctx context.Context, a *entity.Address) error {
	if a == nil {
		return errors.New("address is nil")
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUser(tx, a.UserID); err != nil {
			return err
		}
		return tx.Create(a).Error
	})
	if db.IsForeignKeyViolation(err) {
		return domain.ErrUserNotFound
	}
	return err
}

// FindByID はIDでアドレスを取得します。
// 存在しない場合、domain.ErrAddressNotFoundを返します。
func (r *addressGorm) FindByID(ctx context.Context, id uint) (*entity.Address, error) {
	var a entity.Address
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAddressNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListByUser はユーザーが所有するアドレスをID順で返します。
// ユーザーが存在しない場合、domain.ErrUserNotFoundを返します。
func (r *addressGorm) ListByUser(ctx context.Context, userID uint) ([]entity.Address, error) {
	var addrs []entity.Address
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUser(tx, userID); err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Order("id ASC").Find(&addrs).Error
	})
	if err != nil {
		return nil, err
	}
	return addrs, nil
}

// Delete はアドレスを削除し、削除したアドレスを返します。
// 存在しない場合、domain.ErrAddressNotFoundを返します。
func (r *addressGorm) Delete(ctx context.Context, id uint) (*entity.Address, error) {
	var a entity.Address
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&a).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrAddressNotFound
			}
			return err
		}
		return tx.Delete(&a).Error
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func ensureUser(tx *gorm.DB, userID uint) error {
	var n int64
	if err := tx.Model(&entity.User{}).Where("id = ?", userID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
