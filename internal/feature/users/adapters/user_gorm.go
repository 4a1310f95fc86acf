// Package adapters はusersフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"account_backend/internal/domain"
	"account_backend/internal/domain/entity"
	"account_backend/internal/feature/users/usecase"
)

// userGorm はUserRepositoryインターフェースのgorm実装です。
// SQLite / PostgreSQL / MySQL のいずれのダイアレクトでも動作します。
type userGorm struct {
	db *gorm.DB
}

// userGormがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserRepository は指定されたgorm.DB接続でuserGormの新しいインスタンスを生成します。
func NewUserRepository(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// orderedAddresses はアドレスをID順でプリロードします。
func orderedAddresses(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// Create はユーザーをデータベースに追加します。gormのデフォルトトランザクション内で実行されます。
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	return r.db.WithContext(ctx).Create(u).Error
}

// FindByID はIDでユーザーをアドレス付きで取得します。
// ユーザーが存在しない場合、domain.ErrUserNotFoundを返します。
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return findUser(r.db.WithContext(ctx), id)
}

// List はすべてのユーザーをID順でアドレス付きで返します。
func (r *userGorm) List(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	if err := r.db.WithContext(ctx).
		Preload("Addresses", orderedAddresses).
		Order("id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update はトランザクション内でユーザーを読み込み、apply で変更を加えて保存します。
// エラー時はロールバックされます。
func (r *userGorm) Update(ctx context.Context, id uint, apply func(u *entity.User)) (*entity.User, error) {
	var updated *entity.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := findUser(tx, id)
		if err != nil {
			return err
		}
		apply(u)
		if err := tx.Model(u).
			Select("name", "fullname", "update_time").
			Updates(map[string]any{
				"name":        u.Name,
				"fullname":    u.Fullname,
				"update_time": u.UpdateTime,
			}).Error; err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete はユーザーとその全アドレスを同一トランザクションで削除します。
// ユーザーが存在しない場合、domain.ErrUserNotFoundを返します。
func (r *userGorm) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u entity.User
		if err := tx.Where("id = ?", id).First(&u).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&entity.Address{}).Error; err != nil {
			return err
		}
		return tx.Delete(&u).Error
	})
}

func findUser(db *gorm.DB, id uint) (*entity.User, error) {
	var u entity.User
	if err := db.Preload("Addresses", orderedAddresses).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
