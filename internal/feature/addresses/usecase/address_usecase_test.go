package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"account_backend/internal/domain/entity"
	"account_backend/internal/feature/addresses/adapters"
	"account_backend/internal/feature/addresses/usecase"
	"account_backend/internal/platform/db/dbtest"
	"account_backend/internal/platform/response"
)

// spyInvalidator は無効化されたユーザーIDを記録します。
type spyInvalidator struct {
	mu  sync.Mutex
	ids []uint
	err error
}

func (s *spyInvalidator) Invalidate(ctx context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = append(s.ids, userID)
	return s.err
}

// mockAddressRepository はストレージ障害を再現するためのモックです。
type mockAddressRepository struct {
	err error
}

func (m *mockAddressRepository) CreateForUser(ctx context.Context, a *entity.Address) error {
	return m.err
}

func (m *mockAddressRepository) FindByID(ctx context.Context, id uint) (*entity.Address, error) {
	return nil, m.err
}

func (m *mockAddressRepository) ListByUser(ctx context.Context, userID uint) ([]entity.Address, error) {
	return nil, m.err
}

func (m *mockAddressRepository) Delete(ctx context.Context, id uint) (*entity.Address, error) {
	return nil, m.err
}

func setup(t *testing.T) (*usecase.AddressUsecase, *spyInvalidator, *gorm.DB, uint) {
	t.Helper()
	db := dbtest.New(t)
	u := &entity.User{Name: "alice"}
	require.NoError(t, db.Create(u).Error)

	spy := &spyInvalidator{}
	return usecase.NewAddressUsecase(adapters.NewAddressRepository(db), spy), spy, db, u.ID
}

func countAddresses(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&entity.Address{}).Count(&n).Error)
	return n
}

// TestNewAddressUsecase はユーザーキャッシュなしでも生成できることを検証します。
func TestNewAddressUsecase(t *testing.T) {
	t.Parallel()

	uc := usecase.NewAddressUsecase(adapters.NewAddressRepository(dbtest.New(t)), nil)

	assert.NotNil(t, uc, "usecase should not be nil")
}

// TestAddressUsecase_CreateAddress は作成・小文字化・未存在ユーザー・形式エラーを検証します。
func TestAddressUsecase_CreateAddress(t *testing.T) {
	t.Parallel()

	t.Run("stores lower-cased email and invalidates the owner", func(t *testing.T) {
		t.Parallel()
		uc, spy, _, userID := setup(t)

		env := uc.CreateAddress(context.Background(), userID, usecase.AddressInput{EmailAddress: "Test@Example.com"})

		require.True(t, env.Success, "msg: %s", env.Msg)
		assert.Equal(t, "test@example.com", env.Data.EmailAddress)
		assert.Equal(t, userID, env.Data.UserID)
		assert.Positive(t, env.Data.ID)
		assert.Equal(t, []uint{userID}, spy.ids)
	})

	t.Run("missing user persists nothing", func(t *testing.T) {
		t.Parallel()
		uc, spy, db, _ := setup(t)

		env := uc.CreateAddress(context.Background(), 999999, usecase.AddressInput{EmailAddress: "a@example.com"})

		assert.False(t, env.Success)
		assert.Equal(t, response.CodeNotFound, env.Code)
		assert.Equal(t, "user not found", env.Msg)
		assert.Zero(t, countAddresses(t, db))
		assert.Empty(t, spy.ids)
	})

	t.Run("malformed email is rejected", func(t *testing.T) {
		t.Parallel()
		uc, _, db, userID := setup(t)

		for _, email := range []string{"no-at-sign", "@example.com", "user@nodot", "user@exa mple.com", "user@.com"} {
			env := uc.CreateAddress(context.Background(), userID, usecase.AddressInput{EmailAddress: email})

			assert.Equal(t, response.CodeFailure, env.Code, email)
			assert.Equal(t, http.StatusBadRequest, env.HTTPStatus(), email)
		}
		assert.Zero(t, countAddresses(t, db))
	})

	t.Run("cache failure does not fail the request", func(t *testing.T) {
		t.Parallel()
		uc, spy, _, userID := setup(t)
		spy.err = errors.New("redis down")

		env := uc.CreateAddress(context.Background(), userID, usecase.AddressInput{EmailAddress: "b@example.com"})

		assert.True(t, env.Success)
	})
}

// TestAddressUsecase_GetAddress は取得と未存在を検証します。
func TestAddressUsecase_GetAddress(t *testing.T) {
	t.Parallel()
	uc, _, _, userID := setup(t)
	ctx := context.Background()

	created := uc.CreateAddress(ctx, userID, usecase.AddressInput{EmailAddress: "a@example.com"})
	require.True(t, created.Success)

	got := uc.GetAddress(ctx, created.Data.ID)
	require.True(t, got.Success)
	assert.Equal(t, *created.Data, *got.Data)

	missing := uc.GetAddress(ctx, created.Data.ID+1)
	assert.Equal(t, response.CodeNotFound, missing.Code)
	assert.Equal(t, "address not found", missing.Msg)
}

// TestAddressUsecase_ListAddresses は一覧・空一覧・未存在ユーザーを検証します。
func TestAddressUsecase_ListAddresses(t *testing.T) {
	t.Parallel()
	uc, _, _, userID := setup(t)
	ctx := context.Background()

	empty := uc.ListAddresses(ctx, userID)
	require.True(t, empty.Success)
	require.NotNil(t, empty.Data)
	assert.Empty(t, *empty.Data)

	for _, email := range []string{"a@example.com", "b@example.com"} {
		require.True(t, uc.CreateAddress(ctx, userID, usecase.AddressInput{EmailAddress: email}).Success)
	}
	list := uc.ListAddresses(ctx, userID)
	require.True(t, list.Success)
	require.Len(t, *list.Data, 2)
	assert.Equal(t, "a@example.com", (*list.Data)[0].EmailAddress)

	missing := uc.ListAddresses(ctx, 999999)
	assert.Equal(t, response.CodeNotFound, missing.Code)
	assert.Equal(t, "user not found", missing.Msg)
}

// TestAddressUsecase_DeleteAddress は削除・未存在・所有ユーザーのキャッシュ無効化を検証します。
func TestAddressUsecase_DeleteAddress(t *testing.T) {
	t.Parallel()
	uc, spy, db, userID := setup(t)
	ctx := context.Background()

	created := uc.CreateAddress(ctx, userID, usecase.AddressInput{EmailAddress: "a@example.com"})
	require.True(t, created.Success)
	spy.ids = nil

	env := uc.DeleteAddress(ctx, created.Data.ID)

	assert.True(t, env.IsSuccess)
	assert.Equal(t, "address deleted", env.Message)
	assert.Equal(t, map[string]any{"address_id": created.Data.ID}, env.Result)
	assert.Equal(t, http.StatusOK, env.HTTPStatus())
	assert.Equal(t, []uint{userID}, spy.ids)
	assert.Zero(t, countAddresses(t, db))

	again := uc.DeleteAddress(ctx, created.Data.ID)
	assert.False(t, again.IsSuccess)
	assert.Equal(t, "address not found", again.Message)
	assert.Equal(t, http.StatusNotFound, again.HTTPStatus())
}

// TestAddressUsecase_StorageFailure はストレージ障害が500エンベロープになることを検証します。
func TestAddressUsecase_StorageFailure(t *testing.T) {
	t.Parallel()

	spy := &spyInvalidator{}
	uc := usecase.NewAddressUsecase(&mockAddressRepository{err: errors.New("db down")}, spy)
	ctx := context.Background()

	created := uc.CreateAddress(ctx, 1, usecase.AddressInput{EmailAddress: "a@example.com"})
	assert.Equal(t, response.CodeError, created.Code)
	assert.Equal(t, "create address failed: db down", created.Msg)

	got := uc.GetAddress(ctx, 1)
	assert.Equal(t, "get address failed: db down", got.Msg)

	list := uc.ListAddresses(ctx, 1)
	assert.Equal(t, "list addresses failed: db down", list.Msg)

	deleted := uc.DeleteAddress(ctx, 1)
	assert.Equal(t, "delete address failed: db down", deleted.Message)
	assert.Equal(t, http.StatusInternalServerError, deleted.HTTPStatus())

	assert.Empty(t, spy.ids, "failed writes must not touch the cache")
}
