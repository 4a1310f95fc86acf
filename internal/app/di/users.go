// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	addressadapters "account_backend/internal/feature/addresses/adapters"
	addresshandler "account_backend/internal/feature/addresses/transport/handler"
	addressusecase "account_backend/internal/feature/addresses/usecase"
	useradapters "account_backend/internal/feature/users/adapters"
	userhandler "account_backend/internal/feature/users/transport/handler"
	userusecase "account_backend/internal/feature/users/usecase"
	"account_backend/internal/platform/cache"
)

// Handlers はルーターに渡すリソースハンドラーの組です。
type Handlers struct {
	Users     *userhandler.UserHandler
	Addresses *addresshandler.AddressHandler
}

// NewUserRepository creates the user repository.
// If Redis is available, reads are served through a Redis cache.
// Otherwise the cache layer passes every call through to the database.
func NewUserRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) *cache.CachingUserRepository {
	return cache.NewCachingUserRepository(rdb, ttl, useradapters.NewUserRepository(db), "users")
}

// NewHandlers wires repositories, usecases and handlers of both resources.
func NewHandlers(db *gorm.DB, rdb *redis.Client, cacheTTL time.Duration) Handlers {
	users := NewUserRepository(rdb, db, cacheTTL)
	addresses := addressadapters.NewAddressRepository(db)

	return Handlers{
		Users:     userhandler.NewUserHandler(userusecase.NewUserUsecase(users)),
		Addresses: addresshandler.NewAddressHandler(addressusecase.NewAddressUsecase(addresses, users)),
	}
}
