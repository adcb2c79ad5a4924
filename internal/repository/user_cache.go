package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bitwharf/helpdesk/internal/domain"
)

// cachedUser is the wire shape stored in Redis. The password hash is
// deliberately excluded; credential checks always hit the database.
type cachedUser struct {
	ID    int64       `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

type cachedUserRepository struct {
	inner  UserRepository
	client *redis.Client
	ttl    time.Duration
}

// NewCachedUserRepository wraps a UserRepository with a read-through
// Redis cache for id lookups. Role lookups happen on every authenticated
// request and on assignment validation, so they are the hot path.
func NewCachedUserRepository(inner UserRepository, client *redis.Client, ttl time.Duration) UserRepository {
	return &cachedUserRepository{inner: inner, client: client, ttl: ttl}
}

func userCacheKey(id int64) string {
	return fmt.Sprintf("user:%d", id)
}

func (r *cachedUserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.inner.Create(ctx, user)
}

func (r *cachedUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if r.client != nil {
		// A miss or an unreachable cache both fall through to the database.
		if raw, err := r.client.Get(ctx, userCacheKey(id)).Bytes(); err == nil {
			var cached cachedUser
			if json.Unmarshal(raw, &cached) == nil {
				return &domain.User{
					ID:    cached.ID,
					Name:  cached.Name,
					Email: cached.Email,
					Role:  cached.Role,
				}, nil
			}
		}
	}

	user, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, user)
	return user, nil
}

func (r *cachedUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	// Email lookups serve login and need the password hash; never cached.
	return r.inner.GetByEmail(ctx, email)
}

func (r *cachedUserRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.inner.List(ctx)
}

func (r *cachedUserRepository) store(ctx context.Context, user *domain.User) {
	if r.client == nil {
		return
	}
	raw, err := json.Marshal(cachedUser{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	})
	if err != nil {
		return
	}
	_ = r.client.Set(ctx, userCacheKey(user.ID), raw, r.ttl).Err()
}
