package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/support-desk/internal/domain"
)

const profileCachePrefix = "profile:"

// ProfileCache is a read-through cache of sanitized user records. A cache
// miss is never an error; callers fall back to the repository.
type ProfileCache interface {
	Get(ctx context.Context, userID string) (*domain.User, bool)
	Set(ctx context.Context, user *domain.User)
	Invalidate(ctx context.Context, userID string)
}

// cachedProfile holds only the fields safe to persist outside the store;
// the password hash never enters the cache.
type cachedProfile struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type redisProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProfileCache wraps a redis client. Returns nil when no client is
// configured so callers can skip caching entirely.
func NewProfileCache(client *redis.Client, ttl time.Duration) ProfileCache {
	if client == nil || ttl <= 0 {
		return nil
	}
	return &redisProfileCache{client: client, ttl: ttl}
}

func (c *redisProfileCache) Get(ctx context.Context, userID string) (*domain.User, bool) {
	val, err := c.client.Get(ctx, profileCachePrefix+userID).Result()
	if err != nil {
		return nil, false
	}
	var cached cachedProfile
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		return nil, false
	}
	return &domain.User{
		ID:        cached.ID,
		Name:      cached.Name,
		Email:     cached.Email,
		Phone:     cached.Phone,
		Role:      cached.Role,
		CreatedAt: cached.CreatedAt,
		UpdatedAt: cached.UpdatedAt,
	}, true
}

func (c *redisProfileCache) Set(ctx context.Context, user *domain.User) {
	payload, err := json.Marshal(cachedProfile{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	})
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, profileCachePrefix+user.ID, payload, c.ttl).Err()
}

func (c *redisProfileCache) Invalidate(ctx context.Context, userID string) {
	_ = c.client.Del(ctx, profileCachePrefix+userID).Err()
}
