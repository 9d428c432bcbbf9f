package identity

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/askbook/askbook-api/internal/models"
	"github.com/redis/go-redis/v9"
)

// RedisDirectory implements Directory using Redis as the backing store.
// Accounts are stored as JSON under key "<prefix><email>" without expiry.
type RedisDirectory struct {
	client *redis.Client
	prefix string
}

// NewRedisDirectory creates a Redis-based directory. Prefix may be empty.
func NewRedisDirectory(client *redis.Client, prefix string) *RedisDirectory {
	if prefix == "" {
		prefix = "user:"
	}
	return &RedisDirectory{client: client, prefix: prefix}
}

func (r *RedisDirectory) key(email string) string {
	return r.prefix + email
}

// redisUser mirrors models.User but keeps the password hash, which the API shape hides.
type redisUser struct {
	models.User
	PasswordHash string `json:"passwordHash"`
}

func (r *RedisDirectory) Create(ctx context.Context, u *models.User) error {
	b, err := json.Marshal(redisUser{User: *u, PasswordHash: u.PasswordHash})
	if err != nil {
		return err
	}
	ok, err := r.client.SetNX(ctx, r.key(u.Email), b, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrEmailExists
	}
	return nil
}

func (r *RedisDirectory) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	b, err := r.client.Get(ctx, r.key(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var ru redisUser
	if err := json.Unmarshal(b, &ru); err != nil {
		return nil, err
	}
	u := ru.User
	u.PasswordHash = ru.PasswordHash
	return &u, nil
}

func (r *RedisDirectory) TouchSignIn(ctx context.Context, email string, at time.Time) error {
	u, err := r.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return err
	}
	u.Metadata.LastSignInTime = &at
	b, err := json.Marshal(redisUser{User: *u, PasswordHash: u.PasswordHash})
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(email), b, 0).Err()
}
