package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRepository keeps issued session tokens so logout can revoke them
// before JWT expiry.
type TokenRepository struct {
	client *redis.Client
}

func NewTokenRepository(client *redis.Client) *TokenRepository {
	return &TokenRepository{
		client: client,
	}
}

func tokenKey(token string) string {
	return fmt.Sprintf("session:token:%s", token)
}

func (r *TokenRepository) StoreToken(ctx context.Context, userID uint, token string, ttl time.Duration) error {
	userIDStr := strconv.FormatUint(uint64(userID), 10)

	err := r.client.Set(ctx, tokenKey(token), userIDStr, ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to store session token: %w", err)
	}

	return nil
}

// ValidateToken returns the owning user id for a live token.
func (r *TokenRepository) ValidateToken(ctx context.Context, token string) (string, error) {
	userID, err := r.client.Get(ctx, tokenKey(token)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", errors.New("token not found or expired")
		}
		return "", fmt.Errorf("failed to validate token: %w", err)
	}

	return userID, nil
}

func (r *TokenRepository) DeleteToken(ctx context.Context, userID uint, token string) error {
	if err := r.client.Del(ctx, tokenKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete session token: %w", err)
	}

	return nil
}
