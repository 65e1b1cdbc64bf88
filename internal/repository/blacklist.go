package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type BlacklistRepository interface {
	Add(token string, ttl time.Duration) error
	Contains(token string) (bool, error)
}

type blacklistRepository struct {
	rdb *redis.Client
	ctx context.Context
}

func NewBlacklistRepository(rdb *redis.Client) BlacklistRepository {
	return &blacklistRepository{
		rdb: rdb,
		ctx: context.Background(),
	}
}

func (r *blacklistRepository) key(token string) string {
	return fmt.Sprintf("blacklist:%s", token)
}

func (r *blacklistRepository) Add(token string, ttl time.Duration) error {
	if ttl <= 0 {
		// Токен уже истек, блэклистить нечего
		return nil
	}
	return r.rdb.Set(r.ctx, r.key(token), "blacklisted", ttl).Err()
}

func (r *blacklistRepository) Contains(token string) (bool, error) {
	_, err := r.rdb.Get(r.ctx, r.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
