package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// InviteTTL — сколько живет приглашение в группу.
const InviteTTL = 24 * time.Hour

type InviteRepository interface {
	SaveToken(userID uuid.UUID, token string) error
	GetToken(userID uuid.UUID) (string, error)
}

type inviteRepository struct {
	rdb *redis.Client
	ctx context.Context
}

func NewInviteRepository(rdb *redis.Client) InviteRepository {
	return &inviteRepository{
		rdb: rdb,
		ctx: context.Background(),
	}
}

func (r *inviteRepository) key(userID uuid.UUID) string {
	return fmt.Sprintf("invite:%s", userID)
}

func (r *inviteRepository) SaveToken(userID uuid.UUID, token string) error {
	return r.rdb.Set(r.ctx, r.key(userID), token, InviteTTL).Err()
}

// GetToken возвращает пустую строку, если токена нет или он истек.
func (r *inviteRepository) GetToken(userID uuid.UUID) (string, error) {
	token, err := r.rdb.Get(r.ctx, r.key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return token, nil
}
