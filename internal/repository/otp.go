package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTPTTL — время жизни одноразового кода входа.
const OTPTTL = 5 * time.Minute

type OTPRepository interface {
	SaveCode(email, codeHash string) error
	GetCode(email string) (string, error)
	DeleteCode(email string) error
}

type otpRepository struct {
	rdb *redis.Client
	ctx context.Context
}

func NewOTPRepository(rdb *redis.Client) OTPRepository {
	return &otpRepository{
		rdb: rdb,
		ctx: context.Background(),
	}
}

func (r *otpRepository) key(email string) string {
	return fmt.Sprintf("otp:%s", email)
}

// SaveCode хранит bcrypt-хеш кода, не сам код.
func (r *otpRepository) SaveCode(email, codeHash string) error {
	return r.rdb.Set(r.ctx, r.key(email), codeHash, OTPTTL).Err()
}

func (r *otpRepository) GetCode(email string) (string, error) {
	hash, err := r.rdb.Get(r.ctx, r.key(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return hash, nil
}

func (r *otpRepository) DeleteCode(email string) error {
	return r.rdb.Del(r.ctx, r.key(email)).Err()
}
