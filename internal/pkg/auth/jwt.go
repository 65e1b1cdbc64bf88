package auth

import (
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

const TokenTTL = 170 * time.Hour

type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.StandardClaims
}

type TokenManager struct {
	key []byte
}

func NewTokenManager(key string) *TokenManager {
	return &TokenManager{key: []byte(key)}
}

func (m *TokenManager) Generate(userID uuid.UUID) (string, error) {
	expirationTime := time.Now().Add(TokenTTL)
	claims := &Claims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(m.key)
}

func (m *TokenManager) Validate(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		return m.key, nil
	})

	if err != nil {
		return nil, err
	}

	if !tkn.Valid {
		return nil, jwt.ErrSignatureInvalid
	}

	return claims, nil
}

// RemainingTTL — сколько токену осталось жить; нужен для блэклиста при logout.
func (m *TokenManager) RemainingTTL(claims *Claims) time.Duration {
	remaining := time.Until(time.Unix(claims.ExpiresAt, 0))
	if remaining < 0 {
		return 0
	}
	return remaining
}
