package handler

import (
	"context"
	"net/http"
	"strings"

	"gupshup/chat_backend/internal/pkg/auth"
	"gupshup/chat_backend/internal/pkg/httputils"
	"gupshup/chat_backend/internal/repository"

	"github.com/google/uuid"
)

type contextKey string

const userIDKey contextKey = "userID"

type AuthMiddleware struct {
	tokens    *auth.TokenManager
	blacklist repository.BlacklistRepository
}

func NewAuthMiddleware(tokens *auth.TokenManager, blacklist repository.BlacklistRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, blacklist: blacklist}
}

// Handler проверяет Bearer-токен и кладет id пользователя в контекст.
// Разлогиненные токены отсекаются по блэклисту.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			httputils.ResponseError(w, http.StatusUnauthorized, "missing token")
			return
		}

		blacklisted, err := m.blacklist.Contains(token)
		if err != nil {
			httputils.ResponseError(w, http.StatusInternalServerError, "failed to check token")
			return
		}
		if blacklisted {
			httputils.ResponseError(w, http.StatusUnauthorized, "token is revoked")
			return
		}

		claims, err := m.tokens.Validate(token)
		if err != nil {
			httputils.ResponseError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// CallerID достает id аутентифицированного пользователя из контекста.
func CallerID(r *http.Request) (uuid.UUID, bool) {
	id, ok := r.Context().Value(userIDKey).(uuid.UUID)
	return id, ok
}
