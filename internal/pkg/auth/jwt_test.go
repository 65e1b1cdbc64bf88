package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGenerateValidate(t *testing.T) {
	m := NewTokenManager("test-key")
	userID := uuid.New()

	token, err := m.Generate(userID)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %s, want %s", claims.UserID, userID)
	}
}

func TestValidateRejectsForeignKey(t *testing.T) {
	token, err := NewTokenManager("key-a").Generate(uuid.New())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if _, err := NewTokenManager("key-b").Validate(token); err == nil {
		t.Error("token signed with a different key should fail")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	m := NewTokenManager("test-key")
	if _, err := m.Validate("not.a.token"); err == nil {
		t.Error("garbage token should fail validation")
	}
}

func TestRemainingTTL(t *testing.T) {
	m := NewTokenManager("test-key")

	token, err := m.Generate(uuid.New())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}

	ttl := m.RemainingTTL(claims)
	if ttl <= 0 || ttl > TokenTTL {
		t.Errorf("RemainingTTL = %v, want within (0, %v]", ttl, TokenTTL)
	}

	expired := &Claims{}
	expired.ExpiresAt = time.Now().Add(-time.Hour).Unix()
	if got := m.RemainingTTL(expired); got != 0 {
		t.Errorf("RemainingTTL for expired claims = %v, want 0", got)
	}
}
