package cipher

import (
	"errors"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	codec, err := NewCodec("secret")
	if err != nil {
		t.Fatalf("NewCodec returned error: %v", err)
	}

	const plaintext = "8a1f9f44-7e6c-4f4e-9b87-1d2f3a4b5c6d"

	token, err := codec.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("Encrypt returned error: %v", err)
	}
	if token == plaintext {
		t.Fatal("token must not equal the plaintext")
	}

	got, err := codec.Decrypt(token)
	if err != nil {
		t.Fatalf("Decrypt returned error: %v", err)
	}
	if got != plaintext {
		t.Errorf("Decrypt = %q, want %q", got, plaintext)
	}
}

func TestDecryptRejectsGarbage(t *testing.T) {
	codec, err := NewCodec("secret")
	if err != nil {
		t.Fatalf("NewCodec returned error: %v", err)
	}

	for _, token := range []string{"", "not base64!!!", "YWJj"} {
		if _, err := codec.Decrypt(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Decrypt(%q) = %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestDecryptRejectsTampering(t *testing.T) {
	codec, err := NewCodec("secret")
	if err != nil {
		t.Fatalf("NewCodec returned error: %v", err)
	}

	token, err := codec.Encrypt("payload")
	if err != nil {
		t.Fatalf("Encrypt returned error: %v", err)
	}

	tampered := []byte(token)
	if tampered[len(tampered)-3] == 'A' {
		tampered[len(tampered)-3] = 'B'
	} else {
		tampered[len(tampered)-3] = 'A'
	}

	if _, err := codec.Decrypt(string(tampered)); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("tampered token decrypted: %v", err)
	}
}

func TestDecryptRejectsForeignKey(t *testing.T) {
	a, _ := NewCodec("secret-a")
	b, _ := NewCodec("secret-b")

	token, err := a.Encrypt("payload")
	if err != nil {
		t.Fatalf("Encrypt returned error: %v", err)
	}

	if _, err := b.Decrypt(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("token decrypted under a foreign key: %v", err)
	}
}

func TestNewCodecRequiresSecret(t *testing.T) {
	if _, err := NewCodec(""); err == nil {
		t.Error("empty secret should be rejected")
	}
}
