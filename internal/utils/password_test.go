package utils

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "" {
		t.Fatal("HashPassword() returned empty hash")
	}
	if hash == "correct horse battery staple" {
		t.Error("hash must not equal the plaintext")
	}
	if !strings.HasPrefix(hash, "$2a$") && !strings.HasPrefix(hash, "$2b$") {
		t.Errorf("hash does not look like bcrypt: %q", hash[:8])
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	hash1, _ := HashPassword("same-password")
	hash2, _ := HashPassword("same-password")

	if hash1 == hash2 {
		t.Error("two hashes of the same password should differ (random salt)")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, _ := HashPassword("s3cret!")

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"correct", "s3cret!", true},
		{"wrong", "s3cret?", false},
		{"empty", "", false},
		{"case sensitive", "S3CRET!", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckPassword(tt.password, hash); got != tt.want {
				t.Errorf("CheckPassword(%q) = %v, expected %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestCheckPassword_InvalidHash(t *testing.T) {
	if CheckPassword("anything", "not-a-bcrypt-hash") {
		t.Error("CheckPassword should reject a malformed hash")
	}
}

func TestHashPassword_TooLong(t *testing.T) {
	// bcrypt rejects input over 72 bytes.
	if _, err := HashPassword(strings.Repeat("p", 73)); err == nil {
		t.Error("HashPassword should error on input over 72 bytes")
	}
}
