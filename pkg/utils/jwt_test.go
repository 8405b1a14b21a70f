package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "user@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %s, want %s", claims.UserID, userID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)
	other := NewJWTManager("different", time.Hour, 24*time.Hour)

	token, err := m.GenerateAccessToken(uuid.New(), "user@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := other.ValidateAccessToken(token); err == nil {
		t.Error("token signed with another secret was accepted")
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute, 24*time.Hour)

	token, err := m.GenerateAccessToken(uuid.New(), "user@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := m.ValidateAccessToken(token); err == nil {
		t.Error("expired token was accepted")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := m.ValidateAccessToken(token); err == nil {
			t.Errorf("garbage token %q was accepted", token)
		}
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	token, err := m.GenerateRefreshToken(userID)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	gotID, err := m.ValidateRefreshToken(token)
	if err != nil {
		t.Fatalf("ValidateRefreshToken: %v", err)
	}
	if gotID != userID {
		t.Errorf("user id = %s, want %s", gotID, userID)
	}
}

func TestRefreshTokenNotValidAsAccessToken(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)

	token, err := m.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	if _, err := m.ValidateAccessToken(token); err == nil {
		t.Error("refresh token was accepted as an access token")
	}
}
