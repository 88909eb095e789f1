package auth

import (
	"testing"
	"time"
)

func TestGenerateAndValidateToken(t *testing.T) {
	m := NewTokenManager([]byte("secret"), time.Hour)

	token, err := m.GenerateToken("scheduler-1", ScopeAdmission, ScopeCategories)
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error: %v", err)
	}
	if claims.Subject != "scheduler-1" {
		t.Fatalf("expected subject scheduler-1, got %q", claims.Subject)
	}
	if !claims.HasScope(ScopeAdmission) || !claims.HasScope(ScopeCategories) {
		t.Fatalf("expected both scopes, got %q", claims.Scope)
	}
	if claims.HasScope("admin") {
		t.Fatal("unexpected admin scope")
	}
}

func TestValidateTokenRejects(t *testing.T) {
	m := NewTokenManager([]byte("secret"), time.Hour)
	other := NewTokenManager([]byte("other"), time.Hour)
	expired := NewTokenManager([]byte("secret"), -time.Minute)

	foreign, err := other.GenerateToken("x", ScopeAdmission)
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}
	stale, err := expired.GenerateToken("x", ScopeAdmission)
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	for name, token := range map[string]string{
		"wrong key": foreign,
		"expired":   stale,
		"garbage":   "not.a.token",
	} {
		if _, err := m.ValidateToken(token); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}
