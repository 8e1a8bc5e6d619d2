package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

func newTestManager(t *testing.T, ttl time.Duration) (*TokenManager, time.Time) {
	t.Helper()
	tm := NewTokenManager("test-secret", ttl)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tm.now = func() time.Time { return base }
	return tm, base
}

func TestGenerateAndParseToken(t *testing.T) {
	tm, base := newTestManager(t, 30*time.Minute)

	roles := []domain.Role{domain.RoleClient, domain.RoleMechanic}
	tokenStr, expiresAt, err := tm.GenerateToken("bob", roles)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if want := base.Add(30 * time.Minute); !expiresAt.Equal(want) {
		t.Fatalf("expiresAt = %v, want %v", expiresAt, want)
	}

	claims, err := tm.ParseToken(tokenStr)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Username != "bob" {
		t.Errorf("username = %q, want bob", claims.Username)
	}
	if claims.Subject != "bob" {
		t.Errorf("subject = %q, want bob", claims.Subject)
	}
	if len(claims.Roles) != 2 || claims.Roles[0] != domain.RoleClient || claims.Roles[1] != domain.RoleMechanic {
		t.Errorf("roles = %v, want %v", claims.Roles, roles)
	}
}

func TestParseTokenIsRepeatable(t *testing.T) {
	tm, _ := newTestManager(t, time.Hour)

	tokenStr, _, err := tm.GenerateToken("carol", []domain.Role{domain.RoleAdmin})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	first, err := tm.ParseToken(tokenStr)
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	second, err := tm.ParseToken(tokenStr)
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if first.Username != second.Username || len(first.Roles) != len(second.Roles) {
		t.Errorf("parses disagree: %+v vs %+v", first, second)
	}
}

func TestParseTokenExpired(t *testing.T) {
	tm, base := newTestManager(t, 15*time.Minute)

	tokenStr, _, err := tm.GenerateToken("bob", []domain.Role{domain.RoleClient})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tm.now = func() time.Time { return base.Add(16 * time.Minute) }

	if _, err := tm.ParseToken(tokenStr); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("err = %v, want ErrTokenExpired", err)
	}
	if tm.IsValid(tokenStr) {
		t.Error("IsValid = true for expired token")
	}
}

func TestParseTokenBadSignature(t *testing.T) {
	tm, _ := newTestManager(t, time.Hour)

	tokenStr, _, err := tm.GenerateToken("bob", []domain.Role{domain.RoleClient})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	other := NewTokenManager("different-secret", time.Hour)
	other.now = tm.now

	if _, err := other.ParseToken(tokenStr); !errors.Is(err, ErrTokenSignatureInvalid) {
		t.Fatalf("err = %v, want ErrTokenSignatureInvalid", err)
	}
}

func TestParseTokenMalformed(t *testing.T) {
	tm, _ := newTestManager(t, time.Hour)

	for _, tokenStr := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := tm.ParseToken(tokenStr); !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("ParseToken(%q) err = %v, want ErrTokenMalformed", tokenStr, err)
		}
	}
}

func TestGenerateTokenEmptyRoles(t *testing.T) {
	tm, _ := newTestManager(t, time.Hour)

	tokenStr, _, err := tm.GenerateToken("norole", nil)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	claims, err := tm.ParseToken(tokenStr)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if len(claims.Roles) != 0 {
		t.Errorf("roles = %v, want empty", claims.Roles)
	}
}
