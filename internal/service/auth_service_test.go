package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/domain"
)

type stubAccountRepo struct {
	accounts map[string]*domain.Account
}

func (s *stubAccountRepo) Create(_ context.Context, account *domain.Account) error {
	account.ID = int64(len(s.accounts) + 1)
	s.accounts[account.Username] = account
	return nil
}

func (s *stubAccountRepo) Update(_ context.Context, account *domain.Account) error {
	s.accounts[account.Username] = account
	return nil
}

func (s *stubAccountRepo) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	account, ok := s.accounts[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return account, nil
}

func (s *stubAccountRepo) List(_ context.Context) ([]domain.Account, error) {
	out := make([]domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, *a)
	}
	return out, nil
}

func (s *stubAccountRepo) Delete(_ context.Context, username string) error {
	delete(s.accounts, username)
	return nil
}

type stubProfileRepo struct {
	profiles map[string]*domain.Profile
}

func (s *stubProfileRepo) Create(_ context.Context, profile *domain.Profile) error {
	s.profiles[profile.Username] = profile
	return nil
}

func (s *stubProfileRepo) Update(_ context.Context, profile *domain.Profile) error {
	s.profiles[profile.Username] = profile
	return nil
}

func (s *stubProfileRepo) GetByUsername(_ context.Context, username string) (*domain.Profile, error) {
	profile, ok := s.profiles[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return profile, nil
}

func (s *stubProfileRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.Profile, error) {
	out := []domain.Profile{}
	for _, p := range s.profiles {
		if domain.HasRole(p.Roles, role) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubProfileRepo) List(_ context.Context) ([]domain.Profile, error) {
	out := make([]domain.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (s *stubProfileRepo) Delete(_ context.Context, username string) error {
	delete(s.profiles, username)
	return nil
}

func newTestAuthService(t *testing.T) (*AuthService, *stubAccountRepo, *stubProfileRepo) {
	t.Helper()
	accounts := &stubAccountRepo{accounts: map[string]*domain.Account{}}
	profiles := &stubProfileRepo{profiles: map[string]*domain.Profile{}}
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 30,
			BcryptCost:            bcrypt.MinCost,
		},
	}
	svc := NewAuthService(cfg, AuthDependencies{
		AccountRepo: accounts,
		ProfileRepo: profiles,
		Limiter:     auth.NewLoginLimiter(nil, 10, 0),
	})
	return svc, accounts, profiles
}

func seedAccount(t *testing.T, svc *AuthService, username, password string) {
	t.Helper()
	if _, err := svc.CreateAccount(context.Background(), username, password); err != nil {
		t.Fatalf("CreateAccount(%q): %v", username, err)
	}
}

func TestLoginSuccessWithProfile(t *testing.T) {
	svc, _, profiles := newTestAuthService(t)
	seedAccount(t, svc, "bob", "s3cret")
	profiles.profiles["bob"] = &domain.Profile{
		Username: "bob",
		Roles:    []domain.Role{domain.RoleClient, domain.RoleMechanic},
	}

	result, err := svc.Login(context.Background(), "bob", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !result.HasProfile {
		t.Error("HasProfile = false, want true")
	}
	if result.AccessToken == "" {
		t.Fatal("empty access token")
	}
	if result.RefreshToken != result.AccessToken {
		t.Error("refresh token does not mirror access token")
	}

	claims, err := svc.TokenManager().ParseToken(result.AccessToken)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Username != "bob" {
		t.Errorf("token subject = %q, want bob", claims.Username)
	}
	if len(claims.Roles) != 2 {
		t.Errorf("token roles = %v, want 2 roles", claims.Roles)
	}
}

func TestLoginWithoutProfile(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	seedAccount(t, svc, "carol", "s3cret")

	result, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.HasProfile {
		t.Error("HasProfile = true for account without profile")
	}
	claims, err := svc.TokenManager().ParseToken(result.AccessToken)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if len(claims.Roles) != 0 {
		t.Errorf("token roles = %v, want empty", claims.Roles)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	seedAccount(t, svc, "bob", "s3cret")

	_, unknownErr := svc.Login(context.Background(), "nosuchuser", "whatever")
	_, badPassErr := svc.Login(context.Background(), "bob", "wrong")

	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
		t.Errorf("unknown user err = %v, want ErrInvalidCredentials", unknownErr)
	}
	if !errors.Is(badPassErr, domain.ErrInvalidCredentials) {
		t.Errorf("bad password err = %v, want ErrInvalidCredentials", badPassErr)
	}
	if unknownErr.Error() != badPassErr.Error() {
		t.Errorf("error messages differ: %q vs %q", unknownErr, badPassErr)
	}
}

func TestRoleChangeNeedsRelogin(t *testing.T) {
	svc, _, profiles := newTestAuthService(t)
	seedAccount(t, svc, "bob", "s3cret")
	profiles.profiles["bob"] = &domain.Profile{
		Username: "bob",
		Roles:    []domain.Role{domain.RoleClient},
	}

	first, err := svc.Login(context.Background(), "bob", "s3cret")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}

	profiles.profiles["bob"].Roles = []domain.Role{domain.RoleClient, domain.RoleAdmin}

	claims, err := svc.TokenManager().ParseToken(first.AccessToken)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if domain.HasRole(claims.Roles, domain.RoleAdmin) {
		t.Error("old token gained admin without re-login")
	}

	second, err := svc.Login(context.Background(), "bob", "s3cret")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	claims, err = svc.TokenManager().ParseToken(second.AccessToken)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if !domain.HasRole(claims.Roles, domain.RoleAdmin) {
		t.Error("new token missing admin role")
	}
}

func TestCreateAccountRejectsDuplicate(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	seedAccount(t, svc, "bob", "s3cret")

	if _, err := svc.CreateAccount(context.Background(), "bob", "other"); err == nil {
		t.Fatal("duplicate username accepted")
	}
}

func TestCreateAccountHashesPassword(t *testing.T) {
	svc, accounts, _ := newTestAuthService(t)
	seedAccount(t, svc, "bob", "s3cret")

	stored := accounts.accounts["bob"]
	if stored.PasswordHash == "s3cret" {
		t.Fatal("password stored in plaintext")
	}
	if !auth.VerifyPassword("s3cret", stored.PasswordHash) {
		t.Error("stored hash does not verify")
	}
}

func TestUpdateAccountRehashes(t *testing.T) {
	svc, accounts, _ := newTestAuthService(t)
	seedAccount(t, svc, "bob", "s3cret")
	oldHash := accounts.accounts["bob"].PasswordHash

	updated, err := svc.UpdateAccount(context.Background(), "bob", "bob", "newpass")
	if err != nil {
		t.Fatalf("UpdateAccount: %v", err)
	}
	if updated.PasswordHash == oldHash {
		t.Error("password hash unchanged after update")
	}
	if !auth.VerifyPassword("newpass", updated.PasswordHash) {
		t.Error("new hash does not verify")
	}
}
