package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
)

// LoginResult carries everything the login endpoint returns. RefreshToken
// mirrors AccessToken: no separate refresh mechanism exists and tokens are
// non-revocable by design. HasProfile is informational for the client and
// never gates authorization.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	HasProfile   bool
}

// AuthService verifies credentials and mints tokens. It also owns account
// CRUD since the password digest must not leave this service.
type AuthService struct {
	accounts   repository.AccountRepository
	profiles   repository.ProfileRepository
	tokenMgr   *auth.TokenManager
	limiter    *auth.LoginLimiter
	bcryptCost int
}

// AuthDependencies encapsulates collaborator requirements for auth service.
type AuthDependencies struct {
	AccountRepo repository.AccountRepository
	ProfileRepo repository.ProfileRepository
	Limiter     *auth.LoginLimiter
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		accounts:   deps.AccountRepo,
		profiles:   deps.ProfileRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL()),
		limiter:    deps.Limiter,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Login verifies the username/password pair and issues a token carrying the
// account's current role set. Unknown usernames and wrong passwords return
// the same error so callers cannot enumerate accounts. Nothing is mutated on
// login besides the failed-attempt counter.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if s.limiter.Blocked(ctx, username) {
		return nil, domain.ErrTooManyAttempts
	}

	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.limiter.RecordFailure(ctx, username)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.VerifyPassword(password, account.PasswordHash) {
		s.limiter.RecordFailure(ctx, username)
		return nil, domain.ErrInvalidCredentials
	}
	s.limiter.Reset(ctx, username)

	// Roles are snapshotted into the token here. A later role change only
	// takes effect on the next login.
	roles := []domain.Role{}
	hasProfile := false
	profile, err := s.profiles.GetByUsername(ctx, username)
	switch {
	case err == nil:
		hasProfile = true
		roles = profile.Roles
	case errors.Is(err, pgx.ErrNoRows):
		// account without profile logs in with an empty role set
	default:
		return nil, err
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(account.Username, roles)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		AccessToken:  token,
		RefreshToken: token,
		ExpiresAt:    expiresAt,
		HasProfile:   hasProfile,
	}, nil
}

// CreateAccount registers a new login credential.
func (s *AuthService) CreateAccount(ctx context.Context, username, password string) (*domain.Account, error) {
	if _, err := s.accounts.GetByUsername(ctx, username); err == nil {
		return nil, errors.New("username already exists")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{Username: username, PasswordHash: hash}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// GetAccount looks up a credential record by username.
func (s *AuthService) GetAccount(ctx context.Context, username string) (*domain.Account, error) {
	return s.accounts.GetByUsername(ctx, username)
}

// ListAccounts returns every account.
func (s *AuthService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accounts.List(ctx)
}

// UpdateAccount re-hashes the password and stores the new username.
func (s *AuthService) UpdateAccount(ctx context.Context, username, newUsername, newPassword string) (*domain.Account, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	account.Username = newUsername
	account.PasswordHash = hash
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// DeleteAccount removes the credential record.
func (s *AuthService) DeleteAccount(ctx context.Context, username string) error {
	return s.accounts.Delete(ctx, username)
}

// IsTokenValid reports whether a raw token currently verifies. Used for the
// informational tokenExpired flag in response envelopes.
func (s *AuthService) IsTokenValid(token string) bool {
	return s.tokenMgr.IsValid(token)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
