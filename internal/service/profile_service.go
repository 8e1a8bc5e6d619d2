package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// ProfileService manages user profiles and their role sets.
type ProfileService struct {
	profiles repository.ProfileRepository
}

// NewProfileService builds the service.
func NewProfileService(profiles repository.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// CreateProfile stores a new profile; at most one profile exists per username.
func (s *ProfileService) CreateProfile(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	if _, err := s.profiles.GetByUsername(ctx, profile.Username); err == nil {
		return nil, apperrors.NewConflict("Profile already exists for this user")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if len(profile.Roles) == 0 {
		profile.Roles = []domain.Role{domain.RoleClient}
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetProfile fetches a profile by username.
func (s *ProfileService) GetProfile(ctx context.Context, username string) (*domain.Profile, error) {
	return s.profiles.GetByUsername(ctx, username)
}

// ListProfiles returns every profile.
func (s *ProfileService) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	return s.profiles.List(ctx)
}

// ListProfilesByRole returns profiles carrying the given role tag.
func (s *ProfileService) ListProfilesByRole(ctx context.Context, role domain.Role) ([]domain.Profile, error) {
	return s.profiles.ListByRole(ctx, role)
}

// UpdateProfile replaces the mutable fields of an existing profile.
func (s *ProfileService) UpdateProfile(ctx context.Context, updated *domain.Profile) (*domain.Profile, error) {
	existing, err := s.profiles.GetByUsername(ctx, updated.Username)
	if err != nil {
		return nil, err
	}

	existing.FirstName = updated.FirstName
	existing.LastName = updated.LastName
	existing.Email = updated.Email
	existing.PhoneNumber = updated.PhoneNumber
	existing.Address = updated.Address
	existing.Roles = updated.Roles
	if err := s.profiles.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteProfile removes the profile for a username.
func (s *ProfileService) DeleteProfile(ctx context.Context, username string) error {
	return s.profiles.Delete(ctx, username)
}
