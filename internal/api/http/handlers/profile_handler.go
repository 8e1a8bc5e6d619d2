package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/observability"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// ProfileHandler exposes user-profile endpoints. Mutating operations are
// self-or-admin: the authorization check always runs before persistence is
// touched.
type ProfileHandler struct {
	profiles *service.ProfileService
	metrics  *observability.Metrics
}

// NewProfileHandler constructs handler.
func NewProfileHandler(profiles *service.ProfileService, metrics *observability.Metrics) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, metrics: metrics}
}

// CreateProfile handles POST /api/user-profile.
func (h *ProfileHandler) CreateProfile(c *fiber.Ctx) error {
	var req dto.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	identity, _ := auth.IdentityFromContext(c)
	if !auth.Authorize(identity, req.Username, auth.CapabilitySelfOrAdmin) {
		h.metrics.RecordAuthDenied("self_or_admin")
		return apperrors.NewForbidden("Unauthorized to create profile for this user")
	}

	profile, err := profileFromRequest(&req)
	if err != nil {
		return err
	}
	created, err := h.profiles.CreateProfile(c.UserContext(), profile)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Profile created successfully", profileResponse(created))
}

// GetOwnProfile handles GET /api/user-profile.
func (h *ProfileHandler) GetOwnProfile(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	profile, err := h.profiles.GetProfile(c.UserContext(), identity.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Profile does not exist for this user")
		}
		return err
	}
	return respond(c, http.StatusOK, "Profile retrieved", profileResponse(profile))
}

// GetProfilesByRole handles GET /api/user-profile/role/:role. The role path
// parameter is parsed against the closed role enumeration; unrecognized
// input is a 400, never a server error.
func (h *ProfileHandler) GetProfilesByRole(c *fiber.Ctx) error {
	role, err := domain.ParseRole(c.Params("role"))
	if err != nil {
		return apperrors.NewValidationError("Invalid role: " + c.Params("role"))
	}

	profiles, err := h.profiles.ListProfilesByRole(c.UserContext(), role)
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		return apperrors.NewNotFound("No profiles found for role: " + string(role))
	}
	return respond(c, http.StatusOK, "Profiles retrieved successfully", profileResponses(profiles))
}

// GetAllProfiles handles GET /api/user-profile/all.
func (h *ProfileHandler) GetAllProfiles(c *fiber.Ctx) error {
	profiles, err := h.profiles.ListProfiles(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "All profiles retrieved", profileResponses(profiles))
}

// UpdateProfile handles PUT /api/user-profile.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	identity, _ := auth.IdentityFromContext(c)
	if !auth.Authorize(identity, req.Username, auth.CapabilitySelfOrAdmin) {
		h.metrics.RecordAuthDenied("self_or_admin")
		return apperrors.NewForbidden("Unauthorized to update this profile")
	}

	profile, err := profileFromRequest(&req)
	if err != nil {
		return err
	}
	updated, err := h.profiles.UpdateProfile(c.UserContext(), profile)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Profile does not exist for this user")
		}
		return err
	}
	return respond(c, http.StatusOK, "Profile updated", profileResponse(updated))
}

// DeleteProfile handles DELETE /api/user-profile.
func (h *ProfileHandler) DeleteProfile(c *fiber.Ctx) error {
	var req dto.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Username == "" {
		return apperrors.NewValidationError("username is required")
	}

	identity, _ := auth.IdentityFromContext(c)
	if !auth.Authorize(identity, req.Username, auth.CapabilitySelfOrAdmin) {
		h.metrics.RecordAuthDenied("self_or_admin")
		return apperrors.NewForbidden("Unauthorized to delete this profile")
	}

	if err := h.profiles.DeleteProfile(c.UserContext(), req.Username); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Profile does not exist for this user")
		}
		return err
	}
	return respond(c, http.StatusOK, "Profile deleted successfully", nil)
}

func profileFromRequest(req *dto.ProfileRequest) (*domain.Profile, error) {
	roles := make([]domain.Role, 0, len(req.Roles))
	for _, raw := range req.Roles {
		role, err := domain.ParseRole(raw)
		if err != nil {
			return nil, apperrors.NewValidationError("Invalid role: " + raw)
		}
		roles = append(roles, role)
	}
	return &domain.Profile{
		Username:    req.Username,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Roles:       roles,
	}, nil
}

func profileResponse(profile *domain.Profile) dto.ProfileResponse {
	roles := make([]string, 0, len(profile.Roles))
	for _, r := range profile.Roles {
		roles = append(roles, string(r))
	}
	return dto.ProfileResponse{
		ID:          profile.ID,
		Username:    profile.Username,
		FirstName:   profile.FirstName,
		LastName:    profile.LastName,
		Email:       profile.Email,
		PhoneNumber: profile.PhoneNumber,
		Address:     profile.Address,
		Roles:       roles,
		CreatedAt:   profile.CreatedAt,
		UpdatedAt:   profile.UpdatedAt,
	}
}

func profileResponses(profiles []domain.Profile) []dto.ProfileResponse {
	items := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		items = append(items, profileResponse(&profiles[i]))
	}
	return items
}
