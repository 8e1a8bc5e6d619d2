package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/observability"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// UsersHandler exposes login and account CRUD endpoints.
type UsersHandler struct {
	auth    *service.AuthService
	metrics *observability.Metrics
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, metrics *observability.Metrics) *UsersHandler {
	return &UsersHandler{auth: authService, metrics: metrics}
}

// Login handles POST /api/users/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	result, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			// identical response for unknown username and wrong password
			h.metrics.RecordLogin("failure")
			return apperrors.NewUnauthorized("Invalid username or password")
		case errors.Is(err, domain.ErrTooManyAttempts):
			h.metrics.RecordLogin("locked")
			return apperrors.NewDomainError("TOO_MANY_ATTEMPTS", "Too many failed login attempts. Try again later.", http.StatusTooManyRequests)
		default:
			return err
		}
	}

	h.metrics.RecordLogin("success")
	return respond(c, http.StatusOK, "Login successful", dto.LoginResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		HasProfile:   result.HasProfile,
	})
}

// CreateUser handles POST /api/users.
func (h *UsersHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.AccountRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	account, err := h.auth.CreateAccount(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return apperrors.NewConflict("Username already exists")
	}
	return respond(c, http.StatusCreated, "User created successfully", accountResponse(account))
}

// ListUsers handles GET /api/users.
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	accounts, err := h.auth.ListAccounts(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.AccountResponse, 0, len(accounts))
	for i := range accounts {
		items = append(items, accountResponse(&accounts[i]))
	}
	return respond(c, http.StatusOK, "All users retrieved", items)
}

// GetUser handles GET /api/users/:username.
func (h *UsersHandler) GetUser(c *fiber.Ctx) error {
	account, err := h.auth.GetAccount(c.UserContext(), c.Params("username"))
	if err != nil {
		return apperrors.NewNotFound("User not found")
	}
	return respond(c, http.StatusOK, "User retrieved", accountResponse(account))
}

// UpdateUser handles PUT /api/users/:username.
func (h *UsersHandler) UpdateUser(c *fiber.Ctx) error {
	username := c.Params("username")
	identity, _ := auth.IdentityFromContext(c)
	if !auth.Authorize(identity, username, auth.CapabilitySelfOrAdmin) {
		h.metrics.RecordAuthDenied("self_or_admin")
		return apperrors.NewForbidden("Unauthorized")
	}

	var req dto.AccountRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	account, err := h.auth.UpdateAccount(c.UserContext(), username, req.Username, req.Password)
	if err != nil {
		return apperrors.NewNotFound("User not found")
	}
	return respond(c, http.StatusOK, "User updated successfully", accountResponse(account))
}

// DeleteUser handles DELETE /api/users/:username.
func (h *UsersHandler) DeleteUser(c *fiber.Ctx) error {
	username := c.Params("username")
	identity, _ := auth.IdentityFromContext(c)
	if !auth.Authorize(identity, username, auth.CapabilitySelfOrAdmin) {
		h.metrics.RecordAuthDenied("self_or_admin")
		return apperrors.NewForbidden("Unauthorized")
	}

	if err := h.auth.DeleteAccount(c.UserContext(), username); err != nil {
		return apperrors.NewNotFound("User not found")
	}
	return respond(c, http.StatusOK, "User deleted successfully", nil)
}

func accountResponse(account *domain.Account) dto.AccountResponse {
	return dto.AccountResponse{
		ID:        account.ID,
		Username:  account.Username,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}
