package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/observability"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// RequestHistoryHandler exposes the per-user request archive.
type RequestHistoryHandler struct {
	history *service.RequestHistoryService
	metrics *observability.Metrics
}

// NewRequestHistoryHandler constructs handler.
func NewRequestHistoryHandler(history *service.RequestHistoryService, metrics *observability.Metrics) *RequestHistoryHandler {
	return &RequestHistoryHandler{history: history, metrics: metrics}
}

// List handles GET /api/request-history.
func (h *RequestHistoryHandler) List(c *fiber.Ctx) error {
	entries, err := h.history.ListEntries(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "History retrieved", historyItems(entries))
}

// ListForUser handles GET /api/request-history/user/:username.
func (h *RequestHistoryHandler) ListForUser(c *fiber.Ctx) error {
	username := c.Params("username")

	identity, _ := auth.IdentityFromContext(c)
	if !auth.Authorize(identity, username, auth.CapabilitySelfOrAdmin) {
		h.metrics.RecordAuthDenied("self_or_admin")
		return apperrors.NewForbidden("Unauthorized")
	}

	entries, err := h.history.ListEntriesForUser(c.UserContext(), username)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "History retrieved", historyItems(entries))
}

// Create handles POST /api/request-history.
func (h *RequestHistoryHandler) Create(c *fiber.Ctx) error {
	entry, err := parseHistoryEntry(c)
	if err != nil {
		return err
	}

	identity, _ := auth.IdentityFromContext(c)
	if !auth.Authorize(identity, entry.Username, auth.CapabilitySelfOrAdmin) {
		h.metrics.RecordAuthDenied("self_or_admin")
		return apperrors.NewForbidden("Unauthorized")
	}

	created, err := h.history.CreateEntry(c.UserContext(), entry)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "History entry recorded", historyResponse(created))
}

// UpdateForUser handles PUT /api/request-history/user/:username.
func (h *RequestHistoryHandler) UpdateForUser(c *fiber.Ctx) error {
	username := c.Params("username")

	identity, _ := auth.IdentityFromContext(c)
	if !auth.Authorize(identity, username, auth.CapabilitySelfOrAdmin) {
		h.metrics.RecordAuthDenied("self_or_admin")
		return apperrors.NewForbidden("Unauthorized")
	}

	entry, err := parseHistoryEntry(c)
	if err != nil {
		return err
	}
	entry.Username = username

	updated, err := h.history.UpdateEntriesForUser(c.UserContext(), entry)
	if err != nil {
		return apperrors.NewNotFound("History entry not found")
	}
	return respond(c, http.StatusOK, "History entry updated", historyResponse(updated))
}

// DeleteForUser handles DELETE /api/request-history/user/:username.
func (h *RequestHistoryHandler) DeleteForUser(c *fiber.Ctx) error {
	username := c.Params("username")

	identity, _ := auth.IdentityFromContext(c)
	if !auth.Authorize(identity, username, auth.CapabilitySelfOrAdmin) {
		h.metrics.RecordAuthDenied("self_or_admin")
		return apperrors.NewForbidden("Unauthorized")
	}

	if err := h.history.DeleteEntriesForUser(c.UserContext(), username); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "History deleted successfully", nil)
}

func parseHistoryEntry(c *fiber.Ctx) (*domain.RequestHistory, error) {
	var req dto.RequestHistoryPayload
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	return &domain.RequestHistory{
		Username:    req.Username,
		Description: req.Description,
		Location:    req.Location,
		Status:      domain.RequestStatus(req.Status),
	}, nil
}

func historyItems(entries []domain.RequestHistory) []fiber.Map {
	items := make([]fiber.Map, 0, len(entries))
	for i := range entries {
		items = append(items, historyResponse(&entries[i]))
	}
	return items
}

func historyResponse(entry *domain.RequestHistory) fiber.Map {
	return fiber.Map{
		"id":          entry.ID,
		"username":    entry.Username,
		"description": entry.Description,
		"location":    entry.Location,
		"date":        entry.Date.Format("2006-01-02"),
		"status":      string(entry.Status),
	}
}
