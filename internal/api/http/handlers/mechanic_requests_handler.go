package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/observability"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// MechanicRequestsHandler exposes mechanic call-out endpoints.
type MechanicRequestsHandler struct {
	requests *service.MechanicRequestService
	metrics  *observability.Metrics
}

// NewMechanicRequestsHandler constructs handler.
func NewMechanicRequestsHandler(requests *service.MechanicRequestService, metrics *observability.Metrics) *MechanicRequestsHandler {
	return &MechanicRequestsHandler{requests: requests, metrics: metrics}
}

// Create handles POST /api/request-mechanic.
func (h *MechanicRequestsHandler) Create(c *fiber.Ctx) error {
	req, err := h.parsePayload(c)
	if err != nil {
		return err
	}

	identity, _ := auth.IdentityFromContext(c)
	if !auth.Authorize(identity, req.Username, auth.CapabilitySelfOrAdmin) {
		h.metrics.RecordAuthDenied("self_or_admin")
		return apperrors.NewForbidden("Unauthorized")
	}

	created, err := h.requests.CreateRequest(c.UserContext(), req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Request created successfully", mechanicRequestResponse(created))
}

// Update handles PUT /api/request-mechanic.
func (h *MechanicRequestsHandler) Update(c *fiber.Ctx) error {
	req, err := h.parsePayload(c)
	if err != nil {
		return err
	}

	identity, _ := auth.IdentityFromContext(c)
	if !auth.Authorize(identity, req.Username, auth.CapabilitySelfOrAdmin) {
		h.metrics.RecordAuthDenied("self_or_admin")
		return apperrors.NewForbidden("Unauthorized")
	}

	updated, err := h.requests.UpdateRequest(c.UserContext(), req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Request updated successfully", mechanicRequestResponse(updated))
}

// ListByUsername handles GET /api/request-mechanic/user/:username.
func (h *MechanicRequestsHandler) ListByUsername(c *fiber.Ctx) error {
	requests, err := h.requests.ListRequestsForUser(c.UserContext(), c.Params("username"))
	if err != nil {
		return err
	}
	items := make([]dto.MechanicRequestPayload, 0, len(requests))
	for i := range requests {
		items = append(items, mechanicRequestResponse(&requests[i]))
	}
	return respond(c, http.StatusOK, "Requests retrieved", items)
}

// GetByID handles GET /api/request-mechanic/:id.
func (h *MechanicRequestsHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return apperrors.NewValidationError("invalid id")
	}
	request, err := h.requests.GetRequest(c.UserContext(), id)
	if err != nil {
		return apperrors.NewNotFound("Request not found")
	}
	return respond(c, http.StatusOK, "Request retrieved", mechanicRequestResponse(request))
}

// DeleteByUsername handles DELETE /api/request-mechanic/user/:username.
func (h *MechanicRequestsHandler) DeleteByUsername(c *fiber.Ctx) error {
	username := c.Params("username")
	identity, _ := auth.IdentityFromContext(c)
	if !auth.Authorize(identity, username, auth.CapabilitySelfOrAdmin) {
		h.metrics.RecordAuthDenied("self_or_admin")
		return apperrors.NewForbidden("Unauthorized")
	}

	if err := h.requests.DeleteRequestsForUser(c.UserContext(), username); err != nil {
		return apperrors.NewNotFound("No requests found for user")
	}
	return respond(c, http.StatusOK, "Requests deleted successfully", nil)
}

func (h *MechanicRequestsHandler) parsePayload(c *fiber.Ctx) (*domain.MechanicRequest, error) {
	var req dto.MechanicRequestPayload
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	request := &domain.MechanicRequest{
		ID:          req.ID,
		Username:    req.Username,
		Description: req.Description,
		Location:    req.Location,
		MechanicID:  req.MechanicID,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Status:      domain.RequestStatus(req.Status),
	}
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, apperrors.NewValidationError("date must be yyyy-MM-dd")
		}
		request.Date = date
	}
	return request, nil
}

func mechanicRequestResponse(req *domain.MechanicRequest) dto.MechanicRequestPayload {
	return dto.MechanicRequestPayload{
		ID:          req.ID,
		Username:    req.Username,
		Description: req.Description,
		Location:    req.Location,
		MechanicID:  req.MechanicID,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Date:        req.Date.Format("2006-01-02"),
		Status:      string(req.Status),
	}
}
