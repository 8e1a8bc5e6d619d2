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

// CarWashBookingsHandler exposes car-wash booking endpoints.
type CarWashBookingsHandler struct {
	bookings *service.CarWashBookingService
	metrics  *observability.Metrics
}

// NewCarWashBookingsHandler constructs handler.
func NewCarWashBookingsHandler(bookings *service.CarWashBookingService, metrics *observability.Metrics) *CarWashBookingsHandler {
	return &CarWashBookingsHandler{bookings: bookings, metrics: metrics}
}

// Create handles POST /api/carwash-bookings/create.
func (h *CarWashBookingsHandler) Create(c *fiber.Ctx) error {
	booking, err := h.parsePayload(c)
	if err != nil {
		return err
	}

	identity, _ := auth.IdentityFromContext(c)
	if !auth.Authorize(identity, booking.ClientUsername, auth.CapabilitySelfOrAdmin) {
		h.metrics.RecordAuthDenied("self_or_admin")
		return apperrors.NewForbidden("Unauthorized")
	}

	created, err := h.bookings.CreateBooking(c.UserContext(), booking)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Booking created successfully", bookingResponse(created))
}

// List handles GET /api/carwash-bookings.
func (h *CarWashBookingsHandler) List(c *fiber.Ctx) error {
	bookings, err := h.bookings.ListBookings(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Bookings retrieved", bookingResponses(bookings))
}

// ListByClient handles GET /api/carwash-bookings/client/:username.
func (h *CarWashBookingsHandler) ListByClient(c *fiber.Ctx) error {
	bookings, err := h.bookings.ListBookingsForClient(c.UserContext(), c.Params("username"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Bookings retrieved", bookingResponses(bookings))
}

// GetByID handles GET /api/carwash-bookings/:id.
func (h *CarWashBookingsHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return apperrors.NewValidationError("invalid id")
	}
	booking, err := h.bookings.GetBooking(c.UserContext(), id)
	if err != nil {
		return apperrors.NewNotFound("Booking not found")
	}
	return respond(c, http.StatusOK, "Booking retrieved", bookingResponse(booking))
}

// Update handles PUT /api/carwash-bookings/update/:id.
func (h *CarWashBookingsHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return apperrors.NewValidationError("invalid id")
	}
	booking, err := h.parsePayload(c)
	if err != nil {
		return err
	}
	booking.ID = id

	identity, _ := auth.IdentityFromContext(c)
	if !auth.Authorize(identity, booking.ClientUsername, auth.CapabilitySelfOrAdmin) {
		h.metrics.RecordAuthDenied("self_or_admin")
		return apperrors.NewForbidden("Unauthorized")
	}

	updated, err := h.bookings.UpdateBooking(c.UserContext(), booking)
	if err != nil {
		return apperrors.NewNotFound("Booking not found")
	}
	return respond(c, http.StatusOK, "Booking updated successfully", bookingResponse(updated))
}

// Delete handles DELETE /api/carwash-bookings/delete/:id.
func (h *CarWashBookingsHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return apperrors.NewValidationError("invalid id")
	}

	booking, err := h.bookings.GetBooking(c.UserContext(), id)
	if err != nil {
		return apperrors.NewNotFound("Booking not found")
	}

	identity, _ := auth.IdentityFromContext(c)
	if !auth.Authorize(identity, booking.ClientUsername, auth.CapabilitySelfOrAdmin) {
		h.metrics.RecordAuthDenied("self_or_admin")
		return apperrors.NewForbidden("Unauthorized")
	}

	if err := h.bookings.DeleteBooking(c.UserContext(), id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Booking deleted successfully", nil)
}

func (h *CarWashBookingsHandler) parsePayload(c *fiber.Ctx) (*domain.CarWashBooking, error) {
	var req dto.CarWashBookingPayload
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	return &domain.CarWashBooking{
		ClientUsername: req.ClientUsername,
		CarWashID:      req.CarWashID,
		CarPlate:       req.CarPlate,
		CarType:        req.CarType,
		CarDescription: req.CarDescription,
		Location:       req.Location,
		Date:           req.Date,
		Status:         domain.RequestStatus(req.Status),
		ServicePrice:   req.ServicePrice,
		ServiceTypes:   req.ServiceTypes,
	}, nil
}

func bookingResponse(booking *domain.CarWashBooking) dto.CarWashBookingPayload {
	return dto.CarWashBookingPayload{
		ID:             booking.ID,
		ClientUsername: booking.ClientUsername,
		CarWashID:      booking.CarWashID,
		CarPlate:       booking.CarPlate,
		CarType:        booking.CarType,
		CarDescription: booking.CarDescription,
		Location:       booking.Location,
		Date:           booking.Date,
		Status:         string(booking.Status),
		ServicePrice:   booking.ServicePrice,
		ServiceTypes:   booking.ServiceTypes,
	}
}

func bookingResponses(bookings []domain.CarWashBooking) []dto.CarWashBookingPayload {
	items := make([]dto.CarWashBookingPayload, 0, len(bookings))
	for i := range bookings {
		items = append(items, bookingResponse(&bookings[i]))
	}
	return items
}
