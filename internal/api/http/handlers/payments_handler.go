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

// PaymentsHandler exposes payment endpoints.
type PaymentsHandler struct {
	payments *service.PaymentService
	metrics  *observability.Metrics
}

// NewPaymentsHandler constructs handler.
func NewPaymentsHandler(payments *service.PaymentService, metrics *observability.Metrics) *PaymentsHandler {
	return &PaymentsHandler{payments: payments, metrics: metrics}
}

// Pay handles POST /api/payments/pay.
func (h *PaymentsHandler) Pay(c *fiber.Ctx) error {
	var req dto.PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	identity, _ := auth.IdentityFromContext(c)
	if !auth.Authorize(identity, req.ClientUsername, auth.CapabilitySelfOrAdmin) {
		h.metrics.RecordAuthDenied("self_or_admin")
		return apperrors.NewForbidden("Unauthorized")
	}

	payment, err := h.payments.RecordPayment(c.UserContext(), &domain.Payment{
		Amount:         req.Amount,
		ClientUsername: req.ClientUsername,
		JobID:          req.JobID,
		MechanicID:     req.MechanicID,
		CarWashID:      req.CarWashID,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Payment recorded successfully", paymentResponse(payment))
}

// List handles GET /api/payments.
func (h *PaymentsHandler) List(c *fiber.Ctx) error {
	payments, err := h.payments.ListPayments(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Payments retrieved", paymentResponses(payments))
}

// ListByClient handles GET /api/payments/client/:username.
func (h *PaymentsHandler) ListByClient(c *fiber.Ctx) error {
	payments, err := h.payments.ListPaymentsForClient(c.UserContext(), c.Params("username"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Payments retrieved", paymentResponses(payments))
}

// ListByMechanic handles GET /api/payments/mechanic/:mechanicId.
func (h *PaymentsHandler) ListByMechanic(c *fiber.Ctx) error {
	id, err := pathID(c, "mechanicId")
	if err != nil {
		return apperrors.NewValidationError("invalid mechanic id")
	}
	payments, err := h.payments.ListPaymentsForMechanic(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Payments retrieved", paymentResponses(payments))
}

// ListByCarWash handles GET /api/payments/carWash/:carWashId.
func (h *PaymentsHandler) ListByCarWash(c *fiber.Ctx) error {
	id, err := pathID(c, "carWashId")
	if err != nil {
		return apperrors.NewValidationError("invalid car wash id")
	}
	payments, err := h.payments.ListPaymentsForCarWash(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Payments retrieved", paymentResponses(payments))
}

// Delete handles DELETE /api/payments/:paymentId.
func (h *PaymentsHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "paymentId")
	if err != nil {
		return apperrors.NewValidationError("invalid payment id")
	}
	payment, err := h.payments.DeletePayment(c.UserContext(), id)
	if err != nil {
		return apperrors.NewNotFound("Payment not found")
	}
	return respond(c, http.StatusOK, "Payment deleted successfully", paymentResponse(payment))
}

// DeleteAll handles DELETE /api/payments/all. Admin-only at the route level.
func (h *PaymentsHandler) DeleteAll(c *fiber.Ctx) error {
	if err := h.payments.DeleteAllPayments(c.UserContext()); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "All payments deleted", nil)
}

func paymentResponse(payment *domain.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:             payment.ID,
		Reference:      payment.Reference,
		Amount:         payment.Amount,
		ClientUsername: payment.ClientUsername,
		JobID:          payment.JobID,
		MechanicID:     payment.MechanicID,
		CarWashID:      payment.CarWashID,
		PlatformFee:    payment.PlatformFee,
		PaidAt:         payment.PaidAt,
	}
}

func paymentResponses(payments []domain.Payment) []dto.PaymentResponse {
	items := make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		items = append(items, paymentResponse(&payments[i]))
	}
	return items
}
