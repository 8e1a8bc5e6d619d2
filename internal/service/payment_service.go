package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// platformFeeRate is the cut retained on every settled job.
const platformFeeRate = 0.10

// PaymentService records settled jobs and their platform fee.
type PaymentService struct {
	payments   repository.PaymentRepository
	dispatcher events.Dispatcher
}

// NewPaymentService builds the service.
func NewPaymentService(payments repository.PaymentRepository, dispatcher events.Dispatcher) *PaymentService {
	return &PaymentService{payments: payments, dispatcher: dispatcher}
}

// RecordPayment stores a payment. The platform fee is computed server-side;
// the reference is generated here and returned to the client.
func (s *PaymentService) RecordPayment(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	if payment.Amount <= 0 {
		return nil, apperrors.NewValidationError("amount must be positive")
	}
	if payment.MechanicID == nil && payment.CarWashID == nil {
		return nil, apperrors.NewValidationError("either mechanic_id or carwash_id is required")
	}

	payment.Reference = uuid.NewString()
	payment.PlatformFee = math.Round(payment.Amount*platformFeeRate*100) / 100
	payment.PaidAt = time.Now()

	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventPaymentRecorded,
			Username:  payment.ClientUsername,
			Timestamp: time.Now(),
			Payload: events.PaymentRecordedPayload{
				PaymentID:   payment.ID,
				Reference:   payment.Reference,
				Amount:      payment.Amount,
				PlatformFee: payment.PlatformFee,
			},
		})
	}
	return payment, nil
}

// ListPayments returns every payment.
func (s *PaymentService) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	return s.payments.List(ctx)
}

// ListPaymentsForClient lists payments made by the username.
func (s *PaymentService) ListPaymentsForClient(ctx context.Context, username string) ([]domain.Payment, error) {
	return s.payments.ListByClient(ctx, username)
}

// ListPaymentsForMechanic lists payments earned by the mechanic.
func (s *PaymentService) ListPaymentsForMechanic(ctx context.Context, mechanicID int64) ([]domain.Payment, error) {
	return s.payments.ListByMechanic(ctx, mechanicID)
}

// ListPaymentsForCarWash lists payments earned by the car-wash operator.
func (s *PaymentService) ListPaymentsForCarWash(ctx context.Context, carWashID int64) ([]domain.Payment, error) {
	return s.payments.ListByCarWash(ctx, carWashID)
}

// DeletePayment removes a single payment; the deleted record is returned.
func (s *PaymentService) DeletePayment(ctx context.Context, id int64) (*domain.Payment, error) {
	payment, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.payments.Delete(ctx, id); err != nil {
		return nil, err
	}
	return payment, nil
}

// DeleteAllPayments wipes the payment ledger. Admin-only at the route level.
func (s *PaymentService) DeleteAllPayments(ctx context.Context) error {
	return s.payments.DeleteAll(ctx)
}
