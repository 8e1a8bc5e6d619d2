package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/repository"
)

// CarWashBookingService manages car-wash bookings.
type CarWashBookingService struct {
	bookings   repository.CarWashBookingRepository
	dispatcher events.Dispatcher
}

// NewCarWashBookingService builds the service.
func NewCarWashBookingService(bookings repository.CarWashBookingRepository, dispatcher events.Dispatcher) *CarWashBookingService {
	return &CarWashBookingService{bookings: bookings, dispatcher: dispatcher}
}

// CreateBooking stores a new booking; status defaults to pending and the
// car-wash side stays unassigned until an operator takes it.
func (s *CarWashBookingService) CreateBooking(ctx context.Context, booking *domain.CarWashBooking) (*domain.CarWashBooking, error) {
	if booking.Status == "" {
		booking.Status = domain.RequestStatusPending
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventCarWashBookingCreated,
			Username:  booking.ClientUsername,
			Timestamp: time.Now(),
			Payload: events.CarWashBookingPayload{
				BookingID:    booking.ID,
				Location:     booking.Location,
				Date:         booking.Date,
				ServiceTypes: booking.ServiceTypes,
			},
		})
	}
	return booking, nil
}

// GetBooking fetches a single booking by id.
func (s *CarWashBookingService) GetBooking(ctx context.Context, id int64) (*domain.CarWashBooking, error) {
	return s.bookings.GetByID(ctx, id)
}

// ListBookings returns every booking.
func (s *CarWashBookingService) ListBookings(ctx context.Context) ([]domain.CarWashBooking, error) {
	return s.bookings.List(ctx)
}

// ListBookingsForClient lists bookings placed by the username.
func (s *CarWashBookingService) ListBookingsForClient(ctx context.Context, username string) ([]domain.CarWashBooking, error) {
	return s.bookings.ListByClient(ctx, username)
}

// UpdateBooking replaces the mutable fields of an existing booking.
func (s *CarWashBookingService) UpdateBooking(ctx context.Context, booking *domain.CarWashBooking) (*domain.CarWashBooking, error) {
	existing, err := s.bookings.GetByID(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	existing.CarWashID = booking.CarWashID
	existing.CarPlate = booking.CarPlate
	existing.CarType = booking.CarType
	existing.CarDescription = booking.CarDescription
	existing.Location = booking.Location
	existing.Date = booking.Date
	existing.ServicePrice = booking.ServicePrice
	existing.ServiceTypes = booking.ServiceTypes
	if booking.Status != "" {
		existing.Status = booking.Status
	}
	if err := s.bookings.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteBooking removes a booking by id.
func (s *CarWashBookingService) DeleteBooking(ctx context.Context, id int64) error {
	return s.bookings.Delete(ctx, id)
}
