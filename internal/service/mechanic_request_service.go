package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/repository"
)

// MechanicRequestService manages roadside mechanic call-outs.
type MechanicRequestService struct {
	requests   repository.MechanicRequestRepository
	dispatcher events.Dispatcher
}

// NewMechanicRequestService builds the service.
func NewMechanicRequestService(requests repository.MechanicRequestRepository, dispatcher events.Dispatcher) *MechanicRequestService {
	return &MechanicRequestService{requests: requests, dispatcher: dispatcher}
}

// CreateRequest stores a new request; status defaults to pending.
func (s *MechanicRequestService) CreateRequest(ctx context.Context, req *domain.MechanicRequest) (*domain.MechanicRequest, error) {
	if req.Status == "" {
		req.Status = domain.RequestStatusPending
	}
	if req.Date.IsZero() {
		req.Date = time.Now()
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventMechanicRequestCreated, req)
	return req, nil
}

// UpdateRequest replaces the mutable fields of an existing request.
func (s *MechanicRequestService) UpdateRequest(ctx context.Context, req *domain.MechanicRequest) (*domain.MechanicRequest, error) {
	existing, err := s.requests.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	existing.Description = req.Description
	existing.Location = req.Location
	existing.MechanicID = req.MechanicID
	existing.Latitude = req.Latitude
	existing.Longitude = req.Longitude
	if !req.Date.IsZero() {
		existing.Date = req.Date
	}
	if req.Status != "" {
		existing.Status = req.Status
	}
	if err := s.requests.Update(ctx, existing); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventMechanicRequestUpdated, existing)
	return existing, nil
}

// GetRequest fetches a single request by id.
func (s *MechanicRequestService) GetRequest(ctx context.Context, id int64) (*domain.MechanicRequest, error) {
	return s.requests.GetByID(ctx, id)
}

// ListRequestsForUser lists requests submitted by the username.
func (s *MechanicRequestService) ListRequestsForUser(ctx context.Context, username string) ([]domain.MechanicRequest, error) {
	return s.requests.ListByUsername(ctx, username)
}

// DeleteRequestsForUser removes all requests for the username.
func (s *MechanicRequestService) DeleteRequestsForUser(ctx context.Context, username string) error {
	return s.requests.DeleteByUsername(ctx, username)
}

func (s *MechanicRequestService) publish(ctx context.Context, eventType events.EventType, req *domain.MechanicRequest) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Username:  req.Username,
		Timestamp: time.Now(),
		Payload: events.MechanicRequestPayload{
			RequestID:   req.ID,
			Location:    req.Location,
			Status:      string(req.Status),
			MechanicID:  req.MechanicID,
			Description: req.Description,
			Latitude:    req.Latitude,
			Longitude:   req.Longitude,
		},
	})
}
