package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/repository"
)

// JobApplicationService manages applications to join the platform.
type JobApplicationService struct {
	applications repository.JobApplicationRepository
	dispatcher   events.Dispatcher
}

// NewJobApplicationService builds the service.
func NewJobApplicationService(applications repository.JobApplicationRepository, dispatcher events.Dispatcher) *JobApplicationService {
	return &JobApplicationService{applications: applications, dispatcher: dispatcher}
}

// CreateApplication stores a new application with status PENDING.
func (s *JobApplicationService) CreateApplication(ctx context.Context, application *domain.JobApplication) (*domain.JobApplication, error) {
	if application.Status == "" {
		application.Status = domain.ApplicationStatusPending
	}
	if application.AppliedDate.IsZero() {
		application.AppliedDate = time.Now()
	}
	if err := s.applications.Create(ctx, application); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventApplicationSubmitted,
			Username:  application.Email,
			Timestamp: time.Now(),
			Payload: events.ApplicationSubmittedPayload{
				ApplicationID: application.ID,
				ApplicantName: application.ApplicantName,
				Email:         application.Email,
			},
		})
	}
	return application, nil
}

// GetApplication fetches a single application by id.
func (s *JobApplicationService) GetApplication(ctx context.Context, id int64) (*domain.JobApplication, error) {
	return s.applications.GetByID(ctx, id)
}

// ListApplications returns every application.
func (s *JobApplicationService) ListApplications(ctx context.Context) ([]domain.JobApplication, error) {
	return s.applications.List(ctx)
}

// UpdateApplication replaces the mutable fields of an existing application.
func (s *JobApplicationService) UpdateApplication(ctx context.Context, application *domain.JobApplication) (*domain.JobApplication, error) {
	existing, err := s.applications.GetByID(ctx, application.ID)
	if err != nil {
		return nil, err
	}
	existing.ApplicantName = application.ApplicantName
	existing.Email = application.Email
	existing.PhoneNumber = application.PhoneNumber
	existing.ResumeLink = application.ResumeLink
	if application.Status != "" {
		existing.Status = application.Status
	}
	if err := s.applications.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteApplication removes an application by id.
func (s *JobApplicationService) DeleteApplication(ctx context.Context, id int64) error {
	return s.applications.Delete(ctx, id)
}
