package service

import (
	"context"
	"time"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
)

// RequestHistoryService manages the per-user archive of service requests.
type RequestHistoryService struct {
	history repository.RequestHistoryRepository
}

// NewRequestHistoryService builds the service.
func NewRequestHistoryService(history repository.RequestHistoryRepository) *RequestHistoryService {
	return &RequestHistoryService{history: history}
}

// CreateEntry archives a request.
func (s *RequestHistoryService) CreateEntry(ctx context.Context, entry *domain.RequestHistory) (*domain.RequestHistory, error) {
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}
	if entry.Status == "" {
		entry.Status = domain.RequestStatusCompleted
	}
	if err := s.history.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListEntries returns the full archive.
func (s *RequestHistoryService) ListEntries(ctx context.Context) ([]domain.RequestHistory, error) {
	return s.history.List(ctx)
}

// ListEntriesForUser returns the archive for one username.
func (s *RequestHistoryService) ListEntriesForUser(ctx context.Context, username string) ([]domain.RequestHistory, error) {
	return s.history.ListByUsername(ctx, username)
}

// UpdateEntriesForUser rewrites the archived fields for a username.
func (s *RequestHistoryService) UpdateEntriesForUser(ctx context.Context, entry *domain.RequestHistory) (*domain.RequestHistory, error) {
	if err := s.history.UpdateByUsername(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteEntriesForUser clears the archive for a username.
func (s *RequestHistoryService) DeleteEntriesForUser(ctx context.Context, username string) error {
	return s.history.DeleteByUsername(ctx, username)
}
