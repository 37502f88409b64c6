package store

import (
	"context"
	"sync"

	"balangay/internal/review/models"
	id "balangay/pkg/domain"
	"balangay/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded map store for tests and development.
type InMemory struct {
	mu       sync.RWMutex
	statuses map[id.ResidentID]models.ProfileStatus
}

// NewInMemory creates an empty in-memory status store.
func NewInMemory() *InMemory {
	return &InMemory{statuses: make(map[id.ResidentID]models.ProfileStatus)}
}

func (s *InMemory) Create(_ context.Context, status *models.ProfileStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.statuses[status.ResidentID]; exists {
		return sentinel.ErrConflict
	}
	s.statuses[status.ResidentID] = clone(status)
	return nil
}

func (s *InMemory) Get(_ context.Context, residentID id.ResidentID) (*models.ProfileStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	status, ok := s.statuses[residentID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := clone(&status)
	return &out, nil
}

func (s *InMemory) Update(_ context.Context, status *models.ProfileStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.statuses[status.ResidentID]; !ok {
		return sentinel.ErrNotFound
	}
	s.statuses[status.ResidentID] = clone(status)
	return nil
}

func (s *InMemory) Delete(_ context.Context, residentID id.ResidentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.statuses, residentID)
	return nil
}

func (s *InMemory) ListAll(_ context.Context) (map[id.ResidentID]*models.ProfileStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[id.ResidentID]*models.ProfileStatus, len(s.statuses))
	for rid, status := range s.statuses {
		c := clone(&status)
		out[rid] = &c
	}
	return out, nil
}

// clone copies the record, including the reason pointer target, so callers
// can't mutate stored state through aliasing.
func clone(status *models.ProfileStatus) models.ProfileStatus {
	out := *status
	if status.RejectionReason != nil {
		reason := *status.RejectionReason
		out.RejectionReason = &reason
	}
	return out
}
