package store

import (
	"context"
	"sync"

	"balangay/internal/transparency/models"
	id "balangay/pkg/domain"
	"balangay/pkg/platform/sentinel"
)

// InMemoryOfficials keeps roster entries in a map for tests and local runs.
type InMemoryOfficials struct {
	mu   sync.RWMutex
	rows map[id.OfficialID]models.OfficialRecord
}

// NewInMemoryOfficials constructs an empty in-memory roster store.
func NewInMemoryOfficials() *InMemoryOfficials {
	return &InMemoryOfficials{rows: make(map[id.OfficialID]models.OfficialRecord)}
}

func (s *InMemoryOfficials) Create(_ context.Context, official *models.OfficialRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[official.ID]; ok {
		return sentinel.ErrConflict
	}
	s.rows[official.ID] = *official
	return nil
}

func (s *InMemoryOfficials) Get(_ context.Context, officialID id.OfficialID) (*models.OfficialRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.rows[officialID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &row, nil
}

func (s *InMemoryOfficials) Update(_ context.Context, official *models.OfficialRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[official.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.rows[official.ID] = *official
	return nil
}

func (s *InMemoryOfficials) Delete(_ context.Context, officialID id.OfficialID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, officialID)
	return nil
}

func (s *InMemoryOfficials) ListByType(_ context.Context, officialType models.OfficialType) ([]*models.OfficialRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.OfficialRecord
	for _, row := range s.rows {
		if row.Type != officialType {
			continue
		}
		copied := row
		out = append(out, &copied)
	}
	return out, nil
}

// InMemoryFooter holds the singleton footer row.
type InMemoryFooter struct {
	mu     sync.RWMutex
	config *models.FooterConfig
}

// NewInMemoryFooter constructs an empty footer store.
func NewInMemoryFooter() *InMemoryFooter {
	return &InMemoryFooter{}
}

func (s *InMemoryFooter) Get(_ context.Context) (*models.FooterConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.config == nil {
		return nil, sentinel.ErrNotFound
	}
	copied := *s.config
	return &copied, nil
}

func (s *InMemoryFooter) Put(_ context.Context, config *models.FooterConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *config
	s.config = &copied
	return nil
}
