package store

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	profilemetrics "balangay/internal/profile/metrics"
	"balangay/internal/profile/models"
	id "balangay/pkg/domain"
	"balangay/pkg/platform/sentinel"
)

// InMemory keeps profiles encoded the same way the postgres store does, so
// reads go through the shared defensive decoder.
type InMemory struct {
	mu    sync.RWMutex
	rows  map[id.ResidentID]Raw
	codec codec
}

// NewInMemory constructs an empty in-memory profile store.
func NewInMemory(logger *slog.Logger, metrics *profilemetrics.Metrics) *InMemory {
	return &InMemory{
		rows:  make(map[id.ResidentID]Raw),
		codec: newCodec(logger, metrics),
	}
}

func (s *InMemory) Upsert(_ context.Context, profile *models.ResidentProfile) error {
	raw, err := encodeProfile(profile)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.rows[profile.ResidentID]; ok {
		raw.CreatedAt = existing.CreatedAt
	}
	s.rows[profile.ResidentID] = raw
	return nil
}

func (s *InMemory) Get(_ context.Context, residentID id.ResidentID) (*models.ResidentProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.rows[residentID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return s.codec.decode(raw), nil
}

func (s *InMemory) Delete(_ context.Context, residentID id.ResidentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, residentID)
	return nil
}

func (s *InMemory) ListAll(_ context.Context) ([]*models.ResidentProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.ResidentProfile, 0, len(s.rows))
	for _, raw := range s.rows {
		out = append(out, s.codec.decode(raw))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// PutRaw stores an encoded row as-is. Tests use it to inject corrupt
// sections and exercise the decode fallbacks.
func (s *InMemory) PutRaw(raw Raw) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[raw.ResidentID] = raw
}
