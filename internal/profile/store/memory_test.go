package store

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"balangay/internal/profile/models"
	id "balangay/pkg/domain"
	"balangay/pkg/platform/sentinel"
)

type ProfileStoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *InMemory
	now   time.Time
}

func TestProfileStoreSuite(t *testing.T) {
	suite.Run(t, new(ProfileStoreSuite))
}

func (s *ProfileStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewInMemory(slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	s.now = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
}

func (s *ProfileStoreSuite) profile() *models.ResidentProfile {
	return &models.ResidentProfile{
		ResidentID: id.NewResidentID(),
		HouseholdHead: models.HouseholdHead{
			FirstName:   "Juan",
			LastName:    "Dela Cruz",
			CivilStatus: models.CivilStatusSingle,
			Nationality: "Filipino",
		},
		Census:    models.Census{RegisteredVoter: "No"},
		CreatedAt: s.now,
		UpdatedAt: s.now,
	}
}

func (s *ProfileStoreSuite) TestUpsertAndGet() {
	p := s.profile()
	s.Require().NoError(s.store.Upsert(s.ctx, p))

	got, err := s.store.Get(s.ctx, p.ResidentID)
	s.Require().NoError(err)
	s.Equal("Juan", got.HouseholdHead.FirstName)
	s.Nil(got.Spouse)
	s.Equal(s.now, got.CreatedAt)
}

func (s *ProfileStoreSuite) TestUpsertReplacesButKeepsCreatedAt() {
	p := s.profile()
	s.Require().NoError(s.store.Upsert(s.ctx, p))

	p.HouseholdHead.FirstName = "Juana"
	p.UpdatedAt = s.now.Add(time.Hour)
	p.CreatedAt = p.UpdatedAt // simulate a caller not preserving the original
	s.Require().NoError(s.store.Upsert(s.ctx, p))

	got, err := s.store.Get(s.ctx, p.ResidentID)
	s.Require().NoError(err)
	s.Equal("Juana", got.HouseholdHead.FirstName)
	s.Equal(s.now, got.CreatedAt)
	s.Equal(s.now.Add(time.Hour), got.UpdatedAt)
}

func (s *ProfileStoreSuite) TestGetUnknownResident() {
	_, err := s.store.Get(s.ctx, id.NewResidentID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *ProfileStoreSuite) TestDeleteIsIdempotent() {
	p := s.profile()
	s.Require().NoError(s.store.Upsert(s.ctx, p))
	s.Require().NoError(s.store.Delete(s.ctx, p.ResidentID))
	s.Require().NoError(s.store.Delete(s.ctx, p.ResidentID))

	_, err := s.store.Get(s.ctx, p.ResidentID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *ProfileStoreSuite) TestListSurvivesOneCorruptRecord() {
	intact := s.profile()
	s.Require().NoError(s.store.Upsert(s.ctx, intact))

	corruptID := id.NewResidentID()
	census, err := json.Marshal(models.Census{RegisteredVoter: "No"})
	s.Require().NoError(err)
	s.store.PutRaw(Raw{
		ResidentID: corruptID,
		Household:  []byte(`{"first_name": truncated`),
		Census:     census,
		CreatedAt:  s.now.Add(time.Minute),
		UpdatedAt:  s.now.Add(time.Minute),
	})

	all, err := s.store.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)

	s.Equal("Juan", all[0].HouseholdHead.FirstName)

	degraded := all[1]
	s.Equal(corruptID, degraded.ResidentID)
	s.Equal("Unknown", degraded.HouseholdHead.FirstName)
	s.Equal("Unknown", degraded.HouseholdHead.LastName)
	s.Equal("No", degraded.Census.RegisteredVoter)
}

func (s *ProfileStoreSuite) TestCorruptSectionsDegradeIndependently() {
	rid := id.NewResidentID()
	household, err := json.Marshal(models.HouseholdHead{FirstName: "Juan", LastName: "Dela Cruz"})
	s.Require().NoError(err)
	s.store.PutRaw(Raw{
		ResidentID:  rid,
		Household:   household,
		Spouse:      []byte(`{"first_name":`),
		Composition: []byte(`[not json]`),
		Census:      []byte(`{"children_count": "three"}`),
		CreatedAt:   s.now,
		UpdatedAt:   s.now,
	})

	got, err := s.store.Get(s.ctx, rid)
	s.Require().NoError(err)
	s.Equal("Juan", got.HouseholdHead.FirstName)
	s.Nil(got.Spouse)
	s.Empty(got.Composition)
	s.Zero(got.Census.ChildrenCount)
}
