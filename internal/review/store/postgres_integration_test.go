//go:build integration

package store_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	profilemodels "balangay/internal/profile/models"
	profilestore "balangay/internal/profile/store"
	"balangay/internal/review/models"
	"balangay/internal/review/store"
	id "balangay/pkg/domain"
	"balangay/pkg/platform/sentinel"
	"balangay/pkg/testutil/containers"
)

type PostgresStatusSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
	profiles *profilestore.Postgres
}

func TestPostgresStatusSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStatusSuite))
}

func (s *PostgresStatusSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.profiles = profilestore.NewPostgres(s.postgres.DB, logger, nil)
}

func (s *PostgresStatusSuite) SetupTest() {
	// Status rows cascade from residents.
	err := s.postgres.TruncateTables(context.Background(), "residents")
	s.Require().NoError(err)
}

// seedResident satisfies the foreign key from status rows to profiles.
func (s *PostgresStatusSuite) seedResident() id.ResidentID {
	rid := id.NewResidentID()
	now := time.Now().UTC().Truncate(time.Millisecond)
	profile := &profilemodels.ResidentProfile{
		ResidentID: rid,
		HouseholdHead: profilemodels.HouseholdHead{
			FirstName:   "Juan",
			LastName:    "Dela Cruz",
			CivilStatus: profilemodels.CivilStatusSingle,
			Nationality: "Filipino",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Require().NoError(s.profiles.Upsert(context.Background(), profile))
	return rid
}

func (s *PostgresStatusSuite) TestCreateGetUpdate() {
	ctx := context.Background()
	rid := s.seedResident()
	now := time.Now().UTC().Truncate(time.Millisecond)

	status := models.NewProfileStatus(rid, now)
	s.Require().NoError(s.store.Create(ctx, status))

	got, err := s.store.Get(ctx, rid)
	s.Require().NoError(err)
	s.Equal(models.StatusPending, got.Status)
	s.Nil(got.RejectionReason)
	s.WithinDuration(now, got.UpdatedAt, time.Second)

	reason := "address does not match the submitted ID"
	got.Status = models.StatusRejected
	got.RejectionReason = &reason
	got.UpdatedAt = now.Add(time.Minute)
	s.Require().NoError(s.store.Update(ctx, got))

	updated, err := s.store.Get(ctx, rid)
	s.Require().NoError(err)
	s.Equal(models.StatusRejected, updated.Status)
	s.Require().NotNil(updated.RejectionReason)
	s.Equal(reason, *updated.RejectionReason)
}

func (s *PostgresStatusSuite) TestCreateTwiceConflicts() {
	ctx := context.Background()
	rid := s.seedResident()
	now := time.Now().UTC()

	s.Require().NoError(s.store.Create(ctx, models.NewProfileStatus(rid, now)))
	err := s.store.Create(ctx, models.NewProfileStatus(rid, now))
	s.ErrorIs(err, sentinel.ErrConflict)
}

func (s *PostgresStatusSuite) TestGetUnknownResident() {
	_, err := s.store.Get(context.Background(), id.NewResidentID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStatusSuite) TestUpdateUnknownResident() {
	err := s.store.Update(context.Background(), models.NewProfileStatus(id.NewResidentID(), time.Now().UTC()))
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStatusSuite) TestDeleteIsIdempotent() {
	ctx := context.Background()
	rid := s.seedResident()
	s.Require().NoError(s.store.Create(ctx, models.NewProfileStatus(rid, time.Now().UTC())))

	s.Require().NoError(s.store.Delete(ctx, rid))
	s.Require().NoError(s.store.Delete(ctx, rid))

	_, err := s.store.Get(ctx, rid)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStatusSuite) TestDeletingResidentCascades() {
	ctx := context.Background()
	rid := s.seedResident()
	s.Require().NoError(s.store.Create(ctx, models.NewProfileStatus(rid, time.Now().UTC())))

	s.Require().NoError(s.profiles.Delete(ctx, rid))

	_, err := s.store.Get(ctx, rid)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStatusSuite) TestListAll() {
	ctx := context.Background()
	now := time.Now().UTC()

	first := s.seedResident()
	second := s.seedResident()
	s.Require().NoError(s.store.Create(ctx, models.NewProfileStatus(first, now)))
	s.Require().NoError(s.store.Create(ctx, models.NewProfileStatus(second, now)))

	all, err := s.store.ListAll(ctx)
	s.Require().NoError(err)
	s.Len(all, 2)
	s.Contains(all, first)
	s.Contains(all, second)
}
