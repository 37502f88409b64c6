//go:build integration

package store_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"balangay/internal/profile/models"
	"balangay/internal/profile/store"
	id "balangay/pkg/domain"
	"balangay/pkg/platform/sentinel"
	"balangay/pkg/testutil/containers"
)

type PostgresProfileSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
}

func TestPostgresProfileSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresProfileSuite))
}

func (s *PostgresProfileSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.store = store.NewPostgres(s.postgres.DB, logger, nil)
}

func (s *PostgresProfileSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "residents")
	s.Require().NoError(err)
}

func (s *PostgresProfileSuite) newProfile() *models.ResidentProfile {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &models.ResidentProfile{
		ResidentID: id.NewResidentID(),
		HouseholdHead: models.HouseholdHead{
			FirstName:   "Maria",
			LastName:    "Santos",
			CivilStatus: models.CivilStatusMarried,
			Nationality: "Filipino",
		},
		Spouse: &models.Spouse{
			FirstName: "Jose",
			LastName:  "Santos",
		},
		Census: models.Census{
			RegisteredVoter: "Yes",
			VoterPrecinctNo: "0412A",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *PostgresProfileSuite) TestUpsertRoundTrip() {
	ctx := context.Background()
	profile := s.newProfile()

	s.Require().NoError(s.store.Upsert(ctx, profile))

	got, err := s.store.Get(ctx, profile.ResidentID)
	s.Require().NoError(err)
	s.Equal("Maria", got.HouseholdHead.FirstName)
	s.Require().NotNil(got.Spouse)
	s.Equal("Jose", got.Spouse.FirstName)
	s.Equal("0412A", got.Census.VoterPrecinctNo)
}

func (s *PostgresProfileSuite) TestUpsertPreservesCreatedAt() {
	ctx := context.Background()
	profile := s.newProfile()
	s.Require().NoError(s.store.Upsert(ctx, profile))

	resubmitted := *profile
	resubmitted.HouseholdHead.ContactNumber = "09171234567"
	resubmitted.CreatedAt = profile.CreatedAt.Add(time.Hour)
	resubmitted.UpdatedAt = profile.UpdatedAt.Add(time.Hour)
	s.Require().NoError(s.store.Upsert(ctx, &resubmitted))

	got, err := s.store.Get(ctx, profile.ResidentID)
	s.Require().NoError(err)
	s.Equal("09171234567", got.HouseholdHead.ContactNumber)
	s.WithinDuration(profile.CreatedAt, got.CreatedAt, time.Second)
	s.WithinDuration(resubmitted.UpdatedAt, got.UpdatedAt, time.Second)
}

func (s *PostgresProfileSuite) TestGetUnknownResident() {
	_, err := s.store.Get(context.Background(), id.NewResidentID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

// TestListSurvivesCorruptRecord corrupts one stored section in place and
// verifies listing still returns every resident, with the broken section
// degraded to the fallback.
func (s *PostgresProfileSuite) TestListSurvivesCorruptRecord() {
	ctx := context.Background()
	healthy := s.newProfile()
	broken := s.newProfile()
	s.Require().NoError(s.store.Upsert(ctx, healthy))
	s.Require().NoError(s.store.Upsert(ctx, broken))

	// Valid JSON of the wrong shape, so JSONB accepts it but decoding fails.
	_, err := s.postgres.DB.ExecContext(ctx,
		`UPDATE residents SET household = '[1,2,3]'::jsonb WHERE resident_id = $1`,
		broken.ResidentID.String())
	s.Require().NoError(err)

	all, err := s.store.ListAll(ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)

	byID := map[id.ResidentID]*models.ResidentProfile{}
	for _, p := range all {
		byID[p.ResidentID] = p
	}
	s.Equal("Maria", byID[healthy.ResidentID].HouseholdHead.FirstName)
	s.Equal("Unknown", byID[broken.ResidentID].HouseholdHead.FirstName)
	// The other sections of the broken record still decode.
	s.Equal("0412A", byID[broken.ResidentID].Census.VoterPrecinctNo)
}

func (s *PostgresProfileSuite) TestDelete() {
	ctx := context.Background()
	profile := s.newProfile()
	s.Require().NoError(s.store.Upsert(ctx, profile))

	s.Require().NoError(s.store.Delete(ctx, profile.ResidentID))
	_, err := s.store.Get(ctx, profile.ResidentID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	// Idempotent.
	s.Require().NoError(s.store.Delete(ctx, profile.ResidentID))
}
