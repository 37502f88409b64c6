//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"balangay/internal/transparency/models"
	"balangay/internal/transparency/store"
	id "balangay/pkg/domain"
	"balangay/pkg/platform/sentinel"
	"balangay/pkg/testutil/containers"
)

type PostgresOfficialsSuite struct {
	suite.Suite
	postgres  *containers.PostgresContainer
	officials *store.PostgresOfficials
	footer    *store.PostgresFooter
}

func TestPostgresOfficialsSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresOfficialsSuite))
}

func (s *PostgresOfficialsSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.officials = store.NewPostgresOfficials(s.postgres.DB)
	s.footer = store.NewPostgresFooter(s.postgres.DB)
}

func (s *PostgresOfficialsSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(),
		"barangay_officials", "sk_officials", "footer_config")
	s.Require().NoError(err)
}

func newOfficial(officialType models.OfficialType, position string) *models.OfficialRecord {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &models.OfficialRecord{
		ID:        id.NewOfficialID(),
		FirstName: "Ramon",
		LastName:  "Magtanggol",
		Position:  position,
		Type:      officialType,
		TermStart: 2023,
		Current:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *PostgresOfficialsSuite) TestRostersAreSeparate() {
	ctx := context.Background()

	captain := newOfficial(models.TypeBarangay, models.PositionPunongBarangay)
	chair := newOfficial(models.TypeSK, models.PositionSKChairperson)
	s.Require().NoError(s.officials.Create(ctx, captain))
	s.Require().NoError(s.officials.Create(ctx, chair))

	barangay, err := s.officials.ListByType(ctx, models.TypeBarangay)
	s.Require().NoError(err)
	s.Require().Len(barangay, 1)
	s.Equal(captain.ID, barangay[0].ID)

	sk, err := s.officials.ListByType(ctx, models.TypeSK)
	s.Require().NoError(err)
	s.Require().Len(sk, 1)
	s.Equal(chair.ID, sk[0].ID)
}

func (s *PostgresOfficialsSuite) TestGetFindsEitherRoster() {
	ctx := context.Background()

	chair := newOfficial(models.TypeSK, models.PositionSKChairperson)
	s.Require().NoError(s.officials.Create(ctx, chair))

	got, err := s.officials.Get(ctx, chair.ID)
	s.Require().NoError(err)
	s.Equal(models.TypeSK, got.Type)
}

func (s *PostgresOfficialsSuite) TestCreateDuplicateConflicts() {
	ctx := context.Background()
	official := newOfficial(models.TypeBarangay, "Kagawad")

	s.Require().NoError(s.officials.Create(ctx, official))
	s.ErrorIs(s.officials.Create(ctx, official), sentinel.ErrConflict)
}

func (s *PostgresOfficialsSuite) TestUpdateAndDelete() {
	ctx := context.Background()
	official := newOfficial(models.TypeBarangay, "Kagawad")
	s.Require().NoError(s.officials.Create(ctx, official))

	official.Current = false
	official.TermEnd = 2025
	s.Require().NoError(s.officials.Update(ctx, official))

	got, err := s.officials.Get(ctx, official.ID)
	s.Require().NoError(err)
	s.False(got.Current)
	s.Equal(2025, got.TermEnd)

	s.Require().NoError(s.officials.Delete(ctx, official.ID))
	_, err = s.officials.Get(ctx, official.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresOfficialsSuite) TestFooterSingleton() {
	ctx := context.Background()

	_, err := s.footer.Get(ctx)
	s.ErrorIs(err, sentinel.ErrNotFound)

	first := &models.FooterConfig{
		BarangayName: "Barangay San Isidro",
		ContactEmail: "sanisidro@example.gov.ph",
		UpdatedAt:    time.Now().UTC(),
	}
	s.Require().NoError(s.footer.Put(ctx, first))

	second := &models.FooterConfig{
		BarangayName: "Barangay San Isidro",
		OfficeHours:  "Mon-Fri 8am-5pm",
		UpdatedAt:    time.Now().UTC(),
	}
	s.Require().NoError(s.footer.Put(ctx, second))

	got, err := s.footer.Get(ctx)
	s.Require().NoError(err)
	s.Equal("Mon-Fri 8am-5pm", got.OfficeHours)
	// Still a single row.
	var count int
	s.Require().NoError(s.postgres.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM footer_config`).Scan(&count))
	s.Equal(1, count)
}
