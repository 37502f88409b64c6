package store

import (
	"encoding/json"
	"log/slog"
	"time"

	profilemetrics "balangay/internal/profile/metrics"
	"balangay/internal/profile/models"
	id "balangay/pkg/domain"
)

// Raw is a profile row with its JSON sections still encoded. Both stores
// funnel reads through the same decoder so fault isolation behaves
// identically in memory and against postgres.
type Raw struct {
	ResidentID  id.ResidentID
	Household   []byte
	Spouse      []byte
	Composition []byte
	Census      []byte
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type codec struct {
	logger  *slog.Logger
	metrics *profilemetrics.Metrics
}

func newCodec(logger *slog.Logger, metrics *profilemetrics.Metrics) codec {
	if logger == nil {
		logger = slog.Default()
	}
	return codec{logger: logger, metrics: metrics}
}

func encodeProfile(p *models.ResidentProfile) (Raw, error) {
	household, err := json.Marshal(p.HouseholdHead)
	if err != nil {
		return Raw{}, err
	}
	spouse, err := json.Marshal(p.Spouse)
	if err != nil {
		return Raw{}, err
	}
	composition, err := json.Marshal(p.Composition)
	if err != nil {
		return Raw{}, err
	}
	census, err := json.Marshal(p.Census)
	if err != nil {
		return Raw{}, err
	}
	return Raw{
		ResidentID:  p.ResidentID,
		Household:   household,
		Spouse:      spouse,
		Composition: composition,
		Census:      census,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

// decode parses each section independently. A parse failure degrades that
// one section to its fallback and is logged; it never fails the read. One
// corrupt resident record must not block listing all the others.
func (c codec) decode(raw Raw) *models.ResidentProfile {
	p := &models.ResidentProfile{
		ResidentID: raw.ResidentID,
		CreatedAt:  raw.CreatedAt,
		UpdatedAt:  raw.UpdatedAt,
	}

	if err := json.Unmarshal(raw.Household, &p.HouseholdHead); err != nil {
		c.fallback(raw.ResidentID, "household", err)
		p.HouseholdHead = models.UnknownHouseholdHead()
	}
	if len(raw.Spouse) > 0 {
		if err := json.Unmarshal(raw.Spouse, &p.Spouse); err != nil {
			c.fallback(raw.ResidentID, "spouse", err)
			p.Spouse = nil
		}
	}
	if len(raw.Composition) > 0 {
		if err := json.Unmarshal(raw.Composition, &p.Composition); err != nil {
			c.fallback(raw.ResidentID, "composition", err)
			p.Composition = nil
		}
	}
	if len(raw.Census) > 0 {
		if err := json.Unmarshal(raw.Census, &p.Census); err != nil {
			c.fallback(raw.ResidentID, "census", err)
			p.Census = models.Census{}
		}
	}
	return p
}

func (c codec) fallback(residentID id.ResidentID, section string, err error) {
	c.metrics.IncParseFallback(section)
	c.logger.Warn("stored profile section failed to parse, using fallback",
		"resident_id", residentID.String(),
		"section", section,
		"error", err,
	)
}
