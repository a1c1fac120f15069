package app

import (
	"context"
	"errors"
	"time"

	"github.com/sankalpsthakur/astronova-sub001/internal/domain/ephemeris"

	"github.com/sirupsen/logrus"
)

// PlanetService serves generic planetary-longitude display requests. This
// is the one feature allowed to fall back to the low-precision provider
// when the engine is down; the result is flagged as approximate. Dasha
// timing never takes this path.
type PlanetService struct {
	precise ephemeris.Provider
	approx  ephemeris.Provider
	logger  *logrus.Entry
}

func NewPlanetService(precise, approx ephemeris.Provider, logger *logrus.Entry) *PlanetService {
	return &PlanetService{
		precise: precise,
		approx:  approx,
		logger:  logger,
	}
}

// Positions returns sidereal longitudes for display. The second return
// value reports whether the low-precision fallback produced them.
func (s *PlanetService) Positions(ctx context.Context, at time.Time, latitude, longitude float64) (*ephemeris.Positions, bool, error) {
	positions, err := s.precise.PositionsAt(ctx, at, latitude, longitude)
	if err == nil {
		return positions, false, nil
	}
	if !errors.Is(err, ephemeris.ErrUnavailable) {
		return nil, false, err
	}

	s.logger.WithError(err).Warn("Precision ephemeris unavailable, serving approximate display positions")
	positions, err = s.approx.PositionsAt(ctx, at, latitude, longitude)
	if err != nil {
		return nil, false, err
	}
	return positions, true, nil
}
