package app

import (
	"context"
	"fmt"

	"github.com/sankalpsthakur/astronova-sub001/internal/domain/profile"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrProfileNameRequired is returned when a profile is created without a
// name.
var ErrProfileNameRequired = fmt.Errorf("%w: profile name is required", ErrValidation)

// ProfileService manages saved birth profiles and runs dasha queries
// against them.
type ProfileService struct {
	repo   profile.Repository
	dashas *DashaService
	logger *logrus.Entry
}

func NewProfileService(repo profile.Repository, dashas *DashaService, logger *logrus.Entry) *ProfileService {
	return &ProfileService{
		repo:   repo,
		dashas: dashas,
		logger: logger,
	}
}

// CreateProfileRequest carries the fields for a new saved profile. Birth
// time is required; profiles always resolve through the ephemeris, so
// coordinates are too.
type CreateProfileRequest struct {
	Name  string
	Birth BirthDetails
}

// CreateProfile validates the birth data exactly as a dasha query would
// and persists the profile.
func (s *ProfileService) CreateProfile(ctx context.Context, req CreateProfileRequest) (*profile.Profile, error) {
	if req.Name == "" {
		return nil, ErrProfileNameRequired
	}
	if _, err := normalizeBirth(req.Birth, false); err != nil {
		return nil, err
	}
	lat, lon, err := validateCoordinates(req.Birth)
	if err != nil {
		return nil, err
	}

	zone := req.Birth.Timezone
	if zone == "" {
		zone = "UTC"
	}
	p := &profile.Profile{
		ID:        uuid.New(),
		Name:      req.Name,
		BirthDate: req.Birth.Date,
		BirthTime: req.Birth.Time,
		Timezone:  zone,
		Latitude:  lat,
		Longitude: lon,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	s.logger.WithField("profile_id", p.ID).Info("Profile created")
	return p, nil
}

func (s *ProfileService) GetProfile(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProfileService) ListProfiles(ctx context.Context) ([]*profile.Profile, error) {
	return s.repo.List(ctx)
}

func (s *ProfileService) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// DashaForProfile runs the complete dasha view for a stored profile at the
// given target date (empty means the current UTC date).
func (s *ProfileService) DashaForProfile(ctx context.Context, id uuid.UUID, targetDate string, numFuturePeriods int) (*DashaDetailResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.dashas.DashaDetail(ctx, DashaDetailRequest{
		Birth: BirthDetails{
			Date:      p.BirthDate,
			Time:      p.BirthTime,
			Timezone:  p.Timezone,
			Latitude:  &p.Latitude,
			Longitude: &p.Longitude,
		},
		TargetDate:         targetDate,
		IncludeTransitions: true,
		NumFuturePeriods:   numFuturePeriods,
	})
}
