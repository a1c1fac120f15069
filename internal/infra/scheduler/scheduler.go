package scheduler

import (
	"context"
	"time"

	"github.com/sankalpsthakur/astronova-sub001/internal/domain/ephemeris"
	"github.com/sankalpsthakur/astronova-sub001/internal/domain/profile"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Sweeper is the slice of the position cache the scheduler needs.
type Sweeper interface {
	SweepExpired() int
	Len() int
}

// MaintenanceScheduler runs the periodic housekeeping jobs: sweeping
// expired position-cache entries and prewarming today's positions for
// every saved profile.
type MaintenanceScheduler struct {
	cronEngine  *cron.Cron
	cache       Sweeper
	provider    ephemeris.Provider // the caching provider, so prewarm fills the cache
	profileRepo profile.Repository
	logger      *logrus.Entry
	specSweep   string
	specPrewarm string
}

func NewMaintenanceScheduler(
	cache Sweeper,
	provider ephemeris.Provider,
	profileRepo profile.Repository,
	logger *logrus.Entry,
	specSweep string, // e.g. "*/5 * * * *"
	specPrewarm string, // e.g. "0 4 * * *"
) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		cronEngine:  cron.New(cron.WithLocation(time.UTC)),
		cache:       cache,
		provider:    provider,
		profileRepo: profileRepo,
		logger:      logger,
		specSweep:   specSweep,
		specPrewarm: specPrewarm,
	}
}

func (s *MaintenanceScheduler) Start() error {
	if _, err := s.cronEngine.AddFunc(s.specSweep, s.sweepCache); err != nil {
		return err
	}
	if _, err := s.cronEngine.AddFunc(s.specPrewarm, s.prewarmProfiles); err != nil {
		return err
	}
	s.cronEngine.Start()
	s.logger.Info("Maintenance scheduler started")
	return nil
}

func (s *MaintenanceScheduler) sweepCache() {
	removed := s.cache.SweepExpired()
	s.logger.WithFields(logrus.Fields{
		"removed":   removed,
		"remaining": s.cache.Len(),
	}).Debug("Swept expired position cache entries")
}

// prewarmProfiles resolves today's planetary positions for each stored
// profile through the caching provider, so the first query of the day hits
// a warm cache. Failures are logged per profile and never abort the run.
func (s *MaintenanceScheduler) prewarmProfiles() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Prewarm: failed to list profiles")
		return
	}

	now := time.Now().UTC().Truncate(time.Minute)
	warmed := 0
	for _, p := range profiles {
		if _, err := s.provider.PositionsAt(ctx, now, p.Latitude, p.Longitude); err != nil {
			s.logger.WithField("profile_id", p.ID).WithError(err).Warn("Prewarm: position lookup failed")
			continue
		}
		warmed++
	}
	s.logger.WithFields(logrus.Fields{
		"profiles": len(profiles),
		"warmed":   warmed,
	}).Info("Prewarm run complete")
}

func (s *MaintenanceScheduler) Stop() {
	s.logger.Info("Stopping maintenance scheduler...")
	ctx := s.cronEngine.Stop() // waits for running jobs
	<-ctx.Done()
	s.logger.Info("Maintenance scheduler stopped")
}
