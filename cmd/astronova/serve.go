package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sankalpsthakur/astronova-sub001/internal/app"
	"github.com/sankalpsthakur/astronova-sub001/internal/infra/config"
	idb "github.com/sankalpsthakur/astronova-sub001/internal/infra/database"
	iephem "github.com/sankalpsthakur/astronova-sub001/internal/infra/ephemeris"
	"github.com/sankalpsthakur/astronova-sub001/internal/infra/httpapi"
	"github.com/sankalpsthakur/astronova-sub001/internal/infra/logger"
	"github.com/sankalpsthakur/astronova-sub001/internal/infra/scheduler"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the dasha timeline HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(cfg)
	log := logger.Get()
	log.WithField("environment", cfg.Environment).Info("Configuration loaded")

	db, err := idb.NewPostgresConnection(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("Database connection established")

	profileRepo := idb.NewPostgresProfileRepository(db)

	ephemClient := iephem.NewHTTPClient(
		cfg.EphemerisBaseURL,
		cfg.EphemerisTimeout,
		log.WithField("component", "ephemeris_client"),
	)
	cache := iephem.NewCache(
		ephemClient,
		cfg.CacheMaxEntries,
		cfg.CacheTTLToday,
		cfg.CacheTTLFar,
		log.WithField("component", "ephemeris_cache"),
	)

	dashaService := app.NewDashaService(cache, log.WithField("component", "dasha_service"))
	profileService := app.NewProfileService(profileRepo, dashaService, log.WithField("component", "profile_service"))
	planetService := app.NewPlanetService(cache, iephem.NewApproxProvider(), log.WithField("component", "planet_service"))

	maintenance := scheduler.NewMaintenanceScheduler(
		cache,
		cache,
		profileRepo,
		log.WithField("component", "scheduler"),
		cfg.CronSpecSweep,
		cfg.CronSpecPrewarm,
	)
	if err := maintenance.Start(); err != nil {
		return err
	}

	handler := httpapi.NewHandler(
		dashaService,
		profileService,
		planetService,
		log.WithField("component", "httpapi"),
	)
	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		maintenance.Stop()
		return err
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("HTTP server shutdown was not clean")
	}
	maintenance.Stop()
	log.Info("Application shut down gracefully")
	return nil
}
