package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mapty/workout-tracker/internal/api"
	"mapty/workout-tracker/internal/config"
	"mapty/workout-tracker/internal/domain"
	"mapty/workout-tracker/internal/logging"
	"mapty/workout-tracker/internal/service"
	"mapty/workout-tracker/internal/storage"
	"mapty/workout-tracker/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}
	logging.Setup(cfg.Log, os.Stderr)
	log.Info().Str("backend", cfg.Persistence.Backend).Msg("configuration loaded")

	// --- Persistence slot ---
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	slot, closeSlot, err := storage.OpenSlot(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("could not open persistence slot")
	}
	defer func() {
		if err := closeSlot(); err != nil {
			log.Error().Err(err).Msg("close persistence slot")
		}
	}()

	// --- Controller ---
	store := service.NewStore(slot, cfg.Persistence.Key, cfg.Persistence.Timeout)
	app := service.NewApp(store, service.NewFactory(), service.NewViews(), cfg.Map.Zoom)
	n := app.Start(context.Background())
	log.Info().Int("workouts", n).Msg("store ready")

	// --- Gin Engine ---
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger())
	api.SetupRoutes(router, app, defaultLocator(cfg.Map))

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("address", cfg.Server.Address).Msg("serving")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen and serve")
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exiting")
}

// defaultLocator stands in for browser geolocation when a client posts no position.
func defaultLocator(cfg config.MapConfig) service.Locator {
	if !cfg.DefaultEnabled {
		return view.UnavailableLocator{}
	}
	return view.FixedLocator{Coords: domain.Coordinates{Lat: cfg.DefaultLat, Lng: cfg.DefaultLng}}
}
