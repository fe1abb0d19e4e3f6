package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ammanharoon/Gym-Membership-and-Fitness-Tracking/internal/api"
	"github.com/ammanharoon/Gym-Membership-and-Fitness-Tracking/internal/auth"
	"github.com/ammanharoon/Gym-Membership-and-Fitness-Tracking/internal/config"
	"github.com/ammanharoon/Gym-Membership-and-Fitness-Tracking/internal/database"
	"github.com/ammanharoon/Gym-Membership-and-Fitness-Tracking/internal/logger"
	"github.com/ammanharoon/Gym-Membership-and-Fitness-Tracking/internal/monitoring"
	"github.com/ammanharoon/Gym-Membership-and-Fitness-Tracking/internal/services"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if !auth.SecretConfigured() {
		log.Warn().Msg("JWT_SECRET is not set; using the insecure built-in development key")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up services
	eventService := services.NewEventService(db)
	userService := services.NewUserService(db, eventService)
	membershipService := services.NewMembershipService(db, eventService)

	// Set up and run the background audit-log pruner
	pruner, err := monitoring.NewEventPruner(eventService, cfg.EventPruneSchedule, cfg.EventRetentionDays)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid event prune schedule")
	}
	go pruner.Run()

	// Set up router
	router := api.NewRouter(userService, membershipService, eventService)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	pruner.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
