package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/creolweb/jobintake/internal/api"
	"github.com/creolweb/jobintake/internal/config"
	"github.com/creolweb/jobintake/internal/logger"
	"github.com/creolweb/jobintake/internal/repository"
	"github.com/creolweb/jobintake/internal/scheduler"
	"github.com/creolweb/jobintake/internal/service"
)

func main() {
	// Support CONFIG_PATH environment variable for production deployments
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(nil)
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	jobRepo := repository.NewJobRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	submissionService := service.NewSubmissionService(jobRepo, categoryRepo, appLogger, &service.SubmissionConfig{
		DefaultRetentionDays: cfg.Retention.DefaultDays,
	})

	sweeper := service.NewSweeper(jobRepo, appLogger, &service.SweeperConfig{
		RecordTypes:          cfg.Retention.RecordTypes,
		DefaultRetentionDays: cfg.Retention.DefaultDays,
	})

	// Activation hook: register the sweep cadence once; Stop below is
	// the deactivation counterpart.
	ctx := context.Background()
	sweepScheduler := scheduler.New(sweeper, appLogger, cfg.Retention.Schedule)
	if err := sweepScheduler.Start(ctx); err != nil {
		appLogger.WithError(err).Fatal("Failed to schedule retention sweep")
	}

	router := api.SetupRouter(submissionService, sweeper, cfg, appLogger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		appLogger.WithFields(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info("Starting intake server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down...")

	sweepScheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Fatal("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}
