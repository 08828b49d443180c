package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"tipbook/api"
	"tipbook/config"
	"tipbook/database"
	"tipbook/events"
	"tipbook/repository"
	"tipbook/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting tipbook server...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established successfully")

	// Initialize event bus with audit subscribers
	eventBus := events.NewBus()
	registerAuditSubscribers(eventBus)

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize services
	userService := service.NewUserService(uowFactory)
	predictionService := service.NewPredictionService(uowFactory, cfg)
	bankrollService := service.NewBankrollService(uowFactory, cfg)
	newsService := service.NewNewsService(uowFactory)
	log.Info("Services initialized successfully")

	// Initialize HTTP server
	router := api.NewRouter(cfg, db, api.Services{
		Predictions: predictionService,
		Bankroll:    bankrollService,
		News:        newsService,
		Users:       userService,
	})
	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{
			"addr":        cfg.ListenAddr,
			"environment": cfg.Environment,
		}).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		db.Close()
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	// Cleanup resources
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("HTTP server shutdown error")
	}

	log.Info("Closing database connection...")
	db.Close()

	log.Info("Shutdown completed")
	return nil
}

// registerAuditSubscribers logs every ledger-affecting event so settlements
// leave a trace outside the database
func registerAuditSubscribers(bus *events.Bus) {
	bus.Subscribe(events.EventTypePredictionSettled, func(_ context.Context, e events.Event) {
		settled := e.(events.PredictionSettledEvent)
		log.WithFields(log.Fields{
			"predictionID": settled.PredictionID,
			"outcome":      settled.Outcome,
			"profit":       settled.Profit.String(),
			"newBalance":   settled.NewBalance.String(),
		}).Info("Prediction settled")
	})

	bus.Subscribe(events.EventTypePredictionArchived, func(_ context.Context, e events.Event) {
		archived := e.(events.PredictionArchivedEvent)
		log.WithField("predictionID", archived.PredictionID).Info("Prediction archived")
	})

	bus.Subscribe(events.EventTypePredictionDeleted, func(_ context.Context, e events.Event) {
		deleted := e.(events.PredictionDeletedEvent)
		log.WithFields(log.Fields{
			"predictionID": deleted.PredictionID,
			"wasSettled":   deleted.WasSettled,
		}).Info("Prediction deleted")
	})

	bus.Subscribe(events.EventTypeBankrollRecomputed, func(_ context.Context, e events.Event) {
		recomputed := e.(events.BankrollRecomputedEvent)
		log.WithFields(log.Fields{
			"balance":   recomputed.Balance.String(),
			"wonCount":  recomputed.WonCount,
			"lostCount": recomputed.LostCount,
		}).Info("Bankroll recomputed")
	})
}
