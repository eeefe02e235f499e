package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/mbriand/railgo/internal/config"
	"github.com/mbriand/railgo/internal/platform/postgres"
	"github.com/mbriand/railgo/internal/platform/upload"
	"github.com/mbriand/railgo/internal/service/auth"
	"github.com/mbriand/railgo/internal/store"
)

// application holds the server's dependencies: configuration, logger,
// database handle, stores, and services. Handlers are created from it
// when the router is set up.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore     store.UserStore
	stationStore  store.StationStore
	trainStore    store.TrainStore
	ticketStore   store.TicketStore
	sequenceStore store.SequenceStore

	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
	imageStore       *upload.ImageStore
}

// newApplication wires the stores and services onto the given database
// connection. It does not start anything; main drives the server
// lifecycle.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	imageStore, err := upload.NewImageStore(cfg.Upload, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create image store: %w", err)
	}

	return &application{
		config: cfg,
		logger: logger,
		db:     db,

		userStore:     postgres.NewPostgresUserStore(db, logger),
		stationStore:  postgres.NewPostgresStationStore(db, logger),
		trainStore:    postgres.NewPostgresTrainStore(db, logger),
		ticketStore:   postgres.NewPostgresTicketStore(db, logger),
		sequenceStore: postgres.NewPostgresSequenceStore(db, logger),

		jwtService:       jwtService,
		passwordHasher:   auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		passwordVerifier: auth.NewBcryptVerifier(),
		imageStore:       imageStore,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database connection", slog.Any("error", err))
	}
}
