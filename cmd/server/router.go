package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mbriand/railgo/internal/api"
	apiMiddleware "github.com/mbriand/railgo/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware. Registration and login are public; everything else sits
// behind token authentication.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.sequenceStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordVerifier,
		app.logger,
	)
	userHandler := api.NewUserHandler(app.userStore, app.passwordHasher, app.logger)
	stationHandler := api.NewStationHandler(
		app.stationStore,
		app.sequenceStore,
		app.imageStore,
		app.logger,
	)
	trainHandler := api.NewTrainHandler(
		app.trainStore,
		app.stationStore,
		app.sequenceStore,
		app.logger,
	)
	ticketHandler := api.NewTicketHandler(
		app.ticketStore,
		app.userStore,
		app.trainStore,
		app.logger,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Public endpoints
	r.Post("/users/register", authHandler.Register)
	r.Post("/users/login", authHandler.Login)

	// Everything else requires a valid access token.
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/users", userHandler.List)
		r.Get("/users/{id}", userHandler.Get)
		r.Put("/users/{id}", userHandler.Update)
		r.Delete("/users/{id}", userHandler.Delete)

		r.Post("/stations", stationHandler.Create)
		r.Get("/stations", stationHandler.List)
		r.Get("/stations/{id}", stationHandler.Get)
		r.Put("/stations/{id}", stationHandler.Update)
		r.Delete("/stations/{id}", stationHandler.Delete)

		r.Post("/trains", trainHandler.Create)
		r.Get("/trains", trainHandler.List)
		r.Get("/trains/{id}", trainHandler.Get)
		r.Put("/trains/{id}", trainHandler.Update)
		r.Delete("/trains/{id}", trainHandler.Delete)

		r.Post("/tickets/create", ticketHandler.Create)
		r.Post("/tickets/validate", ticketHandler.Validate)
		r.Get("/tickets/user-tickets", ticketHandler.ListMine)
		r.Get("/tickets/{id}", ticketHandler.CheckValidation)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
