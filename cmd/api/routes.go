package main

import (
	"expvar"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (app *application) routes() http.Handler {
	router := chi.NewRouter()

	// Router
	router.NotFound(app.notFoundResponse)
	router.MethodNotAllowed(app.methodNotAllowedRequest)

	// Middleware
	router.Use(app.metrics)
	router.Use(app.recoverPanic)
	router.Use(app.enableCORS)
	router.Use(app.rateLimit)

	// Healthcheck
	router.Get("/v1/healthcheck", app.HealthCheck)
	router.Method(http.MethodGet, "/v1/metrics", expvar.Handler())

	// Player Endpoints
	router.Route("/v1/player", func(router chi.Router) {
		router.Post("/", app.InsertPlayer)
		router.Get("/", app.GetAllPlayers)
		router.Get("/{pin}", app.GetPlayer)
		router.Get("/{pin}/stats", app.GetPlayerStats)
		router.Patch("/{pin}", app.UpdatePlayer)
		router.Delete("/{pin}", app.DeletePlayer)
	})

	// Match Endpoints
	router.Route("/v1/match", func(router chi.Router) {
		router.Post("/", app.InsertMatch)
		router.Get("/", app.GetAllMatches)
		router.Get("/{pin}", app.GetMatch)
		router.Post("/{pin}/start", app.StartMatch)
		router.Post("/{pin}/restart", app.RestartMatch)
		router.Post("/{pin}/cancel", app.CancelMatch)

		router.Get("/{pin}/feed", app.FeedMatch)
		router.Get("/{pin}/watch", app.WatchMatch)
	})

	return router
}
