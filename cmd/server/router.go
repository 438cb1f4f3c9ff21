package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/karthiknish/aroosi-swift-sub004/internal/api"
	apiMiddleware "github.com/karthiknish/aroosi-swift-sub004/internal/api/middleware"
)

// requestTimeout bounds the time spent on a single request.
const requestTimeout = 30 * time.Second

// setupRouter creates the router with middleware and every route.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	catalogHandler := api.NewCatalogHandler(app.catalog, app.logger)
	compatHandler := api.NewCompatibilityHandler(app.reportService, app.logger)
	healthHandler := api.NewHealthHandler(app.db, app.logger)

	r.Get("/health", healthHandler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", catalogHandler.GetCatalog)

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Put("/responses", compatHandler.SubmitResponses)
			r.Get("/responses", compatHandler.GetResponses)
			r.Get("/reports", compatHandler.ListReports)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Post("/", compatHandler.GenerateReport)
			r.Get("/{reportID}", compatHandler.GetReport)
			r.Post("/{reportID}/share", compatHandler.ShareReport)
			r.Post("/{reportID}/feedback", compatHandler.AttachFeedback)
		})
	})

	return r
}
