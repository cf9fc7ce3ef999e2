package api

import (
	"net/http"

	"github.com/HSAR/GamesInCommon/internal/api/handlers"
	"github.com/HSAR/GamesInCommon/internal/repository"
	"github.com/HSAR/GamesInCommon/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func NewRouter(services *service.Services, repos *repository.Repositories, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(requestLogger(logger))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	comparisonHandler := handlers.NewComparisonHandler(services.Jobs, logger)
	filtersHandler := handlers.NewFiltersHandler()
	scansHandler := handlers.NewScansHandler(repos.Scan, logger)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/filters", filtersHandler.GetAll)

		r.Route("/comparisons", func(r chi.Router) {
			r.Post("/", comparisonHandler.Create)
			r.Get("/{id}", comparisonHandler.Get)
			r.Delete("/{id}", comparisonHandler.Cancel)
		})

		r.Get("/games/{appID}/scans", scansHandler.GetByGame)
	})

	return r
}

func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("requestId", chiMiddleware.GetReqID(r.Context())).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
