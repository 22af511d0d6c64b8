package app

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Lixing-Zhang/nutribalance/internal/handlers"
	"github.com/Lixing-Zhang/nutribalance/internal/middleware"
	"github.com/Lixing-Zhang/nutribalance/internal/service"
)

// RouterConfig carries everything NewRouter wires together
type RouterConfig struct {
	Catalog         *service.CatalogService
	Recommendations *service.RecommendationService
	Analysis        *service.AnalysisService
	HealthChecks    map[string]handlers.Pinger

	AdminPassword   string
	SearchRateLimit float64
	SearchBurst     int
	RequestTimeout  time.Duration
}

// NewRouter builds the HTTP API
func NewRouter(cfg RouterConfig, log *slog.Logger) (*chi.Mux, error) {
	adminAuth, err := middleware.AdminAuth(cfg.AdminPassword, log)
	if err != nil {
		return nil, err
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}

	healthHandler := handlers.NewHealthHandler(log, cfg.HealthChecks)
	catalogHandler := handlers.NewCatalogHandler(cfg.Catalog, log)
	recommendationHandler := handlers.NewRecommendationHandler(cfg.Recommendations, log)
	analysisHandler := handlers.NewAnalysisHandler(cfg.Analysis, log)
	submissionHandler := handlers.NewSubmissionHandler(cfg.Analysis, log)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(cfg.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.AdminPasswordHeader},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/foods", catalogHandler.ListFoods)
		r.Get("/foods/{name}", catalogHandler.GetFood)
		r.With(middleware.RateLimit(cfg.SearchRateLimit, cfg.SearchBurst)).
			Post("/foods/search", catalogHandler.SearchFoods)

		r.Get("/recommendations", recommendationHandler.GetTable)
		r.Post("/analysis", analysisHandler.Analyze)

		r.Route("/admin", func(r chi.Router) {
			r.Use(adminAuth)

			r.Post("/foods", catalogHandler.AddFood)
			r.Put("/foods", catalogHandler.ReplaceFoods)
			r.Patch("/foods/{index}", catalogHandler.EditFood)
			r.Delete("/foods/{index}", catalogHandler.RemoveFood)

			r.Patch("/recommendations/{nutrient}", recommendationHandler.EditThreshold)

			r.Get("/submissions", submissionHandler.ListSubmissions)
			r.Get("/submissions/export", submissionHandler.ExportSubmissions)
		})
	})

	return r, nil
}
