package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	appMiddleware "github.com/jiamizhongshifu/xiaozhou/app/middleware"
	_ "github.com/jiamizhongshifu/xiaozhou/docs"
	"github.com/jiamizhongshifu/xiaozhou/internal/api/planner"
)

// Config contains the handlers the router mounts.
type Config struct {
	PlannerHandler *planner.HandlerImpl
	AllowedOrigins []string
}

// SetupRouter builds the application routes. Server-wide middleware such as
// request IDs, logging and recovery is applied in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", appMiddleware.SessionHeader},
		ExposedHeaders:   []string{appMiddleware.SessionHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(appMiddleware.Metrics)

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(appMiddleware.Session)

		r.Post("/chat", cfg.PlannerHandler.Chat)

		r.Route("/itineraries", func(r chi.Router) {
			r.Get("/", cfg.PlannerHandler.ListItineraries)
			r.Post("/generate", cfg.PlannerHandler.GenerateItinerary)
			r.Post("/validate", cfg.PlannerHandler.Validate)
			r.Post("/validate:batch", cfg.PlannerHandler.ValidateBatch)
			r.Post("/complete", cfg.PlannerHandler.Complete)
			r.Post("/parse", cfg.PlannerHandler.Parse)
			r.Get("/{id}", cfg.PlannerHandler.GetItinerary)
		})
	})

	return r
}
