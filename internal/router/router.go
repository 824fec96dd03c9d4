package router

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/trenddash/image-pipeline/internal/config"
	"github.com/trenddash/image-pipeline/internal/database"
	"github.com/trenddash/image-pipeline/internal/handler"
	"github.com/trenddash/image-pipeline/internal/pipeline"
	"github.com/trenddash/image-pipeline/internal/storage"
)

// Server holds the application dependencies and HTTP router.
type Server struct {
	DB     database.Database
	Bucket storage.ObjectStore
	Config *config.Config
	Router chi.Router
}

// New creates a new Server with a fully configured chi router.
func New(db database.Database, bucket storage.ObjectStore, svc *pipeline.Service, cfg *config.Config) *Server {
	s := &Server{DB: db, Bucket: bucket, Config: cfg}

	h := &handler.Handler{
		Pipeline: svc,
		DB:       db,
		Bucket:   bucket,
		Config:   cfg,
	}

	r := chi.NewRouter()

	// CORS — must be before other middleware to handle preflight OPTIONS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Length", "Content-Type", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check.
	r.Get("/health", s.Health)

	// API routes.
	r.Route("/v1/images", func(r chi.Router) {
		r.Post("/process", h.ProcessImage)
		r.Get("/", h.ListRecords)

		// Stats must be registered before any wildcard so /stats is not
		// swallowed by a parameter route.
		r.Get("/stats", h.GetStats)
	})

	// Object delivery endpoint — processed URLs resolve here.
	r.Get("/cdn/*", h.DeliverObject)

	s.Router = r
	return s
}

// Health returns a simple health-check response.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		log.Printf("Health: failed to encode response: %v", err)
	}
}
