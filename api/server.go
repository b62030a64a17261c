package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"smartpick/services"
	"smartpick/storage"
	"smartpick/utils"
)

// Server exposes the recommendation engine over HTTP.
type Server struct {
	recommender *services.Recommender
	phones      storage.PhoneStore
	reviews     storage.ReviewStore
	logger      *utils.Logger
}

// NewServer wires the handlers to their collaborators.
func NewServer(recommender *services.Recommender, phones storage.PhoneStore, reviews storage.ReviewStore, logger *utils.Logger) *Server {
	return &Server{
		recommender: recommender,
		phones:      phones,
		reviews:     reviews,
		logger:      logger,
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(allowCORS)

	r.Get("/", s.handleIndex)
	r.Route("/api", func(r chi.Router) {
		r.Get("/recommendations", s.handleRecommendations)
		r.Route("/phones/{id}", func(r chi.Router) {
			r.Get("/", s.handlePhone)
			r.Get("/reviews", s.handlePhoneReviews)
		})
	})

	return r
}

// allowCORS lets the browser frontend call the API from any origin.
func allowCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
