// Package api provides the HTTP API server and handlers for the AltUse application.
package api

import (
	"net"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/altusecase/altuse-server/internal/config"
	"github.com/altusecase/altuse-server/internal/logger"
	"github.com/altusecase/altuse-server/internal/ratelimit"
	"github.com/altusecase/altuse-server/internal/service"
)

// Generation hits the image and LLM providers, so it gets a tighter
// per-client budget than the read endpoints.
const (
	generateRPS   = 1
	generateBurst = 5
)

// Services groups the business logic services used by the API server.
type Services struct {
	Item       *service.ItemService
	Use        *service.UseService
	Category   *service.CategoryService
	Tag        *service.TagService
	Suggestion *service.SuggestionService
	Ads        *service.AdsService
	Search     *service.SearchService
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	services *Services
	router   *chi.Mux
	api      huma.API
	logger   *logger.Logger
	limiter  *ratelimit.KeyedRateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, services *Services, log *logger.Logger) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		MaxAge:           300,
		AllowCredentials: false,
	}))

	s := &Server{
		services: services,
		router:   router,
		logger:   log.WithComponent("api"),
		limiter:  ratelimit.New(generateRPS, generateBurst),
	}

	// chi requires every middleware before the first route; humachi.New
	// mounts routes on the router, so the limiter has to go on first.
	router.Use(s.limitGeneration)

	humaConfig := huma.DefaultConfig("AltUse API", "1.0.0")
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerItemRoutes()
	s.registerUseRoutes()
	s.registerCategoryRoutes()
	s.registerTagRoutes()
	s.registerSearchRoutes()
	s.registerSuggestionRoutes()
	s.registerAdRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server-owned background resources.
func (s *Server) Close() {
	s.limiter.Stop()
}

// limitGeneration throttles the generation endpoint per client address.
func (s *Server) limitGeneration(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/items/generate") {
			if !s.limiter.Allow(clientKey(r)) {
				s.logger.Warn("generation rate limit exceeded", "client", clientKey(r))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"v":1,"success":false,"error":"rate limit exceeded, slow down"}`))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// clientKey buckets requests by client IP. RealIP middleware has
// already resolved proxy headers into RemoteAddr.
func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
