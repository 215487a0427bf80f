// Package api serves the aggregated catalog over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ryanm101/gameroom/internal/game"
	"github.com/ryanm101/gameroom/internal/logging"
	"github.com/ryanm101/gameroom/internal/tracing"
)

// CatalogService is what the handlers need from the aggregation layer.
type CatalogService interface {
	Catalog(ctx context.Context) game.Catalog
	Platform(ctx context.Context, platform string) ([]game.Game, bool)
	Search(ctx context.Context, query, platform string) ([]game.Game, error)
}

// Server is the HTTP API server.
type Server struct {
	catalog CatalogService
	handler http.Handler
	server  *http.Server
	now     func() time.Time
	logger  *slog.Logger
}

// NewServer builds the router and middleware chain and binds it to port.
func NewServer(port string, svc CatalogService) *Server {
	s := &Server{
		catalog: svc,
		now:     time.Now,
		logger:  logging.For("api"),
	}

	router := mux.NewRouter()
	router.Use(s.MetricsMiddleware)

	router.HandleFunc("/", s.Index).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.Health).Methods(http.MethodGet)
	api.HandleFunc("/games", s.GetGames).Methods(http.MethodGet)
	api.HandleFunc("/games/search/{query}", s.SearchGames).Methods(http.MethodGet)
	api.HandleFunc("/games/platform/{platform}", s.GetPlatformGames).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Not found", nil)
	})

	// Wrapped inside out; recovery and tracing end up outermost.
	var h http.Handler = router
	h = CORSMiddleware(h)
	h = s.LoggingMiddleware(h)
	h = RequestIDMiddleware(h)
	h = s.RecoveryMiddleware(h)
	h = tracing.Handler(h, "gameroom")
	s.handler = h

	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      h,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

// ServeHTTP lets the server be used directly as a handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start listens until Shutdown is called. It returns http.ErrServerClosed
// after a graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("listening", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
