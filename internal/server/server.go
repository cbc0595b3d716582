// Package server serves the zoo application: the habitat API, the page
// shell and WebSocket navigation sessions that keep a server-side router in
// sync with the browser history.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/zoodb/zoodb/internal/config"
	"github.com/zoodb/zoodb/internal/habitat"
	"github.com/zoodb/zoodb/pkg/router"
)

// Options configures a Server.
type Options struct {
	// Config is the application configuration. Defaults to config.New().
	Config *config.Config

	// Store serves habitat data. Required.
	Store *habitat.Store

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Registry receives the server metrics and backs /metrics.
	// Defaults to a fresh registry.
	Registry *prometheus.Registry

	// Tracer defaults to the tracer named "zoodb/server" from the global
	// provider.
	Tracer trace.Tracer
}

// Server is the zoo HTTP server.
type Server struct {
	cfg      *config.Config
	store    *habitat.Store
	routes   *router.Table
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metrics
	tracer   trace.Tracer
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[*session]struct{}
	closing  bool
}

// New creates a Server.
func New(opts Options) *Server {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.New()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	registry := opts.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer("zoodb/server")
	}

	return &Server{
		cfg:      cfg,
		store:    opts.Store,
		routes:   AppRoutes(),
		logger:   logger.With("component", "server"),
		registry: registry,
		metrics:  newMetrics(registry),
		tracer:   tracer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		sessions: make(map[*session]struct{}),
	}
}

// Handler returns the HTTP handler with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	if s.cfg.MetricsEnabled() {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	r.Get("/ws", s.handleWebSocket)

	r.Route("/api", func(r chi.Router) {
		r.Get("/habitats", s.handleListHabitats)
		r.Get("/habitats/{id}", s.handleGetHabitat)
		r.Get("/animals/{id}", s.handleGetAnimal)
		r.Get("/routes", s.handleRoutes)
		r.Get("/match", s.handleMatch)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", s.handleNotImplemented)
			r.Post("/login", s.handleNotImplemented)
			r.Post("/logout", s.handleNotImplemented)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			s.writeError(w, http.StatusNotFound, "E002", "no API route for "+r.URL.Path)
		})
	})

	if s.cfg.Static.Dir != "" {
		prefix := s.cfg.Static.Prefix
		r.Handle(prefix+"*", http.StripPrefix(prefix, http.FileServer(http.Dir(s.cfg.Static.Dir))))
	}

	r.Get("/*", s.handleShell)

	return r
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	// Shutdown does not touch hijacked connections.
	srv.RegisterOnShutdown(s.closeSessions)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// trackSession records a live session. It reports false once the server
// is shutting down.
func (s *Server) trackSession(sess *session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.sessions[sess] = struct{}{}
	return true
}

func (s *Server) untrackSession(sess *session) {
	s.mu.Lock()
	delete(s.sessions, sess)
	s.mu.Unlock()
}

// closeSessions sends a going-away close frame to every live session and
// closes its connection. Sessions that start afterwards are refused.
func (s *Server) closeSessions() {
	s.mu.Lock()
	s.closing = true
	conns := make([]*websocket.Conn, 0, len(s.sessions))
	for sess := range s.sessions {
		conns = append(conns, sess.conn)
	}
	s.mu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for _, conn := range conns {
		conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		conn.Close()
	}
	if len(conns) > 0 {
		s.logger.Info("closed sessions", "count", len(conns))
	}
}

// instrument counts requests by route pattern and logs them.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		pattern := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			pattern = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.metrics.httpRequests.WithLabelValues(pattern, strconv.Itoa(status)).Inc()
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"route", pattern,
			"status", status,
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
