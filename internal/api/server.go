// internal/api/server.go
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pricing-intel/internal/common/config"
	"pricing-intel/internal/common/errors"
	"pricing-intel/internal/common/logger"
	"pricing-intel/internal/common/metrics"
	piq "pricing-intel/internal/workers/pricing/pricing-intel-query"
)

const maxBodyBytes = 1 << 20

// QueryService runs pricing intel requests.
type QueryService interface {
	ParseRequest(raw []byte) (*piq.Request, error)
	Execute(ctx context.Context, req *piq.Request) (*piq.ResponseEnvelope, error)
}

// Pinger reports whether the warehouse is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	cfg       config.ServerConfig
	service   QueryService
	pinger    Pinger
	poolStats func() map[string]interface{}
	logger    logger.Logger
}

type Option func(*Server)

// WithPoolStats adds connection pool usage to the readiness body.
func WithPoolStats(fn func() map[string]interface{}) Option {
	return func(s *Server) { s.poolStats = fn }
}

func NewServer(cfg config.ServerConfig, service QueryService, pinger Pinger, log logger.Logger, opts ...Option) *Server {
	s := &Server{
		cfg:     cfg,
		service: service,
		pinger:  pinger,
		logger:  log.WithFields(map[string]interface{}{"component": "http"}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", s.health)
	r.Get("/ready", s.ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/", s.query)
	r.Post("/pricing-intel", s.query)

	return r
}

// HTTPServer wraps Router with the configured timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.Router(),
		ReadTimeout:  config.GetDuration(s.cfg.ReadTimeout),
		WriteTimeout: config.GetDuration(s.cfg.WriteTimeout),
	}
}

// requestLogger counts every response and stores a request scoped logger in
// the context.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		log := s.logger.WithFields(map[string]interface{}{
			"httpRequestId": middleware.GetReqID(r.Context()),
			"method":        r.Method,
			"path":          r.URL.Path,
		})
		next.ServeHTTP(ww, r.WithContext(logger.IntoContext(r.Context(), log)))

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()

		log.Debug("request served", map[string]interface{}{
			"status":     status,
			"bytes":      ww.BytesWritten(),
			"durationMs": time.Since(start).Milliseconds(),
		})
	})
}

// query owns the request deadline so a timeout still answers with the error
// envelope.
func (s *Server) query(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), s.logger)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeJSON(w, r, http.StatusBadRequest, piq.NewErrorEnvelope(errors.NewInvalidRequestError(err.Error())))
		return
	}

	req, err := s.service.ParseRequest(body)
	if err != nil {
		log.Warn("rejected pricing intel request", map[string]interface{}{"error": err})
		s.writeJSON(w, r, http.StatusBadRequest, piq.NewErrorEnvelope(err))
		return
	}

	ctx := r.Context()
	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.GetDuration(s.cfg.RequestTimeout))
		defer cancel()
	}

	env, err := s.service.Execute(ctx, req)
	if r.Context().Err() != nil {
		// client went away; nobody is reading the answer
		log.Warn("pricing intel request abandoned", map[string]interface{}{"error": r.Context().Err()})
		return
	}
	if err != nil {
		s.writeJSON(w, r, http.StatusInternalServerError, piq.NewErrorEnvelope(err))
		return
	}
	s.writeJSON(w, r, http.StatusOK, env)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	if s.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if err := s.pinger.Ping(ctx); err != nil {
			logger.FromContext(r.Context(), s.logger).Warn("readiness check failed", map[string]interface{}{"error": err})
			s.writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"error":  err.Error(),
				"time":   time.Now().Format(time.RFC3339),
			})
			return
		}
	}
	body := map[string]interface{}{
		"status": "ready",
		"time":   time.Now().Format(time.RFC3339),
	}
	if s.poolStats != nil {
		body["warehouse"] = s.poolStats()
	}
	s.writeJSON(w, r, http.StatusOK, body)
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context(), s.logger).Error("failed to encode response", map[string]interface{}{
			"status": status,
			"error":  err.Error(),
		})
	}
}
