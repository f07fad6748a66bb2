// Package server exposes conversions over HTTP.
//
//	POST /v1/convert   {"expression": "A + B", "mode": "prefix"}
//	POST /v1/tokenize  {"expression": "A + B"}
//	GET  /healthz
//	GET  /metrics
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shunt/internal/cache"
	"shunt/internal/driver"
	"shunt/internal/engine"
	"shunt/internal/logx"
	"shunt/internal/token"
	"shunt/internal/tracefmt"
)

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 64 << 10

// Server holds the dependencies of the handlers.
type Server struct {
	cache    cache.Store
	logger   *log.Logger
	registry *prometheus.Registry
	metrics  *metrics
}

type Option func(*Server)

// WithCache shares a result cache between requests.
func WithCache(s cache.Store) Option {
	return func(srv *Server) { srv.cache = s }
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(srv *Server) { srv.logger = l }
}

// WithRegistry registers metrics on reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(srv *Server) { srv.registry = reg }
}

// New builds a Server. Metrics are never registered globally.
func New(opts ...Option) *Server {
	srv := &Server{}
	for _, opt := range opts {
		opt(srv)
	}
	if srv.logger == nil {
		srv.logger = log.Default()
	}
	if srv.registry == nil {
		srv.registry = prometheus.NewRegistry()
	}
	srv.metrics = newMetrics(srv.registry)
	return srv
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Route("/v1", func(r chi.Router) {
		r.Post("/convert", s.handleConvert)
		r.Post("/tokenize", s.handleTokenize)
	})
	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- hs.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		logger := s.logger.With("req", middleware.GetReqID(r.Context()))
		next.ServeHTTP(ww, r.WithContext(logx.WithLogger(r.Context(), logger)))
		logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"took", time.Since(start).Round(time.Microsecond))
	})
}

type convertRequest struct {
	Expression *string `json:"expression"`
	Mode       string  `json:"mode"`
}

type convertResponse struct {
	tracefmt.Document
	Cached bool `json:"cached"`
}

type tokenizeResponse struct {
	Expression string        `json:"expression"`
	Tokens     []token.Token `json:"tokens"`
	Skipped    []driver.Skip `json:"skipped,omitempty"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return fmt.Errorf("%w: %v", errInvalidInput, err)
	}
	return nil
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logx.FromContext(ctx)

	var req convertRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, logger, err)
		return
	}
	if req.Expression == nil {
		writeError(w, logger, fmt.Errorf("%w: expression is required", errInvalidInput))
		return
	}
	mode, err := engine.ParseMode(req.Mode)
	if err != nil {
		s.metrics.conversions.WithLabelValues("invalid", "error").Inc()
		writeError(w, logger, err)
		return
	}
	label := mode.String()

	start := time.Now()
	out, err := driver.Convert(ctx, *req.Expression, driver.Options{Mode: mode, Cache: s.cache})
	s.metrics.duration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	if err != nil {
		outcome := "error"
		if errors.Is(err, engine.ErrMismatchedParentheses) {
			outcome = "mismatch"
		}
		s.metrics.conversions.WithLabelValues(label, outcome).Inc()
		writeError(w, logger, err)
		return
	}
	outcome := "ok"
	if out.Cached {
		outcome = "cached"
	}
	s.metrics.conversions.WithLabelValues(label, outcome).Inc()
	s.metrics.steps.Observe(float64(len(out.Result.Steps)))

	writeJSON(w, logger, http.StatusOK, convertResponse{
		Document: tracefmt.NewDocument(out.Result),
		Cached:   out.Cached,
	})
}

func (s *Server) handleTokenize(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	var req convertRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, logger, err)
		return
	}
	if req.Expression == nil {
		writeError(w, logger, fmt.Errorf("%w: expression is required", errInvalidInput))
		return
	}
	res := driver.Tokenize(*req.Expression)
	tokens := res.Tokens
	if tokens == nil {
		tokens = []token.Token{}
	}
	writeJSON(w, logger, http.StatusOK, tokenizeResponse{
		Expression: res.Expression,
		Tokens:     tokens,
		Skipped:    res.Skipped,
	})
}
