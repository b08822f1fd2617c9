// Package server provides the HTTP API for Hitung.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hyperjump/hitung/internal/calc"
	"github.com/hyperjump/hitung/internal/catalog"
	"github.com/hyperjump/hitung/internal/config"
	"github.com/hyperjump/hitung/internal/lookup"
	"github.com/hyperjump/hitung/internal/metrics"
	"github.com/hyperjump/hitung/internal/models"
)

// SessionHeader names the client session whose latest lookup is tracked.
const SessionHeader = "X-Session-ID"

// Server is the HTTP server for the Hitung API.
type Server struct {
	searcher *catalog.Searcher
	lookup   *lookup.Client
	metrics  *metrics.Collector
	config   *config.ServerConfig
	logger   *zap.Logger
	version  string

	seq      lookup.Sequencer
	sessions *lookup.Cache[*lookup.Slot[models.LookupResult]]
	calcs    *calc.Registry
	now      func() time.Time

	server *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	searcher *catalog.Searcher,
	lookupClient *lookup.Client,
	collector *metrics.Collector,
	cfg *config.ServerConfig,
	logger *zap.Logger,
	version string,
) *Server {
	s := &Server{
		searcher: searcher,
		lookup:   lookupClient,
		metrics:  collector,
		config:   cfg,
		logger:   logger,
		version:  version,
		sessions: lookup.NewCache[*lookup.Slot[models.LookupResult]](cfg.MaxSessions),
		now:      time.Now,
	}
	s.calcs = calc.New(func() time.Time { return s.now() })
	return s
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.Middleware)
	if s.config.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.config.RequestTimeout))
	}
	r.Use(middleware.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID", SessionHeader},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	r.Get("/pages/{slug}", s.handlePage)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Get("/catalog/{category}", s.handleCategory)
		r.Get("/search", s.handleSearch)
		r.Get("/units", s.handleUnits)
		r.Post("/convert", s.handleConvert)
		r.Post("/calculate/{slug}", s.handleCalculate)
		r.Get("/calculate/emi/schedule.xlsx", s.handleSchedule)
		r.Get("/pages", s.handlePages)

		r.Route("/lookup", func(r chi.Router) {
			r.Get("/pin/{pin}", s.handlePIN)
			r.Get("/area/{area}", s.handleArea)
			r.Get("/ifsc/{code}", s.handleIFSC)
			r.Get("/latest", s.handleLatest)
		})
		r.Get("/qr", s.handleQR)
	})
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr), zap.String("version", s.version))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// requestLogger logs one line per request at debug level, failures at warn.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		}
		if ww.Status() >= http.StatusInternalServerError {
			s.logger.Warn("request failed", fields...)
			return
		}
		s.logger.Debug("request", fields...)
	})
}
