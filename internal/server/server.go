package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/studycal/internal/service"
	"github.com/gin-gonic/gin"
)

// Config tunes the HTTP API.
type Config struct {
	Addr string

	// MaxBodyBytes caps every request body. MaxHTMLBytes and MaxXLSXBytes
	// cap the individual uploads of the schedule form.
	MaxBodyBytes int64
	MaxHTMLBytes int64
	MaxXLSXBytes int64

	// DefaultTimezone applies when a form leaves "timezone" empty.
	DefaultTimezone string

	// Now is the clock behind default start dates.
	Now func() time.Time
}

// DefaultConfig returns the settings used by `studycal serve`.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		MaxBodyBytes:    16 << 20,
		MaxHTMLBytes:    5 << 20,
		MaxXLSXBytes:    10 << 20,
		DefaultTimezone: "America/Sao_Paulo",
	}
}

// withDefaults fills the zero fields of c from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Addr == "" {
		c.Addr = d.Addr
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = d.MaxBodyBytes
	}
	if c.MaxHTMLBytes <= 0 {
		c.MaxHTMLBytes = d.MaxHTMLBytes
	}
	if c.MaxXLSXBytes <= 0 {
		c.MaxXLSXBytes = d.MaxXLSXBytes
	}
	if c.DefaultTimezone == "" {
		c.DefaultTimezone = d.DefaultTimezone
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// Server serves the scheduling API over HTTP.
type Server struct {
	cfg    Config
	plans  service.PlanService
	ingest service.IngestService
	logger *slog.Logger
	engine *gin.Engine
}

// New builds a Server and registers its routes.
func New(cfg Config, plans service.PlanService, ingest service.IngestService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		cfg:    cfg.withDefaults(),
		plans:  plans,
		ingest: ingest,
		logger: logger,
	}
	s.engine = s.routes()
	return s
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = s.cfg.MaxBodyBytes

	r.Use(Recovery(s.logger))
	r.Use(RequestID())
	r.Use(RequestLogger(s.logger))
	r.Use(BodyLimit(s.cfg.MaxBodyBytes))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/schedule", s.handleSchedule)
		v1.GET("/sample", s.handleSample)

		plans := v1.Group("/plans")
		{
			plans.GET("", s.handleListPlans)
			plans.GET("/:id", s.handleGetPlan)
			plans.GET("/:id/export", s.handleExportPlan)
			plans.DELETE("/:id", s.handleDeletePlan)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		Error(c, http.StatusNotFound, codeNotFound, "route not found")
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      3 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
