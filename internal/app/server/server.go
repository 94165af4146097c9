package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"worktracker/internal/domain/earnings"
	"worktracker/internal/platform/config"
	"worktracker/internal/platform/metrics"
	"worktracker/internal/transport/http/api"
	earningshandler "worktracker/internal/transport/http/handlers/earnings"
	projecthandler "worktracker/internal/transport/http/handlers/projects"
	reportshandler "worktracker/internal/transport/http/handlers/reports"
	statementhandler "worktracker/internal/transport/http/handlers/statements"
	timesheethandler "worktracker/internal/transport/http/handlers/timesheets"
	"worktracker/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	Logger  zerolog.Logger
	Metrics *metrics.Collector
	Router  http.Handler
	server  *http.Server
}

// New wires the calculator, handlers and middleware for cfg.
func New(cfg config.Config, logger zerolog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	model, err := earnings.ModelByName(cfg.DeductionModel)
	if err != nil {
		return nil, err
	}
	calc := earnings.NewCalculator(model)

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(&logger, collector))
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if collector != nil {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.BodyLimit(cfg.MaxBodyBytes, map[string]int64{"/timesheets/import": cfg.MaxUploadBytes}))
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
		r.Use(middleware.ExpensiveRouteRateLimit(cfg.ImportRatePerMinute, time.Minute))

		earningshandler.NewHandler(calc, collector).RegisterRoutes(r)
		projecthandler.NewHandler().RegisterRoutes(r)
		timesheethandler.NewHandler(calc, collector).RegisterRoutes(r)
		reportshandler.NewHandler(calc).RegisterRoutes(r)
		statementhandler.NewHandler(calc).RegisterRoutes(r)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusNotFound, "not_found", "route not found", middleware.GetRequestID(r.Context()))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", middleware.GetRequestID(r.Context()))
	})

	logger.Info().Str("deduction_model", model.Name()).Bool("metrics", cfg.MetricsEnabled).Msg("router configured")
	return &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: collector,
		Router:  router,
		server: &http.Server{
			Addr:              cfg.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Run serves until ctx is cancelled, then drains in-flight requests for up to
// the configured shutdown timeout.
func (a *App) Run(ctx context.Context) error {
	serverErrors := make(chan error, 1)
	go func() {
		a.Logger.Info().Str("addr", a.server.Addr).Msg("starting server")
		serverErrors <- a.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		a.Logger.Info().Msg("shutdown initiated")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout)
		defer cancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.Logger.Error().Err(err).Msg("graceful shutdown failed")
			return a.server.Close()
		}
	}
	return nil
}
