package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/auth"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/config"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/service/admin"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/service/aggregate"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/service/audit"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/service/crm"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/service/dashboard"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/service/ledger"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/service/org"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/service/payroll"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/store/selector"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/transport/middleware"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, opens both
// backends, wires the services and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("read_mode", cfg.Storage.ReadMode),
		slog.Bool("durable_configured", cfg.Database.DSN != ""),
		slog.Bool("auth_enabled", cfg.Auth.Enabled()),
	)

	backends, err := OpenBackends(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer backends.Close(cfg.Storage, logger)

	svc := NewServices(cfg, backends, logger)

	if cfg.Storage.SeedOnStart {
		report := svc.Admin.SeedEmpty(ctx)
		logger.Info("seed on start",
			slog.Bool("durable_seeded", report.Durable.Attempted),
			slog.Bool("mirror_seeded", report.Mirror.Attempted),
			slog.Bool("failed", report.Failed()),
		)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      NewHandler(cfg, backends, svc, limiter, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-serverErr:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	logger.Info("http server stopped")
	return nil
}

// Services holds every service built on the two backends.
type Services struct {
	Org       *org.Service
	Ledger    *ledger.Service
	CRM       *crm.Service
	Payroll   *payroll.Service
	Audit     *audit.Service
	Dashboard *dashboard.Service
	Admin     *admin.Service
}

// NewServices wires the services to one shared executor.
func NewServices(cfg *config.Config, b *Backends, logger *slog.Logger) *Services {
	exec := selector.New(logger, b.Durable, b.Mirror, selector.Options{
		ReadMode:       selector.ReadMode(cfg.Storage.ReadMode),
		DurableTimeout: cfg.Storage.DurableTimeout,
	})
	aggregates := aggregate.New(logger, cfg.Storage.StrictAggregates)
	auditSvc := audit.NewService(logger, exec)

	return &Services{
		Org:       org.NewService(logger, exec, auditSvc),
		Ledger:    ledger.NewService(logger, exec, auditSvc, aggregates),
		CRM:       crm.NewService(logger, exec, auditSvc, aggregates),
		Payroll:   payroll.NewService(logger, exec, auditSvc),
		Audit:     auditSvc,
		Dashboard: dashboard.NewService(logger, exec),
		Admin:     admin.NewService(logger, b.Durable, b.Mirror, aggregates, cfg.Storage.SnapshotKey),
	}
}

// NewHandler builds the router behind the middleware chain. Bearer tokens
// are required on /api only, and only when a secret is configured.
func NewHandler(cfg *config.Config, b *Backends, svc *Services, limiter *middleware.RateLimiter, logger *slog.Logger) http.Handler {
	var durable interface {
		Ping(ctx context.Context) error
	}
	if b.Durable != nil {
		durable = b.Durable
	}

	var authMW middleware.Middleware
	if cfg.Auth.Enabled() {
		validator := auth.NewTokenValidator(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTLeeway)
		authMW = middleware.Auth(validator, logger)
	}

	router := rest.NewRouter(rest.Handlers{
		Health:  rest.NewHealthHandler(durable, b.Mirror, BuildVersion()),
		Org:     rest.NewOrgHandler(svc.Org, logger),
		Ledger:  rest.NewLedgerHandler(svc.Ledger, logger),
		CRM:     rest.NewCRMHandler(svc.CRM, logger),
		Payroll: rest.NewPayrollHandler(svc.Payroll, logger),
		Report:  rest.NewReportHandler(svc.Audit, svc.Dashboard, logger),
		Admin:   rest.NewAdminHandler(svc.Admin, logger),
	}, authMW)

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Outcome,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit(cfg.RateLimit.RequestsPerMinute),
		middleware.ClientInfo,
	)(router)
}
