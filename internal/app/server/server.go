package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"salarydecoder/internal/domain/audit"
	"salarydecoder/internal/domain/auth"
	"salarydecoder/internal/domain/explainer"
	"salarydecoder/internal/domain/payslip"
	"salarydecoder/internal/domain/salary"
	"salarydecoder/internal/platform/config"
	"salarydecoder/internal/platform/db"
	"salarydecoder/internal/platform/llm"
	"salarydecoder/internal/platform/metrics"
	"salarydecoder/internal/transport/http/api"
	audithandler "salarydecoder/internal/transport/http/handlers/audit"
	authhandler "salarydecoder/internal/transport/http/handlers/auth"
	explainhandler "salarydecoder/internal/transport/http/handlers/explain"
	payslipshandler "salarydecoder/internal/transport/http/handlers/payslips"
	salaryhandler "salarydecoder/internal/transport/http/handlers/salary"
	"salarydecoder/internal/transport/http/middleware"
	"salarydecoder/migrations"
)

type AuthService interface {
	authhandler.Service
	middleware.Authenticator
}

type AuditService interface {
	audit.Recorder
	audithandler.Reader
}

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Auth        AuthService
	Payslips    payslipshandler.Service
	Audit       AuditService
	Idempotency middleware.IdempotencyKeeper
	Explainer   explainhandler.Service
	Calculator  *salary.Calculator
	Metrics     *metrics.Collector
	Ready       func(ctx context.Context) error
}

type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Metrics *metrics.Collector
	Router  http.Handler
}

// New connects to Postgres, applies migrations when enabled and wires the router.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, migrations.FS); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}

	collector := metrics.New()
	calc := salary.NewCalculator(cfg.SalaryRules())
	gateway := llm.NewClient(llm.Options{
		APIKey:  cfg.AIGatewayAPIKey,
		BaseURL: cfg.AIGatewayURL,
		Model:   cfg.AIModel,
		Timeout: cfg.AITimeout,
		Metrics: collector,
	})
	if !gateway.Configured() {
		slog.Warn("AI_GATEWAY_API_KEY not set; explanations and chat will be unavailable")
	}

	router := NewRouter(cfg, Dependencies{
		Auth:        auth.NewService(auth.NewStore(pool), cfg.JWTSecret, cfg.TokenTTL),
		Payslips:    payslip.NewService(payslip.NewStore(pool), calc),
		Audit:       audit.New(pool),
		Idempotency: middleware.NewIdempotencyStore(pool),
		Explainer:   explainer.NewService(gateway, cfg.ChatMaxMessages),
		Calculator:  calc,
		Metrics:     collector,
		Ready:       pool.Ping,
	})

	return &App{Config: cfg, DB: pool, Metrics: collector, Router: router}, nil
}

func (a *App) Close() {
	if a != nil && a.DB != nil {
		a.DB.Close()
	}
}

func NewRouter(cfg config.Config, deps Dependencies) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(slog.Default()))
	router.Use(middleware.Recoverer)
	if cfg.MetricsEnabled && deps.Metrics != nil {
		router.Use(middleware.Metrics(deps.Metrics))
	}
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	if deps.Auth != nil {
		router.Use(middleware.Auth(deps.Auth))
	}

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if deps.Ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := deps.Ready(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled && deps.Metrics != nil {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, deps.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusNotFound, "not_found", "route not found", middleware.GetRequestID(r.Context()))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", middleware.GetRequestID(r.Context()))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
		r.Use(middleware.SensitiveRateLimit(cfg.RateLimitPerMinute, time.Minute))

		var calcMetrics salaryhandler.CalculationRecorder
		if deps.Metrics != nil {
			calcMetrics = deps.Metrics
		}
		salaryHandler := salaryhandler.NewHandler(deps.Calculator, calcMetrics)
		salaryHandler.RegisterRoutes(r)

		if deps.Explainer != nil {
			explainhandler.NewHandler(deps.Explainer, salaryHandler).RegisterRoutes(r)
		}

		var recorder audit.Recorder
		if deps.Audit != nil {
			recorder = deps.Audit
			audithandler.NewHandler(deps.Audit).RegisterRoutes(r)
		}
		if deps.Auth != nil {
			authhandler.NewHandler(deps.Auth, recorder).RegisterRoutes(r)
		}
		if deps.Payslips != nil {
			payslipshandler.NewHandler(deps.Payslips, recorder, deps.Idempotency).RegisterRoutes(r)
		}
	})

	return router
}

func newLogger(cfg config.Config) *slog.Logger {
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Run loads configuration from the environment and serves until SIGINT or SIGTERM.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(newLogger(cfg))
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.AITimeout + 15*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("salary decoder listening", "addr", cfg.Addr, "env", cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
