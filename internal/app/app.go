package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/cvo-backend/internal/adapter/authadmin"
	"github.com/heartmarshall/cvo-backend/internal/adapter/mailer"
	"github.com/heartmarshall/cvo-backend/internal/adapter/postgres"
	"github.com/heartmarshall/cvo-backend/internal/adapter/postgres/email"
	"github.com/heartmarshall/cvo-backend/internal/adapter/postgres/extraction"
	"github.com/heartmarshall/cvo-backend/internal/adapter/postgres/profile"
	"github.com/heartmarshall/cvo-backend/internal/adapter/postgres/sale"
	"github.com/heartmarshall/cvo-backend/internal/adapter/postgres/stock"
	"github.com/heartmarshall/cvo-backend/internal/auth"
	"github.com/heartmarshall/cvo-backend/internal/config"
	"github.com/heartmarshall/cvo-backend/internal/metrics"
	"github.com/heartmarshall/cvo-backend/internal/service/dashboard"
	"github.com/heartmarshall/cvo-backend/internal/service/ingest"
	"github.com/heartmarshall/cvo-backend/internal/service/stockimport"
	"github.com/heartmarshall/cvo-backend/internal/service/users"
	"github.com/heartmarshall/cvo-backend/internal/transport/middleware"
	"github.com/heartmarshall/cvo-backend/internal/transport/rest"
	"github.com/heartmarshall/cvo-backend/migrations"
)

// limiterCleanup is how often idle rate limiter entries are swept.
const limiterCleanup = time.Minute

// Run is the application entry point. It loads configuration, connects to
// the database, wires services and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, migrations.FS, logger); err != nil {
			return fmt.Errorf("app: %w", err)
		}
	}

	// Repositories.
	emailRepo := email.New(pool)
	extractionRepo := extraction.New(pool)
	saleRepo := sale.New(pool)
	profileRepo := profile.New(pool)
	stockRepo := stock.New(pool)
	txm := postgres.NewTxManager(pool)

	reg := metrics.NewRegistry()
	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.ServiceTTL)

	// Services.
	ingestSvc := ingest.NewService(logger, emailRepo, extractionRepo, saleRepo, profileRepo, txm, reg)
	stockSvc := stockimport.NewService(logger, stockRepo, reg)
	dashboardSvc := dashboard.NewService(logger, saleRepo)
	usersSvc := newUsersService(cfg, logger, profileRepo, jwt, reg)

	limiter := middleware.NewRateLimiter(cfg.Webhook.RequestsPerSecond, cfg.Webhook.Burst, limiterCleanup)
	defer limiter.Stop()

	maxBody := cfg.Server.MaxBodyBytes
	handlers := rest.Handlers{
		Health: rest.NewHealthHandler(pool, BuildVersion(), map[string]bool{
			"webhook_token": cfg.Webhook.Token != "",
			"stock_import":  cfg.Import.APIKey != "",
			"auth_admin":    cfg.Auth.AdminConfigured(),
			"welcome_mail":  cfg.Mail.WelcomeURL != "",
		}),
		Webhook:   rest.NewWebhookHandler(ingestSvc, cfg.Webhook.Token, maxBody, logger),
		Stock:     rest.NewStockHandler(stockSvc, cfg.Import.APIKey, maxBody, logger),
		Upload:    rest.NewUploadHandler(ingestSvc, maxBody, logger),
		Admin:     rest.NewAdminHandler(usersSvc, maxBody, logger),
		Dashboard: rest.NewDashboardHandler(dashboardSvc, logger),
	}

	routerCfg := rest.RouterConfig{
		Logger:       logger,
		CORS:         cfg.CORS,
		AdminRole:    cfg.Auth.AdminRole,
		Auth:         middleware.Auth(jwt, logger),
		WebhookLimit: limiter.Limit(),
	}
	if cfg.Metrics.Enabled {
		routerCfg.Metrics = middleware.Metrics(reg)
		routerCfg.MetricsHandler = reg.Handler()
		routerCfg.MetricsPath = cfg.Metrics.Path
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      rest.NewRouter(handlers, routerCfg),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return serve(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

// newUsersService wires user provisioning. Unconfigured integrations stay nil
// interfaces: Create then fails with ErrNotConfigured, and welcome e-mails are skipped.
func newUsersService(cfg *config.Config, logger *slog.Logger, profiles *profile.Repo, jwt *auth.JWTManager, reg *metrics.Registry) *users.Service {
	var (
		admin   users.AuthAdmin
		welcome users.WelcomeSender
	)
	if cfg.Auth.AdminConfigured() {
		admin = authadmin.NewClient(cfg.Auth.AdminURL, cfg.Auth.ServiceRoleKey, cfg.Auth.Timeout, logger)
	} else {
		logger.Warn("auth admin not configured; user provisioning disabled")
	}
	if cfg.Mail.WelcomeURL != "" {
		welcome = mailer.NewWelcomeSender(cfg.Mail.WelcomeURL, jwt, cfg.Mail.Timeout, logger)
	}
	return users.NewService(logger, profiles, admin, welcome, reg)
}

func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("app: http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
