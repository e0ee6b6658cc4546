package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/cvo-backend/internal/config"
	"github.com/heartmarshall/cvo-backend/internal/transport/middleware"
)

// Handlers groups the endpoint handlers served by the router.
type Handlers struct {
	Health    *HealthHandler
	Webhook   *WebhookHandler
	Stock     *StockHandler
	Upload    *UploadHandler
	Admin     *AdminHandler
	Dashboard *DashboardHandler
}

// RouterConfig holds the middleware the router applies.
type RouterConfig struct {
	Logger    *slog.Logger
	CORS      config.CORSConfig
	AdminRole string
	// Auth validates bearer tokens; required for admin routes.
	Auth middleware.Middleware
	// WebhookLimit throttles the e-mail webhook; nil disables it.
	WebhookLimit middleware.Middleware
	// Metrics records per-route request metrics; nil disables it.
	Metrics middleware.Middleware
	// MetricsHandler exposes metrics at MetricsPath; nil disables it.
	MetricsHandler http.Handler
	MetricsPath    string
}

// NewRouter registers every route and wraps the mux in the shared middleware.
func NewRouter(h Handlers, cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)
	if cfg.MetricsHandler != nil {
		mux.Handle("GET "+cfg.MetricsPath, cfg.MetricsHandler)
	}

	webhook := http.Handler(http.HandlerFunc(h.Webhook.Receive))
	if cfg.WebhookLimit != nil {
		webhook = cfg.WebhookLimit(webhook)
	}
	mux.Handle("POST /api/email-webhook", webhook)

	mux.HandleFunc("GET /api/import-csv", h.Stock.Describe)
	mux.HandleFunc("POST /api/import-csv", h.Stock.Import)

	mux.HandleFunc("POST /api/extract-pdf", h.Upload.Extract)
	mux.HandleFunc("POST /api/save-pdf-extraction", h.Upload.Save)

	admin := middleware.AdminOnly(cfg.AdminRole)
	mux.Handle("GET /api/admin/users", admin(http.HandlerFunc(h.Admin.ListUsers)))
	mux.Handle("POST /api/admin/users", admin(http.HandlerFunc(h.Admin.CreateUser)))
	mux.Handle("GET /api/dashboard/sales-summary", admin(http.HandlerFunc(h.Dashboard.SalesSummary)))

	// Metrics sits directly on the mux: the mux sets r.Pattern on the request it
	// receives, and outer middleware pass copies.
	var root http.Handler = mux
	if cfg.Metrics != nil {
		root = cfg.Metrics(root)
	}

	quiet := []string{"/live", "/ready"}
	if cfg.MetricsHandler != nil {
		quiet = append(quiet, cfg.MetricsPath)
	}
	mws := []middleware.Middleware{
		middleware.RequestID(),
		middleware.Logger(cfg.Logger, quiet...),
		middleware.Recovery(cfg.Logger),
		middleware.CORS(cfg.CORS),
	}
	if cfg.Auth != nil {
		mws = append(mws, cfg.Auth)
	}
	return middleware.Chain(mws...)(root)
}
