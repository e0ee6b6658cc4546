package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Webhook  WebhookConfig  `yaml:"webhook"`
	Import   ImportConfig   `yaml:"import"`
	Mail     MailConfig     `yaml:"mail"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Webhook-Token"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// MaxBodyBytes caps request bodies; e-mails carry base64 PDF attachments.
	MaxBodyBytes int64 `yaml:"max_body_bytes" env:"SERVER_MAX_BODY_BYTES" env-default:"26214400"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"false"`
}

// AuthConfig holds token validation settings and the upstream auth service
// credentials used for user provisioning.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"`
	AdminRole      string        `yaml:"admin_role"       env:"AUTH_ADMIN_ROLE"       env-default:"admin"`
	AdminURL       string        `yaml:"admin_url"        env:"AUTH_ADMIN_URL"`
	ServiceRoleKey string        `yaml:"service_role_key" env:"AUTH_SERVICE_ROLE_KEY"`
	ServiceTTL     time.Duration `yaml:"service_ttl"      env:"AUTH_SERVICE_TTL"      env-default:"5m"`
	Timeout        time.Duration `yaml:"timeout"          env:"AUTH_TIMEOUT"          env-default:"10s"`
}

// AdminConfigured reports whether user provisioning can reach the upstream
// auth service.
func (c AuthConfig) AdminConfigured() bool {
	return c.AdminURL != "" && c.ServiceRoleKey != ""
}

// WebhookConfig holds inbound e-mail webhook settings.
type WebhookConfig struct {
	// Token is compared against X-Webhook-Token when non-empty.
	Token             string  `yaml:"token"               env:"WEBHOOK_TOKEN"`
	RequestsPerSecond float64 `yaml:"requests_per_second" env:"WEBHOOK_RPS"   env-default:"2"`
	Burst             int     `yaml:"burst"               env:"WEBHOOK_BURST" env-default:"10"`
}

// ImportConfig holds stock import settings.
type ImportConfig struct {
	APIKey string `yaml:"api_key" env:"IMPORT_API_KEY"`
}

// MailConfig holds the welcome e-mail endpoint settings.
type MailConfig struct {
	WelcomeURL string        `yaml:"welcome_url" env:"MAIL_WELCOME_URL"`
	Timeout    time.Duration `yaml:"timeout"     env:"MAIL_TIMEOUT"     env-default:"10s"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path"    env:"METRICS_PATH"    env-default:"/metrics"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Origins splits AllowedOrigins into trimmed, non-empty entries.
func (c CORSConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
