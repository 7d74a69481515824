package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr          = ":8080"
	defaultAdminAddr         = "127.0.0.1:9090"
	defaultDatabaseURL       = "promo.db"
	defaultMongoDB           = "promotion"
	defaultProductServiceURL = "http://localhost:8001/api/v1/products"
	defaultLoggingServiceURL = "http://localhost:8002/api/v1/logs"
	defaultPeerTimeout       = "3s"
	defaultShutdownTimeout   = "10s"
	defaultReadHeaderTimeout = "5s"
	defaultReadTimeout       = "10s"
	defaultWriteTimeout      = "10s"
	defaultIdleTimeout       = "60s"
	defaultLogLevel          = "info"
	defaultLogFormat         = "json"
	defaultTracingEnabled    = "false"
	defaultOTLPEndpoint      = "127.0.0.1:4317"
	defaultServiceName       = "promoservice"
)

// Config holds everything the api process needs at startup.
type Config struct {
	AppEnv string

	HTTPAddr          string
	AdminAddr         string
	ShutdownTimeout   time.Duration
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration

	DatabaseURL string
	MongoDB     string

	ProductServiceURL string
	LoggingServiceURL string
	PeerTimeout       time.Duration

	LogLevel  slog.Level
	LogFormat string

	TracingEnabled bool
	OTLPEndpoint   string
	ServiceName    string

	CORSAllowedOrigins []string
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.AdminAddr = strings.TrimSpace(getEnv("ADMIN_ADDR", defaultAdminAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", legacyMongoURI()))
	cfg.MongoDB = strings.TrimSpace(getEnv("MONGO_DB", defaultMongoDB))
	cfg.ProductServiceURL = strings.TrimRight(strings.TrimSpace(getEnv("PRODUCT_SERVICE_URL", defaultProductServiceURL)), "/")
	cfg.LoggingServiceURL = strings.TrimRight(strings.TrimSpace(getEnv("LOGGING_SERVICE_URL", defaultLoggingServiceURL)), "/")
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(getEnv("LOG_FORMAT", defaultLogFormat)))
	cfg.OTLPEndpoint = strings.TrimSpace(getEnv("OTLP_ENDPOINT", defaultOTLPEndpoint))
	cfg.ServiceName = strings.TrimSpace(getEnv("SERVICE_NAME", defaultServiceName))
	cfg.CORSAllowedOrigins = parseListEnv("CORS_ALLOWED_ORIGINS")

	var err error
	if cfg.TracingEnabled, err = parseBoolEnv("TRACING_ENABLED", defaultTracingEnabled); err != nil {
		return nil, err
	}
	if cfg.LogLevel, err = parseLevelEnv("LOG_LEVEL", defaultLogLevel); err != nil {
		return nil, err
	}

	durations := []struct {
		name     string
		fallback string
		dst      *time.Duration
	}{
		{"PEER_TIMEOUT", defaultPeerTimeout, &cfg.PeerTimeout},
		{"SHUTDOWN_TIMEOUT", defaultShutdownTimeout, &cfg.ShutdownTimeout},
		{"READ_HEADER_TIMEOUT", defaultReadHeaderTimeout, &cfg.ReadHeaderTimeout},
		{"READ_TIMEOUT", defaultReadTimeout, &cfg.ReadTimeout},
		{"WRITE_TIMEOUT", defaultWriteTimeout, &cfg.WriteTimeout},
		{"IDLE_TIMEOUT", defaultIdleTimeout, &cfg.IdleTimeout},
	}
	for _, d := range durations {
		if *d.dst, err = parseDurationEnv(d.name, d.fallback); err != nil {
			return nil, err
		}
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether APP_ENV names a production-like environment.
func (c *Config) IsProduction() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.PeerTimeout <= 0 {
		return fmt.Errorf("PEER_TIMEOUT must be > 0")
	}
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be > 0")
	}
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	for name, raw := range map[string]string{
		"PRODUCT_SERVICE_URL": cfg.ProductServiceURL,
		"LOGGING_SERVICE_URL": cfg.LoggingServiceURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
		}
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return fmt.Errorf("LOG_FORMAT must be one of: json, text")
	}
	if isProdLike(cfg.AppEnv) && cfg.DatabaseURL == defaultDatabaseURL {
		return fmt.Errorf("in prod/release DATABASE_URL must be set and not default")
	}
	return nil
}

// legacyMongoURI keeps the MONGO_* variables of the old deployment working.
func legacyMongoURI() string {
	host := strings.TrimSpace(os.Getenv("MONGO_URL"))
	if host == "" {
		return defaultDatabaseURL
	}
	port := getEnv("MONGO_PORT", "27017")
	u := &url.URL{
		Scheme:   "mongodb",
		Host:     host + ":" + port,
		Path:     "/" + getEnv("MONGO_DB", defaultMongoDB),
		RawQuery: "authSource=admin",
	}
	if user := os.Getenv("DB_USER"); user != "" {
		u.User = url.UserPassword(user, os.Getenv("MONGO_PASSWORD"))
	}
	return u.String()
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseLevelEnv(name, fallback string) (slog.Level, error) {
	var level slog.Level
	value := strings.TrimSpace(getEnv(name, fallback))
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return level, nil
}

func parseBoolEnv(name, fallback string) (bool, error) {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	switch value {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return b, nil
}

func parseListEnv(name string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(name), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
