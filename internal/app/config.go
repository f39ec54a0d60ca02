package app

import (
	"strings"
	"time"

	"github.com/yungbote/neurobridge-profiling/internal/data/db"
	"github.com/yungbote/neurobridge-profiling/internal/observability"
	"github.com/yungbote/neurobridge-profiling/internal/platform/envutil"
	"github.com/yungbote/neurobridge-profiling/internal/platform/logger"
)

type Config struct {
	Port            string
	Environment     string
	ServiceName     string
	Version         string
	ShutdownTimeout time.Duration

	DB db.Config

	JWTSecretKey   string
	AccessTokenTTL time.Duration
	CORSOrigins    []string

	RedisAddr     string
	RedisChannel  string
	EventsEnabled bool

	MetricsAddr string

	Otel observability.OtelConfig
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:            envutil.String("PORT", "8080"),
		Environment:     envutil.String("APP_ENV", "development"),
		ServiceName:     envutil.String("OTEL_SERVICE_NAME", "neurobridge-profiling"),
		Version:         envutil.String("APP_VERSION", "dev"),
		ShutdownTimeout: envutil.Duration("SHUTDOWN_TIMEOUT", 15*time.Second),
		DB: db.Config{
			Driver:           envutil.String("DB_DRIVER", "postgres"),
			PostgresHost:     envutil.String("POSTGRES_HOST", "localhost"),
			PostgresPort:     envutil.String("POSTGRES_PORT", "5432"),
			PostgresUser:     envutil.String("POSTGRES_USER", "postgres"),
			PostgresPassword: envutil.String("POSTGRES_PASSWORD", ""),
			PostgresName:     envutil.String("POSTGRES_NAME", "neurobridge"),
			PostgresSSLMode:  envutil.String("POSTGRES_SSLMODE", "disable"),
			SQLitePath:       envutil.String("SQLITE_PATH", "profiling.db"),
			MaxOpenConns:     envutil.Int("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns:     envutil.Int("DB_MAX_IDLE_CONNS", 5),
		},
		JWTSecretKey:   envutil.String("JWT_SECRET_KEY", "defaultsecret"),
		AccessTokenTTL: envutil.Duration("ACCESS_TOKEN_TTL", time.Hour),
		CORSOrigins:    splitList(envutil.String("CORS_ALLOW_ORIGINS", "")),
		RedisAddr:      envutil.String("REDIS_ADDR", ""),
		RedisChannel:   envutil.String("REDIS_CHANNEL", "profiling.events"),
		EventsEnabled:  envutil.Bool("PROFILING_EVENTS_ENABLED", true),
		MetricsAddr:    envutil.String("METRICS_ADDR", ""),
	}
	cfg.Otel = observability.OtelConfig{
		Enabled:     envutil.Bool("OTEL_ENABLED", false),
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		Version:     cfg.Version,
		Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		Headers:     observability.ParseOTLPHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "")),
		Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
		SampleRatio: envutil.Float("OTEL_SAMPLER_RATIO", 0.1),
	}
	if cfg.JWTSecretKey == "defaultsecret" {
		log.Warn("JWT_SECRET_KEY not set; using development default")
	}
	return cfg
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
