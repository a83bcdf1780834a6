package app

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/yungbote/shiftplan-backend/internal/data/aggregates"
	"github.com/yungbote/shiftplan-backend/internal/data/db"
	"github.com/yungbote/shiftplan-backend/internal/observability"
	"github.com/yungbote/shiftplan-backend/internal/platform/envutil"
	"github.com/yungbote/shiftplan-backend/internal/platform/logger"
)

type Config struct {
	Port            string
	LogMode         string
	LogRedaction    bool
	LogHashSalt     string
	Environment     string
	ShutdownTimeout time.Duration

	JWTSecretKey   string
	AccessTokenTTL time.Duration

	DB db.Config

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DayLockTTL    time.Duration
	DayLockWait   time.Duration
	TxAttempts    int

	MetricsEnabled bool
	Otel           observability.OtelConfig

	CORSOrigins []string
}

// LoadDotEnv reads .env into the process environment when the file exists.
// Variables already set win.
func LoadDotEnv() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	_ = godotenv.Load()
}

func LoadConfig(log *logger.Logger) Config {
	environment := envutil.String("ENVIRONMENT", "development", log)
	return Config{
		Port:            envutil.String("PORT", "8080", log),
		LogMode:         envutil.String("LOG_MODE", "development", log),
		LogRedaction:    envutil.Bool("LOG_REDACTION_ENABLED", true, log),
		LogHashSalt:     envutil.String("LOG_HASH_SALT", "", log),
		Environment:     environment,
		ShutdownTimeout: envutil.Duration("SHUTDOWN_TIMEOUT", 15*time.Second, log),

		JWTSecretKey:   envutil.String("JWT_SECRET_KEY", "defaultsecret", log),
		AccessTokenTTL: envutil.Duration("ACCESS_TOKEN_TTL", time.Hour, log),

		DB: db.Config{
			Driver:     envutil.String("DB_DRIVER", "postgres", log),
			SQLitePath: envutil.String("SQLITE_PATH", "shiftplan.db", log),
			Postgres: db.PostgresConfig{
				Host:     envutil.String("POSTGRES_HOST", "localhost", log),
				Port:     envutil.String("POSTGRES_PORT", "5432", log),
				User:     envutil.String("POSTGRES_USER", "postgres", log),
				Password: envutil.String("POSTGRES_PASSWORD", "", log),
				Name:     envutil.String("POSTGRES_NAME", "shiftplan", log),
				SSLMode:  envutil.String("POSTGRES_SSLMODE", "disable", log),
			},
		},

		RedisAddr:     envutil.String("REDIS_ADDR", "", log),
		RedisPassword: envutil.String("REDIS_PASSWORD", "", log),
		RedisDB:       envutil.Int("REDIS_DB", 0, log),
		DayLockTTL:    envutil.Duration("DAY_LOCK_TTL", 10*time.Second, log),
		DayLockWait:   envutil.Duration("DAY_LOCK_WAIT", 2*time.Second, log),
		TxAttempts:    envutil.Int("TX_ATTEMPTS", aggregates.DefaultTxAttempts, log),

		MetricsEnabled: envutil.Bool("METRICS_ENABLED", false, log),
		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false, log),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "shiftplan", log),
			Environment: environment,
			Version:     envutil.String("SERVICE_VERSION", "", log),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", "", log),
			Headers:     observability.ParseHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "", log)),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", true, log),
			SampleRatio: envutil.Float("OTEL_SAMPLE_RATIO", 1, log),
		},

		CORSOrigins: envutil.List("CORS_ORIGINS", nil, log),
	}
}
