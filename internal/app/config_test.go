package app

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "ACCESS_TOKEN_TTL", "REDIS_ADDR", "METRICS_ENABLED", "CORS_ORIGINS", "TX_ATTEMPTS"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig(nil)
	if cfg.Port != "8080" || cfg.DB.Driver != "postgres" {
		t.Fatalf("unexpected defaults: port=%q driver=%q", cfg.Port, cfg.DB.Driver)
	}
	if cfg.AccessTokenTTL != time.Hour || cfg.DayLockTTL != 10*time.Second {
		t.Fatalf("unexpected ttls: access=%s lock=%s", cfg.AccessTokenTTL, cfg.DayLockTTL)
	}
	if cfg.TxAttempts != 3 {
		t.Fatalf("tx attempts=%d", cfg.TxAttempts)
	}
	if cfg.RedisAddr != "" || cfg.MetricsEnabled || cfg.CORSOrigins != nil {
		t.Fatalf("optional integrations should default off: %+v", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("ACCESS_TOKEN_TTL", "900")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("OTEL_SAMPLE_RATIO", "0.5")
	cfg := LoadConfig(nil)
	if cfg.DB.Driver != "sqlite" || cfg.AccessTokenTTL != 15*time.Minute {
		t.Fatalf("driver=%q ttl=%s", cfg.DB.Driver, cfg.AccessTokenTTL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.Otel.SampleRatio != 0.5 {
		t.Fatalf("origins=%v ratio=%v", cfg.CORSOrigins, cfg.Otel.SampleRatio)
	}
}
