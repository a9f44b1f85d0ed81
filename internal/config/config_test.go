package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("DB_URL", "")
	t.Setenv("EA_CLUB_IDS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DBURL != "" {
		t.Fatalf("expected empty DB_URL to select the memory backend, got %q", cfg.DBURL)
	}
	if cfg.StatsQueueMaxRetries != 3 || cfg.StatsQueueBatchSize != 10 || cfg.StatsQueueMaxBatchSize != 50 {
		t.Fatalf("unexpected queue defaults: %+v", cfg)
	}
	if cfg.StatsQueueWorkers != 1 || cfg.StatsQueueUpsert || cfg.StatsQueueProcessInterval != 0 || cfg.StatsQueueClaimLease != 10*time.Minute {
		t.Fatalf("unexpected queue worker defaults: %+v", cfg)
	}
	if cfg.EAPlatform != "common-gen5" || cfg.EATimeout != 15*time.Second {
		t.Fatalf("unexpected EA defaults: platform=%q timeout=%s", cfg.EAPlatform, cfg.EATimeout)
	}
	if len(cfg.EAClubIDs) != 0 {
		t.Fatalf("expected no default club ids, got %v", cfg.EAClubIDs)
	}
	if cfg.AuthCacheTTL != 30*time.Second {
		t.Fatalf("unexpected auth cache ttl: %s", cfg.AuthCacheTTL)
	}
	if !cfg.CacheEnabled || cfg.CacheTTL != 60*time.Second {
		t.Fatalf("unexpected cache defaults: enabled=%v ttl=%s", cfg.CacheEnabled, cfg.CacheTTL)
	}
	if cfg.LogLevel.String() != "info" {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_SwaggerDefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("dev enables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
	})
}

func TestLoad_EAClubIDs(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("csv parsing", func(t *testing.T) {
		t.Setenv("EA_CLUB_IDS", " 3383, 4388,,490 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if diff := cmp.Diff([]int64{3383, 4388, 490}, cfg.EAClubIDs); diff != "" {
			t.Fatalf("club ids mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("non numeric id", func(t *testing.T) {
		t.Setenv("EA_CLUB_IDS", "3383,huskies")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for non-numeric club id")
		}
	})

	t.Run("zero id", func(t *testing.T) {
		t.Setenv("EA_CLUB_IDS", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for zero club id")
		}
	})
}

func TestLoad_StatsQueueValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("batch size above max", func(t *testing.T) {
		t.Setenv("STATS_QUEUE_BATCH_SIZE", "60")
		t.Setenv("STATS_QUEUE_MAX_BATCH_SIZE", "50")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when batch size exceeds max")
		}
	})

	t.Run("zero workers", func(t *testing.T) {
		t.Setenv("STATS_QUEUE_WORKERS", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for zero workers")
		}
	})

	t.Run("process interval", func(t *testing.T) {
		t.Setenv("STATS_QUEUE_PROCESS_INTERVAL", "45s")
		t.Setenv("STATS_QUEUE_WORKERS", "4")
		t.Setenv("STATS_QUEUE_UPSERT", "true")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StatsQueueProcessInterval != 45*time.Second || cfg.StatsQueueWorkers != 4 || !cfg.StatsQueueUpsert {
			t.Fatalf("unexpected queue config: %+v", cfg)
		}
	})
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_SERVICE_NAME", "hockey-league-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "hockey-league-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_DiagnosticsDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("DIAGNOSTICS_ENABLED", "true")
	t.Setenv("DIAGNOSTICS_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DiagnosticsAddr != ":6060" {
		t.Fatalf("expected default diagnostics addr :6060, got %q", cfg.DiagnosticsAddr)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if diff := cmp.Diff([]string{"*"}, cfg.CORSAllowedOrigins); diff != "" {
			t.Fatalf("unexpected default CORS origins (-want +got):\n%s", diff)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://league.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		want := []string{"https://league.example.com", "http://localhost:5173"}
		if diff := cmp.Diff(want, cfg.CORSAllowedOrigins); diff != "" {
			t.Fatalf("unexpected CORS origins (-want +got):\n%s", diff)
		}
	})

	t.Run("only separators", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " , ")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for empty CORS origins")
		}
	})
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cases := map[string]string{
		"DB_MAX_OPEN_CONNS":            "0",
		"CACHE_ENABLED":                "maybe",
		"CACHE_TTL":                    "bad",
		"ANUBIS_TIMEOUT":               "0s",
		"ANUBIS_CIRCUIT_FAILURE_COUNT": "0",
		"EA_MAX_RETRIES":               "-1",
		"EA_TIMEOUT":                   "soon",
		"STATS_QUEUE_CLAIM_LEASE":      "0s",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}
