package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "SHUTDOWN_TIMEOUT", "REPORT_TIMEZONE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.DBDriver != "postgres" {
		t.Errorf("expected postgres driver, got %s", cfg.DBDriver)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected 10s shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
	if cfg.ReportTimezone != time.UTC {
		t.Errorf("expected UTC, got %s", cfg.ReportTimezone)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/ledger.db")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("REPORT_TIMEZONE", "Australia/Sydney")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "9090" || cfg.DBDriver != "sqlite" || cfg.SQLitePath != "/tmp/ledger.db" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Errorf("expected 3s, got %s", cfg.ShutdownTimeout)
	}
	if cfg.ReportTimezone.String() != "Australia/Sydney" {
		t.Errorf("expected Australia/Sydney, got %s", cfg.ReportTimezone)
	}
	if Get() != cfg {
		t.Error("Get should return the last loaded config")
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")
	t.Setenv("REPORT_TIMEZONE", "Mars/Olympus")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected fallback 10s, got %s", cfg.ShutdownTimeout)
	}
	if cfg.ReportTimezone != time.UTC {
		t.Errorf("expected fallback UTC, got %s", cfg.ReportTimezone)
	}
}
