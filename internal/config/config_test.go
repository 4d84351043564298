package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("CLINIC_TOKEN_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBDriver != "sqlite3" {
		t.Fatalf("driver = %q, want sqlite3", cfg.DBDriver)
	}
	if cfg.SessionTimeout != time.Hour {
		t.Fatalf("session timeout = %v, want 1h", cfg.SessionTimeout)
	}
	if cfg.MaxLoginAttempts != 3 {
		t.Fatalf("max login attempts = %d, want 3", cfg.MaxLoginAttempts)
	}
	if cfg.AppointmentDuration != 60*time.Minute {
		t.Fatalf("appointment duration = %v, want 60m", cfg.AppointmentDuration)
	}
}

func TestLoadRejectsMissingSecret(t *testing.T) {
	t.Setenv("CLINIC_TOKEN_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("missing token secret must be an error")
	}
}

func TestLoadRejectsBadDriver(t *testing.T) {
	setRequired(t)
	t.Setenv("CLINIC_DB_DRIVER", "oracle")
	if _, err := Load(); err == nil {
		t.Fatal("unknown driver must be an error")
	}
}

func TestLoadRejectsBadHours(t *testing.T) {
	setRequired(t)
	t.Setenv("CLINIC_OPENING_TIME", "8 o'clock")
	if _, err := Load(); err == nil {
		t.Fatal("malformed opening time must be an error")
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("CLINIC_DB_DRIVER", "pgx")
	t.Setenv("CLINIC_DB_DSN", "postgres://localhost/clinic")
	t.Setenv("CLINIC_SESSION_TIMEOUT", "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBDriver != "pgx" || cfg.DBDSN != "postgres://localhost/clinic" {
		t.Fatalf("db settings not applied: %+v", cfg)
	}
	if cfg.SessionTimeout != 30*time.Minute {
		t.Fatalf("session timeout = %v, want 30m", cfg.SessionTimeout)
	}
}
