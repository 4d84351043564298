// Package config loads the process configuration from the environment,
// optionally seeded from a .env file next to the working directory.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// DBDriver selects the Persistence Gateway engine: "sqlite3" for the
	// embedded desktop database or "pgx" for a shared postgres instance.
	DBDriver string `env:"CLINIC_DB_DRIVER" envDefault:"sqlite3"`
	DBDSN    string `env:"CLINIC_DB_DSN" envDefault:"clinic.db"`

	// TokenSecret signs resume tokens. Required.
	TokenSecret string `env:"CLINIC_TOKEN_SECRET"`

	// SessionTimeout bounds how long an idle session stays active.
	SessionTimeout time.Duration `env:"CLINIC_SESSION_TIMEOUT" envDefault:"1h"`

	// MaxLoginAttempts failed logins per email per minute before throttling.
	MaxLoginAttempts int `env:"CLINIC_MAX_LOGIN_ATTEMPTS" envDefault:"3"`

	// AppointmentDuration is the interval an appointment occupies when
	// checking clinician availability.
	AppointmentDuration time.Duration `env:"CLINIC_APPOINTMENT_DURATION" envDefault:"60m"`

	// Clinic opening hours, "HH:MM" local time.
	OpeningTime string `env:"CLINIC_OPENING_TIME" envDefault:"08:00"`
	ClosingTime string `env:"CLINIC_CLOSING_TIME" envDefault:"20:00"`

	LogLevel string `env:"CLINIC_LOG_LEVEL" envDefault:"info"`
}

// Load reads .env (if present) and the environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.TokenSecret == "" {
		return fmt.Errorf("CLINIC_TOKEN_SECRET is required")
	}
	if c.DBDriver != "sqlite3" && c.DBDriver != "pgx" {
		return fmt.Errorf("CLINIC_DB_DRIVER must be sqlite3 or pgx, got %q", c.DBDriver)
	}
	if c.SessionTimeout <= 0 {
		return fmt.Errorf("CLINIC_SESSION_TIMEOUT must be positive")
	}
	if c.MaxLoginAttempts <= 0 {
		return fmt.Errorf("CLINIC_MAX_LOGIN_ATTEMPTS must be positive")
	}
	if c.AppointmentDuration <= 0 {
		return fmt.Errorf("CLINIC_APPOINTMENT_DURATION must be positive")
	}
	for _, hhmm := range []string{c.OpeningTime, c.ClosingTime} {
		if _, err := time.Parse("15:04", hhmm); err != nil {
			return fmt.Errorf("clinic hours must be HH:MM, got %q", hhmm)
		}
	}
	return nil
}
