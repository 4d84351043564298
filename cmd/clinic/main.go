package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"practice-manager/internal/config"
	"practice-manager/internal/controller"
	"practice-manager/internal/logger"
	"practice-manager/internal/schedule"
	"practice-manager/internal/session"
	"practice-manager/internal/store"
	"practice-manager/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "clinic:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New("clinic", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info().Str("driver", cfg.DBDriver).Msg("database opened")

	st := store.New(db, cfg.DBDriver, log.With("subsystem", "store"))
	if err := st.Migrate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	sessions := session.NewManager(st, log.With("subsystem", "session"), session.Config{
		TokenSecret:      cfg.TokenSecret,
		Timeout:          cfg.SessionTimeout,
		MaxLoginAttempts: cfg.MaxLoginAttempts,
	})
	guard := schedule.NewGuard(st, log.With("subsystem", "schedule"), cfg.AppointmentDuration)
	controllers := controller.New(st, sessions, guard, log.With("subsystem", "controller"))

	if err := tui.Run(ctx, sessions, controllers); err != nil {
		return err
	}
	log.Info().Msg("shutting down")
	return nil
}
