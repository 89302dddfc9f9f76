package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/lembrete/internal/config"
	"github.com/sandeepkv93/lembrete/internal/logger"
	"github.com/sandeepkv93/lembrete/internal/reminders"
	"github.com/sandeepkv93/lembrete/internal/storage"
)

// app holds what every subcommand needs once config is loaded and the
// database is migrated.
type app struct {
	cfg    *config.Config
	logger *log.Logger
	repo   *storage.SQLiteRepository
	svc    *reminders.Service
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openApp logs to logOut, or to stderr when logOut is nil.
func openApp(ctx context.Context, cfg *config.Config, prefix string, logOut io.Writer) (*app, error) {
	var l *log.Logger
	if logOut != nil {
		l = logger.NewWithWriter(logOut, prefix, cfg.Log.Level, cfg.Log.Format)
	} else {
		l = logger.New(prefix, cfg.Log.Level, cfg.Log.Format)
	}

	repo, err := storage.OpenSQLite(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.Database.Path, err)
	}
	if err := storage.MigrateUp(ctx, repo.DB()); err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	l.Debug("database ready", "path", cfg.Database.Path)

	svc := reminders.NewService(repo,
		reminders.WithLogger(l),
		reminders.WithHistoryLimit(cfg.Suggest.History),
	)
	return &app{cfg: cfg, logger: l, repo: repo, svc: svc}, nil
}

func (a *app) Close() {
	if err := a.repo.Close(); err != nil {
		a.logger.Warn("close database", "err", err)
	}
}
