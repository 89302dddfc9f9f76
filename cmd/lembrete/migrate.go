package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/lembrete/internal/logger"
	"github.com/sandeepkv93/lembrete/internal/storage"
)

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			l := logger.New("migrate", cfg.Log.Level, cfg.Log.Format)

			repo, err := storage.OpenSQLite(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("open database %s: %w", cfg.Database.Path, err)
			}
			defer repo.Close()

			ctx := context.Background()
			switch args[0] {
			case "up":
				err = storage.MigrateUp(ctx, repo.DB())
			case "down":
				err = storage.MigrateDown(ctx, repo.DB())
			}
			if err != nil {
				return fmt.Errorf("migrate %s: %w", args[0], err)
			}
			l.Info("migrations applied", "direction", args[0], "path", cfg.Database.Path)
			return nil
		},
	}
}
