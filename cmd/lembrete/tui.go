package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/lembrete/internal/scheduler"
	"github.com/sandeepkv93/lembrete/internal/update"
)

func tuiCmd(configPath *string) *cobra.Command {
	var desktop bool

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("desktop") {
				cfg.Notify.Desktop = desktop
			}

			// The terminal is owned by bubbletea, so logs go to a file.
			logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("open log file %s: %w", cfg.Log.File, err)
			}
			defer logFile.Close()

			a, err := openApp(context.Background(), cfg, "tui", logFile)
			if err != nil {
				return err
			}
			defer a.Close()

			engine := scheduler.NewEngine(cfg.Scheduler.Buffer)
			engine.Start()
			defer engine.Stop()

			model := update.NewModel(a.svc, update.Options{
				Scheduler:   engine,
				TriggerHour: cfg.Scheduler.Hour,
				Desktop:     cfg.Notify.Desktop,
				Notifier:    update.ExecDesktopNotifier{},
				Logger:      a.logger,
			})
			if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
				return fmt.Errorf("lembrete tui failed: %w", err)
			}
			if dropped := engine.Dropped(); dropped > 0 {
				a.logger.Warn("due events dropped", "count", dropped)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&desktop, "desktop", false, "send due reminders as desktop notifications (overrides notify.desktop)")
	return cmd
}
