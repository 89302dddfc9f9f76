package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/lembrete/internal/web"
)

func serveCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI and JSON API",
		Long: `Start the HTTP server.

Examples:
  lembrete serve
  lembrete serve --addr :9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			gin.SetMode(ginMode(cfg.Log.Level))

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := openApp(ctx, cfg, "web", nil)
			if err != nil {
				return err
			}
			defer a.Close()

			srv, err := web.NewServer(a.svc, a.logger)
			if err != nil {
				return fmt.Errorf("create web server: %w", err)
			}
			return srv.Run(ctx, cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

// ginMode keeps gin's route dump and warnings for debug logging only; requests
// are logged by the server's own middleware.
func ginMode(level string) string {
	if level == "debug" {
		return gin.DebugMode
	}
	return gin.ReleaseMode
}
