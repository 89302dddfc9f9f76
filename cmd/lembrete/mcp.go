package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/lembrete/internal/mcptools"
)

func mcpCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve reminder tools over MCP on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			// stdout carries the protocol, so logs stay on stderr.
			a, err := openApp(context.Background(), cfg, "mcp", nil)
			if err != nil {
				return err
			}
			defer a.Close()

			a.logger.Info("mcp server starting on stdio")
			return mcptools.NewServer(a.svc, a.logger).ServeStdio()
		},
	}
}
