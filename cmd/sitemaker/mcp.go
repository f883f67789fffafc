package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/jonathan/sitemaker/internal/server"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the sitemaker tools over MCP (stdio)",
	Long: `Run a Model Context Protocol server on stdin/stdout exposing the
normalize_profile, generate_site, list_presets and apply_preset tools.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("MCP server started (stdio transport)")
	err := server.ServeMCP(ctx, logger, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
