package main

import (
	"fmt"

	"github.com/jonathan/sitemaker/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort   int
	serveAPIKey string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the normalize, generate, export and
extraction endpoints. Extraction is enabled only when a Gemini API key is set.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from PORT or 8080)")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	port := cfg.Port
	if cmd.Flags().Changed("port") {
		port = servePort
	}
	apiKey := cfg.APIKey
	if serveAPIKey != "" {
		apiKey = serveAPIKey
	}
	if apiKey == "" {
		logger.Warn("GEMINI_API_KEY is not set: extraction endpoints are disabled")
	}

	srv, err := server.New(server.Config{
		Port:               port,
		Logger:             logger,
		APIKey:             apiKey,
		Model:              cfg.Model,
		UseBrowser:         cfg.UseBrowser,
		MaxSkills:          cfg.MaxSkills,
		CanonicalizeSkills: cfg.CanonicalizeSkills,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
