// Package main provides the sitemaker command line: profile extraction,
// normalization, site generation and the HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/jonathan/sitemaker/internal/config"
	"github.com/jonathan/sitemaker/internal/observability"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	logFormat  string
	verbose    bool

	// cfg and logger are set by loadRuntime before any command runs.
	cfg    config.Config
	logger *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:               "sitemaker",
	Short:             "Turn resumes and profiles into portfolio sites",
	Long:              "sitemaker extracts a profile from a resume or profile URL, normalizes it, and renders a self-contained single-page portfolio site.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadRuntime,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (text or json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed progress")
}

// loadRuntime layers the config file, environment and flags, and builds the
// logger. Logs always go to stderr so stdout stays usable for output.
func loadRuntime(cmd *cobra.Command, _ []string) error {
	resolved, err := config.Resolve(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		resolved.LogLevel = logLevel
	}
	if flags.Changed("log-format") {
		resolved.LogFormat = logFormat
	}
	if flags.Changed("verbose") {
		resolved.Verbose = verbose
	}
	if resolved.Verbose && !flags.Changed("log-level") {
		resolved.LogLevel = "debug"
	}
	if err := resolved.Validate(); err != nil {
		return err
	}

	l, err := observability.NewLogger(resolved.LogLevel, resolved.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	cfg = resolved
	logger = l
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
