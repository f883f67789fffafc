package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/sitemaker/internal/ingestion"
	"github.com/jonathan/sitemaker/internal/llm"
	"github.com/jonathan/sitemaker/internal/profile"
	"github.com/jonathan/sitemaker/internal/settings"
	"github.com/jonathan/sitemaker/internal/types"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// readProfile loads and normalizes a profile from a JSON or YAML file, or
// from stdin when path is "-".
func readProfile(cmd *cobra.Command, path string, opts profile.Options) (*types.ProfileData, error) {
	if path == "" {
		return nil, fmt.Errorf("--in is required")
	}

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse profile YAML: %w", err)
		}
		p, err := profile.NormalizeValue(raw, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse profile: %w", err)
		}
		return p, nil
	default:
		p, err := profile.NormalizeJSON(data, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse profile: %w", err)
		}
		return p, nil
	}
}

// siteSettings resolves the settings file and preset from the config, with
// flag values taking precedence. It returns nil when neither is set.
func siteSettings(settingsFile, preset string) (*types.SiteSettings, error) {
	if settingsFile == "" {
		settingsFile = cfg.SettingsFile
	}
	if preset == "" {
		preset = cfg.Preset
	}

	var base *types.SiteSettings
	if settingsFile != "" {
		loaded, err := settings.Load(settingsFile)
		if err != nil {
			return nil, err
		}
		base = &loaded
	}
	if base == nil && preset == "" {
		return nil, nil
	}

	resolved, err := settings.Resolve(base, preset)
	if err != nil {
		return nil, err
	}
	return &resolved, nil
}

// normalizeOptions applies flag overrides to the configured skill policy.
func normalizeOptions(cmd *cobra.Command, maxSkills int, canonicalize bool) profile.Options {
	opts := profile.Options{MaxSkills: cfg.MaxSkills, CanonicalizeSkills: cfg.CanonicalizeSkills}
	if cmd.Flags().Changed("max-skills") {
		opts.MaxSkills = maxSkills
	}
	if cmd.Flags().Changed("canonicalize") {
		opts.CanonicalizeSkills = canonicalize
	}
	return opts
}

// newIngester builds a model-backed ingester. The returned close function
// releases the model client.
func newIngester(ctx context.Context, apiKey string, opts profile.Options, useBrowser bool) (*ingestion.Ingester, func(), error) {
	if apiKey == "" {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		return nil, nil, fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig().WithAllModels(cfg.Model), apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.WithError(err).Warn("failed to close LLM client")
		}
	}

	ing := ingestion.New(llm.NewProfileExtractor(client, opts.MaxSkills), logger, ingestion.Options{
		UseBrowser: useBrowser || cfg.UseBrowser,
		Normalize:  opts,
	})
	return ing, closeFn, nil
}

// writeOutput writes data to path, or to the command's stdout when path is
// empty or "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func isDir(path string) bool {
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return true
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
