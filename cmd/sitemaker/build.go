package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jonathan/sitemaker/internal/pipeline"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build [inputs...]",
	Short: "Build sites for many profiles or resumes concurrently",
	Long: `Build every input into its own directory under --out. Profile JSON and YAML
files are rendered directly; other files (PDF, DOCX, text, images) are
extracted with the language model first. A manifest.json summarizing the
batch is written to --out.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBuild,
}

var (
	buildOutDir       string
	buildFormats      []string
	buildConcurrency  int
	buildPreset       string
	buildSettings     string
	buildAPIKey       string
	buildMaxSkills    int
	buildCanonicalize bool
)

func init() {
	buildCmd.Flags().StringVarP(&buildOutDir, "out", "o", "", "Output directory (default from config or ./out)")
	buildCmd.Flags().StringSliceVarP(&buildFormats, "format", "f", []string{"html"}, "Formats to write: html, markdown, pdf, pdf-browser")
	buildCmd.Flags().IntVarP(&buildConcurrency, "concurrency", "c", 0, "Builds to run at once (default from config)")
	buildCmd.Flags().StringVar(&buildPreset, "preset", "", "Settings preset (see 'sitemaker presets')")
	buildCmd.Flags().StringVar(&buildSettings, "settings", "", "Path to site settings JSON/YAML")
	buildCmd.Flags().StringVar(&buildAPIKey, "api-key", "", "Gemini API key for resume inputs")
	buildCmd.Flags().IntVar(&buildMaxSkills, "max-skills", 0, "Keep at most this many skills (0 keeps all)")
	buildCmd.Flags().BoolVar(&buildCanonicalize, "canonicalize", false, "Merge skill spelling variants")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	st, err := siteSettings(buildSettings, buildPreset)
	if err != nil {
		return err
	}

	opts := pipeline.Options{
		OutputDir:   cfg.OutputDir,
		Formats:     buildFormats,
		Settings:    st,
		Concurrency: cfg.Concurrency,
		Normalize:   normalizeOptions(cmd, buildMaxSkills, buildCanonicalize),
		Log:         logger,
		OnProgress: func(e pipeline.ProgressEvent) {
			logger.WithField("input", e.Input).WithField("step", e.Step).Debug(e.Message)
		},
	}
	if buildOutDir != "" {
		opts.OutputDir = buildOutDir
	}
	if cmd.Flags().Changed("concurrency") {
		opts.Concurrency = buildConcurrency
	}

	if needsExtractor(args) {
		ing, closeClient, err := newIngester(cmd.Context(), buildAPIKey, opts.Normalize, false)
		if err != nil {
			return err
		}
		defer closeClient()
		opts.Extractor = ing
	}

	results, err := pipeline.RunBatch(cmd.Context(), args, opts)
	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "FAIL %s: %s\n", r.Input, r.Error)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok   %s -> %s\n", r.Input, strings.Join(r.Files, ", "))
	}
	return err
}

// needsExtractor reports whether any input is a resume rather than a
// profile file.
func needsExtractor(inputs []string) bool {
	for _, in := range inputs {
		switch strings.ToLower(filepath.Ext(in)) {
		case ".json", ".yaml", ".yml":
		default:
			return true
		}
	}
	return false
}
