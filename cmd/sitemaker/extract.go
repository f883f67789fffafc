package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/sitemaker/internal/ingestion"
	"github.com/jonathan/sitemaker/internal/observability"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a profile from a resume, pasted text or a profile URL",
	Long: `Extract a structured profile with the language model. Provide exactly one
of --file (PDF, DOCX, HTML, text or image), --text or --url. With --out the
profile and its extraction metadata are written to profile.json and
profile.meta.json in that directory; otherwise the profile JSON is printed.`,
	RunE: runExtract,
}

var (
	extractFile         string
	extractText         string
	extractURL          string
	extractOutDir       string
	extractAPIKey       string
	extractUseBrowser   bool
	extractMaxSkills    int
	extractCanonicalize bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractFile, "file", "f", "", "Path to a resume file")
	extractCmd.Flags().StringVar(&extractText, "text", "", "Resume text")
	extractCmd.Flags().StringVar(&extractURL, "url", "", "Profile page URL (LinkedIn, GitHub or a personal site)")
	extractCmd.Flags().StringVarP(&extractOutDir, "out", "o", "", "Output directory for profile.json and profile.meta.json")
	extractCmd.Flags().StringVar(&extractAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	extractCmd.Flags().BoolVar(&extractUseBrowser, "use-browser", false, "Render thin pages in headless Chrome")
	extractCmd.Flags().IntVar(&extractMaxSkills, "max-skills", 0, "Keep at most this many skills (0 keeps all)")
	extractCmd.Flags().BoolVar(&extractCanonicalize, "canonicalize", false, "Merge skill spelling variants")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	src := ingestion.Source{Text: extractText, URL: extractURL}
	if extractFile != "" {
		fileSrc, err := ingestion.ReadFile(extractFile)
		if err != nil {
			return err
		}
		src.Data = fileSrc.Data
		src.FileName = fileSrc.FileName
	}
	if src.Data == nil && src.Text == "" && src.URL == "" {
		return fmt.Errorf("one of --file, --text or --url is required")
	}

	opts := normalizeOptions(cmd, extractMaxSkills, extractCanonicalize)
	ctx := cmd.Context()
	ing, closeClient, err := newIngester(ctx, extractAPIKey, opts, extractUseBrowser)
	if err != nil {
		return err
	}
	defer closeClient()

	result, err := ing.Ingest(ctx, src, func(status string) {
		logger.WithField("status", status).Debug("extraction progress")
	})
	if err != nil {
		return fmt.Errorf("failed to extract profile: %w", err)
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintMetadata(result.Metadata)
		printer.PrintProfile(result.Profile)
	}

	if extractOutDir != "" {
		if err := ingestion.WriteOutput(extractOutDir, result); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Profile written to %s\n", extractOutDir)
		return nil
	}

	data, err := json.MarshalIndent(result.Profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	return writeOutput(cmd, "", append(data, '\n'))
}
