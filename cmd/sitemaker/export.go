package main

import (
	"fmt"

	"github.com/jonathan/sitemaker/internal/export"
	"github.com/jonathan/sitemaker/internal/profile"
	"github.com/jonathan/sitemaker/internal/types"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a profile's site as Markdown or PDF",
	Long: `Render the portfolio and convert it to another format:
  markdown     the page as Markdown
  pdf          a text PDF laid out from the Markdown
  pdf-browser  the page printed by headless Chrome (requires Chrome)`,
	RunE: runExport,
}

var (
	exportInput    string
	exportOutput   string
	exportFormat   string
	exportPreset   string
	exportSettings string
)

func init() {
	exportCmd.Flags().StringVarP(&exportInput, "in", "i", "", "Path to profile JSON/YAML, or - for stdin")
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "", "Output file or directory (default current directory)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", types.FormatMarkdown, "Export format: markdown, pdf or pdf-browser")
	exportCmd.Flags().StringVar(&exportPreset, "preset", "", "Settings preset (see 'sitemaker presets')")
	exportCmd.Flags().StringVar(&exportSettings, "settings", "", "Path to site settings JSON/YAML")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	p, err := readProfile(cmd, exportInput, profile.Options{})
	if err != nil {
		return err
	}
	st, err := siteSettings(exportSettings, exportPreset)
	if err != nil {
		return err
	}

	file, err := export.New(logger).Export(cmd.Context(), p, st, exportFormat)
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	out := exportOutput
	if out == "" {
		out = file.Name
	} else {
		out = outputPath(out, file.Name)
	}
	if err := writeOutput(cmd, out, file.Data); err != nil {
		return err
	}
	if out != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %s to %s\n", exportFormat, out)
	}
	return nil
}
