package main

import (
	"fmt"
	"path/filepath"

	"github.com/jonathan/sitemaker/internal/profile"
	"github.com/jonathan/sitemaker/internal/rendering"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render a profile into a self-contained portfolio HTML page",
	Long: `Render a normalized (or raw) profile with the configured site settings.
With --out pointing at a directory the page is saved as
<name>_portfolio.html inside it; otherwise --out is the file path.`,
	RunE: runGenerate,
}

var (
	generateInput    string
	generateOutput   string
	generatePreset   string
	generateSettings string
)

func init() {
	generateCmd.Flags().StringVarP(&generateInput, "in", "i", "", "Path to profile JSON/YAML, or - for stdin")
	generateCmd.Flags().StringVarP(&generateOutput, "out", "o", "", "Output file or directory (default stdout)")
	generateCmd.Flags().StringVar(&generatePreset, "preset", "", "Settings preset (see 'sitemaker presets')")
	generateCmd.Flags().StringVar(&generateSettings, "settings", "", "Path to site settings JSON/YAML")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	p, err := readProfile(cmd, generateInput, profile.Options{})
	if err != nil {
		return err
	}
	st, err := siteSettings(generateSettings, generatePreset)
	if err != nil {
		return err
	}

	html, err := rendering.GenerateSite(p, st)
	if err != nil {
		return fmt.Errorf("could not generate file: %w", err)
	}

	out := outputPath(generateOutput, rendering.DownloadFilename(p.Name))
	if err := writeOutput(cmd, out, []byte(html)); err != nil {
		return err
	}
	if out != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Site written to %s\n", out)
	}
	return nil
}

// outputPath joins name onto out when out is an existing directory or ends
// in a separator.
func outputPath(out, name string) string {
	if out == "" || out == "-" {
		return out
	}
	if isDir(out) {
		return filepath.Join(out, name)
	}
	return out
}
