package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/sitemaker/internal/observability"
	"github.com/spf13/cobra"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Normalize raw profile JSON or YAML into the canonical shape",
	Long: `Read a loosely structured profile (for example a saved model response) and
write the normalized profile JSON. Use --in - to read from stdin.`,
	RunE: runNormalize,
}

var (
	normalizeInput        string
	normalizeOutput       string
	normalizeMaxSkills    int
	normalizeCanonicalize bool
)

func init() {
	normalizeCmd.Flags().StringVarP(&normalizeInput, "in", "i", "", "Path to raw profile JSON/YAML, or - for stdin")
	normalizeCmd.Flags().StringVarP(&normalizeOutput, "out", "o", "", "Path to output JSON file (default stdout)")
	normalizeCmd.Flags().IntVar(&normalizeMaxSkills, "max-skills", 0, "Keep at most this many skills (0 keeps all)")
	normalizeCmd.Flags().BoolVar(&normalizeCanonicalize, "canonicalize", false, "Merge skill spelling variants")

	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, _ []string) error {
	p, err := readProfile(cmd, normalizeInput, normalizeOptions(cmd, normalizeMaxSkills, normalizeCanonicalize))
	if err != nil {
		return err
	}
	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintProfile(p)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	return writeOutput(cmd, normalizeOutput, append(data, '\n'))
}
