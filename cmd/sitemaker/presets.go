package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/jonathan/sitemaker/internal/observability"
	"github.com/jonathan/sitemaker/internal/settings"
	"github.com/jonathan/sitemaker/internal/types"
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets [name]",
	Short: "List site setting presets, or show one applied to the defaults",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPresets,
}

var presetsJSON bool

func init() {
	presetsCmd.Flags().BoolVar(&presetsJSON, "json", false, "Print JSON instead of a table")
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		st, err := settings.ApplyPreset(types.DefaultSiteSettings(), args[0])
		if err != nil {
			return err
		}
		if presetsJSON {
			return printJSON(cmd, st)
		}
		observability.NewPrinter(out).PrintSettings(st)
		return nil
	}

	presets := settings.Presets()
	if presetsJSON {
		return printJSON(cmd, presets)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTHEME\tDESCRIPTION")
	for _, p := range presets {
		theme := p.Settings.Theme
		if theme == "" {
			theme = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, theme, p.Description)
	}
	return tw.Flush()
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return writeOutput(cmd, "", append(data, '\n'))
}
