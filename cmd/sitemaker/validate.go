package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/sitemaker/internal/observability"
	"github.com/jonathan/sitemaker/internal/profile"
	"github.com/jonathan/sitemaker/internal/schemas"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a profile or site settings file against its JSON schema",
	Long: `Check a profile (--in) and/or site settings (--settings) against the
embedded JSON schemas. With --normalize the profile is normalized first,
which shows whether the normalizer can repair it.`,
	RunE: runValidate,
}

var (
	validateInput     string
	validateSettings  string
	validateNormalize bool
)

// errInvalid is returned when validation finds problems; details are printed.
var errInvalid = errors.New("validation failed")

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to profile JSON/YAML")
	validateCmd.Flags().StringVar(&validateSettings, "settings", "", "Path to site settings JSON/YAML")
	validateCmd.Flags().BoolVar(&validateNormalize, "normalize", false, "Normalize the profile before validating")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if validateInput == "" && validateSettings == "" {
		return fmt.Errorf("one of --in or --settings is required")
	}
	printer := observability.NewPrinter(cmd.OutOrStdout())
	invalid := false

	if validateInput != "" {
		var (
			data []byte
			err  error
		)
		if validateNormalize {
			p, perr := readProfile(cmd, validateInput, profile.Options{})
			if perr != nil {
				return perr
			}
			data, err = json.Marshal(p)
		} else {
			data, err = readJSONDocument(validateInput)
		}
		if err != nil {
			return err
		}
		bad, err := report(printer, schemas.ValidateProfile(data))
		if err != nil {
			return err
		}
		invalid = invalid || bad
	}

	if validateSettings != "" {
		data, err := readJSONDocument(validateSettings)
		if err != nil {
			return err
		}
		bad, err := report(printer, schemas.ValidateSettings(data))
		if err != nil {
			return err
		}
		invalid = invalid || bad
	}

	if invalid {
		return errInvalid
	}
	return nil
}

// report prints the outcome of one validation. Schema load failures are
// returned rather than printed.
func report(printer *observability.Printer, err error) (bool, error) {
	var validationErr *schemas.ValidationError
	switch {
	case err == nil:
		printer.PrintValidation(nil)
		return false, nil
	case errors.As(err, &validationErr):
		printer.PrintValidation(validationErr.Errors)
		return true, nil
	default:
		return false, err
	}
}

// readJSONDocument reads a JSON file, converting YAML to JSON by extension.
func readJSONDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to parse YAML %s: %w", path, err)
		}
		return json.Marshal(v)
	}
	return data, nil
}
