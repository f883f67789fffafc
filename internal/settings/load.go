package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/sitemaker/internal/types"
	"gopkg.in/yaml.v3"
)

// Load reads settings from a JSON or YAML file, chosen by extension.
func Load(path string) (types.SiteSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.SiteSettings{}, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// ParseJSON decodes settings JSON. Unknown fields are rejected so that typos
// in hand-written files surface instead of silently using defaults.
func ParseJSON(data []byte) (types.SiteSettings, error) {
	var s types.SiteSettings
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return types.SiteSettings{}, fmt.Errorf("failed to parse settings JSON: %w", err)
	}
	return s, Validate(s)
}

// ParseYAML decodes settings YAML.
func ParseYAML(data []byte) (types.SiteSettings, error) {
	var s types.SiteSettings
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return types.SiteSettings{}, fmt.Errorf("failed to parse settings YAML: %w", err)
	}
	return s, Validate(s)
}

// Validate checks enumerated fields of s.
func Validate(s types.SiteSettings) error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// Resolve combines optional caller settings with an optional preset.
// A nil base starts from the defaults.
func Resolve(base *types.SiteSettings, preset string) (types.SiteSettings, error) {
	current := types.DefaultSiteSettings()
	if base != nil {
		current = *base
	}
	if preset == "" {
		return current, nil
	}
	return ApplyPreset(current, preset)
}
