// Package config provides configuration loading and validation for the CLI
// and the server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonathan/sitemaker/internal/settings"
	"gopkg.in/yaml.v3"
)

// Config is the run configuration loaded from a JSON or YAML file.
// All fields are optional; missing values come from the environment,
// the defaults, or CLI flags.
type Config struct {
	// Server
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// Extraction
	APIKey             string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	Model              string `json:"model,omitempty" yaml:"model,omitempty"`           // Overrides the model for every tier
	MaxSkills          int    `json:"max_skills,omitempty" yaml:"max_skills,omitempty"` // 0 keeps every skill
	CanonicalizeSkills bool   `json:"canonicalize_skills,omitempty" yaml:"canonicalize_skills,omitempty"`
	UseBrowser         bool   `json:"use_browser,omitempty" yaml:"use_browser,omitempty"`

	// Site
	Preset       string `json:"preset,omitempty" yaml:"preset,omitempty"`
	SettingsFile string `json:"settings_file,omitempty" yaml:"settings_file,omitempty"` // Site settings JSON/YAML

	// Output
	OutputDir   string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	Concurrency int    `json:"concurrency,omitempty" yaml:"concurrency,omitempty"` // Batch build workers

	// Logging
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty"`
	Verbose   bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

var logLevels = map[string]bool{
	"panic": true, "fatal": true, "error": true, "warn": true, "warning": true,
	"info": true, "debug": true, "trace": true,
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:        8080,
		OutputDir:   "out",
		Concurrency: 4,
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by
// extension. Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// FromEnv reads configuration from the environment. Unset or malformed
// variables leave the field empty.
func FromEnv() Config {
	cfg := Config{
		APIKey:    os.Getenv("GEMINI_API_KEY"),
		Model:     os.Getenv("SITEMAKER_MODEL"),
		LogLevel:  os.Getenv("SITEMAKER_LOG_LEVEL"),
		LogFormat: os.Getenv("SITEMAKER_LOG_FORMAT"),
		OutputDir: os.Getenv("SITEMAKER_OUTPUT_DIR"),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	if b, err := strconv.ParseBool(os.Getenv("SITEMAKER_USE_BROWSER")); err == nil {
		cfg.UseBrowser = b
	}
	return cfg
}

// Validate checks that the configuration has valid values.
// Required inputs are checked by the commands after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxSkills < 0 {
		return fmt.Errorf("config error: 'max_skills' must be non-negative")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}

	if c.LogLevel != "" && !logLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("config error: unknown 'log_level' %q", c.LogLevel)
	}
	if f := strings.ToLower(c.LogFormat); f != "" && f != "text" && f != "json" {
		return fmt.Errorf("config error: 'log_format' must be text or json")
	}

	if c.Preset != "" {
		if _, err := settings.GetPreset(c.Preset); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	if c.SettingsFile != "" {
		if _, err := os.Stat(c.SettingsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: settings file not found: %s", c.SettingsFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// It is applied in layers: file over environment over built-in defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.Preset == "" {
		result.Preset = defaults.Preset
	}
	if result.SettingsFile == "" {
		result.SettingsFile = defaults.SettingsFile
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxSkills == 0 {
		result.MaxSkills = defaults.MaxSkills
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	// Bools cannot distinguish unset from false, so only true propagates
	result.CanonicalizeSkills = result.CanonicalizeSkills || defaults.CanonicalizeSkills
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// Resolve loads path (when given), layers it over the environment and the
// built-in defaults, and validates the result.
func Resolve(path string) (Config, error) {
	file := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		file = loaded
	}

	env := FromEnv()
	cfg := file.MergeWithDefaults(env.MergeWithDefaults(Defaults()))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
