package types

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// Output formats accepted by the generate and export endpoints.
const (
	FormatHTML       = "html"
	FormatJSON       = "json"
	FormatMarkdown   = "markdown"
	FormatPDF        = "pdf"
	FormatBrowserPDF = "pdf-browser"
)

// NormalizeRequest asks the server to normalize raw extracted profile JSON.
type NormalizeRequest struct {
	Profile            json.RawMessage `json:"profile" validate:"required"`
	MaxSkills          int             `json:"max_skills,omitempty" validate:"gte=0"`
	CanonicalizeSkills bool            `json:"canonicalize_skills,omitempty"`
}

// GenerateRequest asks the server to render a portfolio site.
// Profile and Settings stay raw so that the normalizer and the generator
// decide how malformed input is reported.
type GenerateRequest struct {
	Profile  json.RawMessage `json:"profile" validate:"required"`
	Settings json.RawMessage `json:"settings,omitempty"`
	Preset   string          `json:"preset,omitempty"`
	Format   string          `json:"format,omitempty" validate:"omitempty,oneof=html json"`
}

// ExportRequest asks the server to render the site in a download format.
type ExportRequest struct {
	Profile  json.RawMessage `json:"profile" validate:"required"`
	Settings json.RawMessage `json:"settings,omitempty"`
	Preset   string          `json:"preset,omitempty"`
	Format   string          `json:"format" validate:"required,oneof=markdown pdf pdf-browser"`
}

// PresetRequest applies a named preset on top of the given settings.
type PresetRequest struct {
	Settings *SiteSettings `json:"settings,omitempty"`
	Preset   string        `json:"preset" validate:"required"`
}

// ValidateRequest checks a profile against the profile JSON schema.
type ValidateRequest struct {
	Profile json.RawMessage `json:"profile" validate:"required"`
}

// ExtractRequest carries one extraction source: an uploaded file (base64),
// pasted text, or a profile URL.
type ExtractRequest struct {
	Base64Data string `json:"base64_data,omitempty" validate:"required_without_all=Text URL"`
	MimeType   string `json:"mime_type,omitempty"`
	FileName   string `json:"file_name,omitempty"`
	Text       string `json:"text,omitempty"`
	URL        string `json:"url,omitempty" validate:"omitempty,url"`
	MaxSkills  int    `json:"max_skills,omitempty" validate:"gte=0"`
}

// Validate validates the NormalizeRequest using the validator.
func (r *NormalizeRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the GenerateRequest using the validator.
func (r *GenerateRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the ExportRequest using the validator.
func (r *ExportRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the PresetRequest using the validator.
func (r *PresetRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the ValidateRequest using the validator.
func (r *ValidateRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the ExtractRequest using the validator.
func (r *ExtractRequest) Validate() error {
	return validator.New().Struct(r)
}
