package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/sitemaker/internal/export"
	"github.com/jonathan/sitemaker/internal/ingestion"
	"github.com/jonathan/sitemaker/internal/profile"
	"github.com/jonathan/sitemaker/internal/rendering"
	"github.com/jonathan/sitemaker/internal/schemas"
	"github.com/jonathan/sitemaker/internal/settings"
	"github.com/stretchr/testify/assert"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "profile", Message: "required"}
	assert.Equal(t, "validation error: profile - required", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))

	assert.Equal(t, "validation error: body is empty", (&ErrValidation{Message: "body is empty"}).Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"ErrValidation", &ErrValidation{Field: "format"}, http.StatusBadRequest},
		{"no input", ingestion.ErrNoInput, http.StatusBadRequest},
		{"ambiguous input", ingestion.ErrAmbiguousInput, http.StatusBadRequest},
		{"invalid URL", fmt.Errorf("%w: ftp://x", ingestion.ErrInvalidURL), http.StatusBadRequest},
		{"unsupported format", fmt.Errorf("%w: docx", export.ErrUnsupportedFormat), http.StatusBadRequest},
		{"invalid structure", &profile.InvalidStructureError{Message: "expected a JSON object"}, http.StatusUnprocessableEntity},
		{"unknown preset", &settings.UnknownPresetError{Name: "neon"}, http.StatusNotFound},
		{"extraction", &ingestion.ExtractionError{Stage: "pdf", Message: "model extraction failed"}, http.StatusBadGateway},
		{"extraction disabled", ErrExtractionDisabled, http.StatusServiceUnavailable},
		{"generation", &rendering.GenerationError{Message: "failed"}, http.StatusInternalServerError},
		{"Unknown error", assert.AnError, http.StatusInternalServerError},
		{"Nil error", nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestPublicMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "generation hides details",
			err:      &rendering.GenerationError{Message: "failed to render site", Cause: &rendering.TemplateError{Message: "boom"}},
			expected: "could not generate file",
		},
		{
			name:     "export hides details",
			err:      &export.Error{Format: "pdf", Message: "failed", Cause: assert.AnError},
			expected: "could not generate file",
		},
		{
			name:     "schema load",
			err:      &schemas.SchemaLoadError{Path: "profile.schema.json", Message: "invalid", Cause: assert.AnError},
			expected: "schema unavailable",
		},
		{
			name:     "extraction keeps stage message",
			err:      &ingestion.ExtractionError{Stage: "url", Message: "model extraction failed", Cause: assert.AnError},
			expected: "could not extract profile: model extraction failed",
		},
		{
			name:     "unknown internal error",
			err:      assert.AnError,
			expected: "internal server error",
		},
		{
			name:     "client errors are passed through",
			err:      &settings.UnknownPresetError{Name: "neon"},
			expected: `unknown preset: "neon"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, publicMessage(tt.err))
		})
	}
}
