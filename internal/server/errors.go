package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/sitemaker/internal/export"
	"github.com/jonathan/sitemaker/internal/ingestion"
	"github.com/jonathan/sitemaker/internal/profile"
	"github.com/jonathan/sitemaker/internal/rendering"
	"github.com/jonathan/sitemaker/internal/schemas"
	"github.com/jonathan/sitemaker/internal/settings"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrExtractionDisabled is returned by the extraction endpoints when no
// model API key is configured.
var ErrExtractionDisabled = errors.New("extraction is not configured: set GEMINI_API_KEY")

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		structureErr  *profile.InvalidStructureError
		presetErr     *settings.UnknownPresetError
		extractionErr *ingestion.ExtractionError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr),
		errors.Is(err, ingestion.ErrNoInput),
		errors.Is(err, ingestion.ErrAmbiguousInput),
		errors.Is(err, ingestion.ErrInvalidURL),
		errors.Is(err, export.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.As(err, &structureErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &presetErr):
		return http.StatusNotFound
	case errors.As(err, &extractionErr):
		return http.StatusBadGateway
	case errors.Is(err, ErrExtractionDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage is the error text returned to clients. Internal failures are
// summarized; their details go to the log only.
func publicMessage(err error) string {
	var (
		generationErr *rendering.GenerationError
		exportErr     *export.Error
		schemaErr     *schemas.SchemaLoadError
		extractionErr *ingestion.ExtractionError
	)
	switch {
	case errors.As(err, &generationErr), errors.As(err, &exportErr):
		return "could not generate file"
	case errors.As(err, &schemaErr):
		return "schema unavailable"
	case errors.As(err, &extractionErr):
		return "could not extract profile: " + extractionErr.Message
	case HTTPStatus(err) == http.StatusInternalServerError:
		return "internal server error"
	default:
		return err.Error()
	}
}
