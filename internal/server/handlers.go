package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/jonathan/sitemaker/internal/ingestion"
	"github.com/jonathan/sitemaker/internal/profile"
	"github.com/jonathan/sitemaker/internal/rendering"
	"github.com/jonathan/sitemaker/internal/schemas"
	"github.com/jonathan/sitemaker/internal/server/middleware"
	"github.com/jonathan/sitemaker/internal/settings"
	"github.com/jonathan/sitemaker/internal/types"
)

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"extraction": s.extractor != nil,
	})
}

// handlePresets lists presets, selectable fonts and the default settings.
func (s *Server) handlePresets(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"presets":  settings.Presets(),
		"fonts":    types.FontOptions(),
		"defaults": types.DefaultSiteSettings(),
	})
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	var req types.NormalizeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := profile.NormalizeJSON(req.Profile, profile.Options{
		MaxSkills:          req.MaxSkills,
		CanonicalizeSkills: req.CanonicalizeSkills,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"profile": p})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := profile.NormalizeJSON(req.Profile, profile.Options{})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	st, err := resolveSettings(req.Settings, req.Preset)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	html, err := rendering.GenerateSite(p, st)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	filename := rendering.DownloadFilename(p.Name)
	if req.Format == types.FormatJSON {
		s.jsonResponse(w, http.StatusOK, map[string]string{
			"html":     html,
			"filename": filename,
		})
		return
	}
	s.fileResponse(w, filename, "text/html; charset=utf-8", []byte(html))
}

func (s *Server) handleApplyPreset(w http.ResponseWriter, r *http.Request) {
	var req types.PresetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	st, err := settings.Resolve(req.Settings, req.Preset)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"settings": st})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req types.ValidateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	err := schemas.ValidateProfile(req.Profile)
	var validationErr *schemas.ValidationError
	switch {
	case err == nil:
		s.jsonResponse(w, http.StatusOK, map[string]any{"valid": true, "errors": []schemas.FieldError{}})
	case errors.As(err, &validationErr):
		s.jsonResponse(w, http.StatusOK, map[string]any{"valid": false, "errors": validationErr.Errors})
	default:
		s.writeError(w, r, err)
	}
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	req, src, err := s.extractSource(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.extractor.Ingest(r.Context(), src, nil)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	capSkills(result, req.MaxSkills)
	s.jsonResponse(w, http.StatusOK, result)
}

// handleExtractStream runs extraction and reports progress as Server-Sent
// Events. Request errors are plain JSON; once the stream starts, failures
// arrive as an error event.
func (s *Server) handleExtractStream(w http.ResponseWriter, r *http.Request) {
	req, src, err := s.extractSource(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	requestID := middleware.GetRequestID(r)

	result, err := s.extractor.Ingest(r.Context(), src, sse.WriteStatus)
	if err != nil {
		s.log.WithField("request_id", requestID).WithError(err).Error("streamed extraction failed")
		sse.WriteError(HTTPStatus(err), publicMessage(err))
		sse.WriteComplete(requestID, "failed")
		return
	}
	capSkills(result, req.MaxSkills)

	if err := sse.WriteEvent(EventProfile, result); err != nil {
		s.log.WithField("request_id", requestID).WithError(err).Warn("failed to write profile event")
		return
	}
	sse.WriteComplete(requestID, "completed")
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req types.ExportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := profile.NormalizeJSON(req.Profile, profile.Options{})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	st, err := resolveSettings(req.Settings, req.Preset)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	file, err := s.exporter.Export(r.Context(), p, st, req.Format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.fileResponse(w, file.Name, file.ContentType, file.Data)
}

// extractSource decodes an extraction request into an ingestion source.
func (s *Server) extractSource(w http.ResponseWriter, r *http.Request) (types.ExtractRequest, ingestion.Source, error) {
	var req types.ExtractRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return req, ingestion.Source{}, err
	}
	if s.extractor == nil {
		return req, ingestion.Source{}, ErrExtractionDisabled
	}

	src := ingestion.Source{
		MimeType: req.MimeType,
		FileName: req.FileName,
		Text:     req.Text,
		URL:      req.URL,
	}
	if req.Base64Data != "" {
		data, declared, err := decodeUpload(req.Base64Data)
		if err != nil {
			return req, ingestion.Source{}, &ErrValidation{Field: "base64_data", Message: err.Error()}
		}
		src.Data = data
		if src.MimeType == "" {
			src.MimeType = declared
		}
	}
	return req, src, nil
}

// decodeUpload decodes plain base64 or a data URL and returns the MIME type
// the data URL declares, if any.
func decodeUpload(payload string) ([]byte, string, error) {
	var declared string
	if rest, ok := strings.CutPrefix(payload, "data:"); ok {
		header, body, found := strings.Cut(rest, ",")
		if !found || !strings.HasSuffix(header, ";base64") {
			return nil, "", errors.New("data URL must be base64 encoded")
		}
		declared = strings.TrimSuffix(header, ";base64")
		payload = body
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, "", errors.New("invalid base64 data")
	}
	if len(data) == 0 {
		return nil, "", errors.New("file is empty")
	}
	return data, declared, nil
}

// resolveSettings parses optional request settings and applies a preset.
// Malformed settings surface as a generation failure. It returns nil when
// neither is given so that the generator uses its defaults.
func resolveSettings(raw json.RawMessage, preset string) (*types.SiteSettings, error) {
	var base *types.SiteSettings
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		parsed, err := settings.ParseJSON(trimmed)
		if err != nil {
			return nil, &rendering.GenerationError{Message: "invalid site settings", Cause: err}
		}
		base = &parsed
	}
	if base == nil && preset == "" {
		return nil, nil
	}

	resolved, err := settings.Resolve(base, preset)
	if err != nil {
		return nil, err
	}
	return &resolved, nil
}

// capSkills applies a per-request skill cap on top of the server default.
func capSkills(result *ingestion.Result, maxSkills int) {
	if maxSkills > 0 && result.Profile != nil && len(result.Profile.Skills) > maxSkills {
		result.Profile.Skills = result.Profile.Skills[:maxSkills]
	}
}

// fileResponse sends data as a download.
func (s *Server) fileResponse(w http.ResponseWriter, name, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.log.WithError(err).Warn("failed to write file response")
	}
}
