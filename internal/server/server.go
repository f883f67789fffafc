// Package server provides the HTTP API for normalizing profiles, generating
// portfolio sites and extracting profiles from resumes.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/sitemaker/internal/export"
	"github.com/jonathan/sitemaker/internal/ingestion"
	"github.com/jonathan/sitemaker/internal/llm"
	"github.com/jonathan/sitemaker/internal/observability"
	"github.com/jonathan/sitemaker/internal/profile"
	"github.com/jonathan/sitemaker/internal/server/middleware"
	"github.com/jonathan/sitemaker/internal/server/ratelimit"
	"github.com/jonathan/sitemaker/internal/types"
	"github.com/sirupsen/logrus"
)

// maxBodyBytes bounds request bodies; base64 uploads dominate the size.
const maxBodyBytes = 20 << 20

// Extractor produces a normalized profile from one extraction source.
// *ingestion.Ingester satisfies it.
type Extractor interface {
	Ingest(ctx context.Context, src ingestion.Source, onStatus ingestion.StatusFunc) (*ingestion.Result, error)
}

// Exporter converts a profile into a download format. *export.Exporter
// satisfies it.
type Exporter interface {
	Export(ctx context.Context, p *types.ProfileData, s *types.SiteSettings, format string) (*export.File, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	log        logrus.FieldLogger

	rateLimiter *ratelimit.Limiter
	extractor   Extractor
	exporter    Exporter
	llmClient   llm.Client
}

// Config holds server configuration
type Config struct {
	Port   int
	Logger logrus.FieldLogger

	// APIKey enables the extraction endpoints. Without it they answer 503.
	APIKey             string
	Model              string
	UseBrowser         bool
	MaxSkills          int
	CanonicalizeSkills bool

	// RateLimit defaults to ratelimit.LoadConfig().
	RateLimit *ratelimit.Config
}

// Option customizes a Server.
type Option func(*Server)

// WithExtractor replaces the model-backed extractor.
func WithExtractor(e Extractor) Option {
	return func(s *Server) { s.extractor = e }
}

// WithExporter replaces the default exporter.
func WithExporter(e Exporter) Option {
	return func(s *Server) { s.exporter = e }
}

// New creates a new server instance
func New(cfg Config, opts ...Option) (*Server, error) {
	log := cfg.Logger
	if log == nil {
		log = observability.Discard()
	}

	rlConfig := cfg.RateLimit
	if rlConfig == nil {
		rlConfig = ratelimit.LoadConfig()
	}

	s := &Server{
		log:         log,
		rateLimiter: ratelimit.NewLimiter(rlConfig),
		exporter:    export.New(log),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.extractor == nil && cfg.APIKey != "" {
		client, err := llm.NewClient(context.Background(), llm.DefaultConfig().WithAllModels(cfg.Model), cfg.APIKey)
		if err != nil {
			s.rateLimiter.Stop()
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		s.llmClient = client
		s.extractor = ingestion.New(llm.NewProfileExtractor(client, cfg.MaxSkills), log, ingestion.Options{
			UseBrowser: cfg.UseBrowser,
			Normalize: profile.Options{
				MaxSkills:          cfg.MaxSkills,
				CanonicalizeSkills: cfg.CanonicalizeSkills,
			},
		})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /presets", s.handlePresets)
	mux.HandleFunc("POST /normalize", s.handleNormalize)
	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.HandleFunc("POST /settings/preset", s.handleApplyPreset)
	mux.HandleFunc("POST /validate", s.handleValidate)
	mux.HandleFunc("POST /extract", s.handleExtract)
	mux.HandleFunc("POST /extract/stream", s.handleExtractStream)
	mux.HandleFunc("POST /export", s.handleExport)

	handler := middleware.RequestID(
		middleware.Logging(log)(
			middleware.CORS(
				s.withRateLimit(mux))))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // extraction and browser PDFs are slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.httpServer.Addr).Info("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.log.Info("shutting down server")
	case err := <-errCh:
		if err != nil {
			s.Close()
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.Close()
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.Close()
	s.log.Info("server stopped")
	return nil
}

// Start serves until SIGINT or SIGTERM.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Close releases the rate limiter and the model client.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.llmClient != nil {
		if err := s.llmClient.Close(); err != nil {
			s.log.WithError(err).Warn("failed to close LLM client")
		}
	}
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.WithError(err).Error("failed to encode JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// writeError logs err and answers with its mapped status.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	entry := s.log.WithFields(logrus.Fields{
		"request_id": middleware.GetRequestID(r),
		"path":       r.URL.Path,
		"status":     status,
	}).WithError(err)
	if status >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Debug("request rejected")
	}
	s.errorResponse(w, status, publicMessage(err))
}

// validatable is implemented by the request types in internal/types.
type validatable interface {
	Validate() error
}

// decodeJSON reads a bounded JSON body into dst and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst validatable) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return &ErrValidation{Message: fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit)}
		case errors.Is(err, io.EOF):
			return &ErrValidation{Message: "request body is empty"}
		default:
			return &ErrValidation{Message: "invalid JSON: " + err.Error()}
		}
	}
	if err := dst.Validate(); err != nil {
		return validationError(err)
	}
	return nil
}

// validationError reports the first failed validator rule as an ErrValidation.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		msg := fmt.Sprintf("failed %q", fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("failed %q (%s)", fe.Tag(), fe.Param())
		}
		return &ErrValidation{Field: fe.Field(), Message: msg}
	}
	return &ErrValidation{Message: err.Error()}
}

// extractClientID extracts the client identifier from the request.
// It uses the IP address from RemoteAddr; X-Forwarded-For is not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	s.log.WithFields(logrus.Fields{
		"client":    s.extractClientID(r),
		"path":      r.URL.Path,
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset":     info.ResetTime.Format(time.RFC3339),
	}).Warn("rate limit exceeded")

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
