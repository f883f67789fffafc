// Package ingestion turns uploaded resumes, pasted text and profile URLs into
// normalized profiles, using the language model for the unstructured step.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/sitemaker/internal/fetch"
	"github.com/jonathan/sitemaker/internal/llm"
	"github.com/jonathan/sitemaker/internal/profile"
	"github.com/jonathan/sitemaker/internal/types"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNoInput is returned when a Source carries nothing to extract from.
	ErrNoInput = errors.New("no file, text or URL provided")
	// ErrAmbiguousInput is returned when a Source sets more than one input.
	ErrAmbiguousInput = errors.New("provide exactly one of file, text or URL")
)

// MinDocumentText is the shortest locally extracted text worth sending as a
// text prompt; shorter PDFs and DOCX files go to the model inline instead.
const MinDocumentText = 200

// Statuses reported through StatusFunc.
const (
	StatusDetecting   = "detecting"
	StatusReading     = "reading"
	StatusFetching    = "fetching"
	StatusRendering   = "rendering"
	StatusExtracting  = "extracting"
	StatusNormalizing = "normalizing"
)

// StatusFunc receives progress updates. It may be nil.
type StatusFunc func(status string)

// ExtractionError wraps a failure of the model-backed extraction step.
type ExtractionError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction error (%s): %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction error (%s): %s", e.Stage, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// ProfileSource produces raw profile objects; *llm.ProfileExtractor
// satisfies it.
type ProfileSource interface {
	FromText(ctx context.Context, fileType, content string) (map[string]any, error)
	FromBlob(ctx context.Context, fileType string, blob llm.Blob) (map[string]any, error)
	FromURL(ctx context.Context, profileURL string) (map[string]any, error)
}

// Source is one extraction input. Exactly one of Data, Text or URL is set.
type Source struct {
	Data     []byte
	MimeType string
	FileName string
	Text     string
	URL      string
}

// Result is a normalized profile and a record of how it was produced.
type Result struct {
	Profile  *types.ProfileData `json:"profile"`
	Metadata *Metadata          `json:"metadata"`
}

// Options tunes an Ingester.
type Options struct {
	// UseBrowser enables the headless browser fallback for thin pages.
	UseBrowser bool
	// Fetch overrides HTTP fetch options.
	Fetch *fetch.Options
	// Normalize is applied to the raw model output.
	Normalize profile.Options
}

// Ingester runs extraction end to end.
type Ingester struct {
	source ProfileSource
	log    logrus.FieldLogger
	opts   Options

	// renderPage is swapped in tests to avoid launching Chrome.
	renderPage func(ctx context.Context, url string, log logrus.FieldLogger) (string, error)
}

// New builds an Ingester. A nil logger discards output.
func New(source ProfileSource, log logrus.FieldLogger, opts Options) *Ingester {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Ingester{source: source, log: log, opts: opts, renderPage: fetch.BrowserSimple}
}

// Ingest extracts and normalizes a profile from src.
func (i *Ingester) Ingest(ctx context.Context, src Source, onStatus StatusFunc) (*Result, error) {
	if onStatus == nil {
		onStatus = func(string) {}
	}

	set := 0
	for _, ok := range []bool{len(src.Data) > 0, strings.TrimSpace(src.Text) != "", strings.TrimSpace(src.URL) != ""} {
		if ok {
			set++
		}
	}
	switch {
	case set == 0:
		return nil, ErrNoInput
	case set > 1:
		return nil, ErrAmbiguousInput
	}

	var (
		raw  map[string]any
		meta *Metadata
		err  error
	)
	switch {
	case src.URL != "":
		raw, meta, err = i.ingestURL(ctx, strings.TrimSpace(src.URL), onStatus)
	case src.Text != "":
		raw, meta, err = i.ingestText(ctx, src.Text, onStatus)
	default:
		raw, meta, err = i.ingestDocument(ctx, src, onStatus)
	}
	if err != nil {
		return nil, err
	}

	onStatus(StatusNormalizing)
	p, err := profile.Normalize(raw, i.opts.Normalize)
	if err != nil {
		return nil, err
	}

	i.log.WithFields(logrus.Fields{
		"kind":       meta.Kind,
		"method":     meta.Method,
		"experience": len(p.Experience),
		"skills":     len(p.Skills),
	}).Info("profile extracted")

	return &Result{Profile: p, Metadata: meta}, nil
}

func (i *Ingester) ingestText(ctx context.Context, text string, onStatus StatusFunc) (map[string]any, *Metadata, error) {
	cleaned := CleanText(text)
	meta := NewMetadata([]byte(text), "")
	meta.Kind = KindText
	meta.MimeType = "text/plain"
	meta.Method = MethodText
	meta.TextLength = len(cleaned)

	onStatus(StatusExtracting)
	raw, err := i.source.FromText(ctx, KindText.Label(), cleaned)
	if err != nil {
		return nil, nil, &ExtractionError{Stage: "text", Message: "model extraction failed", Cause: err}
	}
	return raw, meta, nil
}

func (i *Ingester) ingestDocument(ctx context.Context, src Source, onStatus StatusFunc) (map[string]any, *Metadata, error) {
	onStatus(StatusDetecting)
	kind, mime := DetectKind(src.Data, src.MimeType, src.FileName)

	meta := NewMetadata(src.Data, "")
	meta.FileName = src.FileName
	meta.MimeType = mime
	meta.Kind = kind

	log := i.log.WithFields(logrus.Fields{"file": src.FileName, "kind": kind, "mime": mime, "bytes": len(src.Data)})
	log.Debug("document detected")

	var text string
	switch kind {
	case KindText:
		text = string(src.Data)
	case KindHTML, KindPDF, KindDOCX:
		onStatus(StatusReading)
		var err error
		text, err = localText(kind, src.Data)
		if err != nil {
			log.WithError(err).Warn("local text extraction failed, sending document inline")
			text = ""
		}
	}
	text = CleanText(text)
	meta.TextLength = len(text)

	onStatus(StatusExtracting)
	if kind == KindText || (text != "" && len(text) >= MinDocumentText) || (kind == KindHTML && text != "") {
		meta.Method = MethodText
		raw, err := i.source.FromText(ctx, kind.Label(), text)
		if err != nil {
			return nil, nil, &ExtractionError{Stage: string(kind), Message: "model extraction failed", Cause: err}
		}
		return raw, meta, nil
	}

	meta.Method = MethodInline
	raw, err := i.source.FromBlob(ctx, kind.Label(), llm.Blob{MIMEType: mime, Data: src.Data})
	if err != nil {
		return nil, nil, &ExtractionError{Stage: string(kind), Message: "inline model extraction failed", Cause: err}
	}
	return raw, meta, nil
}

func localText(kind Kind, data []byte) (string, error) {
	switch kind {
	case KindPDF:
		return ExtractPDFText(data)
	case KindDOCX:
		return ExtractDOCXText(data)
	case KindHTML:
		return ExtractHTMLText(data)
	default:
		return "", nil
	}
}
