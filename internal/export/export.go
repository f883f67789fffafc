// Package export converts a generated portfolio into download formats:
// Markdown, a text PDF, and a PDF printed by headless Chrome.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/sitemaker/internal/rendering"
	"github.com/jonathan/sitemaker/internal/types"
	"github.com/sirupsen/logrus"
)

// ErrUnsupportedFormat is returned for formats other than html, markdown,
// pdf and pdf-browser.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Error wraps a failure while converting the rendered page.
type Error struct {
	Format  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export error (%s): %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("export error (%s): %s", e.Format, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// File is an exported document ready to be written or served.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// PrintFunc renders an HTML document to PDF bytes.
type PrintFunc func(ctx context.Context, html string) ([]byte, error)

// Exporter renders a profile and converts the result.
type Exporter struct {
	log     logrus.FieldLogger
	printer PrintFunc
}

// New builds an Exporter that prints browser PDFs with Chrome. A nil logger
// discards output.
func New(log logrus.FieldLogger) *Exporter {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Exporter{log: log, printer: PrintPDF}
}

// WithPrinter returns a copy of e that uses printer for browser PDFs.
func (e *Exporter) WithPrinter(printer PrintFunc) *Exporter {
	c := *e
	c.printer = printer
	return &c
}

// Export renders p with s and converts the page to format.
func (e *Exporter) Export(ctx context.Context, p *types.ProfileData, s *types.SiteSettings, format string) (*File, error) {
	html, err := rendering.GenerateSite(p, s)
	if err != nil {
		return nil, err
	}
	base := strings.TrimSuffix(rendering.DownloadFilename(p.Name), ".html")
	log := e.log.WithFields(logrus.Fields{"format": format, "name": p.Name})

	switch format {
	case "", types.FormatHTML:
		return &File{Name: base + ".html", ContentType: "text/html; charset=utf-8", Data: []byte(html)}, nil

	case types.FormatMarkdown:
		md, err := Markdown(html)
		if err != nil {
			return nil, &Error{Format: format, Message: "failed to convert to markdown", Cause: err}
		}
		log.WithField("bytes", len(md)).Debug("markdown exported")
		return &File{Name: base + ".md", ContentType: "text/markdown; charset=utf-8", Data: []byte(md)}, nil

	case types.FormatPDF:
		md, err := Markdown(html)
		if err != nil {
			return nil, &Error{Format: format, Message: "failed to convert to markdown", Cause: err}
		}
		data, err := MarkdownPDF(md, p.Name)
		if err != nil {
			return nil, &Error{Format: format, Message: "failed to write PDF", Cause: err}
		}
		log.WithField("bytes", len(data)).Debug("pdf exported")
		return &File{Name: base + ".pdf", ContentType: "application/pdf", Data: data}, nil

	case types.FormatBrowserPDF:
		data, err := e.printer(ctx, html)
		if err != nil {
			return nil, &Error{Format: format, Message: "failed to print page", Cause: err}
		}
		log.WithField("bytes", len(data)).Debug("browser pdf exported")
		return &File{Name: base + ".pdf", ContentType: "application/pdf", Data: data}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
