package ingestion

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/jonathan/sitemaker/internal/fetch"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Kind is the broad category of an uploaded document.
type Kind string

const (
	KindPDF   Kind = "pdf"
	KindDOCX  Kind = "docx"
	KindImage Kind = "image"
	KindHTML  Kind = "html"
	KindText  Kind = "text"
	KindURL   Kind = "url"
	KindOther Kind = "other"
)

const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Label is the human description used in extraction prompts.
func (k Kind) Label() string {
	switch k {
	case KindPDF:
		return "PDF resume"
	case KindDOCX:
		return "Word resume"
	case KindImage:
		return "resume image"
	case KindHTML:
		return "web page"
	case KindText:
		return "text resume"
	default:
		return "document"
	}
}

// DetectKind sniffs data and falls back to the declared MIME type and the
// file extension when the content is ambiguous. It returns the kind and the
// MIME type to send to the model.
func DetectKind(data []byte, declaredMIME, fileName string) (Kind, string) {
	detected := mimetype.Detect(data)

	switch {
	case detected.Is("application/pdf"):
		return KindPDF, "application/pdf"
	case detected.Is(docxMIME):
		return KindDOCX, docxMIME
	case strings.HasPrefix(detected.String(), "image/"):
		return KindImage, stripParams(detected.String())
	case detected.Is("text/html"):
		return KindHTML, "text/html"
	}

	declared := stripParams(declaredMIME)
	ext := strings.ToLower(filepath.Ext(fileName))
	switch {
	case declared == "application/pdf" || ext == ".pdf":
		return KindPDF, "application/pdf"
	case declared == docxMIME || ext == ".docx":
		return KindDOCX, docxMIME
	case strings.HasPrefix(declared, "image/"):
		return KindImage, declared
	case declared == "text/html" || ext == ".html" || ext == ".htm":
		return KindHTML, "text/html"
	}

	if isText(detected) || strings.HasPrefix(declared, "text/") || ext == ".md" || ext == ".txt" {
		return KindText, "text/plain"
	}
	if declared != "" {
		return KindOther, declared
	}
	return KindOther, stripParams(detected.String())
}

func isText(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

func stripParams(mime string) string {
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	return strings.ToLower(strings.TrimSpace(mime))
}

// ExtractPDFText returns the plain text layer of a PDF.
func ExtractPDFText(data []byte) (text string, err error) {
	// The PDF parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to parse PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}
	return buf.String(), nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br/>|<w:cr/>`)
	docxTab          = regexp.MustCompile(`<w:tab/>`)
	xmlTag           = regexp.MustCompile(`<[^>]+>`)
)

// ExtractDOCXText returns the body text of a Word document, one paragraph
// per line.
func ExtractDOCXText(data []byte) (string, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer func() { _ = r.Close() }()

	body := r.Editable().GetContent()
	body = docxParagraphEnd.ReplaceAllString(body, "\n")
	body = docxTab.ReplaceAllString(body, " ")
	body = xmlTag.ReplaceAllString(body, "")
	return html.UnescapeString(body), nil
}

// ExtractHTMLText reduces an uploaded HTML page to its main text.
func ExtractHTMLText(data []byte) (string, error) {
	return fetch.ExtractMainText(string(data), fetch.DefaultTextSelectors(), fetch.PlatformNoiseSelectors(fetch.PlatformPersonal)...)
}
