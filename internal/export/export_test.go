package export

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/sitemaker/internal/rendering"
	"github.com/jonathan/sitemaker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adaProfile() *types.ProfileData {
	return &types.ProfileData{
		Name:     "Ada Lovelace",
		Title:    "Analyst",
		Email:    "ada@example.com",
		Location: "London",
		Summary:  "First programmer.",
		Experience: []types.Experience{
			{Company: "Analytical Engines", Position: "Analyst", StartDate: "1842", EndDate: "1843", Description: "Wrote the first program."},
		},
		Skills: []string{"Mathematics", "Go"},
	}
}

func TestMarkdown_StripsPageChrome(t *testing.T) {
	html, err := rendering.GenerateSite(adaProfile(), nil)
	require.NoError(t, err)

	md, err := Markdown(html)
	require.NoError(t, err)

	assert.Contains(t, md, "# Ada Lovelace")
	assert.Contains(t, md, "## About")
	assert.Contains(t, md, "First programmer.")
	assert.Contains(t, md, "Analytical Engines")
	assert.Contains(t, md, "Mathematics")

	assert.NotContains(t, md, "Download HTML")
	assert.NotContains(t, md, "Back to Upload")
	assert.NotContains(t, md, "downloadHTML")
	assert.NotContains(t, md, "--bg")
	assert.NotContains(t, md, "schema.org")
	assert.NotContains(t, md, "\n\n\n")
	assert.True(t, strings.HasSuffix(md, "\n"))
}

func TestMarkdownPDF(t *testing.T) {
	md := "# Ada Lovelace\n\n## Experience\n\n- Wrote the **first** program\n1. Notes on the [engine](https://example.com)\n\nPlain paragraph with `code` and ünïcode."

	data, err := MarkdownPDF(md, "Ada Lovelace")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestCleanInline(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"**bold** text", "bold text"},
		{"use `go test`", "use go test"},
		{"[site](https://ada.dev)", "site (https://ada.dev)"},
		{"[https://ada.dev](https://ada.dev)", "https://ada.dev"},
		{"[About](#about)", "About"},
		{`1842 \- 1843`, "1842 - 1843"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanInline(tt.in))
		})
	}
}

func TestExport_Formats(t *testing.T) {
	e := New(nil)

	tests := []struct {
		format      string
		name        string
		contentType string
	}{
		{types.FormatHTML, "Ada_Lovelace_portfolio.html", "text/html; charset=utf-8"},
		{types.FormatMarkdown, "Ada_Lovelace_portfolio.md", "text/markdown; charset=utf-8"},
		{types.FormatPDF, "Ada_Lovelace_portfolio.pdf", "application/pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			f, err := e.Export(context.Background(), adaProfile(), nil, tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.name, f.Name)
			assert.Equal(t, tt.contentType, f.ContentType)
			assert.NotEmpty(t, f.Data)
		})
	}
}

func TestExport_BrowserPDFUsesPrinter(t *testing.T) {
	var printed string
	e := New(nil).WithPrinter(func(_ context.Context, html string) ([]byte, error) {
		printed = html
		return []byte("%PDF-1.4 fake"), nil
	})

	f, err := e.Export(context.Background(), adaProfile(), &types.SiteSettings{Theme: types.ThemeDark}, types.FormatBrowserPDF)
	require.NoError(t, err)

	assert.Equal(t, "Ada_Lovelace_portfolio.pdf", f.Name)
	assert.Equal(t, []byte("%PDF-1.4 fake"), f.Data)
	assert.Contains(t, printed, "--bg: #0d1117;")
}

func TestExport_PrinterFailure(t *testing.T) {
	cause := errors.New("chrome not found")
	e := New(nil).WithPrinter(func(context.Context, string) ([]byte, error) {
		return nil, cause
	})

	_, err := e.Export(context.Background(), adaProfile(), nil, types.FormatBrowserPDF)
	var exportErr *Error
	require.ErrorAs(t, err, &exportErr)
	assert.Equal(t, types.FormatBrowserPDF, exportErr.Format)
	assert.ErrorIs(t, err, cause)
}

func TestExport_Errors(t *testing.T) {
	e := New(nil)

	_, err := e.Export(context.Background(), adaProfile(), nil, "docx")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = e.Export(context.Background(), nil, nil, types.FormatMarkdown)
	var genErr *rendering.GenerationError
	assert.ErrorAs(t, err, &genErr)
}
