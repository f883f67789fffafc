package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/sitemaker/internal/ingestion"
	"github.com/jonathan/sitemaker/internal/schemas"
	"github.com/jonathan/sitemaker/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProfile(&types.ProfileData{
		Name:     "Ada Lovelace",
		Title:    "Analyst",
		Location: "London",
		Experience: []types.Experience{
			{Company: "Analytical Engines", Position: "Analyst"},
		},
		Skills: []string{"Mathematics", "Go"},
	})
	output := buf.String()

	assert.Contains(t, output, "PROFILE")
	assert.Contains(t, output, "Ada Lovelace")
	assert.Contains(t, output, "Analyst @ Analytical Engines")
	assert.Contains(t, output, "Skills (2): Mathematics, Go")
	assert.Contains(t, output, "Projects: 0")
}

func TestPrintProfile_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintProfile(nil)
	assert.Empty(t, buf.String())
}

func TestPrintProfile_TruncatesLongLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	exp := make([]types.Experience, 8)
	for i := range exp {
		exp[i] = types.Experience{Position: "Engineer", Company: "Co"}
	}
	p.PrintProfile(&types.ProfileData{Name: "Ada", Experience: exp})

	assert.Contains(t, buf.String(), "... and 3 more")
}

func TestPrintSettings(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	s := types.DefaultSiteSettings()
	s.Theme = types.ThemeDark
	s.SectionTitles.Skills = "Capabilities"
	p.PrintSettings(s)
	output := buf.String()

	assert.Contains(t, output, "SITE SETTINGS")
	assert.Contains(t, output, "Dark")
	assert.Contains(t, output, "Capabilities")
	assert.Contains(t, output, "#2563eb")
}

func TestPrintMetadata(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMetadata(&ingestion.Metadata{
		URL:            "https://github.com/ada",
		Kind:           ingestion.KindURL,
		Platform:       "github",
		Method:         ingestion.MethodText,
		TextLength:     1200,
		Hash:           "0123456789abcdef0123",
		ExtractedLinks: []string{"https://ada.dev"},
	})
	output := buf.String()

	assert.Contains(t, output, "EXTRACTION")
	assert.Contains(t, output, "https://github.com/ada")
	assert.Contains(t, output, "Github")
	assert.Contains(t, output, "1200 chars")
	assert.Contains(t, output, "0123456789ab")
	assert.NotContains(t, output, "0123456789abc")
	assert.Contains(t, output, "https://ada.dev")
}

func TestPrintValidation(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintValidation(nil)
	assert.Contains(t, buf.String(), "DOCUMENT IS VALID")

	buf.Reset()
	p.PrintValidation([]schemas.FieldError{{Field: "name", Message: "name is required"}})
	assert.Contains(t, buf.String(), "Found 1 errors")
	assert.Contains(t, buf.String(), "⚠ name")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
	assert.Contains(t, buf.String(), "...")
}
