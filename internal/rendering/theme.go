package rendering

import (
	"fmt"
	"html/template"
	"regexp"

	"github.com/jonathan/sitemaker/internal/types"
)

// Dark theme fallbacks, used only when the corresponding field is unset.
const (
	DarkBackground = "#0d1117"
	DarkText       = "#d1d5db"
)

const (
	lightBackground = "#ffffff"
	lightText       = "#374151"
	defaultPrimary  = "#2563eb"
)

// Theme is the fully resolved palette and font used by the stylesheet.
type Theme struct {
	Dark       bool
	Background string
	Text       string
	Primary    string
	Surface    string
	Border     string
	Subtle     string
	Heading    string
	FontFamily string
}

var (
	colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]+|(rgb|rgba|hsl|hsla)\([0-9.,%\s/]+\))$`)
	fontPattern  = regexp.MustCompile(`^[a-zA-Z0-9\s,"'\-_.]+$`)
)

// ResolveTheme computes the palette for s. Explicit colors always win; the
// dark fallbacks apply only to fields left empty.
func ResolveTheme(s types.SiteSettings) Theme {
	t := Theme{
		Background: lightBackground,
		Text:       lightText,
		Primary:    defaultPrimary,
		Surface:    "#f3f4f6",
		Border:     "#e5e7eb",
		Subtle:     "#6b7280",
		Heading:    "#000000",
		FontFamily: types.DefaultFontFamily,
	}
	if s.Theme == types.ThemeDark {
		t.Dark = true
		t.Background = DarkBackground
		t.Text = DarkText
		t.Surface = "#161b22"
		t.Border = "#30363d"
		t.Subtle = "#8b949e"
		t.Heading = "#f0f6fc"
	}

	if s.BackgroundColor != "" {
		t.Background = s.BackgroundColor
	}
	if s.TextColor != "" {
		t.Text = s.TextColor
	}
	if s.PrimaryColor != "" {
		t.Primary = s.PrimaryColor
	}
	if s.FontFamily != "" {
		t.FontFamily = s.FontFamily
	}
	return t
}

// themeCSS holds theme values that passed validation and may be written
// into the stylesheet verbatim.
type themeCSS struct {
	Background template.CSS
	Text       template.CSS
	Primary    template.CSS
	Surface    template.CSS
	Border     template.CSS
	Subtle     template.CSS
	Heading    template.CSS
	FontFamily template.CSS
}

func (t Theme) css() (themeCSS, error) {
	colors := []struct {
		name  string
		value string
	}{
		{"background color", t.Background},
		{"text color", t.Text},
		{"primary color", t.Primary},
		{"surface color", t.Surface},
		{"border color", t.Border},
		{"subtle color", t.Subtle},
		{"heading color", t.Heading},
	}
	for _, c := range colors {
		if !colorPattern.MatchString(c.value) {
			return themeCSS{}, fmt.Errorf("invalid %s %q", c.name, c.value)
		}
	}
	if !fontPattern.MatchString(t.FontFamily) {
		return themeCSS{}, fmt.Errorf("invalid font family %q", t.FontFamily)
	}

	return themeCSS{
		Background: template.CSS(t.Background),
		Text:       template.CSS(t.Text),
		Primary:    template.CSS(t.Primary),
		Surface:    template.CSS(t.Surface),
		Border:     template.CSS(t.Border),
		Subtle:     template.CSS(t.Subtle),
		Heading:    template.CSS(t.Heading),
		FontFamily: template.CSS(t.FontFamily),
	}, nil
}
