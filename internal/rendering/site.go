package rendering

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/jonathan/sitemaker/internal/settings"
	"github.com/jonathan/sitemaker/internal/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxRenderedSkills caps the skills shown on the page and in the keywords.
const MaxRenderedSkills = 10

// DefaultAbout is shown when the profile has no summary.
const DefaultAbout = "Professional with experience in technology and innovation. Passionate about creating impactful solutions and driving results."

const maxDescriptionLength = 160

//go:embed templates/site.html.tmpl
var templateFS embed.FS

var loadTemplate = sync.OnceValues(func() (*template.Template, error) {
	tmpl, err := template.New("site.html.tmpl").Funcs(template.FuncMap{
		"url":    NormalizeURL,
		"period": period,
	}).ParseFS(templateFS, "templates/site.html.tmpl")
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse site template", Cause: err}
	}
	return tmpl, nil
})

// pageData is the view model passed to the template.
type pageData struct {
	Profile     *types.ProfileData
	Titles      types.SectionTitles
	Theme       themeCSS
	Dark        bool
	Description string
	Keywords    string
	About       string
	Nav         []navLink
	Skills      []string
	Person      personSchema
	Filename    string
}

type navLink struct {
	Label    string
	URL      string
	External bool
}

// personSchema is the schema.org Person embedded as JSON-LD.
type personSchema struct {
	Context     string   `json:"@context"`
	Type        string   `json:"@type"`
	Name        string   `json:"name"`
	JobTitle    string   `json:"jobTitle,omitempty"`
	Description string   `json:"description,omitempty"`
	Email       string   `json:"email,omitempty"`
	Address     string   `json:"address,omitempty"`
	SameAs      []string `json:"sameAs,omitempty"`
	KnowsAbout  []string `json:"knowsAbout,omitempty"`
}

// GenerateSite renders profile with settings into a complete HTML document.
// A nil settings value uses the defaults. The output depends only on the
// inputs, so identical calls return identical bytes.
func GenerateSite(profile *types.ProfileData, s *types.SiteSettings) (string, error) {
	if profile == nil {
		return "", &GenerationError{Message: "profile is required"}
	}

	var resolved types.SiteSettings
	if s != nil {
		resolved = *s
	}
	if resolved.Theme != "" && resolved.Theme != types.ThemeLight && resolved.Theme != types.ThemeDark {
		return "", &GenerationError{Message: fmt.Sprintf("unsupported theme %q", resolved.Theme)}
	}
	resolved = settings.WithDefaults(resolved)

	theme := ResolveTheme(resolved)
	css, err := theme.css()
	if err != nil {
		return "", &GenerationError{Message: "invalid site settings", Cause: err}
	}

	tmpl, err := loadTemplate()
	if err != nil {
		return "", &GenerationError{Message: "template unavailable", Cause: err}
	}

	data := buildPageData(profile, resolved.SectionTitles)
	data.Theme = css
	data.Dark = theme.Dark

	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return "", &GenerationError{
			Message: "failed to render site",
			Cause:   &TemplateError{Message: "failed to execute template", Cause: err},
		}
	}
	return out.String(), nil
}

func buildPageData(p *types.ProfileData, titles types.SectionTitles) pageData {
	about := p.Summary
	if strings.TrimSpace(about) == "" {
		about = DefaultAbout
	}

	skills := p.Skills
	if len(skills) > MaxRenderedSkills {
		skills = skills[:MaxRenderedSkills]
	}

	upper := cases.Upper(language.Und)
	var nav []navLink
	if p.Email != "" {
		nav = append(nav, navLink{Label: "CONTACT", URL: "mailto:" + p.Email})
	}
	var sameAs []string
	for _, link := range p.SocialLinks {
		u := NormalizeURL(link.URL)
		if u == "" {
			continue
		}
		label := link.Platform
		if label == "" {
			label = "link"
		}
		nav = append(nav, navLink{Label: upper.String(label), URL: u, External: true})
		sameAs = append(sameAs, u)
	}

	return pageData{
		Profile:     p,
		Titles:      titles,
		Description: metaDescription(about, maxDescriptionLength),
		Keywords:    strings.Join(skills, ", "),
		About:       about,
		Nav:         nav,
		Skills:      skills,
		Person: personSchema{
			Context:     "https://schema.org",
			Type:        "Person",
			Name:        p.Name,
			JobTitle:    p.Title,
			Description: p.Summary,
			Email:       p.Email,
			Address:     p.Location,
			SameAs:      sameAs,
			KnowsAbout:  skills,
		},
		Filename: DownloadFilename(p.Name),
	}
}

// period formats a date range, tolerating either end being blank.
func period(start, end string) string {
	switch {
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start
	default:
		return end
	}
}
