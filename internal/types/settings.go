package types

// Theme names accepted by the site generator.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// DefaultFontFamily is the monospace stack used when no font is chosen.
const DefaultFontFamily = `ui-monospace, SFMono-Regular, "SF Mono", Consolas, "Liberation Mono", Menlo, monospace`

// SiteSettings is the presentation configuration of a generated site.
// Empty fields mean "not specified" and resolve to defaults at render time.
type SiteSettings struct {
	FontFamily      string        `json:"fontFamily,omitempty" yaml:"fontFamily,omitempty"`
	Theme           string        `json:"theme,omitempty" yaml:"theme,omitempty" validate:"omitempty,oneof=light dark"`
	PrimaryColor    string        `json:"primaryColor,omitempty" yaml:"primaryColor,omitempty"`
	BackgroundColor string        `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty"`
	TextColor       string        `json:"textColor,omitempty" yaml:"textColor,omitempty"`
	SectionTitles   SectionTitles `json:"sectionTitles" yaml:"sectionTitles,omitempty"`
}

// SectionTitles holds the user-overridable section headings.
type SectionTitles struct {
	About          string `json:"about,omitempty" yaml:"about,omitempty"`
	Experience     string `json:"experience,omitempty" yaml:"experience,omitempty"`
	Education      string `json:"education,omitempty" yaml:"education,omitempty"`
	Skills         string `json:"skills,omitempty" yaml:"skills,omitempty"`
	Projects       string `json:"projects,omitempty" yaml:"projects,omitempty"`
	Languages      string `json:"languages,omitempty" yaml:"languages,omitempty"`
	Certifications string `json:"certifications,omitempty" yaml:"certifications,omitempty"`
	Achievements   string `json:"achievements,omitempty" yaml:"achievements,omitempty"`
}

// DefaultSectionTitles returns the stock English headings.
func DefaultSectionTitles() SectionTitles {
	return SectionTitles{
		About:          "About",
		Experience:     "Work Experience",
		Education:      "Education",
		Skills:         "Skills",
		Projects:       "Projects",
		Languages:      "Languages",
		Certifications: "Certifications",
		Achievements:   "Achievements",
	}
}

// DefaultSiteSettings returns the settings a new site starts with.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		FontFamily:      DefaultFontFamily,
		Theme:           ThemeLight,
		PrimaryColor:    "#2563eb",
		BackgroundColor: "#ffffff",
		TextColor:       "#374151",
		SectionTitles:   DefaultSectionTitles(),
	}
}

// FontOption is a selectable font with its CSS stack.
type FontOption struct {
	Label string `json:"label"`
	Stack string `json:"stack"`
}

// FontOptions returns the selectable font families.
func FontOptions() []FontOption {
	return []FontOption{
		{Label: "Inter", Stack: "Inter, system-ui, sans-serif"},
		{Label: "System", Stack: `system-ui, -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif`},
		{Label: "Serif", Stack: `Georgia, "Times New Roman", serif`},
		{Label: "Mono", Stack: "ui-monospace, SFMono-Regular, Menlo, monospace"},
	}
}

// FontStack returns the CSS stack for a font label, or "" if the label is unknown.
func FontStack(label string) string {
	for _, f := range FontOptions() {
		if f.Label == label {
			return f.Stack
		}
	}
	return ""
}
