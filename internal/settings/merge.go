package settings

import "github.com/jonathan/sitemaker/internal/types"

// Merge returns base with every non-empty field of overlay applied on top.
func Merge(base, overlay types.SiteSettings) types.SiteSettings {
	out := base
	setIf(&out.FontFamily, overlay.FontFamily)
	setIf(&out.Theme, overlay.Theme)
	setIf(&out.PrimaryColor, overlay.PrimaryColor)
	setIf(&out.BackgroundColor, overlay.BackgroundColor)
	setIf(&out.TextColor, overlay.TextColor)

	t := &out.SectionTitles
	o := overlay.SectionTitles
	setIf(&t.About, o.About)
	setIf(&t.Experience, o.Experience)
	setIf(&t.Education, o.Education)
	setIf(&t.Skills, o.Skills)
	setIf(&t.Projects, o.Projects)
	setIf(&t.Languages, o.Languages)
	setIf(&t.Certifications, o.Certifications)
	setIf(&t.Achievements, o.Achievements)
	return out
}

// WithDefaults fills every unset field from types.DefaultSiteSettings.
// Color fields are left alone under the dark theme so the renderer can apply
// its dark fallbacks.
func WithDefaults(s types.SiteSettings) types.SiteSettings {
	defaults := types.DefaultSiteSettings()
	if s.Theme == types.ThemeDark {
		defaults.BackgroundColor = ""
		defaults.TextColor = ""
	}
	return Merge(defaults, s)
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
