package rendering

import (
	"strings"
	"testing"

	"github.com/jonathan/sitemaker/internal/profile"
	"github.com/jonathan/sitemaker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProfile() *types.ProfileData {
	return &types.ProfileData{
		Name:     "Grace Hopper",
		Title:    "Rear Admiral",
		Email:    "grace@example.com",
		Location: "Arlington, VA",
		Summary:  "Pioneer of machine-independent programming languages.",
		Experience: []types.Experience{
			{Company: "US Navy", Position: "Computer Scientist", StartDate: "1943", EndDate: "1986", Description: "Led COBOL work.", CompanyURL: "navy.mil"},
		},
		Education: []types.Education{
			{Institution: "Yale University", Degree: "PhD", Field: "Mathematics", StartDate: "1930", EndDate: "1934"},
		},
		Skills: []string{"COBOL", "FLOW-MATIC"},
		Projects: []types.Project{
			{
				Name:         "A-0 System",
				Description:  "First compiler.",
				Technologies: []string{"UNIVAC"},
				GithubURL:    "github.com/grace/a0",
				Links:        []types.ProjectLink{{Label: "Paper", URL: "https://example.com/a0.pdf"}},
			},
		},
		SocialLinks: []types.SocialLink{
			{Platform: "github", URL: "github.com/grace", Username: "grace"},
			{Platform: "blog", URL: ""},
		},
	}
}

func TestGenerateSite_Structure(t *testing.T) {
	html, err := GenerateSite(sampleProfile(), nil)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>Grace Hopper - Personal Website</title>")
	assert.Contains(t, html, `href="mailto:grace@example.com"`)
	assert.Contains(t, html, ">CONTACT</a>")
	assert.Contains(t, html, ">GITHUB</a>")
	assert.NotContains(t, html, ">BLOG</a>", "links without a URL are skipped")
	assert.Contains(t, html, "📍 Arlington, VA")
	assert.Contains(t, html, `href="https://navy.mil"`)
	assert.Contains(t, html, "PhD in Mathematics")
	assert.Contains(t, html, "1930 - 1934")
	assert.Contains(t, html, `href="https://github.com/grace/a0"`)
	assert.Contains(t, html, ">Paper</a>")
	assert.Contains(t, html, `<meta name="keywords" content="COBOL, FLOW-MATIC">`)
	assert.Contains(t, html, `"@type":"Person"`)
	assert.Contains(t, html, `a.download = "Grace_Hopper_portfolio.html"`)
	assert.NotContains(t, html, "Full-Time")

	order := []string{
		`class="top-nav"`,
		`class="profile-header"`,
		`id="about"`,
		`id="experience"`,
		`id="education"`,
		`id="projects"`,
		`id="skills"`,
		"function downloadHTML",
	}
	last := -1
	for _, marker := range order {
		idx := strings.Index(html, marker)
		require.NotEqual(t, -1, idx, "missing %s", marker)
		assert.Greater(t, idx, last, "%s out of order", marker)
		last = idx
	}
}

func TestGenerateSite_Deterministic(t *testing.T) {
	s := types.SiteSettings{Theme: types.ThemeDark, SectionTitles: types.SectionTitles{Skills: "Capabilities"}}
	first, err := GenerateSite(sampleProfile(), &s)
	require.NoError(t, err)
	second, err := GenerateSite(sampleProfile(), &s)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateSite_SectionSuppression(t *testing.T) {
	p := sampleProfile()
	p.Projects = []types.Project{}

	for _, label := range []string{"", "Projects", "Things I Built"} {
		s := types.SiteSettings{SectionTitles: types.SectionTitles{Projects: label}}
		html, err := GenerateSite(p, &s)
		require.NoError(t, err)
		assert.NotContains(t, html, "Projects")
		assert.NotContains(t, html, `id="projects"`)
		if label != "" {
			assert.NotContains(t, html, label)
		}
	}

	p.Experience = nil
	p.Education = nil
	p.Skills = nil
	html, err := GenerateSite(p, nil)
	require.NoError(t, err)
	assert.NotContains(t, html, "Work Experience")
	assert.NotContains(t, html, `id="education"`)
	assert.NotContains(t, html, `id="skills"`)
	assert.Contains(t, html, `id="about"`, "about is always rendered")
}

func TestGenerateSite_SectionTitleOverride(t *testing.T) {
	s := types.SiteSettings{SectionTitles: types.SectionTitles{Skills: "Capabilities"}}
	html, err := GenerateSite(sampleProfile(), &s)
	require.NoError(t, err)
	assert.Contains(t, html, "Capabilities")
	assert.NotContains(t, html, "Skills")
	assert.Contains(t, html, ">Work Experience</h2>", "unset titles use the defaults")
}

func TestGenerateSite_SkillsCapped(t *testing.T) {
	p := sampleProfile()
	p.Skills = nil
	for i := 0; i < 15; i++ {
		p.Skills = append(p.Skills, "skill-"+string(rune('a'+i)))
	}
	html, err := GenerateSite(p, nil)
	require.NoError(t, err)
	assert.Equal(t, MaxRenderedSkills, strings.Count(html, `class="skill-tag"`))
	assert.Contains(t, html, "skill-j")
	assert.NotContains(t, html, "skill-k")
}

func TestGenerateSite_ThemeFallback(t *testing.T) {
	s := types.SiteSettings{Theme: types.ThemeDark}
	html, err := GenerateSite(sampleProfile(), &s)
	require.NoError(t, err)
	assert.Contains(t, html, "--bg: #0d1117;")
	assert.Contains(t, html, "--text: #d1d5db;")
	assert.Contains(t, html, "--surface: #161b22;")

	s.BackgroundColor = "#222222"
	html, err = GenerateSite(sampleProfile(), &s)
	require.NoError(t, err)
	assert.Contains(t, html, "--bg: #222222;")
	assert.NotContains(t, html, "#0d1117")

	html, err = GenerateSite(sampleProfile(), nil)
	require.NoError(t, err)
	assert.Contains(t, html, "--bg: #ffffff;")
}

func TestGenerateSite_FontStackSurvivesEscaping(t *testing.T) {
	html, err := GenerateSite(sampleProfile(), nil)
	require.NoError(t, err)
	assert.Contains(t, html, "font-family: "+types.DefaultFontFamily+";")
	assert.NotContains(t, html, "ZgotmplZ")
}

func TestGenerateSite_URLNormalization(t *testing.T) {
	p := sampleProfile()
	p.SocialLinks = []types.SocialLink{{Platform: "github", URL: "github.com/x"}}
	html, err := GenerateSite(p, nil)
	require.NoError(t, err)
	assert.Contains(t, html, `href="https://github.com/x"`)
}

func TestGenerateSite_EscapesUserContent(t *testing.T) {
	p := sampleProfile()
	p.Name = `<script>alert("x")</script>`
	p.Summary = `<img src=x onerror=alert(1)>`
	p.SocialLinks = []types.SocialLink{{Platform: "evil", URL: "javascript:alert(1)"}}

	html, err := GenerateSite(p, nil)
	require.NoError(t, err)
	assert.NotContains(t, html, `<script>alert("x")</script>`)
	assert.NotContains(t, html, `<img src=x`)
	assert.Contains(t, html, "&lt;script&gt;")
	assert.NotContains(t, html, `href="javascript:`)
}

func TestGenerateSite_AboutFallback(t *testing.T) {
	p := sampleProfile()
	p.Summary = ""
	html, err := GenerateSite(p, nil)
	require.NoError(t, err)
	assert.Contains(t, html, DefaultAbout)
}

func TestGenerateSite_OptionalSections(t *testing.T) {
	p := sampleProfile()
	p.Languages = []types.Language{{Name: "English", Proficiency: "Native"}}
	p.Certifications = []types.Certification{{Name: "Navy Commendation", Issuer: "USN", Date: "1973"}}
	p.Achievements = []string{"Coined the term debugging"}

	html, err := GenerateSite(p, nil)
	require.NoError(t, err)
	assert.Contains(t, html, "English (Native)")
	assert.Contains(t, html, "Navy Commendation, USN (1973)")
	assert.Contains(t, html, "Coined the term debugging")
	assert.Less(t, strings.Index(html, `id="skills"`), strings.Index(html, `id="languages"`))
}

func TestGenerateSite_Errors(t *testing.T) {
	_, err := GenerateSite(nil, nil)
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)

	tests := []struct {
		name     string
		settings types.SiteSettings
	}{
		{"unknown theme", types.SiteSettings{Theme: "sepia"}},
		{"css injection in color", types.SiteSettings{PrimaryColor: "red; } body { display:none"}},
		{"css injection in font", types.SiteSettings{FontFamily: "Arial; } </style><script>"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateSite(sampleProfile(), &tt.settings)
			var genErr *GenerationError
			assert.ErrorAs(t, err, &genErr)
		})
	}
}

func TestGenerateSite_AdaScenario(t *testing.T) {
	p, err := profile.Normalize(map[string]any{"name": "Ada Lovelace", "skills": "Math"}, profile.Options{})
	require.NoError(t, err)
	assert.Empty(t, p.Skills)

	html, err := GenerateSite(p, nil)
	require.NoError(t, err)
	assert.Contains(t, html, "<title>Ada Lovelace - Personal Website</title>")
	assert.NotContains(t, html, "Skills")
	assert.NotContains(t, html, `class="skill-tag"`)
}

func TestResolveTheme(t *testing.T) {
	light := ResolveTheme(types.SiteSettings{})
	assert.False(t, light.Dark)
	assert.Equal(t, "#ffffff", light.Background)
	assert.Equal(t, "#2563eb", light.Primary)

	dark := ResolveTheme(types.SiteSettings{Theme: types.ThemeDark, TextColor: "#eeeeee"})
	assert.True(t, dark.Dark)
	assert.Equal(t, DarkBackground, dark.Background)
	assert.Equal(t, "#eeeeee", dark.Text)
	assert.Equal(t, "#f0f6fc", dark.Heading)
}

func TestNormalizeURL(t *testing.T) {
	tests := map[string]string{
		"github.com/x":         "https://github.com/x",
		"http://example.com":   "http://example.com",
		"https://example.com":  "https://example.com",
		"  example.com/path  ": "https://example.com/path",
		"":                     "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeURL(in), in)
	}
}

func TestDownloadFilename(t *testing.T) {
	assert.Equal(t, "Ada_Lovelace_portfolio.html", DownloadFilename("Ada Lovelace"))
	assert.Equal(t, "Jos__Mar_a_portfolio.html", DownloadFilename("José María"))
	assert.Equal(t, "_portfolio.html", DownloadFilename(""))
}

func TestMetaDescription(t *testing.T) {
	assert.Equal(t, "short", metaDescription("short", 160))

	long := strings.Repeat("word ", 50)
	got := metaDescription(long, 160)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len([]rune(got)), 160)
}
