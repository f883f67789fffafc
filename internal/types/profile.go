// Package types provides type definitions for structured data used throughout the sitemaker system.
package types

// ProfileData is the normalized record describing a person's resume content.
// Wire names follow the camelCase structure requested from the extraction model.
type ProfileData struct {
	Name     string `json:"name" yaml:"name"`
	Title    string `json:"title" yaml:"title"`
	Email    string `json:"email" yaml:"email"`
	Phone    string `json:"phone" yaml:"phone"`
	Location string `json:"location" yaml:"location"`
	Summary  string `json:"summary" yaml:"summary"`

	Experience  []Experience `json:"experience" yaml:"experience"`
	Education   []Education  `json:"education" yaml:"education"`
	Skills      []string     `json:"skills" yaml:"skills"`
	Projects    []Project    `json:"projects" yaml:"projects"`
	SocialLinks []SocialLink `json:"socialLinks" yaml:"socialLinks"`

	// Optional extensions; nil means the source did not supply them.
	Languages      []Language      `json:"languages,omitempty" yaml:"languages,omitempty"`
	Certifications []Certification `json:"certifications,omitempty" yaml:"certifications,omitempty"`
	Achievements   []string        `json:"achievements,omitempty" yaml:"achievements,omitempty"`
}

// Experience is a single position held at a company.
type Experience struct {
	Company     string `json:"company" yaml:"company"`
	Position    string `json:"position" yaml:"position"`
	StartDate   string `json:"startDate" yaml:"startDate"`
	EndDate     string `json:"endDate" yaml:"endDate"`
	Description string `json:"description" yaml:"description"`
	CompanyURL  string `json:"companyUrl,omitempty" yaml:"companyUrl,omitempty"`
}

// Education is a degree or program at an institution.
type Education struct {
	Institution    string `json:"institution" yaml:"institution"`
	Degree         string `json:"degree" yaml:"degree"`
	Field          string `json:"field" yaml:"field"`
	StartDate      string `json:"startDate" yaml:"startDate"`
	EndDate        string `json:"endDate" yaml:"endDate"`
	InstitutionURL string `json:"institutionUrl,omitempty" yaml:"institutionUrl,omitempty"`
}

// Project is a piece of work the person wants to showcase.
type Project struct {
	Name         string        `json:"name" yaml:"name"`
	Description  string        `json:"description" yaml:"description"`
	Technologies []string      `json:"technologies" yaml:"technologies"`
	URL          string        `json:"url,omitempty" yaml:"url,omitempty"`
	GithubURL    string        `json:"githubUrl,omitempty" yaml:"githubUrl,omitempty"`
	Links        []ProjectLink `json:"links,omitempty" yaml:"links,omitempty"`
}

// ProjectLink is a free-form labelled link attached to a project.
type ProjectLink struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// SocialLink is a profile on an external platform.
type SocialLink struct {
	Platform string `json:"platform" yaml:"platform"`
	URL      string `json:"url" yaml:"url"`
	Username string `json:"username" yaml:"username"`
}

// Language is a spoken language with a proficiency level.
type Language struct {
	Name        string `json:"name" yaml:"name"`
	Proficiency string `json:"proficiency" yaml:"proficiency"`
}

// Certification is a credential issued by an organization.
type Certification struct {
	Name   string `json:"name" yaml:"name"`
	Issuer string `json:"issuer" yaml:"issuer"`
	Date   string `json:"date" yaml:"date"`
	URL    string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Clone returns a deep copy so that edits never alias the original snapshot.
func (p *ProfileData) Clone() *ProfileData {
	if p == nil {
		return nil
	}
	c := *p
	c.Experience = cloneSlice(p.Experience)
	c.Education = cloneSlice(p.Education)
	c.Skills = cloneSlice(p.Skills)
	c.SocialLinks = cloneSlice(p.SocialLinks)
	c.Languages = cloneSlice(p.Languages)
	c.Certifications = cloneSlice(p.Certifications)
	c.Achievements = cloneSlice(p.Achievements)

	if p.Projects != nil {
		c.Projects = make([]Project, len(p.Projects))
		for i, proj := range p.Projects {
			proj.Technologies = cloneSlice(proj.Technologies)
			proj.Links = cloneSlice(proj.Links)
			c.Projects[i] = proj
		}
	}
	return &c
}

// cloneSlice copies a slice, preserving the nil vs empty distinction.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
