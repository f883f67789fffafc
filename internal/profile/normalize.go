// Package profile normalizes loosely-typed extracted profile JSON into types.ProfileData.
//
// The normalizer is a pure function: it never performs I/O, never fails on a
// malformed nested field (those degrade to defaults), and is idempotent, so
// normalizing an already-normalized profile yields the same profile.
package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/jonathan/sitemaker/internal/types"
)

// UnknownName is the placeholder used when the source has no usable name.
const UnknownName = "Unknown"

// Options controls caller-specific normalization policy.
type Options struct {
	// MaxSkills caps the number of top-level skills kept. Zero or negative means no cap.
	MaxSkills int
	// CanonicalizeSkills maps known variants to one spelling and removes duplicates.
	CanonicalizeSkills bool
}

// Normalize converts a decoded JSON object into a ProfileData.
// It fails only when raw is nil.
func Normalize(raw map[string]any, opts Options) (*types.ProfileData, error) {
	if raw == nil {
		return nil, &InvalidStructureError{Message: "expected a JSON object, got null"}
	}

	p := &types.ProfileData{
		Name:     coerceString(raw["name"]),
		Title:    coerceString(raw["title"]),
		Email:    coerceString(raw["email"]),
		Phone:    coerceString(raw["phone"]),
		Location: coerceString(raw["location"]),
		Summary:  coerceText(raw["summary"]),
	}
	if strings.TrimSpace(p.Name) == "" {
		p.Name = UnknownName
	}

	p.Experience = normalizeExperience(raw["experience"])
	p.Education = normalizeEducation(raw["education"])
	p.Projects = normalizeProjects(raw["projects"], opts)
	p.SocialLinks = normalizeSocialLinks(raw["socialLinks"])

	p.Skills = normalizeSkillList(raw["skills"], opts)
	if opts.MaxSkills > 0 && len(p.Skills) > opts.MaxSkills {
		p.Skills = p.Skills[:opts.MaxSkills]
	}

	if langs := normalizeLanguages(raw["languages"]); len(langs) > 0 {
		p.Languages = langs
	}
	if certs := normalizeCertifications(raw["certifications"]); len(certs) > 0 {
		p.Certifications = certs
	}
	if achievements := normalizeStringList(raw["achievements"]); len(achievements) > 0 {
		p.Achievements = achievements
	}

	return p, nil
}

// NormalizeJSON decodes data and normalizes it. Numbers keep their literal
// spelling, so 2024 stays "2024" rather than "2024.0".
func NormalizeJSON(data []byte, opts Options) (*types.ProfileData, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &InvalidStructureError{Message: "empty input"}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &InvalidStructureError{Message: "input is not valid JSON", Cause: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &InvalidStructureError{Message: "unexpected data after the JSON value"}
	}

	obj, ok := asObject(v)
	if !ok {
		return nil, &InvalidStructureError{Message: "expected a JSON object, got " + kindOf(v)}
	}
	return Normalize(obj, opts)
}

// NormalizeValue accepts any representation of a profile: a decoded object,
// a JSON string or byte slice, or a Go value that marshals to a JSON object.
func NormalizeValue(v any, opts Options) (*types.ProfileData, error) {
	switch val := v.(type) {
	case nil:
		return nil, &InvalidStructureError{Message: "expected a JSON object, got null"}
	case map[string]any:
		return Normalize(val, opts)
	case string:
		return NormalizeJSON([]byte(val), opts)
	case []byte:
		return NormalizeJSON(val, opts)
	case json.RawMessage:
		return NormalizeJSON(val, opts)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, &InvalidStructureError{Message: "value cannot be encoded as JSON", Cause: err}
	}
	return NormalizeJSON(data, opts)
}

func normalizeExperience(v any) []types.Experience {
	out := []types.Experience{}
	for _, el := range asArray(v) {
		obj, ok := asObject(el)
		if !ok {
			continue
		}
		out = append(out, types.Experience{
			Company:     field(obj, "company", "organization", "employer"),
			Position:    field(obj, "position", "title", "role"),
			StartDate:   field(obj, "startDate", "start"),
			EndDate:     field(obj, "endDate", "end"),
			Description: textField(obj, "description", "highlights"),
			CompanyURL:  field(obj, "companyUrl"),
		})
	}
	return out
}

func normalizeEducation(v any) []types.Education {
	out := []types.Education{}
	for _, el := range asArray(v) {
		obj, ok := asObject(el)
		if !ok {
			continue
		}
		out = append(out, types.Education{
			Institution:    field(obj, "institution", "school"),
			Degree:         field(obj, "degree"),
			Field:          field(obj, "field", "fieldOfStudy", "major"),
			StartDate:      field(obj, "startDate", "start"),
			EndDate:        field(obj, "endDate", "end"),
			InstitutionURL: field(obj, "institutionUrl"),
		})
	}
	return out
}

func normalizeProjects(v any, opts Options) []types.Project {
	techOpts := Options{CanonicalizeSkills: opts.CanonicalizeSkills}
	out := []types.Project{}
	for _, el := range asArray(v) {
		obj, ok := asObject(el)
		if !ok {
			continue
		}
		out = append(out, types.Project{
			Name:         field(obj, "name", "title"),
			Description:  textField(obj, "description"),
			Technologies: normalizeSkillList(obj["technologies"], techOpts),
			URL:          field(obj, "url"),
			GithubURL:    field(obj, "githubUrl"),
			Links:        normalizeProjectLinks(obj["links"]),
		})
	}
	return out
}

func normalizeProjectLinks(v any) []types.ProjectLink {
	var out []types.ProjectLink
	for _, el := range asArray(v) {
		var link types.ProjectLink
		if obj, ok := asObject(el); ok {
			link = types.ProjectLink{Label: field(obj, "label", "name", "title"), URL: field(obj, "url", "href")}
		} else {
			link = types.ProjectLink{URL: coerceString(el)}
		}
		if strings.TrimSpace(link.URL) == "" {
			continue
		}
		if link.Label == "" {
			link.Label = registrableDomain(link.URL)
		}
		out = append(out, link)
	}
	return out
}

func normalizeSocialLinks(v any) []types.SocialLink {
	out := []types.SocialLink{}
	for _, el := range asArray(v) {
		obj, ok := asObject(el)
		if !ok {
			continue
		}
		link := types.SocialLink{
			Platform: field(obj, "platform", "network"),
			URL:      field(obj, "url"),
			Username: field(obj, "username"),
		}
		if link.Platform == "" {
			link.Platform = platformFromURL(link.URL)
		}
		if link.Username == "" {
			link.Username = usernameFromURL(link.URL)
		}
		out = append(out, link)
	}
	return out
}

func normalizeLanguages(v any) []types.Language {
	var out []types.Language
	for _, el := range asArray(v) {
		var lang types.Language
		if obj, ok := asObject(el); ok {
			lang = types.Language{Name: field(obj, "name", "language"), Proficiency: field(obj, "proficiency", "level")}
		} else {
			lang = types.Language{Name: coerceString(el)}
		}
		if strings.TrimSpace(lang.Name) != "" {
			out = append(out, lang)
		}
	}
	return out
}

func normalizeCertifications(v any) []types.Certification {
	var out []types.Certification
	for _, el := range asArray(v) {
		var cert types.Certification
		if obj, ok := asObject(el); ok {
			cert = types.Certification{
				Name:   field(obj, "name", "title"),
				Issuer: field(obj, "issuer", "organization"),
				Date:   field(obj, "date"),
				URL:    field(obj, "url"),
			}
		} else {
			cert = types.Certification{Name: coerceString(el)}
		}
		if strings.TrimSpace(cert.Name) != "" {
			out = append(out, cert)
		}
	}
	return out
}

func normalizeStringList(v any) []string {
	var out []string
	for _, el := range asArray(v) {
		if s := coerceString(el); strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
