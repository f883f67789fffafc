// Package settings manages site presentation settings: defaults, the preset
// catalogue, merging and loading from disk.
package settings

import (
	"fmt"
	"sort"

	"github.com/jonathan/sitemaker/internal/types"
)

// Preset is a named bundle of settings. Empty fields in Settings are
// "not specified" and leave the current value untouched when applied.
type Preset struct {
	Name        string             `json:"name"`
	Label       string             `json:"label"`
	Description string             `json:"description"`
	Settings    types.SiteSettings `json:"settings"`
}

// UnknownPresetError is returned when a preset name is not in the catalogue.
type UnknownPresetError struct {
	Name string
}

func (e *UnknownPresetError) Error() string {
	return fmt.Sprintf("unknown preset: %q", e.Name)
}

var catalogue = map[string]Preset{
	"classic": {
		Name:        "classic",
		Label:       "Classic",
		Description: "Monospace type on white with blue links.",
		Settings: types.SiteSettings{
			FontFamily:      types.DefaultFontFamily,
			Theme:           types.ThemeLight,
			PrimaryColor:    "#2563eb",
			BackgroundColor: "#ffffff",
			TextColor:       "#374151",
		},
	},
	"minimal": {
		Name:        "minimal",
		Label:       "Minimal",
		Description: "Inter with near-black accents.",
		Settings: types.SiteSettings{
			FontFamily:      types.FontStack("Inter"),
			Theme:           types.ThemeLight,
			PrimaryColor:    "#111827",
			BackgroundColor: "#ffffff",
			TextColor:       "#374151",
		},
	},
	"midnight": {
		Name:        "midnight",
		Label:       "Midnight",
		Description: "Dark theme with a soft blue accent.",
		Settings: types.SiteSettings{
			FontFamily:      types.FontStack("System"),
			Theme:           types.ThemeDark,
			PrimaryColor:    "#58a6ff",
			BackgroundColor: "#0d1117",
			TextColor:       "#d1d5db",
		},
	},
	"ocean": {
		Name:        "ocean",
		Label:       "Ocean",
		Description: "Cool cyan accents on a pale blue page.",
		Settings: types.SiteSettings{
			FontFamily:      types.FontStack("System"),
			Theme:           types.ThemeLight,
			PrimaryColor:    "#0e7490",
			BackgroundColor: "#f0f9ff",
			TextColor:       "#0f172a",
		},
	},
	"forest": {
		Name:        "forest",
		Label:       "Forest",
		Description: "Serif type with green accents.",
		Settings: types.SiteSettings{
			FontFamily:      types.FontStack("Serif"),
			Theme:           types.ThemeLight,
			PrimaryColor:    "#15803d",
			BackgroundColor: "#f7fee7",
			TextColor:       "#1f2937",
		},
	},
	"academic": {
		Name:        "academic",
		Label:       "Academic",
		Description: "Serif CV layout with academic section names.",
		Settings: types.SiteSettings{
			FontFamily:   types.FontStack("Serif"),
			PrimaryColor: "#1d4ed8",
			SectionTitles: types.SectionTitles{
				About:      "Profile",
				Experience: "Appointments",
				Skills:     "Areas of Expertise",
				Projects:   "Selected Work",
			},
		},
	},
}

// Presets returns the catalogue sorted by name.
func Presets() []Preset {
	out := make([]Preset, 0, len(catalogue))
	for _, p := range catalogue {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// GetPreset looks up a preset by name.
func GetPreset(name string) (Preset, error) {
	p, ok := catalogue[name]
	if !ok {
		return Preset{}, &UnknownPresetError{Name: name}
	}
	return p, nil
}

// ApplyPreset merges the named preset into current. Fields the preset does
// not set, including custom section titles, are preserved.
func ApplyPreset(current types.SiteSettings, name string) (types.SiteSettings, error) {
	p, err := GetPreset(name)
	if err != nil {
		return current, err
	}
	return Merge(current, p.Settings), nil
}
