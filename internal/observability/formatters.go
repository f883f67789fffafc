// Package observability provides logging setup and formatted output for
// verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/sitemaker/internal/ingestion"
	"github.com/jonathan/sitemaker/internal/schemas"
	"github.com/jonathan/sitemaker/internal/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

var titleCase = cases.Title(language.English)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// writeList writes up to limit items under a heading, then a count of the rest.
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	for _, item := range items[:min(len(items), limit)] {
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}

// PrintProfile outputs a human-readable summary of a normalized profile.
func (p *Printer) PrintProfile(profile *types.ProfileData) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", profile.Name))
	if profile.Title != "" {
		sb.WriteString(fmt.Sprintf("Title:    %s\n", profile.Title))
	}
	if profile.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", profile.Location))
	}
	if profile.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", profile.Email))
	}
	sb.WriteString("\n")

	roles := make([]string, 0, len(profile.Experience))
	for _, e := range profile.Experience {
		role := e.Position
		if e.Company != "" {
			role += " @ " + e.Company
		}
		roles = append(roles, role)
	}
	writeList(&sb, "Experience", roles, maxItemsToShow)

	degrees := make([]string, 0, len(profile.Education))
	for _, e := range profile.Education {
		degrees = append(degrees, strings.TrimSpace(e.Degree+" "+e.Institution))
	}
	writeList(&sb, "Education", degrees, 3)

	if len(profile.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills (%d): %s\n", len(profile.Skills), strings.Join(profile.Skills, ", ")))
	}
	sb.WriteString(fmt.Sprintf("Projects: %d   Links: %d\n", len(profile.Projects), len(profile.SocialLinks)))

	p.printBox("PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSettings outputs the resolved site settings.
func (p *Printer) PrintSettings(s types.SiteSettings) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Theme:      %s\n", titleCase.String(s.Theme)))
	sb.WriteString(fmt.Sprintf("Primary:    %s\n", s.PrimaryColor))
	if s.BackgroundColor != "" {
		sb.WriteString(fmt.Sprintf("Background: %s\n", s.BackgroundColor))
	}
	if s.TextColor != "" {
		sb.WriteString(fmt.Sprintf("Text:       %s\n", s.TextColor))
	}
	sb.WriteString(fmt.Sprintf("Font:       %s\n", s.FontFamily))
	sb.WriteString("\n")

	t := s.SectionTitles
	sb.WriteString("Sections:\n")
	for _, pair := range [][2]string{
		{"about", t.About}, {"experience", t.Experience}, {"education", t.Education},
		{"skills", t.Skills}, {"projects", t.Projects}, {"languages", t.Languages},
		{"certifications", t.Certifications}, {"achievements", t.Achievements},
	} {
		if pair[1] != "" {
			sb.WriteString(fmt.Sprintf("  %-15s %s\n", pair[0], pair[1]))
		}
	}

	p.printBox("SITE SETTINGS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMetadata outputs how a profile was extracted.
func (p *Printer) PrintMetadata(meta *ingestion.Metadata) {
	if meta == nil {
		return
	}

	var sb strings.Builder
	source := meta.FileName
	if meta.URL != "" {
		source = meta.URL
	}
	if source != "" {
		sb.WriteString(fmt.Sprintf("Source:   %s\n", source))
	}
	sb.WriteString(fmt.Sprintf("Kind:     %s\n", meta.Kind))
	if meta.MimeType != "" {
		sb.WriteString(fmt.Sprintf("MIME:     %s\n", meta.MimeType))
	}
	if meta.Platform != "" {
		sb.WriteString(fmt.Sprintf("Platform: %s\n", titleCase.String(meta.Platform)))
	}
	sb.WriteString(fmt.Sprintf("Method:   %s\n", meta.Method))
	sb.WriteString(fmt.Sprintf("Text:     %d chars\n", meta.TextLength))
	if len(meta.Hash) >= 12 {
		sb.WriteString(fmt.Sprintf("Hash:     %s\n", meta.Hash[:12]))
	}
	if len(meta.ExtractedLinks) > 0 {
		sb.WriteString("\n")
		writeList(&sb, "Links", meta.ExtractedLinks, maxItemsToShow)
	}

	p.printBox("EXTRACTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidation outputs schema validation errors.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidation(errs []schemas.FieldError) {
	if len(errs) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ DOCUMENT IS VALID")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d errors:\n\n", len(errs)))
	for i, e := range errs {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", e.Field))
		sb.WriteString(fmt.Sprintf("  %s\n", e.Message))
		if i < len(errs)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SCHEMA VALIDATION", strings.TrimSuffix(sb.String(), "\n"))
}
