package rendering

import (
	"strings"
)

// NormalizeURL prefixes https:// onto values that carry no http(s) scheme,
// so bare domains like "github.com/x" become usable links.
func NormalizeURL(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return "https://" + u
}

// DownloadFilename is the file name offered for the generated site.
func DownloadFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	b.WriteString("_portfolio.html")
	return b.String()
}

// metaDescription trims text to at most maxLen runes, preferring a word
// boundary when one falls in the last fifth.
func metaDescription(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	trimmed := string(runes[:maxLen-3])
	if i := strings.LastIndex(trimmed, " "); i >= 0 && len([]rune(trimmed[:i])) > maxLen*4/5 {
		return trimmed[:i] + "..."
	}
	return trimmed + "..."
}
