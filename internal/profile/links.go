package profile

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// parseLooseURL parses a URL that may be missing its scheme.
func parseLooseURL(raw string) (*url.URL, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	candidate := raw
	if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
		candidate = "https://" + candidate
	}
	parsed, err := url.Parse(candidate)
	if err != nil || parsed.Hostname() == "" {
		return nil, false
	}
	return parsed, true
}

// registrableDomain returns the eTLD+1 of a URL ("www.github.com/x" -> "github.com").
func registrableDomain(raw string) string {
	parsed, ok := parseLooseURL(raw)
	if !ok {
		return ""
	}
	host := strings.ToLower(parsed.Hostname())
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return strings.TrimPrefix(host, "www.")
	}
	return domain
}

// platformFromURL derives a platform name from the registrable domain,
// dropping the public suffix ("github.com" -> "github", "bbc.co.uk" -> "bbc").
func platformFromURL(raw string) string {
	domain := registrableDomain(raw)
	if domain == "" {
		return ""
	}
	suffix, _ := publicsuffix.PublicSuffix(domain)
	label := strings.TrimSuffix(domain, "."+suffix)
	if label == "" {
		return domain
	}
	return label
}

// usernameFromURL returns the handle of a profile URL
// ("github.com/ada" -> "ada", "linkedin.com/in/ada/" -> "ada").
// Deeper paths are not profile pages and yield "".
func usernameFromURL(raw string) string {
	parsed, ok := parseLooseURL(raw)
	if !ok {
		return ""
	}
	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return ""
	}
	segments := strings.Split(path, "/")
	switch {
	case len(segments) == 1:
		return strings.TrimPrefix(segments[0], "@")
	case len(segments) == 2 && (segments[0] == "in" || segments[0] == "u" || segments[0] == "user"):
		return segments[1]
	}
	return ""
}
