package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known profile host.
type Platform string

const (
	// PlatformLinkedIn is a LinkedIn member profile
	PlatformLinkedIn Platform = "linkedin"
	// PlatformGitHub is a GitHub user or organization page
	PlatformGitHub Platform = "github"
	// PlatformPersonal is any other site, assumed to be a personal page
	PlatformPersonal Platform = "personal"
	// PlatformUnknown is an unparseable URL
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the profile host from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Host == "" {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Hostname())
	switch {
	case host == "linkedin.com" || strings.HasSuffix(host, ".linkedin.com"):
		return PlatformLinkedIn
	case host == "github.com" || host == "www.github.com":
		return PlatformGitHub
	default:
		return PlatformPersonal
	}
}

// PlatformContentSelectors returns content selectors for a platform.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformLinkedIn:
		return []string{
			"main.scaffold-layout__main", // Signed-in layout
			".core-rail",                 // Public profile
			"section.top-card-layout",
			"main",
		}
	case PlatformGitHub:
		return []string{
			".js-profile-editable-area", // Sidebar bio
			"[itemtype='http://schema.org/Person']",
			".application-main",
			"main",
		}
	default:
		return DefaultTextSelectors()
	}
}

// PlatformNoiseSelectors returns noise exclusion selectors for a platform.
func PlatformNoiseSelectors(platform Platform) []string {
	common := []string{
		"form",
		".cookie-banner",
		".cookie-consent",
		".gdpr-notice",
		".share-buttons",
		"[aria-hidden='true']",
	}

	switch platform {
	case PlatformLinkedIn:
		return append(common,
			".authwall",
			".join-form",
			".sign-in-modal",
			".contextual-sign-in-modal",
			"aside.right-rail",
		)
	case PlatformGitHub:
		return append(common,
			".js-yearly-contributions",
			".js-calendar-graph",
			".footer",
		)
	default:
		return common
	}
}

// RequiresBrowser reports whether pages on platform usually render their
// content client-side.
func RequiresBrowser(platform Platform) bool {
	return platform == PlatformLinkedIn
}
