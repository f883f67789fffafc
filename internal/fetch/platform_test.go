package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://www.linkedin.com/in/ada-lovelace", PlatformLinkedIn},
		{"https://linkedin.com/in/ada", PlatformLinkedIn},
		{"https://uk.linkedin.com/in/ada", PlatformLinkedIn},
		{"https://github.com/ada", PlatformGitHub},
		{"https://ada.dev", PlatformPersonal},
		{"https://notlinkedin.com/in/ada", PlatformPersonal},
		{"not a url", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestPlatformContentSelectors(t *testing.T) {
	assert.Contains(t, PlatformContentSelectors(PlatformLinkedIn), ".core-rail")
	assert.Contains(t, PlatformContentSelectors(PlatformGitHub), ".js-profile-editable-area")
	assert.Equal(t, DefaultTextSelectors(), PlatformContentSelectors(PlatformPersonal))
}

func TestPlatformNoiseSelectors(t *testing.T) {
	common := PlatformNoiseSelectors(PlatformPersonal)
	assert.Contains(t, common, "form")

	linkedIn := PlatformNoiseSelectors(PlatformLinkedIn)
	assert.Contains(t, linkedIn, ".authwall")
	assert.Greater(t, len(linkedIn), len(common))
}

func TestRequiresBrowser(t *testing.T) {
	assert.True(t, RequiresBrowser(PlatformLinkedIn))
	assert.False(t, RequiresBrowser(PlatformGitHub))
}
