package llm

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jonathan/sitemaker/internal/prompts"
)

// DefaultPromptSkills is the skill count requested from the model when the
// caller does not set one.
const DefaultPromptSkills = 10

// ProfileExtractor asks the model for a raw profile object. The result is
// untrusted and must go through the profile normalizer.
type ProfileExtractor struct {
	client    Client
	maxSkills int
}

// NewProfileExtractor wraps client. maxSkills <= 0 uses DefaultPromptSkills.
func NewProfileExtractor(client Client, maxSkills int) *ProfileExtractor {
	if maxSkills <= 0 {
		maxSkills = DefaultPromptSkills
	}
	return &ProfileExtractor{client: client, maxSkills: maxSkills}
}

// FromText extracts a profile from plain text. fileType names the source
// for the prompt, e.g. "PDF resume" or "LinkedIn profile page".
func (e *ProfileExtractor) FromText(ctx context.Context, fileType, content string) (map[string]any, error) {
	prompt, err := prompts.Render(prompts.ExtractionFile, prompts.KeyProfileFromText, map[string]string{
		"FileType":  fileType,
		"Content":   content,
		"MaxSkills": strconv.Itoa(e.maxSkills),
	})
	if err != nil {
		return nil, err
	}

	raw, err := e.client.GenerateJSON(ctx, prompt, TierStandard)
	if err != nil {
		return nil, fmt.Errorf("failed to extract profile from %s: %w", fileType, err)
	}
	return ParseJSONObject(raw)
}

// FromBlob sends a document or image inline and extracts a profile from it.
func (e *ProfileExtractor) FromBlob(ctx context.Context, fileType string, blob Blob) (map[string]any, error) {
	prompt, err := prompts.Render(prompts.ExtractionFile, prompts.KeyProfileFromFile, map[string]string{
		"FileType":  fileType,
		"MaxSkills": strconv.Itoa(e.maxSkills),
	})
	if err != nil {
		return nil, err
	}

	raw, err := e.client.GenerateJSONFromBlob(ctx, prompt, blob, TierAdvanced)
	if err != nil {
		return nil, fmt.Errorf("failed to extract profile from %s: %w", fileType, err)
	}
	return ParseJSONObject(raw)
}

// FromURL builds a minimal profile from a profile URL alone, for pages that
// could not be fetched.
func (e *ProfileExtractor) FromURL(ctx context.Context, profileURL string) (map[string]any, error) {
	prompt, err := prompts.Render(prompts.ExtractionFile, prompts.KeyProfileFromURL, map[string]string{
		"URL":       profileURL,
		"MaxSkills": strconv.Itoa(e.maxSkills),
	})
	if err != nil {
		return nil, err
	}

	raw, err := e.client.GenerateJSON(ctx, prompt, TierLite)
	if err != nil {
		return nil, fmt.Errorf("failed to extract profile from URL %s: %w", profileURL, err)
	}
	return ParseJSONObject(raw)
}
