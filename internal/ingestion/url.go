package ingestion

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/jonathan/sitemaker/internal/fetch"
	"github.com/sirupsen/logrus"
)

// ErrInvalidURL is returned when the profile URL is malformed.
var ErrInvalidURL = errors.New("invalid URL")

// ingestURL fetches a profile page and extracts from its text. LinkedIn and
// other pages that cannot be read fall back to a URL-only prompt rather than
// failing outright.
func (i *Ingester) ingestURL(ctx context.Context, rawURL string, onStatus StatusFunc) (map[string]any, *Metadata, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, nil, fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}

	platform := fetch.DetectPlatform(rawURL)
	log := i.log.WithFields(logrus.Fields{"url": rawURL, "platform": platform})

	meta := NewMetadata([]byte(rawURL), rawURL)
	meta.Kind = KindURL
	meta.MimeType = "text/html"
	meta.Platform = string(platform)

	onStatus(StatusFetching)
	text, html := i.pageText(ctx, rawURL, platform, log, onStatus)
	text = CleanText(text)
	meta.TextLength = len(text)
	if html != "" {
		if links, err := fetch.ExtractLinks(html, rawURL); err == nil {
			meta.ExtractedLinks = links
		}
	}

	onStatus(StatusExtracting)
	if fetch.ShouldUseBrowser(text) {
		log.WithField("chars", len(text)).Info("page content unavailable, extracting from URL only")
		meta.Method = MethodURLOnly
		raw, err := i.source.FromURL(ctx, rawURL)
		if err != nil {
			return nil, nil, &ExtractionError{Stage: "url", Message: "model extraction failed", Cause: err}
		}
		return raw, meta, nil
	}

	meta.Method = MethodText
	raw, err := i.source.FromText(ctx, string(platform)+" profile page", text)
	if err != nil {
		return nil, nil, &ExtractionError{Stage: "url", Message: "model extraction failed", Cause: err}
	}
	return raw, meta, nil
}

// pageText returns the main text of the page and the HTML it came from.
// Failures are logged and yield empty text so the caller can fall back.
func (i *Ingester) pageText(ctx context.Context, rawURL string, platform fetch.Platform, log logrus.FieldLogger, onStatus StatusFunc) (string, string) {
	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	var text, html string
	result, err := fetch.URL(ctx, rawURL, i.opts.Fetch)
	if err != nil {
		log.WithError(err).Warn("fetch failed")
	} else {
		html = result.HTML
		log.WithField("bytes", len(html)).Debug("fetched page")
		text, err = fetch.ExtractMainText(html, contentSelectors, noiseSelectors...)
		if err != nil {
			log.WithError(err).Warn("text extraction failed")
			text = ""
		}
	}

	if !fetch.ShouldUseBrowser(text) {
		return text, html
	}
	if !i.opts.UseBrowser && !fetch.RequiresBrowser(platform) {
		return text, html
	}

	onStatus(StatusRendering)
	log.WithField("chars", len(text)).Debug("content too short, rendering in browser")
	rendered, err := i.renderPage(ctx, rawURL, log)
	if err != nil {
		log.WithError(err).Warn("browser rendering failed")
		return text, html
	}
	browserText, err := fetch.ExtractMainText(rendered, contentSelectors, noiseSelectors...)
	if err != nil {
		log.WithError(err).Warn("browser text extraction failed")
		return text, html
	}
	return browserText, rendered
}
