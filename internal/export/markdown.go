package export

import (
	"fmt"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

// pageChrome matches the parts of a generated page that only make sense in a
// browser: the action header, the section menu and all scripts and styles.
const pageChrome = "head, script, style, header.header, nav.top-nav"

var extraBlankLines = regexp.MustCompile(`\n{3,}`)

// Markdown converts a generated portfolio page to Markdown.
func Markdown(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find(pageChrome).Remove()

	body, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("failed to serialize HTML: %w", err)
	}

	md, err := htmltomarkdown.ConvertString(body)
	if err != nil {
		return "", err
	}
	md = extraBlankLines.ReplaceAllString(md, "\n\n")
	return strings.TrimSpace(md) + "\n", nil
}
