package export

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

var (
	numberedItem = regexp.MustCompile(`^\d+\.\s`)
	italicSpan   = regexp.MustCompile(`(?:^|\s)\*([^*]+)\*(?:\s|$)`)
	inlineCode   = regexp.MustCompile("`([^`]+)`")
	linkSyntax   = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)
	escapedChar  = regexp.MustCompile(`\\([\\*_#\-+.!\[\]()])`)
)

var headingSizes = map[int]float64{1: 20, 2: 15, 3: 12, 4: 11, 5: 10, 6: 10}

// MarkdownPDF lays out Markdown as a simple A4 document. Only headings,
// paragraphs and lists are styled; links keep their text and target.
func MarkdownPDF(markdown, title string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetCreator("sitemaker", true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Core fonts are cp1252; translate and let unmappable runes degrade.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			pdf.Ln(2)

		case strings.HasPrefix(trimmed, "#"):
			level := len(trimmed) - len(strings.TrimLeft(trimmed, "#"))
			size, ok := headingSizes[level]
			if !ok {
				size = 10
			}
			pdf.Ln(3)
			pdf.SetFont("Helvetica", "B", size)
			pdf.MultiCell(0, size*0.55, tr(cleanInline(strings.TrimLeft(trimmed, "# "))), "", "L", false)
			if level <= 2 {
				x, y := pdf.GetXY()
				pdf.SetDrawColor(200, 200, 200)
				pdf.Line(x, y+1, 195, y+1)
				pdf.Ln(2)
			}

		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr("• "+cleanInline(trimmed[2:])), "", "L", false)

		case numberedItem.MatchString(trimmed):
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(cleanInline(trimmed)), "", "L", false)

		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(cleanInline(trimmed)), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// cleanInline strips inline Markdown markers. Links become "text (url)"
// unless the text already is the url.
func cleanInline(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "__", "")
	text = italicSpan.ReplaceAllString(text, " $1 ")
	text = inlineCode.ReplaceAllString(text, "$1")
	text = linkSyntax.ReplaceAllStringFunc(text, func(m string) string {
		parts := linkSyntax.FindStringSubmatch(m)
		label, target := parts[1], parts[2]
		if label == "" || label == target || strings.HasPrefix(target, "#") {
			if label == "" {
				return target
			}
			return label
		}
		return label + " (" + target + ")"
	})
	text = escapedChar.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
