package extract

import (
	"regexp"
	"strings"

	"docqa/internal/domain"
)

var (
	blankLines = regexp.MustCompile(`\n[ \t]*\n[\s]*`)
	spaceRuns  = regexp.MustCompile(`[ \t]+`)
)

// CleanText normalizes extracted text: CRLF to LF, runs of spaces to a
// single space, runs of blank lines to a single blank line, trimmed.
// Chunk offsets are relative to this cleaned form.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = spaceRuns.ReplaceAllString(text, " ")
	text = blankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// joinPages cleans each page, concatenates the non-empty ones with a
// blank-line separator, and records every page's character span in the
// joined text. Page numbers are 1-based positions in the input slice.
func joinPages(pages []string) (string, []domain.PageSpan) {
	var b strings.Builder
	var spans []domain.PageSpan

	for i, page := range pages {
		text := CleanText(page)
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		start := b.Len()
		b.WriteString(text)
		spans = append(spans, domain.PageSpan{
			Page:  i + 1,
			Start: start,
			End:   b.Len(),
		})
	}

	return b.String(), spans
}
