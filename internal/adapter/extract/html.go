package extract

import (
	"fmt"
	"html"
	"regexp"
	"unicode/utf8"

	"docqa/internal/domain"
	"docqa/internal/port"
)

// Ensure HTML implements the interface.
var _ port.TextExtractor = (*HTML)(nil)

// HTML extracts visible text: script, style and comment content is
// dropped, block-level closers become line breaks, entities are decoded.
type HTML struct{}

// NewHTML creates an HTML extractor.
func NewHTML() *HTML {
	return &HTML{}
}

func (e *HTML) Type() domain.DocType {
	return domain.DocTypeHTML
}

func (e *HTML) ContentTypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

var (
	htmlScript  = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	htmlStyle   = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style>`)
	htmlComment = regexp.MustCompile(`(?s)<!--.*?-->`)
	htmlBreak   = regexp.MustCompile(`(?i)<(?:br|hr)\s*/?>|</(?:p|div|li|ul|ol|table|tr|h[1-6]|blockquote|section|article)>`)
	htmlTag     = regexp.MustCompile(`(?s)<[^>]*>`)
)

func (e *HTML) Extract(data []byte) (port.ExtractResult, error) {
	if !utf8.Valid(data) {
		return port.ExtractResult{}, fmt.Errorf("%w: not valid UTF-8 text", domain.ErrExtractionFailure)
	}

	text := string(data)
	text = htmlScript.ReplaceAllString(text, "")
	text = htmlStyle.ReplaceAllString(text, "")
	text = htmlComment.ReplaceAllString(text, "")
	text = htmlBreak.ReplaceAllString(text, "\n")
	text = htmlTag.ReplaceAllString(text, " ")
	text = html.UnescapeString(text)

	text = CleanText(text)
	if text == "" {
		return port.ExtractResult{}, domain.ErrEmptyDocument
	}
	return port.ExtractResult{Text: text}, nil
}
