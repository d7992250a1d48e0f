package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"docqa/internal/domain"
	"docqa/internal/port"
)

// Ensure Markdown implements the interface.
var _ port.TextExtractor = (*Markdown)(nil)

// Markdown strips markdown syntax while keeping the written content, so
// chunk text reads as prose rather than markup.
type Markdown struct{}

// NewMarkdown creates a markdown extractor.
func NewMarkdown() *Markdown {
	return &Markdown{}
}

func (e *Markdown) Type() domain.DocType {
	return domain.DocTypeMarkdown
}

func (e *Markdown) ContentTypes() []string {
	return []string{"text/markdown", "text/x-markdown"}
}

var (
	mdFence      = regexp.MustCompile("(?m)^```[^\n]*$")
	mdHeading    = regexp.MustCompile(`(?m)^#{1,6}[ \t]+`)
	mdImage      = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	mdLink       = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	mdBoldItalic = regexp.MustCompile(`(\*{1,3}|_{1,3}|~~)([^*_~]+)(\*{1,3}|_{1,3}|~~)`)
	mdInlineCode = regexp.MustCompile("`([^`]*)`")
	mdBlockquote = regexp.MustCompile(`(?m)^[ \t]*>+[ \t]?`)
	mdListMarker = regexp.MustCompile(`(?m)^[ \t]*([-*+]|\d+\.)[ \t]+`)
	mdHRule      = regexp.MustCompile(`(?m)^[ \t]*([-*_][ \t]*){3,}$`)
	mdTablePipe  = regexp.MustCompile(`(?m)^\|`)
)

func (e *Markdown) Extract(data []byte) (port.ExtractResult, error) {
	if !utf8.Valid(data) {
		return port.ExtractResult{}, fmt.Errorf("%w: not valid UTF-8 text", domain.ErrExtractionFailure)
	}

	text := string(data)
	text = mdFence.ReplaceAllString(text, "")
	text = mdImage.ReplaceAllString(text, "$1")
	text = mdLink.ReplaceAllString(text, "$1")
	text = mdHeading.ReplaceAllString(text, "")
	text = mdHRule.ReplaceAllString(text, "")
	text = mdBlockquote.ReplaceAllString(text, "")
	text = mdListMarker.ReplaceAllString(text, "")
	text = mdTablePipe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "|", " ")
	text = mdBoldItalic.ReplaceAllString(text, "$2")
	text = mdInlineCode.ReplaceAllString(text, "$1")

	text = CleanText(text)
	if text == "" {
		return port.ExtractResult{}, domain.ErrEmptyDocument
	}
	return port.ExtractResult{Text: text}, nil
}
