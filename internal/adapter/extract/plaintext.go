package extract

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"docqa/internal/domain"
	"docqa/internal/port"
)

// Ensure PlainText implements the interface.
var _ port.TextExtractor = (*PlainText)(nil)

// PlainText handles .txt uploads. Form feeds are honored as page
// separators so paginated text exports keep their page citations.
type PlainText struct{}

// NewPlainText creates a plain text extractor.
func NewPlainText() *PlainText {
	return &PlainText{}
}

func (e *PlainText) Type() domain.DocType {
	return domain.DocTypeText
}

func (e *PlainText) ContentTypes() []string {
	return []string{"text/plain"}
}

func (e *PlainText) Extract(data []byte) (port.ExtractResult, error) {
	if !utf8.Valid(data) {
		return port.ExtractResult{}, fmt.Errorf("%w: not valid UTF-8 text", domain.ErrExtractionFailure)
	}

	raw := string(data)
	if strings.Contains(raw, "\f") {
		text, spans := joinPages(strings.Split(raw, "\f"))
		if text == "" {
			return port.ExtractResult{}, domain.ErrEmptyDocument
		}
		return port.ExtractResult{Text: text, Pages: spans}, nil
	}

	text := CleanText(raw)
	if text == "" {
		return port.ExtractResult{}, domain.ErrEmptyDocument
	}
	return port.ExtractResult{Text: text}, nil
}
