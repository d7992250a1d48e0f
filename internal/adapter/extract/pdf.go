package extract

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"docqa/internal/domain"
	"docqa/internal/port"
)

// Ensure PDF implements the interface.
var _ port.TextExtractor = (*PDF)(nil)

// PDF extracts text page by page so chunks can cite page numbers.
type PDF struct{}

// NewPDF creates a PDF extractor.
func NewPDF() *PDF {
	return &PDF{}
}

func (e *PDF) Type() domain.DocType {
	return domain.DocTypePDF
}

func (e *PDF) ContentTypes() []string {
	return []string{"application/pdf"}
}

func (e *PDF) Extract(data []byte) (result port.ExtractResult, err error) {
	// The pdf parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			result = port.ExtractResult{}
			err = fmt.Errorf("%w: malformed pdf: %v", domain.ErrExtractionFailure, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return port.ExtractResult{}, fmt.Errorf("%w: %v", domain.ErrExtractionFailure, err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, perr := page.GetPlainText(nil)
		if perr != nil {
			// One unreadable page does not fail the document.
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}

	text, spans := joinPages(pages)
	if text == "" {
		return port.ExtractResult{}, domain.ErrEmptyDocument
	}
	return port.ExtractResult{Text: text, Pages: spans}, nil
}
