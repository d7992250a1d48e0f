package port

import "docqa/internal/domain"

// ExtractResult is the uniform output of every extractor: cleaned plain
// text plus optional page boundaries for formats that have them.
type ExtractResult struct {
	Text  string
	Pages []domain.PageSpan
}

// TextExtractor converts one source format into plain text.
type TextExtractor interface {
	// Type reports the document type this extractor produces.
	Type() domain.DocType

	// ContentTypes lists the MIME types this extractor handles.
	ContentTypes() []string

	// Extract parses the raw file bytes. It returns
	// domain.ErrExtractionFailure for unreadable input and
	// domain.ErrEmptyDocument when no text could be extracted.
	Extract(data []byte) (ExtractResult, error)
}
