package domain

import "errors"

// Error kinds surfaced to callers. Ingestion failures abort the upload
// without publishing a partial document; query failures abort only the
// triggering request. None of these are fatal to the process.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrExtractionFailure   = errors.New("document extraction failed")
	ErrEmptyDocument       = errors.New("no extractable text in document")
	ErrEmbeddingFailure    = errors.New("embedding inference failed")
	ErrUnknownDocument     = errors.New("document not found")
	ErrSynthesisFailure    = errors.New("answer synthesis failed")
)
