package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"docqa/internal/domain"
	"docqa/internal/port"
)

// Registry selects the extractor for an upload. Resolution order:
// filename extension, then the declared content type, then sniffed
// content. Extension wins because browsers routinely declare markdown
// and HTML files as text/plain or application/octet-stream.
type Registry struct {
	extractors []port.TextExtractor
	byExt      map[string]port.TextExtractor
	byType     map[string]port.TextExtractor
}

// NewRegistry builds a registry with all supported formats.
func NewRegistry() *Registry {
	r := &Registry{
		byExt:  make(map[string]port.TextExtractor),
		byType: make(map[string]port.TextExtractor),
	}

	pdfX := NewPDF()
	mdX := NewMarkdown()
	htmlX := NewHTML()
	textX := NewPlainText()
	r.extractors = []port.TextExtractor{pdfX, mdX, htmlX, textX}

	r.byExt[".pdf"] = pdfX
	r.byExt[".md"] = mdX
	r.byExt[".markdown"] = mdX
	r.byExt[".html"] = htmlX
	r.byExt[".htm"] = htmlX
	r.byExt[".txt"] = textX
	r.byExt[".text"] = textX

	for _, x := range r.extractors {
		for _, ct := range x.ContentTypes() {
			r.byType[ct] = x
		}
	}

	return r
}

// Resolve picks the extractor for the given upload, or returns
// domain.ErrUnsupportedFileType.
func (r *Registry) Resolve(filename, declaredType string, data []byte) (port.TextExtractor, error) {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		if x, ok := r.byExt[ext]; ok {
			return x, nil
		}
	}

	if ct := mediaType(declaredType); ct != "" && ct != "application/octet-stream" {
		if x, ok := r.byType[ct]; ok {
			return x, nil
		}
	}

	detected := mimetype.Detect(data)
	for _, x := range r.extractors {
		for _, ct := range x.ContentTypes() {
			if detected.Is(ct) {
				return x, nil
			}
		}
	}

	return nil, fmt.Errorf("%w: %q (%s)", domain.ErrUnsupportedFileType, filename, mediaType(declaredType))
}

// mediaType strips parameters from a content type header value.
func mediaType(ct string) string {
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
