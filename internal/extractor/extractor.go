// Package extractor turns uploaded documents into plain text.
package extractor

import (
	"context"
	"strings"
	"unicode/utf8"

	"slidequiz/internal/domain"

	"go.uber.org/zap"
)

// Extractor implements domain.TextExtractor for PDF, TXT and MD documents.
type Extractor struct {
	logger  *zap.Logger
	openPDF func(data []byte) (pageSource, error)
}

// NewExtractor creates a new Extractor.
func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{
		logger:  logger,
		openPDF: openLedongthucPDF,
	}
}

// Extract returns the trimmed text of doc. An empty string with a nil error
// means the document held no extractable text. progress may be nil.
func (e *Extractor) Extract(ctx context.Context, doc domain.Document, progress domain.ProgressFunc) (string, error) {
	if progress == nil {
		progress = func(float64) {}
	}

	ext := doc.Extension()
	switch ext {
	case domain.ExtensionPDF:
		src, err := e.openPDF(doc.Data)
		if err != nil {
			e.logger.Warn("Failed to open PDF document", zap.String("document", doc.Name), zap.Error(err))
			return "", domain.NewExtractionEmptyError(err)
		}
		return e.extractPages(ctx, doc.Name, src, progress)
	case domain.ExtensionText, domain.ExtensionMarkdown:
		text := decodeUTF8(doc.Data)
		progress(1.0)
		return strings.TrimSpace(text), nil
	default:
		return "", domain.NewUnsupportedFormatError(ext)
	}
}

// extractPages reads every page, reporting progress after each one. A page
// that cannot be read contributes an empty string.
func (e *Extractor) extractPages(ctx context.Context, name string, src pageSource, progress domain.ProgressFunc) (string, error) {
	total := src.NumPage()
	if total == 0 {
		progress(1.0)
		return "", nil
	}

	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := src.PageText(i)
		if err != nil {
			e.logger.Warn("Failed to extract text from PDF page, continuing",
				zap.String("document", name),
				zap.Int("page", i),
				zap.Error(err))
			text = ""
		}
		pages = append(pages, text)
		progress(float64(i) / float64(total))
	}

	e.logger.Debug("Extracted PDF document", zap.String("document", name), zap.Int("pages", total))
	return strings.TrimSpace(strings.Join(pages, " ")), nil
}

func decodeUTF8(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "�")
}

var _ domain.TextExtractor = (*Extractor)(nil)
