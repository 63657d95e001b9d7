package service

import (
	"context"

	"slidequiz/internal/domain"
	"slidequiz/internal/dto"
	"slidequiz/internal/render/pptx"
	"slidequiz/internal/sanitizer"
	"slidequiz/internal/validation"

	"go.uber.org/zap"
)

// PresentationService turns a document into a slide deck.
type PresentationService interface {
	Generate(ctx context.Context, doc domain.Document, template []byte, slideCount int, progress domain.ProgressFunc) (*dto.PresentationFile, error)
}

type presentationService struct {
	extractor domain.TextExtractor
	requester domain.ContentRequester
	renderer  *pptx.Renderer
	logger    *zap.Logger
}

// NewPresentationService creates a new instance of presentationService
func NewPresentationService(
	extractor domain.TextExtractor,
	requester domain.ContentRequester,
	renderer *pptx.Renderer,
	logger *zap.Logger,
) PresentationService {
	return &presentationService{
		extractor: extractor,
		requester: requester,
		renderer:  renderer,
		logger:    logger,
	}
}

// Generate extracts doc, asks the model for exactly slideCount slides and
// renders them. template is optional; only its first-slide background color
// is used.
func (s *presentationService) Generate(ctx context.Context, doc domain.Document, template []byte, slideCount int, progress domain.ProgressFunc) (*dto.PresentationFile, error) {
	if slideCount < domain.MinSlideCount || slideCount > domain.MaxSlideCount {
		return nil, domain.NewInvalidInputError("slide count must be between 1 and 20").
			WithContext("slide_count", slideCount)
	}

	text, err := extractText(ctx, s.extractor, doc, progress)
	if err != nil {
		return nil, err
	}

	raw, err := s.requester.RequestSlides(ctx, domain.SlideRequest{Text: text, SlideCount: slideCount})
	if err != nil {
		return nil, err
	}

	slides, err := validation.ValidateSlides(raw, slideCount)
	if err != nil {
		s.logger.Warn("Rejected slides from model", zap.String("document", doc.Name), zap.Error(err))
		return nil, err
	}
	slides = sanitizer.SanitizeSlides(slides)

	bg, ok := pptx.BackgroundColor(template)
	if len(template) > 0 && !ok {
		s.logger.Info("Template has no readable background color, using default", zap.String("document", doc.Name))
	}

	data, err := s.renderer.Render(slides, bg)
	if err != nil {
		s.logger.Error("Failed to render presentation", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Generated presentation",
		zap.String("document", doc.Name),
		zap.Int("slides", len(slides)),
		zap.Int("bytes", len(data)))

	return &dto.PresentationFile{
		FileName:   pptx.FileName,
		MIMEType:   pptx.MIMEType,
		Data:       data,
		SlideCount: len(slides),
	}, nil
}

// extractText rejects unsupported documents before any extraction and
// treats empty text as a failure.
func extractText(ctx context.Context, extractor domain.TextExtractor, doc domain.Document, progress domain.ProgressFunc) (string, error) {
	ext := doc.Extension()
	if !domain.IsSupportedExtension(ext) {
		return "", domain.NewUnsupportedFormatError(ext)
	}

	text, err := extractor.Extract(ctx, doc, progress)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", domain.NewExtractionEmptyError(nil)
	}
	return text, nil
}
