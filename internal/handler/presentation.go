package handler

import (
	"slidequiz/internal/middleware"
	"slidequiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// PresentationHandler handles slide deck generation requests
type PresentationHandler struct {
	service service.PresentationService
}

// NewPresentationHandler creates a new PresentationHandler instance
func NewPresentationHandler(service service.PresentationService) *PresentationHandler {
	return &PresentationHandler{
		service: service,
	}
}

// GeneratePresentation godoc
// @Summary Generate a presentation
// @Description Extracts the document text, asks the model for slides and returns a .pptx file
// @Tags presentations
// @Accept multipart/form-data
// @Produce application/vnd.openxmlformats-officedocument.presentationml.presentation
// @Param document formData file true "PDF, TXT or MD document"
// @Param template formData file false "PPTX template whose first-slide background is reused"
// @Param slide_count formData int true "Number of slides (1-20)"
// @Success 200 {file} file
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /presentations [post]
func (h *PresentationHandler) GeneratePresentation(c *fiber.Ctx) error {
	doc, err := readDocument(c, "document")
	if err != nil {
		return err
	}
	template, err := readOptionalFile(c, "template")
	if err != nil {
		return err
	}

	file, err := h.service.Generate(c.UserContext(), doc, template, middleware.GetSlideCount(c), progressLogger(c, doc.Name))
	if err != nil {
		return err
	}
	return sendAttachment(c, file.FileName, file.MIMEType, file.Data)
}
