package handler

import (
	"slidequiz/internal/domain"
	"slidequiz/internal/dto"
	"slidequiz/internal/middleware"
	"slidequiz/internal/service"
	"slidequiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const formatPDF = "pdf"

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreateQuiz godoc
// @Summary Generate a quiz
// @Description Extracts the document text and creates a quiz session. When the model returns no usable questions the session has zero questions and a warning.
// @Tags quiz
// @Accept multipart/form-data
// @Produce json
// @Param document formData file true "PDF, TXT or MD document"
// @Param difficulty formData string true "easy, medium or hard"
// @Success 201 {object} dto.QuizSessionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /quizzes [post]
func (h *QuizHandler) CreateQuiz(c *fiber.Ctx) error {
	doc, err := readDocument(c, "document")
	if err != nil {
		return err
	}

	session, err := h.service.Generate(c.UserContext(), doc, middleware.GetDifficulty(c), progressLogger(c, doc.Name))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

// GetQuiz godoc
// @Summary Get a quiz session
// @Tags quiz
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.QuizSessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	session, err := h.service.GetSession(c.UserContext(), middleware.GetID(c))
	if err != nil {
		return err
	}
	return c.JSON(session)
}

// SelectAnswer godoc
// @Summary Select an answer
// @Description Records the choice for one question. choice may be the option letter or its text.
// @Tags quiz
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.AnswerRequest true "Answer"
// @Success 200 {object} dto.QuizSessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/answers [put]
func (h *QuizHandler) SelectAnswer(c *fiber.Ctx) error {
	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", "invalid JSON")}
	}

	id := middleware.GetID(c)
	session, err := h.service.GetSession(c.UserContext(), id)
	if err != nil {
		return err
	}
	if session.Total == 0 {
		return domain.NewEmptyQuizError()
	}
	if errs := h.validator.ValidateAnswerRequest(req.QuestionIndex, req.Choice, session.Total); len(errs) > 0 {
		return errs
	}

	updated, err := h.service.SelectAnswer(c.UserContext(), id, *req.QuestionIndex, req.Choice)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// SubmitQuiz godoc
// @Summary Submit a quiz
// @Description Scores the session and clears it. With format=pdf the result is returned as a PDF report.
// @Tags quiz
// @Produce json,application/pdf
// @Param id path string true "Session ID"
// @Param format query string false "pdf for a PDF report"
// @Success 200 {object} dto.QuizResultResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/submit [post]
func (h *QuizHandler) SubmitQuiz(c *fiber.Ctx) error {
	result, err := h.service.Submit(c.UserContext(), middleware.GetID(c))
	if err != nil {
		return err
	}
	return h.sendResult(c, result)
}

// GetResult godoc
// @Summary Get a stored quiz result
// @Tags results
// @Produce json,application/pdf
// @Param id path string true "Result ID"
// @Param format query string false "pdf for a PDF report"
// @Success 200 {object} dto.QuizResultResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /results/{id} [get]
func (h *QuizHandler) GetResult(c *fiber.Ctx) error {
	result, err := h.service.GetResult(c.UserContext(), middleware.GetID(c))
	if err != nil {
		return err
	}
	return h.sendResult(c, result)
}

func (h *QuizHandler) sendResult(c *fiber.Ctx, result *domain.QuizResult) error {
	if c.Query("format") != formatPDF {
		return c.JSON(dto.NewQuizResultResponse(result))
	}
	file, err := h.service.RenderReport(result)
	if err != nil {
		return err
	}
	return sendAttachment(c, file.FileName, file.MIMEType, file.Data)
}
