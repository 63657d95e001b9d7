package handler

import (
	"slidequiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups the HTTP handlers mounted under /api.
type Handlers struct {
	Presentation *PresentationHandler
	Quiz         *QuizHandler
	Health       *HealthHandler
}

// RegisterRoutes mounts every API route on router.
func RegisterRoutes(router fiber.Router, h Handlers) {
	vm := middleware.NewValidationMiddleware()

	router.Get("/health", h.Health.Health)

	router.Post("/presentations", vm.ValidateDocument("document"), vm.ValidateSlideCount(), h.Presentation.GeneratePresentation)

	router.Post("/quizzes", vm.ValidateDocument("document"), vm.ValidateDifficulty(), h.Quiz.CreateQuiz)
	router.Get("/quizzes/:id", vm.ValidateID(), h.Quiz.GetQuiz)
	router.Put("/quizzes/:id/answers", vm.ValidateID(), h.Quiz.SelectAnswer)
	router.Post("/quizzes/:id/submit", vm.ValidateID(), h.Quiz.SubmitQuiz)

	router.Get("/results/:id", vm.ValidateID(), h.Quiz.GetResult)
}
