package middleware

import (
	"slidequiz/internal/domain"
	"slidequiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Keys of the validated values stored in fiber.Ctx locals.
const (
	SlideCountKey = "validated_slide_count"
	DifficultyKey = "validated_difficulty"
	IDKey         = "validated_id"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateSlideCount validates the slide_count form field
func (vm *ValidationMiddleware) ValidateSlideCount() fiber.Handler {
	return func(c *fiber.Ctx) error {
		count, errs := vm.validator.ValidateSlideCount(c.FormValue("slide_count"))
		if len(errs) > 0 {
			return errs // This will be handled by ErrorHandler middleware
		}
		c.Locals(SlideCountKey, count)
		return c.Next()
	}
}

// ValidateDifficulty validates the difficulty form field
func (vm *ValidationMiddleware) ValidateDifficulty() fiber.Handler {
	return func(c *fiber.Ctx) error {
		difficulty, errs := vm.validator.ValidateDifficulty(c.FormValue("difficulty"))
		if len(errs) > 0 {
			return errs
		}
		c.Locals(DifficultyKey, difficulty)
		return c.Next()
	}
}

// ValidateDocument checks that the multipart field carries a named file.
func (vm *ValidationMiddleware) ValidateDocument(field string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := ""
		if fh, err := c.FormFile(field); err == nil {
			name = fh.Filename
		}
		if errs := vm.validator.ValidateDocumentName(field, name); len(errs) > 0 {
			return errs
		}
		return c.Next()
	}
}

// ValidateID validates the :id path parameter
func (vm *ValidationMiddleware) ValidateID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if errs := vm.validator.ValidateID("id", id); len(errs) > 0 {
			return errs
		}
		c.Locals(IDKey, id)
		return c.Next()
	}
}

// GetDifficulty returns the difficulty stored by ValidateDifficulty.
func GetDifficulty(c *fiber.Ctx) domain.Difficulty {
	d, _ := c.Locals(DifficultyKey).(domain.Difficulty)
	return d
}

// GetSlideCount returns the count stored by ValidateSlideCount.
func GetSlideCount(c *fiber.Ctx) int {
	n, _ := c.Locals(SlideCountKey).(int)
	return n
}

// GetID returns the identifier stored by ValidateID.
func GetID(c *fiber.Ctx) string {
	id, _ := c.Locals(IDKey).(string)
	return id
}
