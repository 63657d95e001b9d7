package validation

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"slidequiz/internal/domain"
	"slidequiz/internal/util"
)

const maxChoiceLength = 500

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSlideCount parses and range-checks the slide_count form value.
func (v *Validator) ValidateSlideCount(raw string) (int, domain.ValidationErrors) {
	var errors domain.ValidationErrors

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, append(errors, domain.NewMissingFieldError("slide_count"))
	}
	count, err := strconv.Atoi(raw)
	if err != nil {
		return 0, append(errors, domain.NewInvalidFormatError("slide_count", raw))
	}
	if count < domain.MinSlideCount || count > domain.MaxSlideCount {
		return 0, append(errors, domain.NewOutOfRangeError("slide_count", count, domain.MinSlideCount, domain.MaxSlideCount))
	}
	return count, nil
}

// ValidateDifficulty validates the difficulty form value
func (v *Validator) ValidateDifficulty(raw string) (domain.Difficulty, domain.ValidationErrors) {
	var errors domain.ValidationErrors

	if strings.TrimSpace(raw) == "" {
		return "", append(errors, domain.NewMissingFieldError("difficulty"))
	}
	difficulty, ok := domain.ParseDifficulty(raw)
	if !ok {
		return "", append(errors, domain.NewInvalidFormatError("difficulty", raw))
	}
	return difficulty, nil
}

// ValidateDocumentName checks that an uploaded file has a name. Supported
// extensions are checked during extraction.
func (v *Validator) ValidateDocumentName(field, name string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(name) == "" {
		return append(errors, domain.NewMissingFieldError(field))
	}
	return errors
}

// ValidateID validates a session or result identifier
func (v *Validator) ValidateID(field, id string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError(field))
	} else if !util.IsULID(id) {
		errors = append(errors, domain.NewInvalidFormatError(field, id))
	}
	return errors
}

// ValidateAnswerRequest validates an answer selection against the number of
// questions in the session.
func (v *Validator) ValidateAnswerRequest(questionIndex *int, choice string, total int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if questionIndex == nil {
		errors = append(errors, domain.NewMissingFieldError("question_index"))
	} else if *questionIndex < 0 || *questionIndex >= total {
		errors = append(errors, domain.NewOutOfRangeError("question_index", *questionIndex, 0, total-1))
	}

	if strings.TrimSpace(choice) == "" {
		errors = append(errors, domain.NewMissingFieldError("choice"))
	} else if n := utf8.RuneCountInString(choice); n > maxChoiceLength {
		errors = append(errors, domain.NewOutOfRangeError("choice", n, 1, maxChoiceLength))
	}
	return errors
}
