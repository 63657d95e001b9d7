package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"slidequiz/internal/domain"

	"go.uber.org/zap"
)

type slideElement struct {
	Title   *string   `json:"title"`
	Content *[]string `json:"content"`
}

type mcqElement struct {
	Question string            `json:"mcq"`
	Options  map[string]string `json:"options"`
	Correct  string            `json:"correct"`
}

// ValidateSlides checks a slides reply and returns exactly expected records.
// Any structural problem rejects the whole reply.
func ValidateSlides(raw json.RawMessage, expected int) ([]domain.SlideRecord, error) {
	elements, err := arrayField(raw, "slides")
	if err != nil {
		return nil, domain.NewModelResponseMalformedError(err)
	}
	if len(elements) != expected {
		return nil, domain.NewCardinalityMismatchError(expected, len(elements))
	}

	slides := make([]domain.SlideRecord, 0, len(elements))
	for i, element := range elements {
		var s slideElement
		if err := json.Unmarshal(element, &s); err != nil {
			return nil, domain.NewModelResponseMalformedError(fmt.Errorf("slide %d: %w", i, err))
		}
		if s.Title == nil {
			return nil, domain.NewModelResponseMalformedError(fmt.Errorf("slide %d: missing title", i))
		}
		if s.Content == nil {
			return nil, domain.NewModelResponseMalformedError(fmt.Errorf("slide %d: missing content", i))
		}
		slides = append(slides, domain.SlideRecord{Title: *s.Title, Content: *s.Content})
	}
	return slides, nil
}

// ValidateQuiz returns the well-formed questions of a quiz reply. Invalid
// records are skipped; the slice is never nil. An error is returned with an
// empty slice when no question survives.
func ValidateQuiz(raw json.RawMessage, logger *zap.Logger) ([]domain.MCQRecord, error) {
	elements, err := arrayField(raw, "mcqs")
	if err != nil {
		return []domain.MCQRecord{}, domain.NewModelResponseMalformedError(err)
	}

	questions := make([]domain.MCQRecord, 0, len(elements))
	for i, element := range elements {
		var m mcqElement
		if err := json.Unmarshal(element, &m); err != nil {
			logger.Warn("Skipping unreadable question from model", zap.Int("index", i), zap.Error(err))
			continue
		}
		record := normalizeMCQ(m)
		if err := record.Validate(); err != nil {
			logger.Warn("Skipping invalid question from model", zap.Int("index", i), zap.Error(err))
			continue
		}
		questions = append(questions, record)
	}

	if len(questions) == 0 {
		return questions, domain.NewModelResponseMalformedError(
			fmt.Errorf("no valid questions among %d returned", len(elements)))
	}
	return questions, nil
}

func normalizeMCQ(m mcqElement) domain.MCQRecord {
	options := make(map[string]string, len(m.Options))
	for letter, text := range m.Options {
		options[strings.ToLower(strings.TrimSpace(letter))] = text
	}
	return domain.MCQRecord{
		Question: m.Question,
		Options:  options,
		Correct:  strings.ToLower(strings.TrimSpace(m.Correct)),
	}
}

// arrayField decodes raw as an object and returns the elements of its field
// key, which must be a JSON array.
func arrayField(raw json.RawMessage, key string) ([]json.RawMessage, error) {
	var reply map[string]json.RawMessage
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, fmt.Errorf("reply is not a JSON object: %w", err)
	}
	field, ok := reply[key]
	if !ok {
		return nil, fmt.Errorf("reply has no %q field", key)
	}
	trimmed := bytes.TrimSpace(field)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("field " + key + " is not an array")
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return nil, fmt.Errorf("field %s: %w", key, err)
	}
	return elements, nil
}
