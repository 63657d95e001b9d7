package domain

import (
	"path/filepath"
	"strings"
)

const (
	ExtensionPDF      = "pdf"
	ExtensionText     = "txt"
	ExtensionMarkdown = "md"

	MinSlideCount = 1
	MaxSlideCount = 20
)

// Document is an uploaded file. It is consumed once by the extractor.
type Document struct {
	Name string
	Data []byte
}

// Extension returns the lower-cased file extension without the leading dot.
func (d Document) Extension() string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(d.Name), "."))
}

// IsSupportedExtension reports whether documents with ext can be extracted.
func IsSupportedExtension(ext string) bool {
	switch ext {
	case ExtensionPDF, ExtensionText, ExtensionMarkdown:
		return true
	}
	return false
}

// Difficulty is the requested quiz level.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty accepts any casing of easy, medium or hard.
func ParseDifficulty(s string) (Difficulty, bool) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, true
	}
	return "", false
}

// SlideRequest asks the model for exactly SlideCount slides built from Text.
type SlideRequest struct {
	Text       string
	SlideCount int
}

// QuizRequest asks the model for QuestionCount questions at Difficulty.
type QuizRequest struct {
	Text          string
	Difficulty    Difficulty
	QuestionCount int
}

// SlideRecord is one slide as produced by the model.
type SlideRecord struct {
	Title   string   `json:"title"`
	Content []string `json:"content"`
}
