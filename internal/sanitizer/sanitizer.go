// Package sanitizer cleans model-produced text before it is shown or rendered.
package sanitizer

import (
	"regexp"
	"strings"

	"slidequiz/internal/domain"
)

// MaxLength is the maximum number of runes kept from one field.
const MaxLength = 500

// edgeChars are bullet glyphs, their mojibake, and list markers models like
// to prepend to lines.
const edgeChars = "•â€¢-* "

var controlChars = regexp.MustCompile(`[\x{0000}-\x{001F}\x{007F}-\x{009F}]`)

// Sanitize returns s without invalid UTF-8, control characters or leading
// and trailing bullet markers, cut to MaxLength runes. Sanitize(Sanitize(s))
// equals Sanitize(s).
func Sanitize(s string) string {
	s = strings.ToValidUTF8(s, "")
	s = controlChars.ReplaceAllString(s, "")
	s = strings.Trim(s, edgeChars)

	if runes := []rune(s); len(runes) > MaxLength {
		s = strings.Trim(string(runes[:MaxLength]), edgeChars)
	}
	return s
}

// SanitizeSlides returns a cleaned copy of slides.
func SanitizeSlides(slides []domain.SlideRecord) []domain.SlideRecord {
	out := make([]domain.SlideRecord, len(slides))
	for i, slide := range slides {
		content := make([]string, len(slide.Content))
		for j, point := range slide.Content {
			content[j] = Sanitize(point)
		}
		out[i] = domain.SlideRecord{Title: Sanitize(slide.Title), Content: content}
	}
	return out
}

// SanitizeQuestions returns a cleaned copy of questions. The correct letter
// is an option key and is left as is.
func SanitizeQuestions(questions []domain.MCQRecord) []domain.MCQRecord {
	out := make([]domain.MCQRecord, len(questions))
	for i, q := range questions {
		options := make(map[string]string, len(q.Options))
		for letter, text := range q.Options {
			options[letter] = Sanitize(text)
		}
		out[i] = domain.MCQRecord{
			Question: Sanitize(q.Question),
			Options:  options,
			Correct:  q.Correct,
		}
	}
	return out
}
