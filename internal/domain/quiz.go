package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// OptionLetters are the keys every MCQ must carry, in display order.
var OptionLetters = []string{"a", "b", "c", "d"}

// MCQRecord is one multiple-choice question as produced by the model.
type MCQRecord struct {
	Question string            `json:"mcq"`
	Options  map[string]string `json:"options"`
	Correct  string            `json:"correct"`
}

// Validate checks that the record has a question, exactly the four lettered
// options, and a correct letter that is one of them.
func (r MCQRecord) Validate() error {
	if strings.TrimSpace(r.Question) == "" {
		return fmt.Errorf("mcq is empty")
	}
	if len(r.Options) != len(OptionLetters) {
		return fmt.Errorf("expected %d options, got %d", len(OptionLetters), len(r.Options))
	}
	for _, letter := range OptionLetters {
		text, ok := r.Options[letter]
		if !ok {
			return fmt.Errorf("option %q is missing", letter)
		}
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("option %q is empty", letter)
		}
	}
	if _, ok := r.Options[r.Correct]; !ok {
		return fmt.Errorf("correct option %q is not one of the options", r.Correct)
	}
	return nil
}

// CorrectText returns the text of the correct option.
func (r MCQRecord) CorrectText() string {
	return r.Options[r.Correct]
}

// OrderedOptions returns the option texts in letter order.
func (r MCQRecord) OrderedOptions() []string {
	letters := make([]string, 0, len(r.Options))
	for letter := range r.Options {
		letters = append(letters, letter)
	}
	sort.Strings(letters)
	texts := make([]string, 0, len(letters))
	for _, letter := range letters {
		texts = append(texts, r.Options[letter])
	}
	return texts
}

// resolveChoice maps an option letter or an exact option text to the option text.
func (r MCQRecord) resolveChoice(choice string) (string, bool) {
	if text, ok := r.Options[strings.ToLower(strings.TrimSpace(choice))]; ok {
		return text, true
	}
	for _, text := range r.Options {
		if text == choice {
			return text, true
		}
	}
	return "", false
}

// SessionState is the lifecycle position of a QuizSession.
type SessionState string

const (
	StateNotStarted SessionState = "not_started"
	StateGenerated  SessionState = "generated"
	StateAnswered   SessionState = "answered"
	StateSubmitted  SessionState = "submitted"
)

// QuizSession holds one quiz attempt. Selections and CorrectAnswers are
// parallel to Questions; a nil selection means unanswered.
type QuizSession struct {
	ID             string       `json:"id"`
	Difficulty     Difficulty   `json:"difficulty"`
	State          SessionState `json:"state"`
	Questions      []MCQRecord  `json:"questions"`
	Selections     []*string    `json:"selections"`
	CorrectAnswers []string     `json:"correct_answers"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// NewQuizSession loads validated records into a generated session. The
// correct answers are snapshotted here and never recomputed.
func NewQuizSession(id string, difficulty Difficulty, records []MCQRecord) *QuizSession {
	now := time.Now()
	questions := make([]MCQRecord, len(records))
	copy(questions, records)

	correct := make([]string, len(questions))
	for i, q := range questions {
		correct[i] = q.CorrectText()
	}

	return &QuizSession{
		ID:             id,
		Difficulty:     difficulty,
		State:          StateGenerated,
		Questions:      questions,
		Selections:     make([]*string, len(questions)),
		CorrectAnswers: correct,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (s *QuizSession) acceptsAnswers() bool {
	return s.State == StateGenerated || s.State == StateAnswered
}

// Select records the user's choice for one question. choice may be the
// option letter or the option text.
func (s *QuizSession) Select(index int, choice string) error {
	if !s.acceptsAnswers() {
		return NewInvalidStateError(s.State, "select an answer")
	}
	if len(s.Questions) == 0 {
		return NewEmptyQuizError()
	}
	if index < 0 || index >= len(s.Questions) {
		return NewInvalidInputError(fmt.Sprintf("question index %d is out of range", index)).
			WithContext("question_count", len(s.Questions))
	}
	text, ok := s.Questions[index].resolveChoice(choice)
	if !ok {
		return NewInvalidInputError(fmt.Sprintf("choice %q is not an option of question %d", choice, index))
	}
	s.Selections[index] = &text
	s.State = StateAnswered
	s.UpdatedAt = time.Now()
	return nil
}

// Score counts index-wise exact matches between selections and the snapshot.
func (s *QuizSession) Score() int {
	score := 0
	for i, correct := range s.CorrectAnswers {
		if i < len(s.Selections) && s.Selections[i] != nil && *s.Selections[i] == correct {
			score++
		}
	}
	return score
}

// Submit scores the session and clears it. A new generation is required for
// another attempt.
func (s *QuizSession) Submit(resultID string) (*QuizResult, error) {
	if !s.acceptsAnswers() {
		return nil, NewInvalidStateError(s.State, "submit")
	}
	s.State = StateSubmitted

	items := make([]QuizResultItem, len(s.Questions))
	for i, q := range s.Questions {
		var selected *string
		if s.Selections[i] != nil {
			v := *s.Selections[i]
			selected = &v
		}
		items[i] = QuizResultItem{
			Question:  q.Question,
			Selected:  selected,
			Correct:   s.CorrectAnswers[i],
			IsCorrect: selected != nil && *selected == s.CorrectAnswers[i],
		}
	}

	result := &QuizResult{
		ID:          resultID,
		SessionID:   s.ID,
		Difficulty:  s.Difficulty,
		Score:       s.Score(),
		Total:       len(s.Questions),
		Items:       items,
		SubmittedAt: time.Now(),
	}
	s.Reset()
	return result, nil
}

// Reset returns the session to not_started.
func (s *QuizSession) Reset() {
	s.State = StateNotStarted
	s.Questions = nil
	s.Selections = nil
	s.CorrectAnswers = nil
	s.UpdatedAt = time.Now()
}

// QuizResult is the scored outcome of a submitted session.
type QuizResult struct {
	ID          string           `json:"id"`
	SessionID   string           `json:"session_id"`
	Difficulty  Difficulty       `json:"difficulty"`
	Score       int              `json:"score"`
	Total       int              `json:"total"`
	Items       []QuizResultItem `json:"items"`
	SubmittedAt time.Time        `json:"submitted_at"`
}

// QuizResultItem is one question of a QuizResult.
type QuizResultItem struct {
	Question  string  `json:"question"`
	Selected  *string `json:"selected"`
	Correct   string  `json:"correct"`
	IsCorrect bool    `json:"is_correct"`
}
