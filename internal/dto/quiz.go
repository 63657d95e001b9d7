package dto

import (
	"time"

	"slidequiz/internal/domain"
)

// OptionView is one answer option of a question.
type OptionView struct {
	Letter string `json:"letter"`
	Text   string `json:"text"`
}

// QuestionView is a question as shown to the quiz taker. The correct answer
// is never included.
type QuestionView struct {
	Index    int          `json:"index"`
	Question string       `json:"question"`
	Options  []OptionView `json:"options"`
	Selected *string      `json:"selected"`
}

// QuizSessionResponse represents a quiz session in the API response
// @Description Quiz session state and questions
type QuizSessionResponse struct {
	ID         string         `json:"id"`
	Difficulty string         `json:"difficulty"`
	State      string         `json:"state"`
	Questions  []QuestionView `json:"questions"`
	Answered   int            `json:"answered"`
	Total      int            `json:"total"`
	Warning    string         `json:"warning,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// AnswerRequest represents an answer selection in the API request
// @Description Request body for selecting an answer
type AnswerRequest struct {
	QuestionIndex *int   `json:"question_index"`
	Choice        string `json:"choice"`
}

// QuizResultItemResponse is one scored question.
type QuizResultItemResponse struct {
	Question  string  `json:"question"`
	Selected  *string `json:"selected"`
	Correct   string  `json:"correct"`
	IsCorrect bool    `json:"is_correct"`
}

// QuizResultResponse represents a submitted quiz in the API response
// @Description Scored quiz result
type QuizResultResponse struct {
	ID          string                   `json:"id"`
	SessionID   string                   `json:"session_id"`
	Difficulty  string                   `json:"difficulty"`
	Score       int                      `json:"score"`
	Total       int                      `json:"total"`
	Items       []QuizResultItemResponse `json:"items"`
	SubmittedAt time.Time                `json:"submitted_at"`
}

// NewQuizSessionResponse builds the public view of a session.
func NewQuizSessionResponse(s *domain.QuizSession, warning string) *QuizSessionResponse {
	resp := &QuizSessionResponse{
		ID:         s.ID,
		Difficulty: string(s.Difficulty),
		State:      string(s.State),
		Questions:  make([]QuestionView, 0, len(s.Questions)),
		Total:      len(s.Questions),
		Warning:    warning,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
	for i, q := range s.Questions {
		view := QuestionView{Index: i, Question: q.Question}
		for _, letter := range domain.OptionLetters {
			if text, ok := q.Options[letter]; ok {
				view.Options = append(view.Options, OptionView{Letter: letter, Text: text})
			}
		}
		if i < len(s.Selections) && s.Selections[i] != nil {
			selected := *s.Selections[i]
			view.Selected = &selected
			resp.Answered++
		}
		resp.Questions = append(resp.Questions, view)
	}
	return resp
}

// NewQuizResultResponse converts a domain result.
func NewQuizResultResponse(r *domain.QuizResult) *QuizResultResponse {
	resp := &QuizResultResponse{
		ID:          r.ID,
		SessionID:   r.SessionID,
		Difficulty:  string(r.Difficulty),
		Score:       r.Score,
		Total:       r.Total,
		Items:       make([]QuizResultItemResponse, 0, len(r.Items)),
		SubmittedAt: r.SubmittedAt,
	}
	for _, item := range r.Items {
		resp.Items = append(resp.Items, QuizResultItemResponse{
			Question:  item.Question,
			Selected:  item.Selected,
			Correct:   item.Correct,
			IsCorrect: item.IsCorrect,
		})
	}
	return resp
}
