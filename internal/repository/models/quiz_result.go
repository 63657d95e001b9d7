package models

import (
	"database/sql"
	"time"
)

// QuizResult maps a row of QUIZ_RESULTS.
type QuizResult struct {
	ID          string    `db:"ID"`
	SessionID   string    `db:"SESSION_ID"`
	Difficulty  string    `db:"DIFFICULTY"`
	Score       int       `db:"SCORE"`
	Total       int       `db:"TOTAL"`
	SubmittedAt time.Time `db:"SUBMITTED_AT"`
	CreatedAt   time.Time `db:"CREATED_AT"`
}

// QuizResultItem maps a row of QUIZ_RESULT_ITEMS. Selected is NULL for an
// unanswered question.
type QuizResultItem struct {
	ResultID      string         `db:"RESULT_ID"`
	QuestionIndex int            `db:"QUESTION_INDEX"`
	Question      string         `db:"QUESTION"`
	Selected      sql.NullString `db:"SELECTED_ANSWER"`
	CorrectAnswer string         `db:"CORRECT_ANSWER"`
	IsCorrect     bool           `db:"IS_CORRECT"`
}
