package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"slidequiz/internal/domain"
	"slidequiz/internal/repository/models"
	"slidequiz/internal/util"

	"github.com/jmoiron/sqlx"
)

const (
	insertQuizResultQuery = `INSERT INTO quiz_results (id, session_id, difficulty, score, total, submitted_at, created_at)
		VALUES (:1, :2, :3, :4, :5, :6, :7)`
	insertQuizResultItemQuery = `INSERT INTO quiz_result_items (result_id, question_index, question, selected_answer, correct_answer, is_correct)
		VALUES (:1, :2, :3, :4, :5, :6)`
	selectQuizResultQuery = `SELECT id, session_id, difficulty, score, total, submitted_at, created_at
		FROM quiz_results WHERE id = :1`
	selectQuizResultItemsQuery = `SELECT result_id, question_index, question, selected_answer, correct_answer, is_correct
		FROM quiz_result_items WHERE result_id = :1 ORDER BY question_index`
)

// SQLXQuizResultRepository stores quiz results in Oracle.
type SQLXQuizResultRepository struct {
	db DBTX
	tm domain.TransactionManager
}

// NewSQLXQuizResultRepository creates a repository backed by db.
func NewSQLXQuizResultRepository(db *sqlx.DB) domain.QuizResultRepository {
	return &SQLXQuizResultRepository{
		db: db,
		tm: NewTransactionManagerAdapter(db),
	}
}

// SaveResult writes the result row and its items in one transaction.
func (r *SQLXQuizResultRepository) SaveResult(ctx context.Context, result *domain.QuizResult) error {
	if result == nil {
		return errors.New("quiz result is nil")
	}

	return r.tm.WithTransaction(ctx, func(txCtx context.Context) error {
		exec := GetExecutor(txCtx, r.db)

		_, err := exec.ExecContext(txCtx, insertQuizResultQuery,
			result.ID,
			result.SessionID,
			string(result.Difficulty),
			result.Score,
			result.Total,
			result.SubmittedAt,
			time.Now(),
		)
		if err != nil {
			return fmt.Errorf("failed to create quiz result: %w", err)
		}

		for i, item := range result.Items {
			_, err := exec.ExecContext(txCtx, insertQuizResultItemQuery,
				result.ID,
				i,
				item.Question,
				util.NullStringFromPtr(item.Selected),
				item.Correct,
				item.IsCorrect,
			)
			if err != nil {
				return fmt.Errorf("failed to create quiz result item %d: %w", i, err)
			}
		}
		return nil
	})
}

// GetResultByID loads a result with its items. It returns nil, nil when the
// id is unknown.
func (r *SQLXQuizResultRepository) GetResultByID(ctx context.Context, id string) (*domain.QuizResult, error) {
	var row models.QuizResult
	if err := r.db.GetContext(ctx, &row, selectQuizResultQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz result %s: %w", id, err)
	}

	var itemRows []models.QuizResultItem
	if err := r.db.SelectContext(ctx, &itemRows, selectQuizResultItemsQuery, id); err != nil {
		return nil, fmt.Errorf("failed to get items of quiz result %s: %w", id, err)
	}

	return toDomainQuizResult(row, itemRows), nil
}

func toDomainQuizResult(row models.QuizResult, itemRows []models.QuizResultItem) *domain.QuizResult {
	items := make([]domain.QuizResultItem, len(itemRows))
	for i, it := range itemRows {
		items[i] = domain.QuizResultItem{
			Question:  it.Question,
			Selected:  util.PtrFromNullString(it.Selected),
			Correct:   it.CorrectAnswer,
			IsCorrect: it.IsCorrect,
		}
	}
	return &domain.QuizResult{
		ID:          row.ID,
		SessionID:   row.SessionID,
		Difficulty:  domain.Difficulty(row.Difficulty),
		Score:       row.Score,
		Total:       row.Total,
		Items:       items,
		SubmittedAt: row.SubmittedAt,
	}
}

var _ domain.QuizResultRepository = (*SQLXQuizResultRepository)(nil)
