package domain

import "context"

// QuizResultRepository persists submitted quiz results.
type QuizResultRepository interface {
	SaveResult(ctx context.Context, result *QuizResult) error
	// GetResultByID returns nil, nil when no result has the id.
	GetResultByID(ctx context.Context, id string) (*QuizResult, error)
}

// TransactionManager runs fn inside a database transaction. Repositories
// pick the transaction up from the context passed to fn.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
