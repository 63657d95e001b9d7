package service

import (
	"context"
	"encoding/json"

	"slidequiz/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockTextExtractor ---
type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) Extract(ctx context.Context, doc domain.Document, progress domain.ProgressFunc) (string, error) {
	args := m.Called(ctx, doc, progress)
	return args.String(0), args.Error(1)
}

// --- MockContentRequester ---
type MockContentRequester struct {
	mock.Mock
}

func (m *MockContentRequester) RequestSlides(ctx context.Context, req domain.SlideRequest) (json.RawMessage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return json.RawMessage(args.String(0)), args.Error(1)
}

func (m *MockContentRequester) RequestQuiz(ctx context.Context, req domain.QuizRequest) (json.RawMessage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return json.RawMessage(args.String(0)), args.Error(1)
}

// --- MockQuizResultRepository ---
type MockQuizResultRepository struct {
	mock.Mock
}

func (m *MockQuizResultRepository) SaveResult(ctx context.Context, result *domain.QuizResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockQuizResultRepository) GetResultByID(ctx context.Context, id string) (*domain.QuizResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizResult), args.Error(1)
}
