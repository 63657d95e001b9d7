package domain

import (
	"context"
	"encoding/json"

	"github.com/tmc/langchaingo/llms"
)

// ChatModel is the chat-completion boundary. Every langchaingo model
// satisfies it.
type ChatModel interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// ContentRequester asks the model for structured content and returns the
// decoded JSON object it replied with.
type ContentRequester interface {
	RequestSlides(ctx context.Context, req SlideRequest) (json.RawMessage, error)
	RequestQuiz(ctx context.Context, req QuizRequest) (json.RawMessage, error)
}

// ProgressFunc receives extraction progress in [0, 1].
type ProgressFunc func(progress float64)

// TextExtractor turns a document into normalized text.
type TextExtractor interface {
	Extract(ctx context.Context, doc Document, progress ProgressFunc) (string, error)
}
