package llm

import (
	"fmt"
	"net/http"

	"slidequiz/internal/config"
	"slidequiz/internal/domain"

	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// Models holds one chat model per generation kind. The context window is
// fixed when a model is constructed, so slides and quizzes get their own.
type Models struct {
	Slides domain.ChatModel
	Quiz   domain.ChatModel
}

// NewModels builds the slide and quiz models for the configured provider.
func NewModels(llmCfg config.LLMConfig, gen config.GenerationConfig) (Models, error) {
	slides, err := NewChatModel(llmCfg, gen.Slides)
	if err != nil {
		return Models{}, fmt.Errorf("failed to create slides model: %w", err)
	}
	quiz, err := NewChatModel(llmCfg, gen.Quiz)
	if err != nil {
		return Models{}, fmt.Errorf("failed to create quiz model: %w", err)
	}
	return Models{Slides: slides, Quiz: quiz}, nil
}

// NewChatModel creates a langchaingo model for cfg.Provider.
func NewChatModel(cfg config.LLMConfig, params config.GenerationParams) (domain.ChatModel, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Provider {
	case "ollama":
		llm, err := ollama.New(
			ollama.WithServerURL(cfg.Server),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(httpClient),
			ollama.WithRunnerNumCtx(params.ContextWindow),
		)
		if err != nil {
			return nil, err
		}
		return llm, nil
	case "openai":
		opts := []openai.Option{
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.Model),
			openai.WithHTTPClient(httpClient),
		}
		if cfg.OpenAIBaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.OpenAIBaseURL))
		}
		llm, err := openai.New(opts...)
		if err != nil {
			return nil, err
		}
		return llm, nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %q", cfg.Provider)
	}
}
