// Package llm asks the chat model for structured slide and quiz content.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"slidequiz/internal/cache"
	"slidequiz/internal/config"
	"slidequiz/internal/domain"
	"slidequiz/internal/prompts"
	"slidequiz/internal/util"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	cacheService = "requester"
	kindSlides   = "slides"
	kindQuiz     = "quiz"
)

// StructuredContentRequester implements domain.ContentRequester. Replies are
// memoized by request content, so a repeated request never reaches the model.
type StructuredContentRequester struct {
	models   Models
	gen      config.GenerationConfig
	cache    domain.Cache
	cacheTTL time.Duration
	timeout  time.Duration
	group    singleflight.Group
	logger   *zap.Logger
}

// NewStructuredContentRequester creates a requester. cache may be nil, in
// which case every request calls the model.
func NewStructuredContentRequester(models Models, gen config.GenerationConfig, llmCfg config.LLMConfig, cache domain.Cache, logger *zap.Logger) *StructuredContentRequester {
	return &StructuredContentRequester{
		models:   models,
		gen:      gen,
		cache:    cache,
		cacheTTL: llmCfg.CacheTTL,
		timeout:  llmCfg.Timeout,
		logger:   logger,
	}
}

func (r *StructuredContentRequester) RequestSlides(ctx context.Context, req domain.SlideRequest) (json.RawMessage, error) {
	params := r.gen.Slides
	key := cache.GenerateCacheKey(cacheService, kindSlides, util.SHA256Hex(req.Text),
		strconv.Itoa(req.SlideCount), formatParams(params))
	return r.request(ctx, key, r.models.Slides, prompts.Slides(req.Text, req.SlideCount), params)
}

func (r *StructuredContentRequester) RequestQuiz(ctx context.Context, req domain.QuizRequest) (json.RawMessage, error) {
	params := r.gen.Quiz
	key := cache.GenerateCacheKey(cacheService, kindQuiz, util.SHA256Hex(req.Text),
		string(req.Difficulty), strconv.Itoa(req.QuestionCount), formatParams(params))
	return r.request(ctx, key, r.models.Quiz, prompts.Quiz(req.Text, req.Difficulty, req.QuestionCount), params)
}

func formatParams(p config.GenerationParams) string {
	return strconv.FormatFloat(p.Temperature, 'f', -1, 64) + "_" + strconv.Itoa(p.ContextWindow)
}

func (r *StructuredContentRequester) request(ctx context.Context, key string, model domain.ChatModel, prompt string, params config.GenerationParams) (json.RawMessage, error) {
	if raw, ok := r.lookup(ctx, key); ok {
		return raw, nil
	}

	v, err, shared := r.group.Do(key, func() (interface{}, error) {
		if raw, ok := r.lookup(ctx, key); ok {
			return raw, nil
		}
		raw, err := r.call(ctx, model, prompt, params)
		if err != nil {
			return nil, err
		}
		r.store(ctx, key, raw)
		return raw, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		r.logger.Debug("Shared in-flight model reply", zap.String("key", key))
	}
	return v.(json.RawMessage), nil
}

func (r *StructuredContentRequester) call(ctx context.Context, model domain.ChatModel, prompt string, params config.GenerationParams) (json.RawMessage, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	messages := []llms.MessageContent{llms.TextParts(schema.ChatMessageTypeHuman, prompt)}
	resp, err := model.GenerateContent(ctx, messages,
		llms.WithJSONMode(),
		llms.WithTemperature(params.Temperature),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			r.logger.Error("Model request timed out", zap.Duration("timeout", r.timeout), zap.Error(err))
			return nil, domain.NewLLMServiceError(fmt.Errorf("model request timed out: %w", err))
		}
		r.logger.Error("Failed to get response from model", zap.Error(err))
		return nil, domain.NewLLMServiceError(err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return nil, domain.NewModelResponseMalformedError(errors.New("model returned no choices"))
	}

	reply := resp.Choices[0].Content
	r.logger.Debug("Raw model response received", zap.Int("length", len(reply)))

	raw, err := extractJSONObject(reply)
	if err != nil {
		r.logger.Warn("Model reply held no usable JSON object",
			zap.Error(err),
			zap.String("reply_prefix", reply[:min(200, len(reply))]))
		return nil, domain.NewModelResponseMalformedError(err)
	}
	return raw, nil
}

func (r *StructuredContentRequester) lookup(ctx context.Context, key string) (json.RawMessage, bool) {
	if r.cache == nil {
		return nil, false
	}
	cached, err := r.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			r.logger.Warn("Failed to read memoized reply", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if !json.Valid([]byte(cached)) {
		r.logger.Warn("Ignoring invalid memoized reply", zap.String("key", key))
		return nil, false
	}
	r.logger.Debug("Memoized reply hit", zap.String("key", key))
	return json.RawMessage(cached), true
}

func (r *StructuredContentRequester) store(ctx context.Context, key string, raw json.RawMessage) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, key, string(raw), r.cacheTTL); err != nil {
		r.logger.Warn("Failed to memoize reply", zap.String("key", key), zap.Error(err))
	}
}

var _ domain.ContentRequester = (*StructuredContentRequester)(nil)
