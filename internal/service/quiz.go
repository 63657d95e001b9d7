package service

import (
	"context"
	"errors"

	"slidequiz/internal/config"
	"slidequiz/internal/domain"
	"slidequiz/internal/dto"
	"slidequiz/internal/render/report"
	"slidequiz/internal/sanitizer"
	"slidequiz/internal/util"
	"slidequiz/internal/validation"

	"go.uber.org/zap"
)

// DegradedQuizWarning is returned with a session whose questions could not be
// generated.
const DegradedQuizWarning = "The model did not return usable questions. Please try again."

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	Generate(ctx context.Context, doc domain.Document, difficulty domain.Difficulty, progress domain.ProgressFunc) (*dto.QuizSessionResponse, error)
	GetSession(ctx context.Context, sessionID string) (*dto.QuizSessionResponse, error)
	SelectAnswer(ctx context.Context, sessionID string, questionIndex int, choice string) (*dto.QuizSessionResponse, error)
	Submit(ctx context.Context, sessionID string) (*domain.QuizResult, error)
	GetResult(ctx context.Context, resultID string) (*domain.QuizResult, error)
	RenderReport(result *domain.QuizResult) (*dto.FileDownload, error)
}

// quizService implements QuizService
type quizService struct {
	extractor     domain.TextExtractor
	requester     domain.ContentRequester
	sessions      *sessionStore
	recent        *resultCache
	results       domain.QuizResultRepository
	reports       *report.Generator
	questionCount int
	logger        *zap.Logger
}

// NewQuizService creates a new instance of quizService. results may be nil
// when result history is disabled.
func NewQuizService(
	extractor domain.TextExtractor,
	requester domain.ContentRequester,
	sessionCache domain.Cache,
	results domain.QuizResultRepository,
	reports *report.Generator,
	cfg *config.Config,
	logger *zap.Logger,
) QuizService {
	return &quizService{
		extractor:     extractor,
		requester:     requester,
		sessions:      newSessionStore(sessionCache, cfg.Session.TTL, logger),
		recent:        newResultCache(sessionCache, cfg.Session.TTL, logger),
		results:       results,
		reports:       reports,
		questionCount: cfg.Generation.QuizQuestionCount,
		logger:        logger,
	}
}

// Generate creates a new session from doc. A reply without usable questions
// still creates a session, with zero questions and a warning.
func (s *quizService) Generate(ctx context.Context, doc domain.Document, difficulty domain.Difficulty, progress domain.ProgressFunc) (*dto.QuizSessionResponse, error) {
	if _, ok := domain.ParseDifficulty(string(difficulty)); !ok {
		return nil, domain.NewInvalidInputError("difficulty must be easy, medium or hard").
			WithContext("difficulty", difficulty)
	}

	text, err := extractText(ctx, s.extractor, doc, progress)
	if err != nil {
		return nil, err
	}

	var warning string
	questions := []domain.MCQRecord{}

	raw, err := s.requester.RequestQuiz(ctx, domain.QuizRequest{
		Text:          text,
		Difficulty:    difficulty,
		QuestionCount: s.questionCount,
	})
	switch {
	case err == nil:
		questions, err = validation.ValidateQuiz(raw, s.logger)
		if err != nil {
			s.logger.Warn("Quiz reply held no usable questions", zap.String("document", doc.Name), zap.Error(err))
			warning = DegradedQuizWarning
		}
	case domain.IsMalformedResponse(err):
		s.logger.Warn("Quiz reply could not be parsed", zap.String("document", doc.Name), zap.Error(err))
		warning = DegradedQuizWarning
	default:
		return nil, err
	}

	questions = s.keepValid(sanitizer.SanitizeQuestions(questions))
	if len(questions) == 0 && warning == "" {
		s.logger.Warn("No quiz question survived sanitizing", zap.String("document", doc.Name))
		warning = DegradedQuizWarning
	}

	session := domain.NewQuizSession(util.NewULID(), difficulty, questions)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("Generated quiz session",
		zap.String("session_id", session.ID),
		zap.String("difficulty", string(difficulty)),
		zap.Int("questions", len(session.Questions)))
	return dto.NewQuizSessionResponse(session, warning), nil
}

// keepValid drops records that sanitizing left without a question or option
// text.
func (s *quizService) keepValid(records []domain.MCQRecord) []domain.MCQRecord {
	kept := make([]domain.MCQRecord, 0, len(records))
	for i, r := range records {
		if err := r.Validate(); err != nil {
			s.logger.Warn("Dropping sanitized quiz record", zap.Int("index", i), zap.Error(err))
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

func (s *quizService) GetSession(ctx context.Context, sessionID string) (*dto.QuizSessionResponse, error) {
	session, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return dto.NewQuizSessionResponse(session, ""), nil
}

func (s *quizService) SelectAnswer(ctx context.Context, sessionID string, questionIndex int, choice string) (*dto.QuizSessionResponse, error) {
	unlock := s.sessions.Lock(sessionID)
	defer unlock()

	session, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Select(questionIndex, choice); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return dto.NewQuizSessionResponse(session, ""), nil
}

// Submit scores the session and removes it. The result is cached for the
// session TTL and stored when result history is enabled. A session is scored
// at most once: the session is taken out of the store before scoring.
func (s *quizService) Submit(ctx context.Context, sessionID string) (*domain.QuizResult, error) {
	unlock := s.sessions.Lock(sessionID)
	defer unlock()

	session, err := s.sessions.Take(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	result, err := session.Submit(util.NewULID())
	if err != nil {
		if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
			s.logger.Error("Failed to restore quiz session", zap.String("session_id", sessionID), zap.Error(saveErr))
		}
		return nil, err
	}

	if err := s.recent.Put(ctx, result); err != nil {
		s.logger.Warn("Failed to cache quiz result", zap.String("result_id", result.ID), zap.Error(err))
	}
	if s.results != nil {
		if err := s.results.SaveResult(ctx, result); err != nil {
			s.logger.Error("Failed to save quiz result", zap.String("result_id", result.ID), zap.Error(err))
		}
	}

	s.logger.Info("Submitted quiz",
		zap.String("session_id", sessionID),
		zap.String("result_id", result.ID),
		zap.Int("score", result.Score),
		zap.Int("total", result.Total))
	return result, nil
}

// GetResult looks in result history first and then in the recent results
// cache, which holds results for the session TTL.
func (s *quizService) GetResult(ctx context.Context, resultID string) (*domain.QuizResult, error) {
	var historyErr error
	if s.results != nil {
		result, err := s.results.GetResultByID(ctx, resultID)
		if err == nil && result != nil {
			return result, nil
		}
		historyErr = err
	}

	result, err := s.recent.Get(ctx, resultID)
	if err == nil {
		return result, nil
	}
	if !errors.Is(err, ErrResultNotCached) {
		s.logger.Warn("Failed to read cached quiz result", zap.String("result_id", resultID), zap.Error(err))
	}

	if historyErr != nil {
		var domainErr *domain.DomainError
		if errors.As(historyErr, &domainErr) {
			return nil, historyErr
		}
		return nil, domain.NewInternalError("failed to load quiz result", historyErr)
	}
	return nil, domain.NewNotFoundError("quiz result not found with ID: " + resultID)
}

func (s *quizService) RenderReport(result *domain.QuizResult) (*dto.FileDownload, error) {
	data, err := s.reports.Render(result)
	if err != nil {
		return nil, err
	}
	return &dto.FileDownload{FileName: report.FileName, MIMEType: report.MIMEType, Data: data}, nil
}
