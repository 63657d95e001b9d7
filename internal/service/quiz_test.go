package service

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"slidequiz/internal/adapter"
	"slidequiz/internal/config"
	"slidequiz/internal/domain"
	"slidequiz/internal/extractor"
	"slidequiz/internal/render/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const twoQuestionReply = `{"mcqs":[
	{"mcq":"What color is the sky?","options":{"a":"Blue","b":"Green","c":"Red","d":"Black"},"correct":"a"},
	{"mcq":"What is water?","options":{"a":"Dry","b":"Wet","c":"Solid","d":"Hot"},"correct":"b"}
]}`

var skyDoc = domain.Document{Name: "facts.txt", Data: []byte("The sky is blue. Water is wet.")}

func testConfig() *config.Config {
	return &config.Config{
		Generation: config.GenerationConfig{QuizQuestionCount: 2},
		Session:    config.SessionConfig{TTL: time.Hour},
	}
}

func newQuizService(requester domain.ContentRequester, results domain.QuizResultRepository) (QuizService, domain.Cache) {
	store := adapter.NewMemoryCacheAdapter()
	return newQuizServiceWithCache(requester, results, store), store
}

func newQuizServiceWithCache(requester domain.ContentRequester, results domain.QuizResultRepository, store domain.Cache) QuizService {
	return NewQuizService(
		extractor.NewExtractor(zap.NewNop()),
		requester,
		store,
		results,
		report.NewGenerator(report.DefaultConfig()),
		testConfig(),
		zap.NewNop(),
	)
}

// slowCache widens the window between reading a session and writing it back.
type slowCache struct {
	domain.Cache
	delay time.Duration
}

func (c slowCache) Get(ctx context.Context, key string) (string, error) {
	time.Sleep(c.delay)
	return c.Cache.Get(ctx, key)
}

func (c slowCache) Take(ctx context.Context, key string) (string, error) {
	time.Sleep(c.delay)
	return c.Cache.Take(ctx, key)
}

func TestQuizService_ScoreOneOfTwo(t *testing.T) {
	requester := new(MockContentRequester)
	requester.On("RequestQuiz", mock.Anything, domain.QuizRequest{
		Text:          "The sky is blue. Water is wet.",
		Difficulty:    domain.DifficultyEasy,
		QuestionCount: 2,
	}).Return(twoQuestionReply, nil).Once()

	svc, _ := newQuizService(requester, nil)
	ctx := context.Background()

	session, err := svc.Generate(ctx, skyDoc, domain.DifficultyEasy, nil)
	require.NoError(t, err)
	assert.Empty(t, session.Warning)
	assert.Equal(t, string(domain.StateGenerated), session.State)
	require.Len(t, session.Questions, 2)
	assert.Len(t, session.Questions[0].Options, 4)

	session, err = svc.SelectAnswer(ctx, session.ID, 0, "a")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StateAnswered), session.State)

	session, err = svc.SelectAnswer(ctx, session.ID, 1, "Dry")
	require.NoError(t, err)
	assert.Equal(t, 2, session.Answered)

	result, err := svc.Submit(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 2, result.Total)
	assert.True(t, result.Items[0].IsCorrect)
	assert.False(t, result.Items[1].IsCorrect)
	assert.Equal(t, "Wet", result.Items[1].Correct)
	requester.AssertExpectations(t)
}

func TestQuizService_SubmitClearsSession(t *testing.T) {
	requester := new(MockContentRequester)
	requester.On("RequestQuiz", mock.Anything, mock.Anything).Return(twoQuestionReply, nil)

	svc, _ := newQuizService(requester, nil)
	ctx := context.Background()

	session, err := svc.Generate(ctx, skyDoc, domain.DifficultyMedium, nil)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, session.ID)
	require.NoError(t, err)

	_, err = svc.GetSession(ctx, session.ID)
	assert.True(t, domain.HasCode(err, domain.CodeSessionNotFound))

	_, err = svc.SelectAnswer(ctx, session.ID, 0, "a")
	assert.True(t, domain.HasCode(err, domain.CodeSessionNotFound))

	_, err = svc.Submit(ctx, session.ID)
	assert.True(t, domain.HasCode(err, domain.CodeSessionNotFound))
}

func TestQuizService_ConcurrentAnswersAreNotLost(t *testing.T) {
	requester := new(MockContentRequester)
	requester.On("RequestQuiz", mock.Anything, mock.Anything).Return(twoQuestionReply, nil)

	svc := newQuizServiceWithCache(requester, nil, slowCache{Cache: adapter.NewMemoryCacheAdapter(), delay: 20 * time.Millisecond})
	ctx := context.Background()

	session, err := svc.Generate(ctx, skyDoc, domain.DifficultyEasy, nil)
	require.NoError(t, err)

	answers := []string{"a", "b"}
	errs := make([]error, len(answers))
	var wg sync.WaitGroup
	for i, choice := range answers {
		wg.Add(1)
		go func(i int, choice string) {
			defer wg.Done()
			_, errs[i] = svc.SelectAnswer(ctx, session.ID, i, choice)
		}(i, choice)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	result, err := svc.Submit(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Score)
}

func TestQuizService_ConcurrentSubmitsScoreOnce(t *testing.T) {
	requester := new(MockContentRequester)
	requester.On("RequestQuiz", mock.Anything, mock.Anything).Return(twoQuestionReply, nil)

	svc := newQuizServiceWithCache(requester, nil, slowCache{Cache: adapter.NewMemoryCacheAdapter(), delay: 10 * time.Millisecond})
	ctx := context.Background()

	session, err := svc.Generate(ctx, skyDoc, domain.DifficultyEasy, nil)
	require.NoError(t, err)

	const submitters = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		resultIDs []string
		notFound  int
	)
	for i := 0; i < submitters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := svc.Submit(ctx, session.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				resultIDs = append(resultIDs, result.ID)
			case domain.HasCode(err, domain.CodeSessionNotFound):
				notFound++
			default:
				t.Errorf("unexpected submit error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Len(t, resultIDs, 1)
	assert.Equal(t, submitters-1, notFound)
}

func TestQuizService_DropsRecordsEmptiedBySanitizing(t *testing.T) {
	bulletQuestion := `{"mcq":"**","options":{"a":"1","b":"2","c":"3","d":"4"},"correct":"a"}`
	bulletOption := `{"mcq":"Pick one","options":{"a":"• ","b":"2","c":"3","d":"4"},"correct":"b"}`
	valid := `{"mcq":"What is water?","options":{"a":"Dry","b":"Wet","c":"Solid","d":"Hot"},"correct":"b"}`

	t.Run("some records survive", func(t *testing.T) {
		requester := new(MockContentRequester)
		requester.On("RequestQuiz", mock.Anything, mock.Anything).
			Return(`{"mcqs":[`+bulletQuestion+`,`+valid+`]}`, nil)

		svc, _ := newQuizService(requester, nil)
		session, err := svc.Generate(context.Background(), skyDoc, domain.DifficultyEasy, nil)
		require.NoError(t, err)

		assert.Empty(t, session.Warning)
		require.Len(t, session.Questions, 1)
		assert.Equal(t, "What is water?", session.Questions[0].Question)
	})

	t.Run("no record survives", func(t *testing.T) {
		requester := new(MockContentRequester)
		requester.On("RequestQuiz", mock.Anything, mock.Anything).
			Return(`{"mcqs":[`+bulletQuestion+`,`+bulletOption+`]}`, nil)

		svc, _ := newQuizService(requester, nil)
		session, err := svc.Generate(context.Background(), skyDoc, domain.DifficultyEasy, nil)
		require.NoError(t, err)

		assert.Equal(t, DegradedQuizWarning, session.Warning)
		assert.Empty(t, session.Questions)
	})
}

func TestQuizService_DegradesOnMalformedReply(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
	}{
		{name: "requester found no JSON", err: domain.NewModelResponseMalformedError(errors.New("no JSON object"))},
		{name: "missing mcqs", reply: `{"questions":[]}`},
		{name: "all records invalid", reply: `{"mcqs":[{"mcq":"x","options":{"a":"1"},"correct":"z"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requester := new(MockContentRequester)
			if tt.err != nil {
				requester.On("RequestQuiz", mock.Anything, mock.Anything).Return(nil, tt.err)
			} else {
				requester.On("RequestQuiz", mock.Anything, mock.Anything).Return(tt.reply, nil)
			}

			svc, _ := newQuizService(requester, nil)
			session, err := svc.Generate(context.Background(), skyDoc, domain.DifficultyHard, nil)
			require.NoError(t, err)

			assert.Equal(t, DegradedQuizWarning, session.Warning)
			assert.NotNil(t, session.Questions)
			assert.Empty(t, session.Questions)

			result, err := svc.Submit(context.Background(), session.ID)
			require.NoError(t, err)
			assert.Equal(t, 0, result.Total)
		})
	}
}

func TestQuizService_ModelUnavailable(t *testing.T) {
	requester := new(MockContentRequester)
	requester.On("RequestQuiz", mock.Anything, mock.Anything).
		Return(nil, domain.NewLLMServiceError(errors.New("connection refused")))

	svc, store := newQuizService(requester, nil)
	_, err := svc.Generate(context.Background(), skyDoc, domain.DifficultyEasy, nil)

	assert.True(t, domain.HasCode(err, domain.CodeLLMServiceError))
	assert.Equal(t, 0, store.(*adapter.MemoryCacheAdapter).Len(), "no session is stored")
}

func TestQuizService_UnsupportedFormat(t *testing.T) {
	requester := new(MockContentRequester)
	svc, _ := newQuizService(requester, nil)

	_, err := svc.Generate(context.Background(), domain.Document{Name: "quiz.docx"}, domain.DifficultyEasy, nil)
	assert.True(t, domain.HasCode(err, domain.CodeUnsupportedFormat))
	requester.AssertNotCalled(t, "RequestQuiz", mock.Anything, mock.Anything)
}

func TestQuizService_InvalidDifficulty(t *testing.T) {
	svc, _ := newQuizService(new(MockContentRequester), nil)

	_, err := svc.Generate(context.Background(), skyDoc, domain.Difficulty("impossible"), nil)
	assert.True(t, domain.HasCode(err, domain.CodeInvalidInput))
}

func TestQuizService_SelectInvalidChoice(t *testing.T) {
	requester := new(MockContentRequester)
	requester.On("RequestQuiz", mock.Anything, mock.Anything).Return(twoQuestionReply, nil)

	svc, _ := newQuizService(requester, nil)
	ctx := context.Background()
	session, err := svc.Generate(ctx, skyDoc, domain.DifficultyEasy, nil)
	require.NoError(t, err)

	_, err = svc.SelectAnswer(ctx, session.ID, 0, "Purple")
	assert.True(t, domain.HasCode(err, domain.CodeInvalidInput))

	_, err = svc.SelectAnswer(ctx, session.ID, 5, "a")
	assert.True(t, domain.HasCode(err, domain.CodeInvalidInput))

	view, err := svc.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StateGenerated), view.State)
	assert.Equal(t, 0, view.Answered)
}

func TestQuizService_ResultHistory(t *testing.T) {
	requester := new(MockContentRequester)
	requester.On("RequestQuiz", mock.Anything, mock.Anything).Return(twoQuestionReply, nil)

	results := new(MockQuizResultRepository)
	results.On("SaveResult", mock.Anything, mock.AnythingOfType("*domain.QuizResult")).Return(nil).Once()

	svc, _ := newQuizService(requester, results)
	ctx := context.Background()

	session, err := svc.Generate(ctx, skyDoc, domain.DifficultyEasy, nil)
	require.NoError(t, err)
	_, err = svc.SelectAnswer(ctx, session.ID, 1, "b")
	require.NoError(t, err)

	result, err := svc.Submit(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Score)

	results.On("GetResultByID", mock.Anything, result.ID).Return(result, nil).Once()
	stored, err := svc.GetResult(ctx, result.ID)
	require.NoError(t, err)
	assert.Equal(t, result, stored)

	results.On("GetResultByID", mock.Anything, "01HGZ8VNRYXS8QKNJV5GRWPWDQ").
		Return(nil, domain.NewNotFoundError("quiz result not found")).Once()
	_, err = svc.GetResult(ctx, "01HGZ8VNRYXS8QKNJV5GRWPWDQ")
	assert.True(t, domain.HasCode(err, domain.CodeNotFound))

	results.AssertExpectations(t)
}

func TestQuizService_SaveResultFailureStillReturnsResult(t *testing.T) {
	requester := new(MockContentRequester)
	requester.On("RequestQuiz", mock.Anything, mock.Anything).Return(twoQuestionReply, nil)
	results := new(MockQuizResultRepository)
	results.On("SaveResult", mock.Anything, mock.Anything).Return(errors.New("ORA-12541: TNS:no listener"))

	svc, _ := newQuizService(requester, results)
	session, err := svc.Generate(context.Background(), skyDoc, domain.DifficultyEasy, nil)
	require.NoError(t, err)

	result, err := svc.Submit(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
}

func TestQuizService_GetResultWithoutHistory(t *testing.T) {
	requester := new(MockContentRequester)
	requester.On("RequestQuiz", mock.Anything, mock.Anything).Return(twoQuestionReply, nil)
	svc, _ := newQuizService(requester, nil)
	ctx := context.Background()

	_, err := svc.GetResult(ctx, "01HGZ8VNRYXS8QKNJV5GRWPWDQ")
	assert.True(t, domain.HasCode(err, domain.CodeNotFound))

	session, err := svc.Generate(ctx, skyDoc, domain.DifficultyHard, nil)
	require.NoError(t, err)
	_, err = svc.SelectAnswer(ctx, session.ID, 0, "Blue")
	require.NoError(t, err)
	result, err := svc.Submit(ctx, session.ID)
	require.NoError(t, err)

	recent, err := svc.GetResult(ctx, result.ID)
	require.NoError(t, err)
	assert.Equal(t, result.ID, recent.ID)
	assert.Equal(t, 1, recent.Score)
	assert.Equal(t, domain.DifficultyHard, recent.Difficulty)
	require.Len(t, recent.Items, 2)
	assert.Nil(t, recent.Items[1].Selected)
}

func TestQuizService_GetResultFallsBackToCacheWhenHistoryFails(t *testing.T) {
	requester := new(MockContentRequester)
	requester.On("RequestQuiz", mock.Anything, mock.Anything).Return(twoQuestionReply, nil)
	results := new(MockQuizResultRepository)
	results.On("SaveResult", mock.Anything, mock.Anything).Return(errors.New("ORA-12541: TNS:no listener"))
	results.On("GetResultByID", mock.Anything, mock.Anything).Return(nil, errors.New("ORA-12541: TNS:no listener"))

	svc, _ := newQuizService(requester, results)
	ctx := context.Background()

	session, err := svc.Generate(ctx, skyDoc, domain.DifficultyEasy, nil)
	require.NoError(t, err)
	result, err := svc.Submit(ctx, session.ID)
	require.NoError(t, err)

	recent, err := svc.GetResult(ctx, result.ID)
	require.NoError(t, err)
	assert.Equal(t, result.ID, recent.ID)

	_, err = svc.GetResult(ctx, "01HGZ8VNRYXS8QKNJV5GRWPWDR")
	assert.True(t, domain.HasCode(err, domain.CodeInternal))
}

func TestQuizService_RenderReport(t *testing.T) {
	svc, _ := newQuizService(new(MockContentRequester), nil)
	selected := "Blue"

	file, err := svc.RenderReport(&domain.QuizResult{
		ID:         "01HGZ8VNRYXS8QKNJV5GRWPWDQ",
		Difficulty: domain.DifficultyEasy,
		Score:      1,
		Total:      1,
		Items: []domain.QuizResultItem{
			{Question: "What color is the sky?", Selected: &selected, Correct: "Blue", IsCorrect: true},
		},
		SubmittedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.MIMEType)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF-")))
}
