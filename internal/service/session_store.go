package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"slidequiz/internal/cache"
	"slidequiz/internal/domain"

	"go.uber.org/zap"
)

// sessionStore keeps quiz sessions in a domain.Cache as JSON. Transitions on
// one session run one at a time under Lock.
type sessionStore struct {
	cache  domain.Cache
	ttl    time.Duration
	logger *zap.Logger

	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	sync.Mutex
	waiters int
}

func newSessionStore(c domain.Cache, ttl time.Duration, logger *zap.Logger) *sessionStore {
	return &sessionStore{cache: c, ttl: ttl, logger: logger, locks: make(map[string]*sessionLock)}
}

// Lock blocks until no other transition holds session id and returns the
// matching unlock.
func (s *sessionStore) Lock(id string) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sessionLock{}
		s.locks[id] = l
	}
	l.waiters++
	s.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		s.mu.Lock()
		l.waiters--
		if l.waiters == 0 {
			delete(s.locks, id)
		}
		s.mu.Unlock()
	}
}

func (s *sessionStore) generateKey(id string) string {
	return cache.GenerateCacheKey("quiz", "session", id)
}

func (s *sessionStore) Load(ctx context.Context, id string) (*domain.QuizSession, error) {
	key := s.generateKey(id)
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.NewSessionNotFoundError(id)
		}
		s.logger.Error("Failed to load quiz session", zap.String("key", key), zap.Error(err))
		return nil, domain.NewInternalError("failed to load quiz session", err)
	}

	return s.decode(key, data)
}

// Take removes the session and returns it. Of several concurrent callers only
// one receives the session; the others get SESSION_NOT_FOUND.
func (s *sessionStore) Take(ctx context.Context, id string) (*domain.QuizSession, error) {
	key := s.generateKey(id)
	data, err := s.cache.Take(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.NewSessionNotFoundError(id)
		}
		s.logger.Error("Failed to take quiz session", zap.String("key", key), zap.Error(err))
		return nil, domain.NewInternalError("failed to load quiz session", err)
	}
	return s.decode(key, data)
}

func (s *sessionStore) decode(key, data string) (*domain.QuizSession, error) {
	var session domain.QuizSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		s.logger.Error("Failed to unmarshal quiz session", zap.String("key", key), zap.Error(err))
		return nil, domain.NewInternalError("failed to decode quiz session", err)
	}
	return &session, nil
}

func (s *sessionStore) Save(ctx context.Context, session *domain.QuizSession) error {
	key := s.generateKey(session.ID)
	data, err := json.Marshal(session)
	if err != nil {
		return domain.NewInternalError("failed to encode quiz session", err)
	}
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		s.logger.Error("Failed to save quiz session", zap.String("key", key), zap.Error(err))
		return domain.NewInternalError("failed to save quiz session", err)
	}
	return nil
}
