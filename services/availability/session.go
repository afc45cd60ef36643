package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"slotwise/config"
	"slotwise/models"
	"slotwise/services/notification"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrSessionNotFound is returned for unknown or expired session IDs.
var ErrSessionNotFound = errors.New("availability session not found or expired")

// SessionService owns the lifecycle of availability sessions: one caller,
// one session, one fetcher. The session envelope and the fetched busy
// ranges live in Redis under the session ID; the fetcher itself is an
// in-memory state machine and is never shared across sessions.
type SessionService interface {
	StartSession(ctx context.Context, key models.ServiceKey, identity string) (*models.AvailabilitySession, error)
	GetSession(ctx context.Context, sessionID string) (*models.AvailabilitySession, error)
	SessionBusyRanges(ctx context.Context, sessionID string) ([]models.BusyRange, error)
	EndSession(ctx context.Context, sessionID string) error
}

// DefaultSessionService is the production implementation.
type DefaultSessionService struct {
	Feed     BusyFeed
	Notifier notification.Notifier
	Cache    *redis.Client
	Logger   *zap.Logger

	mu       sync.Mutex
	fetchers map[string]*Fetcher
}

// NewDefaultSessionService wires a session service over the given
// collaborators.
func NewDefaultSessionService(feed BusyFeed, notifier notification.Notifier, cache *redis.Client, logger *zap.Logger) *DefaultSessionService {
	return &DefaultSessionService{
		Feed:     feed,
		Notifier: notifier,
		Cache:    cache,
		Logger:   logger,
		fetchers: make(map[string]*Fetcher),
	}
}

func sessionKey(id string) string { return "availability:session:" + id }
func busyKey(id string) string    { return "availability:busy:" + id }

func sessionTTL() time.Duration {
	return time.Duration(config.AppConfig.SessionTTLMin) * time.Minute
}

// StartSession creates a session, persists its envelope and starts the
// polling fetcher. The caller polls GetSession / SessionBusyRanges for the
// outcome.
func (s *DefaultSessionService) StartSession(ctx context.Context, key models.ServiceKey, identity string) (*models.AvailabilitySession, error) {
	if !key.Valid() {
		return nil, fmt.Errorf("cannot start availability session: invalid service key")
	}

	session := &models.AvailabilitySession{
		SessionID:  uuid.New().String(),
		ServiceKey: key.Raw,
		Identity:   identity,
		State:      models.FetchPolling,
		CreatedAt:  time.Now(),
	}
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}

	fetcher := NewFetcher(FetcherConfig{
		SessionID:     session.SessionID,
		ServiceKey:    key.Raw,
		Identity:      identity,
		RetryInterval: time.Duration(config.AppConfig.FetchRetrySec) * time.Second,
		MaxAttempts:   config.AppConfig.FetchMaxAttempts,
	}, s.Feed, s.Notifier, s.Logger)

	s.mu.Lock()
	s.fetchers[session.SessionID] = fetcher
	s.mu.Unlock()

	sessionID := session.SessionID
	err := fetcher.Start(
		func(ranges []models.BusyRange) {
			s.settleSession(sessionID, models.FetchSuccess, fetcher.Attempts(), ranges)
		},
		func(error) {
			s.settleSession(sessionID, models.FetchFailed, fetcher.Attempts(), nil)
		},
	)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession returns the session envelope, with live fetcher state folded in
// while the session is still polling.
func (s *DefaultSessionService) GetSession(ctx context.Context, sessionID string) (*models.AvailabilitySession, error) {
	data, err := s.Cache.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load availability session: %w", err)
	}

	var session models.AvailabilitySession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse availability session: %w", err)
	}

	s.mu.Lock()
	fetcher := s.fetchers[sessionID]
	s.mu.Unlock()
	if fetcher != nil {
		session.State = fetcher.State()
		session.Attempts = fetcher.Attempts()
	}
	return &session, nil
}

// SessionBusyRanges returns the normalized external busy ranges cached by a
// successful fetch. A session that has not (yet) succeeded yields an empty
// set, not an error: callers fall back to local-only availability.
func (s *DefaultSessionService) SessionBusyRanges(ctx context.Context, sessionID string) ([]models.BusyRange, error) {
	data, err := s.Cache.Get(ctx, busyKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session busy ranges: %w", err)
	}

	var ranges []models.BusyRange
	if err := json.Unmarshal([]byte(data), &ranges); err != nil {
		return nil, fmt.Errorf("failed to parse session busy ranges: %w", err)
	}
	return ranges, nil
}

// EndSession stops the fetcher and discards the session's cached state. It
// is safe to call for unknown sessions and safe to call twice.
func (s *DefaultSessionService) EndSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	fetcher := s.fetchers[sessionID]
	delete(s.fetchers, sessionID)
	s.mu.Unlock()

	if fetcher != nil {
		fetcher.Stop()
	}

	if err := s.Cache.Del(ctx, sessionKey(sessionID), busyKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete availability session: %w", err)
	}
	return nil
}

func (s *DefaultSessionService) saveSession(ctx context.Context, session *models.AvailabilitySession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal availability session: %w", err)
	}
	if err := s.Cache.Set(ctx, sessionKey(session.SessionID), data, sessionTTL()).Err(); err != nil {
		return fmt.Errorf("failed to store availability session: %w", err)
	}
	return nil
}

// settleSession records a terminal fetch outcome in Redis. Runs on the
// fetcher's callback timeline; failures here only cost the cache, never the
// engine.
func (s *DefaultSessionService) settleSession(sessionID string, state models.FetchState, attempts int, ranges []models.BusyRange) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		s.Logger.Warn("session expired before fetch settled", zap.String("sessionId", sessionID))
		return
	}
	session.State = state
	session.Attempts = attempts
	if err := s.saveSession(ctx, session); err != nil {
		s.Logger.Warn("failed to persist session outcome", zap.String("sessionId", sessionID), zap.Error(err))
	}

	if state == models.FetchSuccess {
		data, err := json.Marshal(ranges)
		if err == nil {
			err = s.Cache.Set(ctx, busyKey(sessionID), data, sessionTTL()).Err()
		}
		if err != nil {
			s.Logger.Warn("failed to cache session busy ranges", zap.String("sessionId", sessionID), zap.Error(err))
		}
	}
}
