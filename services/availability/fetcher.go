package availability

import (
	"context"
	"errors"
	"sync"
	"time"

	"slotwise/models"
	"slotwise/services/notification"

	"go.uber.org/zap"
)

// ErrAttemptsExhausted is reported once per polling session when every
// attempt against the external busy feed has failed.
var ErrAttemptsExhausted = errors.New("busy feed attempts exhausted")

// ErrFetcherNotIdle is returned when Start is called on a fetcher that has
// already been started.
var ErrFetcherNotIdle = errors.New("fetcher already started")

// FetcherConfig parametrizes one polling session.
type FetcherConfig struct {
	SessionID     string
	ServiceKey    string
	Identity      string
	RetryInterval time.Duration
	MaxAttempts   int
}

// Fetcher polls the external busy feed for a single availability session.
// State machine: Idle -> Polling -> Success | Failed. Attempts are strictly
// sequential; the next attempt is scheduled only after the previous one has
// settled. A single-flight guard makes sure exactly one terminal callback
// fires per session, and that responses landing after Stop are discarded.
//
// A Fetcher belongs to exactly one session and must never be shared across
// unrelated callers.
type Fetcher struct {
	cfg      FetcherConfig
	feed     BusyFeed
	notifier notification.Notifier
	logger   *zap.Logger

	mu           sync.Mutex
	state        models.FetchState
	attempts     int
	dataReceived bool
	stopped      bool
	timer        *time.Timer
	result       []models.BusyRange

	onSuccess func([]models.BusyRange)
	onError   func(error)
}

// NewFetcher constructs an idle fetcher for one session.
func NewFetcher(cfg FetcherConfig, feed BusyFeed, notifier notification.Notifier, logger *zap.Logger) *Fetcher {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = 5 * time.Second
	}
	return &Fetcher{
		cfg:      cfg,
		feed:     feed,
		notifier: notifier,
		logger:   logger,
		state:    models.FetchIdle,
	}
}

// Start transitions Idle -> Polling and issues the first attempt
// immediately. Exactly one of onSuccess or onError will be invoked unless
// Stop is called first.
func (f *Fetcher) Start(onSuccess func([]models.BusyRange), onError func(error)) error {
	f.mu.Lock()
	if f.state != models.FetchIdle || f.stopped {
		f.mu.Unlock()
		return ErrFetcherNotIdle
	}
	f.state = models.FetchPolling
	f.onSuccess = onSuccess
	f.onError = onError
	f.mu.Unlock()

	go f.attempt()
	return nil
}

// Stop cancels the session from any state. It is idempotent, releases the
// pending retry timer, and suppresses the effects of any attempt still in
// flight; no callback or notification fires after Stop returns.
func (f *Fetcher) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.stopped = true
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}

// State returns the fetcher's current lifecycle position.
func (f *Fetcher) State() models.FetchState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Attempts returns how many attempts have settled so far.
func (f *Fetcher) Attempts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attempts
}

// Result returns the normalized busy ranges cached by a successful session.
func (f *Fetcher) Result() []models.BusyRange {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

// attempt performs one fetch against the feed and settles it under the
// single-flight guard.
func (f *Fetcher) attempt() {
	f.mu.Lock()
	if f.stopped || f.dataReceived {
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()

	payload, err := f.feed.FetchBusy(context.Background(), f.cfg.Identity)

	f.mu.Lock()
	if f.stopped || f.dataReceived {
		// Late resolution: the session was stopped (or already succeeded via
		// an earlier attempt) while this request was in flight.
		f.mu.Unlock()
		return
	}
	f.attempts++

	if err == nil {
		f.dataReceived = true
		f.state = models.FetchSuccess
		f.result = NormalizeBusyRanges(payload.Busy, models.BusyExternal)
		if f.timer != nil {
			f.timer.Stop()
			f.timer = nil
		}
		onSuccess := f.onSuccess
		result := f.result
		attempts := f.attempts
		f.mu.Unlock()

		f.logger.Info("busy feed fetch succeeded",
			zap.String("sessionId", f.cfg.SessionID),
			zap.Int("attempts", attempts),
			zap.Int("ranges", len(result)))
		f.notify("success", attempts, len(result))
		if onSuccess != nil {
			onSuccess(result)
		}
		return
	}

	f.logger.Warn("busy feed attempt failed",
		zap.String("sessionId", f.cfg.SessionID),
		zap.Int("attempt", f.attempts),
		zap.Int("maxAttempts", f.cfg.MaxAttempts),
		zap.Error(err))

	if f.attempts >= f.cfg.MaxAttempts {
		f.state = models.FetchFailed
		if f.timer != nil {
			f.timer.Stop()
			f.timer = nil
		}
		onError := f.onError
		attempts := f.attempts
		f.mu.Unlock()

		f.notify("exhausted", attempts, 0)
		if onError != nil {
			onError(ErrAttemptsExhausted)
		}
		return
	}

	// Attempt settled without success: schedule the next one. Scheduling
	// after settlement keeps attempts strictly sequential.
	f.timer = time.AfterFunc(f.cfg.RetryInterval, f.attempt)
	f.mu.Unlock()
}

func (f *Fetcher) notify(outcome string, attempts, rangeCount int) {
	if f.notifier == nil {
		return
	}
	n := models.FetchNotification{
		SessionID:  f.cfg.SessionID,
		ServiceKey: f.cfg.ServiceKey,
		Outcome:    outcome,
		Attempts:   attempts,
		RangeCount: rangeCount,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var err error
	if outcome == "success" {
		err = f.notifier.FetchSucceeded(ctx, n)
	} else {
		err = f.notifier.FetchFailed(ctx, n)
	}
	if err != nil {
		f.logger.Warn("failed to emit fetch notification",
			zap.String("sessionId", f.cfg.SessionID), zap.Error(err))
	}
}
