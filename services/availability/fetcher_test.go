package availability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"slotwise/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type feedCall struct {
	payload models.BusyPayload
	err     error
}

// scriptedFeed returns canned responses in order, repeating the last one.
// An optional gate blocks every call until released, to simulate slow
// in-flight requests.
type scriptedFeed struct {
	mu    sync.Mutex
	calls int
	steps []feedCall
	gate  chan struct{}
}

func (f *scriptedFeed) FetchBusy(_ context.Context, _ string) (models.BusyPayload, error) {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	step := f.steps[len(f.steps)-1]
	if f.calls < len(f.steps) {
		step = f.steps[f.calls]
	}
	f.calls++
	return step.payload, step.err
}

func (f *scriptedFeed) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type recordingNotifier struct {
	mu        sync.Mutex
	succeeded []models.FetchNotification
	failed    []models.FetchNotification
}

func (n *recordingNotifier) FetchSucceeded(_ context.Context, fn models.FetchNotification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.succeeded = append(n.succeeded, fn)
	return nil
}

func (n *recordingNotifier) FetchFailed(_ context.Context, fn models.FetchNotification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failed = append(n.failed, fn)
	return nil
}

func (n *recordingNotifier) counts() (int, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.succeeded), len(n.failed)
}

func newTestFetcher(feed BusyFeed, notifier *recordingNotifier, maxAttempts int) *Fetcher {
	return NewFetcher(FetcherConfig{
		SessionID:     "test-session",
		ServiceKey:    "deep-cleaning",
		Identity:      "client@example.com",
		RetryInterval: 5 * time.Millisecond,
		MaxAttempts:   maxAttempts,
	}, feed, notifier, zap.NewNop())
}

func validPayload() models.BusyPayload {
	return models.BusyPayload{Busy: []models.RawBusyRange{
		{Start: "2026-01-12T10:00:00Z", End: "2026-01-12T11:00:00Z"},
	}}
}

func TestFetcherSuccessFirstAttempt(t *testing.T) {
	feed := &scriptedFeed{steps: []feedCall{{payload: validPayload()}}}
	notifier := &recordingNotifier{}
	f := newTestFetcher(feed, notifier, 3)

	done := make(chan []models.BusyRange, 1)
	require.NoError(t, f.Start(
		func(ranges []models.BusyRange) { done <- ranges },
		func(err error) { t.Errorf("unexpected onError: %v", err) },
	))

	select {
	case ranges := <-done:
		require.Len(t, ranges, 1)
		assert.Equal(t, models.BusyExternal, ranges[0].Source)
	case <-time.After(time.Second):
		t.Fatal("onSuccess never fired")
	}

	assert.Equal(t, models.FetchSuccess, f.State())
	assert.Equal(t, 1, f.Attempts())
	ok, failed := notifier.counts()
	assert.Equal(t, 1, ok)
	assert.Equal(t, 0, failed)
}

func TestFetcherSuccessAfterRetries(t *testing.T) {
	feed := &scriptedFeed{steps: []feedCall{
		{err: errors.New("connection refused")},
		{err: errors.New("http 502")},
		{payload: validPayload()},
	}}
	notifier := &recordingNotifier{}
	f := newTestFetcher(feed, notifier, 5)

	done := make(chan struct{})
	require.NoError(t, f.Start(
		func([]models.BusyRange) { close(done) },
		func(err error) { t.Errorf("unexpected onError: %v", err) },
	))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("onSuccess never fired")
	}

	assert.Equal(t, 3, f.Attempts())
	assert.Equal(t, models.FetchSuccess, f.State())
	require.Len(t, f.Result(), 1)
}

func TestFetcherExhaustsAttempts(t *testing.T) {
	feed := &scriptedFeed{steps: []feedCall{{err: errors.New("timeout")}}}
	notifier := &recordingNotifier{}
	f := newTestFetcher(feed, notifier, 3)

	done := make(chan error, 1)
	require.NoError(t, f.Start(
		func([]models.BusyRange) { t.Error("unexpected onSuccess") },
		func(err error) { done <- err },
	))

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrAttemptsExhausted)
	case <-time.After(time.Second):
		t.Fatal("onError never fired")
	}

	assert.Equal(t, models.FetchFailed, f.State())
	assert.Equal(t, 3, f.Attempts())
	assert.Equal(t, 3, feed.callCount())
	ok, failed := notifier.counts()
	assert.Equal(t, 0, ok)
	assert.Equal(t, 1, failed)
}

func TestFetcherStopSuppressesLateResponse(t *testing.T) {
	gate := make(chan struct{})
	feed := &scriptedFeed{steps: []feedCall{{payload: validPayload()}}, gate: gate}
	notifier := &recordingNotifier{}
	f := newTestFetcher(feed, notifier, 3)

	var fired sync.Map
	require.NoError(t, f.Start(
		func([]models.BusyRange) { fired.Store("success", true) },
		func(error) { fired.Store("error", true) },
	))

	// Stop while the first request is still in flight, then let it resolve.
	f.Stop()
	close(gate)
	time.Sleep(50 * time.Millisecond)

	_, successFired := fired.Load("success")
	_, errorFired := fired.Load("error")
	assert.False(t, successFired, "late response must be discarded after Stop")
	assert.False(t, errorFired)
	assert.Empty(t, f.Result())
	ok, failed := notifier.counts()
	assert.Zero(t, ok)
	assert.Zero(t, failed)
}

func TestFetcherStopIdempotent(t *testing.T) {
	feed := &scriptedFeed{steps: []feedCall{{payload: validPayload()}}}
	f := newTestFetcher(feed, &recordingNotifier{}, 3)

	// Safe before Start, twice in a row, and after a terminal state.
	f.Stop()
	f.Stop()

	assert.Equal(t, models.FetchIdle, f.State())
	assert.Error(t, f.Start(nil, nil))
}

func TestFetcherStartTwice(t *testing.T) {
	feed := &scriptedFeed{steps: []feedCall{{payload: validPayload()}}}
	f := newTestFetcher(feed, &recordingNotifier{}, 3)

	done := make(chan struct{})
	require.NoError(t, f.Start(func([]models.BusyRange) { close(done) }, nil))
	assert.ErrorIs(t, f.Start(nil, nil), ErrFetcherNotIdle)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("onSuccess never fired")
	}
}

func TestFetcherExactlyOneCallback(t *testing.T) {
	// Success on the second attempt: the failure path must not also fire.
	feed := &scriptedFeed{steps: []feedCall{
		{err: errors.New("flaky")},
		{payload: validPayload()},
	}}
	notifier := &recordingNotifier{}
	f := newTestFetcher(feed, notifier, 2)

	var mu sync.Mutex
	successes, failures := 0, 0
	done := make(chan struct{}, 2)
	require.NoError(t, f.Start(
		func([]models.BusyRange) {
			mu.Lock()
			successes++
			mu.Unlock()
			done <- struct{}{}
		},
		func(error) {
			mu.Lock()
			failures++
			mu.Unlock()
			done <- struct{}{}
		},
	))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("no callback fired")
	}
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, successes)
	assert.Equal(t, 0, failures)
}
