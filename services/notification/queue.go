package notification

import (
	"context"
	"fmt"

	"slotwise/config"
	"slotwise/models"
	"slotwise/services/tasks"

	"github.com/hibiken/asynq"
)

// QueueNotifier pushes fetch notifications onto the asynq queue so the
// worker can forward them without blocking the polling loop.
type QueueNotifier struct {
	client *asynq.Client
}

// NewQueueNotifier constructs a notifier backed by the configured Redis queue.
func NewQueueNotifier() *QueueNotifier {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	return &QueueNotifier{client: client}
}

func (q *QueueNotifier) FetchSucceeded(ctx context.Context, n models.FetchNotification) error {
	return q.enqueue(ctx, n)
}

func (q *QueueNotifier) FetchFailed(ctx context.Context, n models.FetchNotification) error {
	return q.enqueue(ctx, n)
}

func (q *QueueNotifier) enqueue(ctx context.Context, n models.FetchNotification) error {
	task, err := tasks.NewFetchResultTask(n)
	if err != nil {
		return fmt.Errorf("failed to build fetch result task: %w", err)
	}
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue fetch result: %w", err)
	}
	return nil
}

// Close releases the underlying queue client.
func (q *QueueNotifier) Close() error {
	return q.client.Close()
}
