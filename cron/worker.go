package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"slotwise/config"
	"slotwise/models"
	"slotwise/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitNotifyWorker runs the async worker that consumes fetch-result
// notifications in the background. Delivery to end channels is left to
// whatever subscribes downstream; the worker's job is to drain the queue
// and record outcomes.
func InitNotifyWorker(logger *zap.Logger) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeFetchResult, handleFetchResultTask(logger))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[NotifyWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NotifyWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[NotifyWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleFetchResultTask(logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var n models.FetchNotification
		if err := json.Unmarshal(task.Payload(), &n); err != nil {
			logger.Error("[NotifyWorker] invalid fetch result payload", zap.Error(err))
			return err
		}

		switch n.Outcome {
		case "success":
			logger.Info("[NotifyWorker] external busy data received",
				zap.String("sessionId", n.SessionID),
				zap.String("serviceKey", n.ServiceKey),
				zap.Int("attempts", n.Attempts),
				zap.Int("ranges", n.RangeCount))
		case "exhausted":
			logger.Warn("[NotifyWorker] external busy data unavailable for session",
				zap.String("sessionId", n.SessionID),
				zap.String("serviceKey", n.ServiceKey),
				zap.Int("attempts", n.Attempts))
		default:
			logger.Warn("[NotifyWorker] unknown fetch outcome", zap.String("outcome", n.Outcome))
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[NotifyWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
