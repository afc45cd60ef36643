package tasks

import (
	"encoding/json"

	"slotwise/models"

	"github.com/hibiken/asynq"
)

const TypeFetchResult = "availability:fetch_result"

// NewFetchResultTask wraps a fetch notification into an asynq task for the
// notification worker.
func NewFetchResultTask(n models.FetchNotification) (*asynq.Task, error) {
	b, err := json.Marshal(n)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeFetchResult, b), nil
}
