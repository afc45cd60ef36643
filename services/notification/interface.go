package notification

import (
	"context"

	"slotwise/models"
)

// Notifier emits the domain notifications produced when an external
// availability session reaches a terminal state. Delivery to end channels
// (mail, messaging) is owned by a downstream consumer, not by this service.
type Notifier interface {
	FetchSucceeded(ctx context.Context, n models.FetchNotification) error
	FetchFailed(ctx context.Context, n models.FetchNotification) error
}
