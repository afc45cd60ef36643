package notification

import (
	"context"

	"slotwise/models"
	"slotwise/utils"

	"go.uber.org/zap"
)

// LogNotifier records fetch outcomes in the application log. Used when no
// queue is configured (development, tests of the surrounding wiring).
type LogNotifier struct{}

func (LogNotifier) FetchSucceeded(_ context.Context, n models.FetchNotification) error {
	utils.GetLogger().Info("external availability received",
		zap.String("sessionId", n.SessionID),
		zap.String("serviceKey", n.ServiceKey),
		zap.Int("attempts", n.Attempts),
		zap.Int("ranges", n.RangeCount))
	return nil
}

func (LogNotifier) FetchFailed(_ context.Context, n models.FetchNotification) error {
	utils.GetLogger().Warn("external availability unavailable",
		zap.String("sessionId", n.SessionID),
		zap.String("serviceKey", n.ServiceKey),
		zap.Int("attempts", n.Attempts))
	return nil
}
