package utils

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus is the latest snapshot of the engine's external dependencies.
type HealthStatus struct {
	Mongo        bool      `json:"mongo"`
	Cache        bool      `json:"cache"`
	SessionStore bool      `json:"sessionStore"`
	CheckedAt    time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor checks Mongo and both Redis roles once immediately and
// then every minute, updating the in-memory snapshot served by /health.
func StartHealthMonitor(mongoClient *mongo.Client) {
	check := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		status := HealthStatus{
			Mongo:     mongoClient.Ping(ctx, nil) == nil,
			CheckedAt: time.Now(),
		}
		if cache := GetCacheClient(); cache != nil {
			status.Cache = cache.Ping(ctx).Err() == nil
		}
		if sessions := GetSessionCacheClient(); sessions != nil {
			status.SessionStore = sessions.Ping(ctx).Err() == nil
		}

		healthMu.Lock()
		currentHealth = status
		healthMu.Unlock()
	}

	go func() {
		check()
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			check()
		}
	}()
}
