// File: database/repository/settings/interface.go
package settingsRepo

import (
	"context"

	"slotwise/database"
	"slotwise/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// SettingsRepository exposes administrator-owned configuration: the weekly
// schedule and the engine defaults. It is read on every query; the engine
// never caches it beyond a single resolution call, so admin edits apply to
// the next request.
type SettingsRepository interface {
	GetWeeklySchedule(ctx context.Context) (models.WeeklySchedule, error)
	GetEngineSettings(ctx context.Context) (models.EngineSettings, error)
}

type mongoSettingsRepo struct {
	coll *mongo.Collection
}

// NewMongoSettingsRepo constructs a new MongoDB SettingsRepository.
func NewMongoSettingsRepo() SettingsRepository {
	return &mongoSettingsRepo{
		coll: database.DB().Collection("settings"),
	}
}
