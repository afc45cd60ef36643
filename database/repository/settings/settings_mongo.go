package settingsRepo

import (
	"context"
	"fmt"
	"time"

	"slotwise/config"
	"slotwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type scheduleDoc struct {
	Key      string                `bson:"key"`
	Schedule models.WeeklySchedule `bson:"schedule"`
}

type engineSettingsDoc struct {
	Key      string                `bson:"key"`
	Settings models.EngineSettings `bson:"settings"`
}

func (r *mongoSettingsRepo) GetWeeklySchedule(ctx context.Context) (models.WeeklySchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc scheduleDoc
	err := r.coll.FindOne(ctx, bson.M{"key": "weekly_schedule"}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		// No schedule configured yet: every day is closed.
		return models.WeeklySchedule{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly schedule: %w", err)
	}
	return doc.Schedule, nil
}

func (r *mongoSettingsRepo) GetEngineSettings(ctx context.Context) (models.EngineSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	defaults := models.EngineSettings{
		SlotDurationMin:  config.AppConfig.SlotDurationMin,
		FutureWindowDays: config.AppConfig.FutureWindowDays,
	}

	var doc engineSettingsDoc
	err := r.coll.FindOne(ctx, bson.M{"key": "engine_settings"}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return defaults, nil
	}
	if err != nil {
		return defaults, fmt.Errorf("failed to load engine settings: %w", err)
	}

	if doc.Settings.SlotDurationMin <= 0 {
		doc.Settings.SlotDurationMin = defaults.SlotDurationMin
	}
	if doc.Settings.FutureWindowDays <= 0 {
		doc.Settings.FutureWindowDays = defaults.FutureWindowDays
	}
	return doc.Settings, nil
}
