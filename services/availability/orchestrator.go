package availability

import (
	"context"
	"time"

	reservationRepo "slotwise/database/repository/reservation"
	settingsRepo "slotwise/database/repository/settings"
	"slotwise/models"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// SlotOptions tunes a single SlotsForDay query.
type SlotOptions struct {
	// DurationMin overrides the configured slot duration when positive.
	DurationMin int
	// StaffID restricts the assignment path to one staff member's windows.
	StaffID string
	// ExternalBusy carries the session's cached external calendar ranges;
	// nil when no external session is active (local-only availability).
	ExternalBusy []models.BusyRange
}

// CalendarService is the engine facade used by handlers and the booking
// flow. Window queries are existence checks only; slot computation (and its
// busy-range fetch cost) happens once a concrete date is chosen.
type CalendarService interface {
	HasAvailableDates(ctx context.Context, key models.ServiceKey, windowDays int) bool
	AvailableDaysInWindow(ctx context.Context, key models.ServiceKey, windowDays int) map[string]bool
	SlotsForDay(ctx context.Context, key models.ServiceKey, date string, opts SlotOptions) []models.Slot
}

// DefaultCalendarService is the production implementation.
type DefaultCalendarService struct {
	Settings     settingsRepo.SettingsRepository
	Reservations reservationRepo.ReservationRepository
	Assignments  AssignmentResolver
	Logger       *zap.Logger

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultCalendarService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// AvailableDaysInWindow maps every date in [today, today+windowDays] to
// whether it can offer any availability at all.
func (s *DefaultCalendarService) AvailableDaysInWindow(ctx context.Context, key models.ServiceKey, windowDays int) map[string]bool {
	if !key.Valid() || windowDays < 0 {
		return map[string]bool{}
	}

	today := s.now()
	out := make(map[string]bool, windowDays+1)

	switch key.Kind {
	case models.ServiceAssignment:
		from := today.Format(dateLayout)
		to := today.AddDate(0, 0, windowDays).Format(dateLayout)
		withAssignments := s.Assignments.DatesWithAssignments(ctx, key, from, to)
		for i := 0; i <= windowDays; i++ {
			d := today.AddDate(0, 0, i).Format(dateLayout)
			out[d] = withAssignments[d]
		}

	default: // fixed schedule
		schedule, err := s.Settings.GetWeeklySchedule(ctx)
		if err != nil {
			s.Logger.Error("failed to load weekly schedule", zap.Error(err))
			return map[string]bool{}
		}
		for i := 0; i <= windowDays; i++ {
			day := today.AddDate(0, 0, i)
			intervals := ResolveDayIntervals(schedule, WeekdayName(day))
			out[day.Format(dateLayout)] = len(intervals) > 0
		}
	}
	return out
}

// HasAvailableDates reports whether any day in the window is available.
func (s *DefaultCalendarService) HasAvailableDates(ctx context.Context, key models.ServiceKey, windowDays int) bool {
	for _, available := range s.AvailableDaysInWindow(ctx, key, windowDays) {
		if available {
			return true
		}
	}
	return false
}

// SlotsForDay runs the full pipeline for one chosen date: resolve the open
// intervals, aggregate busy time from every relevant source, and generate
// the candidate slots. Invalid input degrades to an empty slot list.
func (s *DefaultCalendarService) SlotsForDay(ctx context.Context, key models.ServiceKey, date string, opts SlotOptions) []models.Slot {
	if !key.Valid() {
		return nil
	}
	day, err := time.ParseInLocation(dateLayout, date, s.now().Location())
	if err != nil {
		s.Logger.Debug("rejecting malformed availability date", zap.String("date", date))
		return nil
	}

	duration := s.slotDuration(ctx, opts)
	if duration <= 0 {
		return nil
	}

	switch key.Kind {
	case models.ServiceAssignment:
		return s.assignmentSlots(ctx, key, day, date, duration, opts)
	default:
		return s.fixedSlots(ctx, day, date, duration, opts)
	}
}

func (s *DefaultCalendarService) fixedSlots(ctx context.Context, day time.Time, date string, duration time.Duration, opts SlotOptions) []models.Slot {
	schedule, err := s.Settings.GetWeeklySchedule(ctx)
	if err != nil {
		s.Logger.Error("failed to load weekly schedule", zap.Error(err))
		return nil
	}
	intervals := ResolveDayIntervals(schedule, WeekdayName(day))
	if len(intervals) == 0 {
		return nil
	}

	rawLocal, err := s.Reservations.ListBusyRanges(ctx, date)
	if err != nil {
		// Local reservations unavailable: offering busy-looking slots is
		// worse than offering none.
		s.Logger.Error("failed to load local reservations", zap.String("date", date), zap.Error(err))
		return nil
	}
	local := NormalizeBusyRanges(rawLocal, models.BusyLocal)

	busy := AggregateBusyRanges(local, opts.ExternalBusy)
	return GenerateSlots(day, intervals, busy, duration)
}

func (s *DefaultCalendarService) assignmentSlots(ctx context.Context, key models.ServiceKey, day time.Time, date string, duration time.Duration, opts SlotOptions) []models.Slot {
	assignments := s.Assignments.AssignmentsFor(ctx, key, date)
	if opts.StaffID != "" {
		filtered := assignments[:0]
		for _, a := range assignments {
			if a.StaffID == opts.StaffID {
				filtered = append(filtered, a)
			}
		}
		assignments = filtered
	}
	if len(assignments) == 0 {
		return nil
	}

	ids := make([]string, 0, len(assignments))
	intervals := make([]models.TimeInterval, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.ID)
		intervals = append(intervals, a.Window())
	}

	booked := s.Assignments.BusyRangesFor(ctx, ids, date)
	busy := AggregateBusyRanges(booked, opts.ExternalBusy)
	return GenerateSlots(day, intervals, busy, duration)
}

func (s *DefaultCalendarService) slotDuration(ctx context.Context, opts SlotOptions) time.Duration {
	if opts.DurationMin > 0 {
		return time.Duration(opts.DurationMin) * time.Minute
	}
	settings, err := s.Settings.GetEngineSettings(ctx)
	if err != nil {
		s.Logger.Warn("failed to load engine settings, using defaults", zap.Error(err))
	}
	return time.Duration(settings.SlotDurationMin) * time.Minute
}
