package availability

import (
	"testing"
	"time"

	"slotwise/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBusyRanges(t *testing.T) {
	raw := []models.RawBusyRange{
		{Start: "2026-01-12T10:00:00Z", End: "2026-01-12T11:00:00Z", Label: "cleaning"},
		{Start: "not a timestamp", End: "2026-01-12T11:00:00Z"},
		{Start: "2026-01-12T10:00:00Z", End: "garbage"},
		{Start: "2026-01-12T12:00:00Z", End: "2026-01-12T12:00:00Z"}, // zero length
		{Start: "2026-01-12T15:00:00Z", End: "2026-01-12T14:00:00Z"}, // inverted
		{Start: "2026-01-12T16:00:00Z", End: "2026-01-12T17:30:00Z"},
	}

	got := NormalizeBusyRanges(raw, models.BusyExternal)

	require.Len(t, got, 2)
	assert.Equal(t, time.Date(2026, 1, 12, 10, 0, 0, 0, time.UTC), got[0].Start)
	assert.Equal(t, "cleaning", got[0].Label)
	assert.Equal(t, models.BusyExternal, got[0].Source)
	assert.Equal(t, time.Date(2026, 1, 12, 16, 0, 0, 0, time.UTC), got[1].Start)

	for _, b := range got {
		assert.True(t, b.Start.Before(b.End))
	}
}

func TestNormalizeBusyRangesEmpty(t *testing.T) {
	assert.Empty(t, NormalizeBusyRanges(nil, models.BusyLocal))
	assert.Empty(t, NormalizeBusyRanges([]models.RawBusyRange{}, models.BusyLocal))
}

func TestAggregateBusyRangesOrdersByStart(t *testing.T) {
	mk := func(hour int, source models.BusySource) models.BusyRange {
		return models.BusyRange{
			Start:  time.Date(2026, 1, 12, hour, 0, 0, 0, time.UTC),
			End:    time.Date(2026, 1, 12, hour+1, 0, 0, 0, time.UTC),
			Source: source,
		}
	}

	local := []models.BusyRange{mk(14, models.BusyLocal), mk(9, models.BusyLocal)}
	external := []models.BusyRange{mk(11, models.BusyExternal)}
	assignment := []models.BusyRange{mk(9, models.BusyAssignment)}

	got := AggregateBusyRanges(local, external, assignment)

	require.Len(t, got, 4)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].Start.Before(got[i-1].Start))
	}
	// Overlapping duplicates survive aggregation; dedup is not this layer's job.
	assert.Equal(t, got[0].Start, got[1].Start)
}

func TestAggregateBusyRangesNoSources(t *testing.T) {
	assert.Empty(t, AggregateBusyRanges())
	assert.Empty(t, AggregateBusyRanges(nil, nil))
}
