package availability

import (
	"sort"
	"time"

	"slotwise/models"
	"slotwise/utils"

	"go.uber.org/zap"
)

// NormalizeBusyRanges converts raw collaborator time ranges into canonical
// busy ranges. Entries whose timestamps fail to parse, or whose start is not
// strictly before their end, are dropped; a malformed row from one source
// must never poison the whole day's availability.
func NormalizeBusyRanges(raw []models.RawBusyRange, source models.BusySource) []models.BusyRange {
	logger := utils.GetLogger()

	out := make([]models.BusyRange, 0, len(raw))
	for _, r := range raw {
		start, err := time.Parse(time.RFC3339, r.Start)
		if err != nil {
			logger.Debug("dropping busy range with bad start",
				zap.String("source", string(source)), zap.String("start", r.Start))
			continue
		}
		end, err := time.Parse(time.RFC3339, r.End)
		if err != nil {
			logger.Debug("dropping busy range with bad end",
				zap.String("source", string(source)), zap.String("end", r.End))
			continue
		}
		if !start.Before(end) {
			logger.Debug("dropping inverted busy range",
				zap.String("source", string(source)),
				zap.Time("start", start), zap.Time("end", end))
			continue
		}
		out = append(out, models.BusyRange{
			Start:  start,
			End:    end,
			Source: source,
			Label:  r.Label,
		})
	}
	return out
}

// AggregateBusyRanges merges busy ranges from any number of sources into one
// start-ordered collection. Overlapping ranges are kept as-is: the slot
// overlap test is already correct against redundant ranges, so coalescing
// would be an optimization, not a correctness requirement.
func AggregateBusyRanges(sources ...[]models.BusyRange) []models.BusyRange {
	var total int
	for _, s := range sources {
		total += len(s)
	}

	out := make([]models.BusyRange, 0, total)
	for _, s := range sources {
		out = append(out, s...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}
