package schedule

import (
	"log/slog"
	"strings"
	"time"

	"github.com/disikoX/saka-backend/internal/domain"
)

// NextOccurrence computes the earliest upcoming occurrence among the given
// planning entries. A slot whose time has already passed today recurs
// tomorrow at the same time; the schedule is strictly daily so it never
// rolls further. The break configuration shares the planning collection and
// is excluded by its reserved key, never by shape.
//
// The result is the winning slot's time of day as zero-padded HH:MM; the
// date component is deliberately discarded, so "today at 00:01" and
// "tomorrow at 00:01" are indistinguishable to the caller. Callers needing
// the full instant must track the date themselves. When two slots produce
// the same candidate instant, which one wins is unspecified.
//
// Disabled, blank and unparseable slots are skipped with a log line; an
// empty or fully skipped set yields ok=false.
func NextOccurrence(now time.Time, slots []domain.TimeSlot) (next string, ok bool) {
	var best time.Time

	for _, slot := range slots {
		if slot.ID == domain.BreakSlotKey {
			continue
		}
		if !slot.Enabled || strings.TrimSpace(slot.Time) == "" {
			continue
		}

		hour, minute, valid := domain.ParseClock(slot.Time)
		if !valid {
			slog.Warn("skipping planning slot with unparseable time",
				slog.String("slot_id", slot.ID),
				slog.String("time", slot.Time),
			)
			continue
		}

		candidate := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		if candidate.Before(now) {
			candidate = candidate.AddDate(0, 0, 1)
		}

		if !ok || candidate.Before(best) {
			best = candidate
			ok = true
		}
	}

	if !ok {
		return "", false
	}
	return best.Format("15:04"), true
}
