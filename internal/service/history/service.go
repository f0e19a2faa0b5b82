// Package history reads and appends a distributor's dispense history.
package history

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disikoX/saka-backend/internal/domain"
)

type Service struct {
	store domain.Store
}

func NewService(store domain.Store) *Service {
	return &Service{store: store}
}

// Record appends a dispense history entry, returning the store-assigned id.
func (s *Service) Record(ctx context.Context, userID, distributorID string, entry domain.HistoryEntry) (string, error) {
	historyPath := domain.HistoryPath(userID, distributorID)
	entryID := s.store.GenerateChildID(historyPath)

	path := domain.HistoryEntryPath(userID, distributorID, entryID)
	if err := s.store.Set(ctx, path, domain.EncodeHistoryEntry(entry)); err != nil {
		return "", fmt.Errorf("record history entry: %w", err)
	}

	slog.InfoContext(ctx, "history entry recorded",
		slog.String("distributor_id", distributorID),
		slog.String("entry_id", entryID),
		slog.Bool("success", entry.Success),
		slog.Int("quantity", entry.Quantity),
	)
	return entryID, nil
}

// Entries returns every stored history entry, unordered.
func (s *Service) Entries(ctx context.Context, userID, distributorID string) ([]domain.HistoryEntry, error) {
	children, err := s.store.List(ctx, domain.HistoryPath(userID, distributorID))
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	entries := make([]domain.HistoryEntry, 0, len(children))
	for _, raw := range children {
		entries = append(entries, domain.DecodeHistoryEntry(raw))
	}
	return entries, nil
}

// SuccessStatsFor aggregates the successful dispenses on the calendar day
// of the given reference time, in its location.
func (s *Service) SuccessStatsFor(ctx context.Context, userID, distributorID string, day time.Time) (domain.SuccessStats, error) {
	entries, err := s.Entries(ctx, userID, distributorID)
	if err != nil {
		return domain.SuccessStats{}, err
	}

	var stats domain.SuccessStats
	for _, entry := range entries {
		if !entry.Success {
			continue
		}

		entryTime := time.UnixMilli(entry.Time).In(day.Location())
		if entryTime.Year() != day.Year() || entryTime.YearDay() != day.YearDay() {
			continue
		}

		stats.Count++
		stats.TotalQuantity += entry.Quantity
		if entry.Time > stats.LatestTime {
			stats.LatestTime = entry.Time
		}
	}
	return stats, nil
}
