// Package settings manages a distributor's singleton dispensing settings.
package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/disikoX/saka-backend/internal/domain"
)

// MaxGrams caps both the dispense quantity and the critical threshold.
const MaxGrams = 1000

type Service struct {
	store domain.Store
}

func NewService(store domain.Store) *Service {
	return &Service{store: store}
}

// SetQuantity persists the dispense quantity. Out-of-range values are
// rejected locally, before any store call.
func (s *Service) SetQuantity(ctx context.Context, userID, distributorID string, grams int) error {
	if grams < 0 || grams > MaxGrams {
		return domain.ErrQuantityOutOfRange
	}

	if err := s.store.Set(ctx, domain.QuantityPath(userID, distributorID), strconv.Itoa(grams)); err != nil {
		return fmt.Errorf("set quantity: %w", err)
	}

	slog.InfoContext(ctx, "quantity set",
		slog.String("distributor_id", distributorID),
		slog.Int("grams", grams),
	)
	return nil
}

// Quantity reads the configured dispense quantity; ok=false when unset.
func (s *Service) Quantity(ctx context.Context, userID, distributorID string) (int, bool, error) {
	return s.readGrams(ctx, domain.QuantityPath(userID, distributorID), distributorID)
}

// SetCriticalThreshold persists the low-reservoir alert threshold.
func (s *Service) SetCriticalThreshold(ctx context.Context, userID, distributorID string, grams int) error {
	if grams < 0 || grams > MaxGrams {
		return domain.ErrQuantityOutOfRange
	}

	if err := s.store.Set(ctx, domain.CriticalThresholdPath(userID, distributorID), strconv.Itoa(grams)); err != nil {
		return fmt.Errorf("set critical threshold: %w", err)
	}

	slog.InfoContext(ctx, "critical threshold set",
		slog.String("distributor_id", distributorID),
		slog.Int("grams", grams),
	)
	return nil
}

// CriticalThreshold reads the alert threshold; ok=false when unset.
func (s *Service) CriticalThreshold(ctx context.Context, userID, distributorID string) (int, bool, error) {
	return s.readGrams(ctx, domain.CriticalThresholdPath(userID, distributorID), distributorID)
}

func (s *Service) readGrams(ctx context.Context, path, distributorID string) (int, bool, error) {
	raw, err := s.store.Get(ctx, path)
	if err != nil {
		if errors.Is(err, domain.ErrPathNotFound) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("read setting: %w", err)
	}

	grams, err := strconv.Atoi(raw)
	if err != nil {
		slog.WarnContext(ctx, "stored setting is not numeric, treating as unset",
			slog.String("distributor_id", distributorID),
			slog.String("path", path),
			slog.String("value", raw),
		)
		return 0, false, nil
	}
	return grams, true, nil
}
