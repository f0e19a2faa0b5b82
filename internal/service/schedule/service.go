package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/disikoX/saka-backend/internal/domain"
)

// Service manages a distributor's planning collection: the daily time
// slots and the singleton break configuration stored alongside them.
type Service struct {
	store domain.Store
}

func NewService(store domain.Store) *Service {
	return &Service{store: store}
}

// CreateSlot validates and persists a new planning slot, returning the
// store-assigned id. Validation failures abort before any store call.
func (s *Service) CreateSlot(ctx context.Context, userID, distributorID string, slot domain.TimeSlot) (string, error) {
	if err := slot.Validate(); err != nil {
		return "", err
	}

	planningPath := domain.PlanningPath(userID, distributorID)
	slotID := s.store.GenerateChildID(planningPath)

	raw, err := domain.EncodeTimeSlot(slot)
	if err != nil {
		return "", err
	}

	if err := s.store.Set(ctx, domain.SlotPath(userID, distributorID, slotID), raw); err != nil {
		return "", fmt.Errorf("create planning slot: %w", err)
	}

	slog.InfoContext(ctx, "planning slot created",
		slog.String("distributor_id", distributorID),
		slog.String("slot_id", slotID),
		slog.String("time", slot.Time),
		slog.Bool("enabled", slot.Enabled),
	)
	return slotID, nil
}

// UpdateSlot validates and overwrites an existing slot in place.
// The reserved break key cannot be addressed as a slot.
func (s *Service) UpdateSlot(ctx context.Context, userID, distributorID, slotID string, slot domain.TimeSlot) error {
	if slotID == domain.BreakSlotKey {
		return domain.ErrReservedSlotKey
	}
	if err := slot.Validate(); err != nil {
		return err
	}

	raw, err := domain.EncodeTimeSlot(slot)
	if err != nil {
		return err
	}

	if err := s.store.Set(ctx, domain.SlotPath(userID, distributorID, slotID), raw); err != nil {
		return fmt.Errorf("update planning slot %s: %w", slotID, err)
	}
	return nil
}

// DeleteSlot removes a slot by id.
func (s *Service) DeleteSlot(ctx context.Context, userID, distributorID, slotID string) error {
	if slotID == domain.BreakSlotKey {
		return domain.ErrReservedSlotKey
	}
	if err := s.store.Remove(ctx, domain.SlotPath(userID, distributorID, slotID)); err != nil {
		return fmt.Errorf("delete planning slot %s: %w", slotID, err)
	}
	return nil
}

// Slots returns the distributor's planning slots, break entry excluded,
// sorted by id for a stable listing. Partial or malformed entries degrade
// to disabled midnight slots rather than failing the read.
func (s *Service) Slots(ctx context.Context, userID, distributorID string) ([]domain.TimeSlot, error) {
	children, err := s.store.List(ctx, domain.PlanningPath(userID, distributorID))
	if err != nil {
		return nil, fmt.Errorf("list planning slots: %w", err)
	}

	slots := make([]domain.TimeSlot, 0, len(children))
	for id, raw := range children {
		if id == domain.BreakSlotKey {
			continue
		}
		slots = append(slots, domain.DecodeTimeSlot(id, raw))
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].ID < slots[j].ID })
	return slots, nil
}

// NextDistributionTime reports the time of day of the next scheduled
// distribution, or ok=false when no enabled valid slot exists. A store
// failure is surfaced as an error, never as a crash or a silent "none".
func (s *Service) NextDistributionTime(ctx context.Context, userID, distributorID string, now time.Time) (string, bool, error) {
	slots, err := s.Slots(ctx, userID, distributorID)
	if err != nil {
		return "", false, err
	}

	next, ok := NextOccurrence(now, slots)
	return next, ok, nil
}

// ConfigureBreak overwrites the singleton break configuration. Only
// non-negativity is enforced on the duration; there is no upper bound.
func (s *Service) ConfigureBreak(ctx context.Context, userID, distributorID string, cfg domain.BreakConfig) error {
	if cfg.DurationHours < 0 {
		return domain.ErrNegativeDuration
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return domain.ErrInvalidSlotData
	}

	if err := s.store.Set(ctx, domain.BreakPath(userID, distributorID), string(raw)); err != nil {
		return fmt.Errorf("configure break: %w", err)
	}

	slog.InfoContext(ctx, "break configured",
		slog.String("distributor_id", distributorID),
		slog.Int("duration_hours", cfg.DurationHours),
		slog.Bool("active", cfg.Active),
	)
	return nil
}

// BreakInfo reads the break configuration; nil means none was ever set.
func (s *Service) BreakInfo(ctx context.Context, userID, distributorID string) (*domain.BreakConfig, error) {
	raw, err := s.store.Get(ctx, domain.BreakPath(userID, distributorID))
	if err != nil {
		if errors.Is(err, domain.ErrPathNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read break config: %w", err)
	}

	var cfg domain.BreakConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		slog.WarnContext(ctx, "malformed break config, treating as unset",
			slog.String("distributor_id", distributorID),
		)
		return nil, nil
	}
	return &cfg, nil
}
