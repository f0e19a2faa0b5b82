// Package device manages distributor-level metadata and ownership.
package device

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/disikoX/saka-backend/internal/domain"
)

type Service struct {
	store domain.Store
	now   func() time.Time
}

func NewService(store domain.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Status reads the distributor's reported status string; ok=false when
// the device has never reported one.
func (s *Service) Status(ctx context.Context, distributorID string) (string, bool, error) {
	raw, err := s.store.Get(ctx, domain.DistributorStatusPath(distributorID))
	if err != nil {
		if errors.Is(err, domain.ErrPathNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read distributor status: %w", err)
	}
	return raw, true, nil
}

// Capacity reads the distributor's reservoir capacity in grams.
func (s *Service) Capacity(ctx context.Context, distributorID string) (int, bool, error) {
	raw, err := s.store.Get(ctx, domain.DistributorCapacityPath(distributorID))
	if err != nil {
		if errors.Is(err, domain.ErrPathNotFound) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("read distributor capacity: %w", err)
	}

	capacity, err := strconv.Atoi(raw)
	if err != nil {
		slog.WarnContext(ctx, "stored capacity is not numeric",
			slog.String("distributor_id", distributorID),
			slog.String("value", raw),
		)
		return 0, false, nil
	}
	return capacity, true, nil
}

// Distributors lists the ids of the distributors assigned to a user.
func (s *Service) Distributors(ctx context.Context, userID string) ([]string, error) {
	children, err := s.store.List(ctx, domain.UserDistributorsPath(userID))
	if err != nil {
		return nil, fmt.Errorf("list user distributors: %w", err)
	}

	ids := make([]string, 0, len(children))
	for id := range children {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// AssignToUser claims an unassigned distributor for a user. The claim
// checks the current owner, then writes the ownership record, the claim
// timestamp and the user's index entry in one atomic multi-path update.
// The check-then-write is not transactional across sessions; the store's
// last-write-wins semantics are accepted for this single-owner domain.
func (s *Service) AssignToUser(ctx context.Context, userID, distributorID string) error {
	_, ok, err := s.Status(ctx, distributorID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrDistributorMissing
	}

	assignedTo, err := s.store.Get(ctx, domain.DistributorAssignedToPath(distributorID))
	if err != nil && !errors.Is(err, domain.ErrPathNotFound) {
		return fmt.Errorf("read current assignment: %w", err)
	}
	if assignedTo != "" {
		slog.WarnContext(ctx, "distributor already assigned",
			slog.String("distributor_id", distributorID),
			slog.String("assigned_to", assignedTo),
		)
		return domain.ErrAlreadyAssigned
	}

	updates := map[string]string{
		domain.DistributorAssignedToPath(distributorID):       userID,
		domain.DistributorLastUpdatePath(distributorID):       strconv.FormatInt(s.now().UnixMilli(), 10),
		domain.UserDistributorIndexPath(userID, distributorID): "true",
	}
	if err := s.store.Update(ctx, updates); err != nil {
		return fmt.Errorf("assign distributor: %w", err)
	}

	slog.InfoContext(ctx, "distributor assigned",
		slog.String("distributor_id", distributorID),
		slog.String("user_id", userID),
	)
	return nil
}
