// Package dispense writes the one-shot manual feed signal.
package dispense

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disikoX/saka-backend/internal/domain"
	"github.com/disikoX/saka-backend/internal/observability/metrics"
)

// Dispatcher sets the triggerNow flag for a distributor. The signal is
// at-most-once and best-effort: the feeder observes the flag, dispenses,
// and resets it itself — there is no acknowledgement and no read-back.
// Unlike the original client, a failed write is surfaced to the caller.
type Dispatcher struct {
	store    domain.Store
	recorder domain.DispenseRecorder
	metrics  *metrics.FeederMetrics
}

func NewDispatcher(store domain.Store, recorder domain.DispenseRecorder, feederMetrics *metrics.FeederMetrics) *Dispatcher {
	return &Dispatcher{store: store, recorder: recorder, metrics: feederMetrics}
}

// TriggerNow raises the distributor's one-shot dispense flag.
func (d *Dispatcher) TriggerNow(ctx context.Context, userID, distributorID string) error {
	err := d.store.Set(ctx, domain.TriggerNowPath(userID, distributorID), "true")

	d.metrics.RecordTriggerDispatch(ctx, distributorID, err == nil)
	d.record(ctx, userID, distributorID, err == nil)

	if err != nil {
		return fmt.Errorf("write trigger flag: %w", err)
	}

	slog.InfoContext(ctx, "manual dispense triggered",
		slog.String("distributor_id", distributorID),
	)
	return nil
}

func (d *Dispatcher) record(ctx context.Context, userID, distributorID string, accepted bool) {
	if d.recorder == nil {
		return
	}

	err := d.recorder.RecordDispense(ctx, domain.DispenseRecord{
		UserID:        userID,
		DistributorID: distributorID,
		Source:        "manual",
		Accepted:      accepted,
		RequestedAt:   time.Now().UTC(),
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to record dispense event",
			slog.String("distributor_id", distributorID),
			slog.String("error", err.Error()),
		)
	}
}
