// Package watch owns the live subscription to a distributor's weight feed.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/disikoX/saka-backend/internal/domain"
	"github.com/disikoX/saka-backend/internal/observability/metrics"
	"github.com/disikoX/saka-backend/internal/service/alert"
)

// Observer attaches live listeners to the currentWeight path of a
// distributor. Each Observe call registers its own independent listener;
// the returned Handle is the only way that listener is ever detached.
type Observer struct {
	store   domain.Store
	metrics *metrics.FeederMetrics
}

func NewObserver(store domain.Store, feederMetrics *metrics.FeederMetrics) *Observer {
	return &Observer{store: store, metrics: feederMetrics}
}

// Handle is a live weight subscription. Release detaches the listener and
// is idempotent; after it returns no further callbacks are delivered.
type Handle struct {
	release sync.Once
	sub     domain.Subscription
}

func (h *Handle) Release() {
	if h == nil {
		return
	}
	h.release.Do(func() {
		h.sub.Cancel()
	})
}

// Observe starts delivering weight updates for the distributor to onWeight.
// Updates arrive on the store's notification goroutine, in store delivery
// order, not on the caller's goroutine. Values the store cannot represent
// as a number are logged and skipped, never delivered and never fatal.
// Asynchronous access failures go to onError; the subscription stays
// attached and the caller decides whether to release and re-observe.
func (o *Observer) Observe(ctx context.Context, userID, distributorID string, onWeight func(float64), onError func(error)) (*Handle, error) {
	path := domain.CurrentWeightPath(userID, distributorID)

	sub, err := o.store.Subscribe(ctx, path,
		func(value string) {
			weight, parseErr := strconv.ParseFloat(value, 64)
			if parseErr != nil {
				slog.Warn("skipping non-numeric weight value",
					slog.String("distributor_id", distributorID),
					slog.String("value", value),
				)
				return
			}
			o.metrics.RecordWeightUpdate(ctx, distributorID)
			onWeight(weight)
		},
		func(subErr error) {
			slog.Error("weight subscription error",
				slog.String("distributor_id", distributorID),
				slog.String("error", subErr.Error()),
			)
			onError(subErr)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("subscribe to weight feed: %w", err)
	}

	return &Handle{sub: sub}, nil
}

// CurrentWeight reads the latest reported weight once. nil means the
// distributor has never reported a reading.
func (o *Observer) CurrentWeight(ctx context.Context, userID, distributorID string) (*float64, error) {
	raw, err := o.store.Get(ctx, domain.CurrentWeightPath(userID, distributorID))
	if err != nil {
		if errors.Is(err, domain.ErrPathNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read current weight: %w", err)
	}

	weight, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		slog.WarnContext(ctx, "stored weight is not numeric",
			slog.String("distributor_id", distributorID),
			slog.String("value", raw),
		)
		return nil, nil
	}
	return &weight, nil
}

// ObserveCriticality is the threshold-fetch, weight-stream, comparison
// sequence as one linear flow: read the configured threshold once, then
// evaluate every weight update against it. A missing threshold yields
// Unknown states rather than an error; the threshold read racing the
// first weight update is therefore harmless.
func (o *Observer) ObserveCriticality(ctx context.Context, userID, distributorID string, onState func(alert.Criticality, float64), onError func(error)) (*Handle, error) {
	threshold, err := o.readThreshold(ctx, userID, distributorID)
	if err != nil {
		return nil, err
	}

	return o.Observe(ctx, userID, distributorID,
		func(weight float64) {
			state := alert.Evaluate(&weight, threshold)
			if state.IsCritical() {
				o.metrics.RecordCriticalReading(ctx, distributorID)
			}
			onState(state, weight)
		},
		onError,
	)
}

func (o *Observer) readThreshold(ctx context.Context, userID, distributorID string) (*int, error) {
	raw, err := o.store.Get(ctx, domain.CriticalThresholdPath(userID, distributorID))
	if err != nil {
		if errors.Is(err, domain.ErrPathNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read critical threshold: %w", err)
	}

	threshold, err := strconv.Atoi(raw)
	if err != nil {
		slog.WarnContext(ctx, "stored threshold is not numeric, treating as unset",
			slog.String("distributor_id", distributorID),
			slog.String("value", raw),
		)
		return nil, nil
	}
	return &threshold, nil
}
