package watch

import (
	"context"
	"errors"
	"testing"

	"github.com/disikoX/saka-backend/internal/domain"
	"github.com/disikoX/saka-backend/internal/service/alert"
)

func TestObserveDeliversUpdatesInOrder(t *testing.T) {
	ctx := context.Background()
	store := domain.NewFakeStore()
	observer := NewObserver(store, nil)

	var got []float64
	handle, err := observer.Observe(ctx, "u1", "d1",
		func(w float64) { got = append(got, w) },
		func(err error) { t.Errorf("unexpected onError: %v", err) },
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer handle.Release()

	path := domain.CurrentWeightPath("u1", "d1")
	for _, v := range []string{"320.5", "310", "295.25"} {
		if err := store.Set(ctx, path, v); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	want := []float64{320.5, 310, 295.25}
	if len(got) != len(want) {
		t.Fatalf("got %d updates, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("update[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestObserveSkipsNonNumericValues(t *testing.T) {
	ctx := context.Background()
	store := domain.NewFakeStore()
	observer := NewObserver(store, nil)

	var got []float64
	handle, err := observer.Observe(ctx, "u1", "d1",
		func(w float64) { got = append(got, w) },
		func(err error) { t.Errorf("unexpected onError: %v", err) },
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer handle.Release()

	path := domain.CurrentWeightPath("u1", "d1")
	for _, v := range []string{"100", "garbage", "", "200"} {
		if err := store.Set(ctx, path, v); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if len(got) != 2 || got[0] != 100 || got[1] != 200 {
		t.Errorf("got %v, want [100 200]", got)
	}
}

func TestReleaseStopsDelivery(t *testing.T) {
	ctx := context.Background()
	store := domain.NewFakeStore()
	observer := NewObserver(store, nil)

	var got []float64
	handle, err := observer.Observe(ctx, "u1", "d1",
		func(w float64) { got = append(got, w) },
		func(err error) {},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := domain.CurrentWeightPath("u1", "d1")
	if err := store.Set(ctx, path, "100"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	handle.Release()

	if err := store.Set(ctx, path, "200"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d updates after release, want 1", len(got))
	}

	// Releasing twice must not panic or error.
	handle.Release()

	if store.SubscriberCount(path) != 0 {
		t.Error("listener still attached after release")
	}
}

func TestReleaseNilHandleIsSafe(t *testing.T) {
	var handle *Handle
	handle.Release()
}

func TestObserveSurfacesAsyncErrorsWithoutDetaching(t *testing.T) {
	ctx := context.Background()
	store := domain.NewFakeStore()
	observer := NewObserver(store, nil)

	var got []float64
	var errs []error
	handle, err := observer.Observe(ctx, "u1", "d1",
		func(w float64) { got = append(got, w) },
		func(err error) { errs = append(errs, err) },
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer handle.Release()

	path := domain.CurrentWeightPath("u1", "d1")
	store.EmitError(path, errors.New("permission denied"))

	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}

	// The subscription survives the error; the caller decides what to do.
	if err := store.Set(ctx, path, "150"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("subscription detached after error: got %v", got)
	}
}

func TestIndependentListenersPerObserveCall(t *testing.T) {
	ctx := context.Background()
	store := domain.NewFakeStore()
	observer := NewObserver(store, nil)

	var first, second []float64
	h1, err := observer.Observe(ctx, "u1", "d1", func(w float64) { first = append(first, w) }, func(error) {})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h2, err := observer.Observe(ctx, "u1", "d1", func(w float64) { second = append(second, w) }, func(error) {})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := domain.CurrentWeightPath("u1", "d1")
	if err := store.Set(ctx, path, "100"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	h1.Release()

	if err := store.Set(ctx, path, "200"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h2.Release()

	if len(first) != 1 {
		t.Errorf("first listener got %v, want one update", first)
	}
	if len(second) != 2 {
		t.Errorf("second listener got %v, want two updates", second)
	}
}

func TestCurrentWeight(t *testing.T) {
	ctx := context.Background()
	store := domain.NewFakeStore()
	observer := NewObserver(store, nil)

	weight, err := observer.CurrentWeight(ctx, "u1", "d1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if weight != nil {
		t.Errorf("weight = %v, want nil before any reading", *weight)
	}

	if err := store.Set(ctx, domain.CurrentWeightPath("u1", "d1"), "412.5"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	weight, err = observer.CurrentWeight(ctx, "u1", "d1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if weight == nil || *weight != 412.5 {
		t.Errorf("weight = %v, want 412.5", weight)
	}
}

func TestObserveCriticality(t *testing.T) {
	ctx := context.Background()
	store := domain.NewFakeStore()
	observer := NewObserver(store, nil)

	if err := store.Set(ctx, domain.CriticalThresholdPath("u1", "d1"), "150"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var states []alert.Criticality
	handle, err := observer.ObserveCriticality(ctx, "u1", "d1",
		func(state alert.Criticality, _ float64) { states = append(states, state) },
		func(err error) { t.Errorf("unexpected onError: %v", err) },
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer handle.Release()

	path := domain.CurrentWeightPath("u1", "d1")
	for _, v := range []string{"200", "150", "100"} {
		if err := store.Set(ctx, path, v); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	want := []alert.Criticality{alert.Safe, alert.Critical, alert.Critical}
	if len(states) != len(want) {
		t.Fatalf("got %d states, want %d", len(states), len(want))
	}
	for i := range want {
		if states[i] != want[i] {
			t.Errorf("state[%d] = %q, want %q", i, states[i], want[i])
		}
	}
}

func TestObserveCriticalityWithoutThresholdIsUnknown(t *testing.T) {
	ctx := context.Background()
	store := domain.NewFakeStore()
	observer := NewObserver(store, nil)

	var states []alert.Criticality
	handle, err := observer.ObserveCriticality(ctx, "u1", "d1",
		func(state alert.Criticality, _ float64) { states = append(states, state) },
		func(error) {},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer handle.Release()

	if err := store.Set(ctx, domain.CurrentWeightPath("u1", "d1"), "50"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(states) != 1 || states[0] != alert.Unknown {
		t.Errorf("states = %v, want [unknown]", states)
	}
}
