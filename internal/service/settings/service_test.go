package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/disikoX/saka-backend/internal/domain"
)

func TestSetQuantityRejectsOutOfRangeBeforeStore(t *testing.T) {
	ctx := context.Background()
	store := domain.NewFakeStore()
	svc := NewService(store)

	for _, grams := range []int{-1, 1001, 5000} {
		if err := svc.SetQuantity(ctx, "u1", "d1", grams); !errors.Is(err, domain.ErrQuantityOutOfRange) {
			t.Errorf("SetQuantity(%d) error = %v, want ErrQuantityOutOfRange", grams, err)
		}
	}

	if len(store.SetCalls) != 0 {
		t.Errorf("out-of-range writes reached the store: %v", store.SetCalls)
	}
}

func TestSetCriticalThresholdRejectsOutOfRangeBeforeStore(t *testing.T) {
	ctx := context.Background()
	store := domain.NewFakeStore()
	svc := NewService(store)

	for _, grams := range []int{-1, 1001} {
		if err := svc.SetCriticalThreshold(ctx, "u1", "d1", grams); !errors.Is(err, domain.ErrQuantityOutOfRange) {
			t.Errorf("SetCriticalThreshold(%d) error = %v, want ErrQuantityOutOfRange", grams, err)
		}
	}

	if len(store.SetCalls) != 0 {
		t.Errorf("out-of-range writes reached the store: %v", store.SetCalls)
	}
}

func TestQuantityRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewService(domain.NewFakeStore())

	if err := svc.SetQuantity(ctx, "u1", "d1", 250); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	grams, ok, err := svc.Quantity(ctx, "u1", "d1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || grams != 250 {
		t.Errorf("quantity = (%d, %v), want (250, true)", grams, ok)
	}
}

func TestBoundaryValuesAccepted(t *testing.T) {
	ctx := context.Background()
	svc := NewService(domain.NewFakeStore())

	if err := svc.SetQuantity(ctx, "u1", "d1", 0); err != nil {
		t.Errorf("SetQuantity(0) = %v, want nil", err)
	}
	if err := svc.SetQuantity(ctx, "u1", "d1", MaxGrams); err != nil {
		t.Errorf("SetQuantity(%d) = %v, want nil", MaxGrams, err)
	}
}

func TestUnsetSettingsReportNotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewService(domain.NewFakeStore())

	if _, ok, err := svc.Quantity(ctx, "u1", "d1"); err != nil || ok {
		t.Errorf("Quantity on empty store = (ok=%v, err=%v), want (false, nil)", ok, err)
	}
	if _, ok, err := svc.CriticalThreshold(ctx, "u1", "d1"); err != nil || ok {
		t.Errorf("CriticalThreshold on empty store = (ok=%v, err=%v), want (false, nil)", ok, err)
	}
}

func TestReadSurfacesStoreFailure(t *testing.T) {
	ctx := context.Background()
	store := domain.NewFakeStore()
	store.GetError = errors.New("network unreachable")
	svc := NewService(store)

	if _, _, err := svc.Quantity(ctx, "u1", "d1"); err == nil {
		t.Error("expected store failure to surface")
	}
}

func TestMalformedStoredValueTreatedAsUnset(t *testing.T) {
	ctx := context.Background()
	store := domain.NewFakeStore()
	svc := NewService(store)

	if err := store.Set(ctx, domain.QuantityPath("u1", "d1"), "lots"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, ok, err := svc.Quantity(ctx, "u1", "d1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("malformed value reported as configured")
	}
}
