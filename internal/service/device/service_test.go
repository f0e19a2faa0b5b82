package device

import (
	"context"
	"errors"
	"testing"

	"github.com/disikoX/saka-backend/internal/domain"
)

func TestAssignToUser(t *testing.T) {
	ctx := context.Background()
	store := domain.NewFakeStore()
	svc := NewService(store)

	if err := store.Set(ctx, domain.DistributorStatusPath("d1"), "online"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.AssignToUser(ctx, "u1", "d1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	owner, err := store.Get(ctx, domain.DistributorAssignedToPath("d1"))
	if err != nil || owner != "u1" {
		t.Errorf("assignedTo = (%q, %v), want (u1, nil)", owner, err)
	}

	ids, err := svc.Distributors(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 1 || ids[0] != "d1" {
		t.Errorf("distributors = %v, want [d1]", ids)
	}

	if _, err := store.Get(ctx, domain.DistributorLastUpdatePath("d1")); err != nil {
		t.Errorf("lastUpdate not written: %v", err)
	}
}

func TestAssignToUserUnknownDistributor(t *testing.T) {
	ctx := context.Background()
	svc := NewService(domain.NewFakeStore())

	if err := svc.AssignToUser(ctx, "u1", "ghost"); !errors.Is(err, domain.ErrDistributorMissing) {
		t.Errorf("error = %v, want ErrDistributorMissing", err)
	}
}

func TestAssignToUserAlreadyAssigned(t *testing.T) {
	ctx := context.Background()
	store := domain.NewFakeStore()
	svc := NewService(store)

	if err := store.Set(ctx, domain.DistributorStatusPath("d1"), "online"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Set(ctx, domain.DistributorAssignedToPath("d1"), "someone-else"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.AssignToUser(ctx, "u1", "d1"); !errors.Is(err, domain.ErrAlreadyAssigned) {
		t.Errorf("error = %v, want ErrAlreadyAssigned", err)
	}
}

func TestStatusAndCapacity(t *testing.T) {
	ctx := context.Background()
	store := domain.NewFakeStore()
	svc := NewService(store)

	if _, ok, err := svc.Status(ctx, "d1"); err != nil || ok {
		t.Errorf("Status on empty store = (ok=%v, err=%v), want (false, nil)", ok, err)
	}

	if err := store.Set(ctx, domain.DistributorStatusPath("d1"), "online"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Set(ctx, domain.DistributorCapacityPath("d1"), "2000"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	status, ok, err := svc.Status(ctx, "d1")
	if err != nil || !ok || status != "online" {
		t.Errorf("status = (%q, %v, %v), want (online, true, nil)", status, ok, err)
	}

	capacity, ok, err := svc.Capacity(ctx, "d1")
	if err != nil || !ok || capacity != 2000 {
		t.Errorf("capacity = (%d, %v, %v), want (2000, true, nil)", capacity, ok, err)
	}
}
