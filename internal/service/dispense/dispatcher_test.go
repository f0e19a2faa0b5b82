package dispense

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/disikoX/saka-backend/internal/domain"
)

type fakeRecorder struct {
	records []domain.DispenseRecord
	err     error
}

func (f *fakeRecorder) RecordDispense(_ context.Context, record domain.DispenseRecord) error {
	f.records = append(f.records, record)
	return f.err
}

func (f *fakeRecorder) Close() error { return nil }

func TestTriggerNowWritesFlag(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := domain.NewMockStore(ctrl)
	store.EXPECT().
		Set(gomock.Any(), domain.TriggerNowPath("u1", "d1"), "true").
		Return(nil)

	recorder := &fakeRecorder{}
	dispatcher := NewDispatcher(store, recorder, nil)

	if err := dispatcher.TriggerNow(context.Background(), "u1", "d1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(recorder.records) != 1 {
		t.Fatalf("got %d dispense records, want 1", len(recorder.records))
	}
	record := recorder.records[0]
	if record.DistributorID != "d1" || record.Source != "manual" || !record.Accepted {
		t.Errorf("unexpected record: %+v", record)
	}
}

func TestTriggerNowSurfacesWriteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := domain.NewMockStore(ctrl)
	store.EXPECT().
		Set(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("permission denied"))

	recorder := &fakeRecorder{}
	dispatcher := NewDispatcher(store, recorder, nil)

	if err := dispatcher.TriggerNow(context.Background(), "u1", "d1"); err == nil {
		t.Fatal("expected write failure to surface")
	}

	if len(recorder.records) != 1 || recorder.records[0].Accepted {
		t.Errorf("failed trigger not recorded as rejected: %+v", recorder.records)
	}
}

func TestTriggerNowWithoutRecorder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := domain.NewMockStore(ctrl)
	store.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	dispatcher := NewDispatcher(store, nil, nil)
	if err := dispatcher.TriggerNow(context.Background(), "u1", "d1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRecorderFailureDoesNotFailTrigger(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := domain.NewMockStore(ctrl)
	store.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	recorder := &fakeRecorder{err: errors.New("influx down")}
	dispatcher := NewDispatcher(store, recorder, nil)

	if err := dispatcher.TriggerNow(context.Background(), "u1", "d1"); err != nil {
		t.Errorf("recorder failure leaked to caller: %v", err)
	}
}
