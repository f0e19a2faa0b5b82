package dispenserecorder

import (
	"context"

	"github.com/disikoX/saka-backend/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.DispenseRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordDispense(_ context.Context, _ domain.DispenseRecord) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
