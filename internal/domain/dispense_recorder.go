package domain

import (
	"context"
	"time"
)

type DispenseRecord struct {
	UserID        string
	DistributorID string
	Source        string // "manual" or "schedule"
	Accepted      bool
	RequestedAt   time.Time
}

type DispenseRecorder interface {
	RecordDispense(ctx context.Context, record DispenseRecord) error
	Close() error
}
