package dispenserecorder

import (
	"context"
	"log/slog"
	"strconv"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/disikoX/saka-backend/internal/domain"
)

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
}

// NewRecorder builds the dispense event recorder. Without InfluxDB
// credentials configured it degrades to a noop rather than failing startup.
func NewRecorder(ctx context.Context, cfg *Config) (domain.DispenseRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "dispense event recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, dispense event recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "dispense event recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
	}, nil
}

func (r *influxDBRecorder) RecordDispense(ctx context.Context, record domain.DispenseRecord) error {
	point := influxdb2.NewPoint(
		"dispense_event",
		map[string]string{
			"distributor_id": record.DistributorID,
			"source":         record.Source,
			"accepted":       strconv.FormatBool(record.Accepted),
		},
		map[string]any{
			"user_id":        record.UserID,
			"requested_unix": record.RequestedAt.Unix(),
		},
		record.RequestedAt,
	)

	if err := r.writeAPI.WritePoint(ctx, point); err != nil {
		slog.WarnContext(ctx, "failed to write dispense event to InfluxDB",
			slog.String("distributor_id", record.DistributorID),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}

func (r *influxDBRecorder) Close() error {
	r.client.Close()
	return nil
}
