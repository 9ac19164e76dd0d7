package repository

import (
	"context"
	"time"

	"StarChart/internal/domain/models"
)

// Archive stores daily ephemeris snapshots for range queries.
type Archive interface {
	Init(ctx context.Context) error // ensure tables, health checks
	Store(ctx context.Context, s *models.Snapshot) error
	StoreBatch(ctx context.Context, snapshots []*models.Snapshot) error
	Query(ctx context.Context, from, to time.Time, limit int) ([]*models.Snapshot, error)
	LatestDate(ctx context.Context) (time.Time, error)
	Health(ctx context.Context) error // ping
	Close() error
}

// Publisher hands snapshots to an async transport for archival.
type Publisher interface {
	Publish(ctx context.Context, s *models.Snapshot) error
	PublishBatch(ctx context.Context, snapshots []*models.Snapshot) error
	Close() error
}

type Metrics interface {
	RecordChartComputed(zodiac string)
	RecordCacheLookup(result string)
	RecordError(kind string)
	RecordBodyFailure(body string)
	RecordSnapshot(backend, result string)
	RecordLatency(op string, seconds float64)
}
