package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"StarChart/internal/astro"
	"StarChart/internal/domain/models"
	domrepo "StarChart/internal/domain/repository"
	applogger "StarChart/pkg/logger"
	"StarChart/pkg/util"
)

// SnapshotWriter derives daily archive rows from computed charts and hands
// them to the configured backend. Exactly one of publisher or archive is
// used: publisher routes through Kafka, archive writes ClickHouse directly.
type SnapshotWriter struct {
	engine    *astro.Engine
	publisher domrepo.Publisher
	archive   domrepo.Archive
	metrics   domrepo.Metrics
	log       *applogger.Logger
	batchSize int
}

func NewSnapshotWriter(engine *astro.Engine, publisher domrepo.Publisher, archive domrepo.Archive, metrics domrepo.Metrics, log *applogger.Logger, batchSize int) *SnapshotWriter {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &SnapshotWriter{
		engine:    engine,
		publisher: publisher,
		archive:   archive,
		metrics:   metrics,
		log:       log,
		batchSize: batchSize,
	}
}

func (w *SnapshotWriter) backend() string {
	if w.publisher != nil {
		return "kafka"
	}
	return "clickhouse"
}

// Build computes the tropical chart for a day and reduces it to a Snapshot.
func (w *SnapshotWriter) Build(ctx context.Context, day time.Time) (*models.Snapshot, error) {
	chart, err := w.engine.Compute(ctx, astro.Request{Instant: day})
	if err != nil {
		return nil, fmt.Errorf("compute %s: %w", util.DayKey(day), err)
	}

	payload, err := json.Marshal(chart)
	if err != nil {
		return nil, fmt.Errorf("marshal chart: %w", err)
	}

	snap := &models.Snapshot{
		Date:        day.UTC().Truncate(24 * time.Hour),
		Sidereal:    false,
		Signs:       make(map[string]string, len(chart.Planets)),
		AspectCount: len(chart.Aspects),
		Payload:     payload,
		ComputedAt:  time.Now().UTC(),
	}
	for name, cb := range chart.Planets {
		snap.Signs[name] = cb.Sign
		if name == string(astro.Mercury) {
			snap.MercuryRetrograde = cb.Retrograde
		}
	}
	if chart.MoonPhase != nil {
		snap.MoonPhaseValue = chart.MoonPhase.PhaseValue
		snap.MoonPhaseName = chart.MoonPhase.Name
	}
	snap.DominantElement = dominantElement(chart.Elements)
	return snap, nil
}

// dominantElement walks buckets in a fixed order so ties resolve the same
// way every run.
func dominantElement(balance models.ElementalBalance) string {
	dominant, best := "", -1
	for _, element := range []string{"fire", "earth", "air", "water"} {
		if entry, ok := balance[element]; ok && entry.Count > best {
			dominant, best = element, entry.Count
		}
	}
	return dominant
}

// Write archives one snapshot through the configured backend.
func (w *SnapshotWriter) Write(ctx context.Context, snap *models.Snapshot) error {
	var err error
	if w.publisher != nil {
		err = w.publisher.Publish(ctx, snap)
	} else if w.archive != nil {
		err = w.archive.Store(ctx, snap)
	} else {
		return fmt.Errorf("no archive backend configured")
	}
	if err != nil {
		w.metrics.RecordSnapshot(w.backend(), "error")
		return err
	}
	w.metrics.RecordSnapshot(w.backend(), "ok")
	return nil
}

// WriteDay computes and archives a single day.
func (w *SnapshotWriter) WriteDay(ctx context.Context, day time.Time) error {
	snap, err := w.Build(ctx, day)
	if err != nil {
		w.metrics.RecordError("snapshot_build")
		return err
	}
	return w.Write(ctx, snap)
}

// Backfill archives every day in [from, to] inclusive, batched per backend
// round-trip. Days that fail to compute are logged and skipped; transport
// failures abort the run.
func (w *SnapshotWriter) Backfill(ctx context.Context, from, to time.Time) (int, error) {
	days := util.DaysBetween(from, to)
	if len(days) == 0 {
		return 0, fmt.Errorf("empty range %s..%s", util.DayKey(from), util.DayKey(to))
	}

	written := 0
	batch := make([]*models.Snapshot, 0, w.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		var err error
		if w.publisher != nil {
			err = w.publisher.PublishBatch(ctx, batch)
		} else if w.archive != nil {
			err = w.archive.StoreBatch(ctx, batch)
		} else {
			return fmt.Errorf("no archive backend configured")
		}
		if err != nil {
			w.metrics.RecordSnapshot(w.backend(), "error")
			return err
		}
		w.metrics.RecordSnapshot(w.backend(), "ok")
		written += len(batch)
		batch = batch[:0]
		return nil
	}

	start := time.Now()
	for _, day := range days {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		snap, err := w.Build(ctx, day)
		if err != nil {
			w.metrics.RecordError("snapshot_build")
			w.log.Warn("skipping day", applogger.String("date", util.DayKey(day)), applogger.Error(err))
			continue
		}
		batch = append(batch, snap)
		if len(batch) >= w.batchSize {
			if err := flush(); err != nil {
				return written, err
			}
		}
	}
	if err := flush(); err != nil {
		return written, err
	}

	w.metrics.RecordLatency("backfill", time.Since(start).Seconds())
	w.log.Info("backfill complete",
		applogger.String("from", util.DayKey(from)),
		applogger.String("to", util.DayKey(to)),
		applogger.Int("days", written),
	)
	return written, nil
}
