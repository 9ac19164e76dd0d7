package usecase

import (
	"context"
	"fmt"
	"time"

	"StarChart/internal/domain/models"
	domrepo "StarChart/internal/domain/repository"
)

const maxArchiveRangeDays = 366

// ArchiveService serves ranged reads over the snapshot archive.
type ArchiveService struct {
	archive domrepo.Archive
	metrics domrepo.Metrics
}

func NewArchiveService(archive domrepo.Archive, metrics domrepo.Metrics) *ArchiveService {
	return &ArchiveService{archive: archive, metrics: metrics}
}

// Range returns archived snapshots for [from, to] inclusive. The span is
// capped to a year to bound result size.
func (s *ArchiveService) Range(ctx context.Context, from, to time.Time) ([]*models.Snapshot, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("archive: to precedes from")
	}
	if to.Sub(from) > maxArchiveRangeDays*24*time.Hour {
		return nil, fmt.Errorf("archive: range exceeds %d days", maxArchiveRangeDays)
	}

	start := time.Now()
	snapshots, err := s.archive.Query(ctx, from, to, maxArchiveRangeDays+1)
	s.metrics.RecordLatency("archive_query", time.Since(start).Seconds())
	if err != nil {
		s.metrics.RecordError("archive_query")
		return nil, err
	}
	return snapshots, nil
}

// LatestDate reports the most recent archived day.
func (s *ArchiveService) LatestDate(ctx context.Context) (time.Time, error) {
	return s.archive.LatestDate(ctx)
}
