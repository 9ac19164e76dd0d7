package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"StarChart/internal/astro"
	"StarChart/internal/domain/models"
	domrepo "StarChart/internal/domain/repository"
	"StarChart/pkg/cache"
	applogger "StarChart/pkg/logger"
)

// ErrNoMoonPhase means the chart computed but lunar data was unavailable.
var ErrNoMoonPhase = errors.New("usecase: moon phase unavailable")

// ChartService computes charts and serves them through the cache. Cached
// entries hold the plain chart; interpretations are annotated after the
// fact so both variants share one cache slot.
type ChartService struct {
	engine  *astro.Engine
	cache   cache.Service
	archive domrepo.Archive
	metrics domrepo.Metrics
	log     *applogger.Logger
	ttl     time.Duration
}

// NewChartService creates the chart usecase. cache may be nil to disable caching.
func NewChartService(engine *astro.Engine, c cache.Service, metrics domrepo.Metrics, log *applogger.Logger, ttl time.Duration) *ChartService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ChartService{engine: engine, cache: c, metrics: metrics, log: log, ttl: ttl}
}

// UseArchive makes GetChart consult the snapshot archive before computing.
// Only tropical charts are archived.
func (s *ChartService) UseArchive(archive domrepo.Archive) {
	s.archive = archive
}

// TTL reports the configured cache lifetime.
func (s *ChartService) TTL() time.Duration { return s.ttl }

func zodiacLabel(sidereal bool) string {
	if sidereal {
		return "sidereal"
	}
	return "tropical"
}

// GetChart returns the chart for a calendar day, from cache when possible.
func (s *ChartService) GetChart(ctx context.Context, day time.Time, sidereal, interpret bool) (*models.Chart, error) {
	zodiac := zodiacLabel(sidereal)
	key := cache.GenerateKeyWithParams("chart", day.UTC().Format("2006-01-02"), zodiac)

	if s.cache != nil {
		var payload string
		if err := s.cache.Get(ctx, key, &payload); err == nil {
			var chart models.Chart
			if err := json.Unmarshal([]byte(payload), &chart); err == nil {
				s.metrics.RecordCacheLookup("hit")
				if interpret {
					astro.Annotate(&chart)
				}
				return &chart, nil
			}
			s.log.Warn("corrupt cache entry dropped", applogger.String("key", key))
			_ = s.cache.Delete(ctx, key)
		}
		s.metrics.RecordCacheLookup("miss")
	}

	if chart := s.fromArchive(ctx, day, sidereal); chart != nil {
		s.storeInCache(ctx, key, chart)
		if interpret {
			astro.Annotate(chart)
		}
		return chart, nil
	}

	start := time.Now()
	chart, err := s.engine.Compute(ctx, astro.Request{Instant: day, Sidereal: sidereal})
	s.metrics.RecordLatency("chart_compute", time.Since(start).Seconds())
	if err != nil {
		s.metrics.RecordError("chart_compute")
		return nil, err
	}
	for name := range chart.Errors {
		s.metrics.RecordBodyFailure(name)
	}
	s.metrics.RecordChartComputed(zodiac)

	s.storeInCache(ctx, key, chart)

	if interpret {
		astro.Annotate(chart)
	}
	return chart, nil
}

func (s *ChartService) storeInCache(ctx context.Context, key string, chart *models.Chart) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(chart)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(payload), s.ttl); err != nil {
		s.log.Warn("cache write failed", applogger.String("key", key), applogger.Error(err))
	}
}

// fromArchive restores a previously archived chart for the day, if one exists.
// Archive misses and failures fall through to a fresh compute.
func (s *ChartService) fromArchive(ctx context.Context, day time.Time, sidereal bool) *models.Chart {
	if s.archive == nil || sidereal {
		return nil
	}
	start := time.Now()
	snaps, err := s.archive.Query(ctx, day, day, 1)
	s.metrics.RecordLatency("archive_read", time.Since(start).Seconds())
	if err != nil {
		s.log.Warn("archive lookup failed", applogger.String("date", day.Format("2006-01-02")), applogger.Error(err))
		return nil
	}
	if len(snaps) == 0 || len(snaps[0].Payload) == 0 {
		return nil
	}
	var chart models.Chart
	if err := json.Unmarshal(snaps[0].Payload, &chart); err != nil {
		s.log.Warn("archived chart payload unreadable", applogger.String("date", day.Format("2006-01-02")), applogger.Error(err))
		return nil
	}
	return &chart
}

// GetMoonPhase returns lunar data for a day, sharing the chart cache.
func (s *ChartService) GetMoonPhase(ctx context.Context, day time.Time) (*models.MoonPhase, error) {
	chart, err := s.GetChart(ctx, day, false, false)
	if err != nil {
		return nil, err
	}
	if chart.MoonPhase == nil {
		return nil, ErrNoMoonPhase
	}
	return chart.MoonPhase, nil
}

// GetAspects returns the aspect list for a day.
func (s *ChartService) GetAspects(ctx context.Context, day time.Time, sidereal, interpret bool) ([]models.Aspect, error) {
	chart, err := s.GetChart(ctx, day, sidereal, interpret)
	if err != nil {
		return nil, err
	}
	return chart.Aspects, nil
}

// Invalidate drops every cached chart variant for a day.
func (s *ChartService) Invalidate(ctx context.Context, day time.Time) error {
	if s.cache == nil {
		return nil
	}
	date := day.UTC().Format("2006-01-02")
	return s.cache.Delete(ctx,
		cache.GenerateKeyWithParams("chart", date, "tropical"),
		cache.GenerateKeyWithParams("chart", date, "sidereal"),
	)
}
