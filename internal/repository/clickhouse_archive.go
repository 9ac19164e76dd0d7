package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"StarChart/internal/domain/models"
	"StarChart/internal/domain/repository"
)

// SchemaStatements are the idempotent DDL for the archive database.
func SchemaStatements(database, table string) []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.%s (
			date Date,
			sidereal UInt8,
			moon_phase Float64,
			moon_phase_name LowCardinality(String),
			signs Map(String, String),
			mercury_retrograde UInt8,
			aspect_count UInt16,
			dominant_element LowCardinality(String),
			payload String,
			computed_at DateTime
		) ENGINE = ReplacingMergeTree(computed_at)
		PARTITION BY toYYYYMM(date)
		ORDER BY (date, sidereal)`, database, table),
	}
}

// ClickHouseArchive implements Archive for ClickHouse.
type ClickHouseArchive struct {
	db    *sql.DB
	table string
}

// NewClickHouseArchive creates ClickHouse-backed archive storage.
func NewClickHouseArchive(db *sql.DB, table string) repository.Archive {
	return &ClickHouseArchive{db: db, table: table}
}

func (s *ClickHouseArchive) Init(ctx context.Context) error {
	return nil // Schema init in pkg
}

func (s *ClickHouseArchive) Store(ctx context.Context, snap *models.Snapshot) error {
	return s.StoreBatch(ctx, []*models.Snapshot{snap})
}

func (s *ClickHouseArchive) StoreBatch(ctx context.Context, snapshots []*models.Snapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	// Batch insert using VALUES multi-row to reduce round-trips.
	const chunkSize = 1000
	for start := 0; start < len(snapshots); start += chunkSize {
		end := start + chunkSize
		if end > len(snapshots) {
			end = len(snapshots)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*10)
		for _, snap := range snapshots[start:end] {
			if snap == nil || snap.Date.IsZero() {
				continue
			}
			signs, err := json.Marshal(snap.Signs)
			if err != nil {
				return fmt.Errorf("marshal signs: %w", err)
			}
			computedAt := snap.ComputedAt
			if computedAt.IsZero() {
				computedAt = time.Now().UTC()
			}
			values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				snap.Date,
				boolToUInt8(snap.Sidereal),
				snap.MoonPhaseValue,
				snap.MoonPhaseName,
				string(signs),
				boolToUInt8(snap.MercuryRetrograde),
				uint16(snap.AspectCount),
				snap.DominantElement,
				string(snap.Payload),
				computedAt,
			)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (date, sidereal, moon_phase, moon_phase_name, signs, mercury_retrograde, aspect_count, dominant_element, payload, computed_at) VALUES %s",
			s.table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}
	return nil
}

func (s *ClickHouseArchive) Query(ctx context.Context, from, to time.Time, limit int) ([]*models.Snapshot, error) {
	q := fmt.Sprintf(`SELECT date, sidereal, moon_phase, moon_phase_name, signs, mercury_retrograde, aspect_count, dominant_element, payload, computed_at
		FROM %s FINAL WHERE date >= ? AND date <= ? ORDER BY date ASC LIMIT ?`, s.table)
	rows, err := s.db.QueryContext(ctx, q, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []*models.Snapshot
	for rows.Next() {
		var (
			snap     models.Snapshot
			sidereal uint8
			retro    uint8
			signs    string
			count    uint16
			payload  string
		)
		if err := rows.Scan(&snap.Date, &sidereal, &snap.MoonPhaseValue, &snap.MoonPhaseName,
			&signs, &retro, &count, &snap.DominantElement, &payload, &snap.ComputedAt); err != nil {
			return nil, err
		}
		snap.Sidereal = sidereal != 0
		snap.MercuryRetrograde = retro != 0
		snap.AspectCount = int(count)
		snap.Payload = []byte(payload)
		if signs != "" {
			if err := json.Unmarshal([]byte(signs), &snap.Signs); err != nil {
				return nil, fmt.Errorf("unmarshal signs: %w", err)
			}
		}
		snapshots = append(snapshots, &snap)
	}
	return snapshots, rows.Err()
}

func (s *ClickHouseArchive) LatestDate(ctx context.Context) (time.Time, error) {
	q := fmt.Sprintf("SELECT max(date) FROM %s", s.table)
	var latest time.Time
	if err := s.db.QueryRowContext(ctx, q).Scan(&latest); err != nil {
		return time.Time{}, err
	}
	return latest, nil
}

func (s *ClickHouseArchive) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseArchive) Close() error {
	return nil // Managed by pkg
}

func boolToUInt8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
