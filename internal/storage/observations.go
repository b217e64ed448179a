package storage

import (
	"context"
	"fmt"
	"math"

	"github.com/lunaroak/tally-ho/internal/series"
)

// RecordObservation stores one per-period metric value, replacing any
// earlier value for the same metric and period. Non-finite values are
// rejected here so the analyzer never sees them.
func (s *SQLiteStorage) RecordObservation(ctx context.Context, metric string, point series.Point) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(metric, "metric"); err != nil {
		return err
	}
	if math.IsNaN(point.Value) || math.IsInf(point.Value, 0) {
		return fmt.Errorf("%w: observation for %s", ErrInvalidValue, metric)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO observations (metric, period_start, value, recorded_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(metric, period_start) DO UPDATE SET
			value = excluded.value,
			recorded_at = CURRENT_TIMESTAMP
	`, metric, point.PeriodStart.UTC(), point.Value)
	if err != nil {
		return fmt.Errorf("failed to record observation for %s: %w", metric, err)
	}
	return nil
}

// GetObservations returns all recorded points for a metric, oldest first.
// The current-period filter is applied later by series.Build, not here.
func (s *SQLiteStorage) GetObservations(ctx context.Context, metric string) ([]series.Point, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(metric, "metric"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT period_start, value
		FROM observations
		WHERE metric = ?
		ORDER BY period_start ASC
	`, metric)
	if err != nil {
		return nil, fmt.Errorf("failed to get observations for %s: %w", metric, err)
	}
	defer func() { _ = rows.Close() }()

	var points []series.Point
	for rows.Next() {
		var p series.Point
		if err := rows.Scan(&p.PeriodStart, &p.Value); err != nil {
			return nil, fmt.Errorf("failed to scan observation: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read observations: %w", err)
	}
	return points, nil
}
