package store

import (
	"context"
	"fmt"

	"github.com/oakmont/stint/internal/events"
	"github.com/oakmont/stint/internal/period"
)

// ReadRun retrieves a run record by ID.
// Returns sql.ErrNoRows (wrapped) if not found.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	var run Run
	var processingDate string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, person_id, jurisdiction, processing_date
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.PersonID, &run.Jurisdiction, &processingDate)
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", id, err)
	}

	run.ProcessingDate, err = period.ParseDate(processingDate)
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", id, err)
	}
	return run, nil
}

// ReadPeriods returns a run's canonical period list in canonical order.
// Ordering is deterministic: seq ASC, fingerprint ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) if the run has no periods.
func (s *Store) ReadPeriods(ctx context.Context, runID string) ([]period.Period, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT body
		FROM periods
		WHERE run_id = ?
		ORDER BY seq ASC, fingerprint COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query periods: %w", err)
	}
	defer rows.Close()

	periods := []period.Period{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan period: %w", err)
		}
		p, err := unmarshalPeriod(body)
		if err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate periods: %w", err)
	}

	return periods, nil
}

// ReadEvents returns a run's derived event streams.
// Ordering within each stream is deterministic: seq ASC, id ASC COLLATE
// BINARY.
func (s *Store) ReadEvents(ctx context.Context, runID string) (events.Events, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, body
		FROM events
		WHERE run_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return events.Events{}, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out events.Events
	for rows.Next() {
		var kind, body string
		if err := rows.Scan(&kind, &body); err != nil {
			return events.Events{}, fmt.Errorf("scan event: %w", err)
		}
		if err := unmarshalEvent(kind, body, &out); err != nil {
			return events.Events{}, err
		}
	}
	if err := rows.Err(); err != nil {
		return events.Events{}, fmt.Errorf("iterate events: %w", err)
	}

	return out, nil
}
