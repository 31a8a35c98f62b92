package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/oakmont/stint/internal/events"
	"github.com/oakmont/stint/internal/period"
)

// EventFilter narrows a run's event stream. Zero-value fields are
// unconstrained.
type EventFilter struct {
	Kind events.Kind
	From *period.Date // inclusive
	To   *period.Date // inclusive
}

// EventRecord is one stored event row, returned raw for reporting. The
// body is canonical JSON; callers needing typed events use ReadEvents.
type EventRecord struct {
	ID        string
	Kind      events.Kind
	EventDate period.Date
	Body      string
}

// QueryEvents returns a run's events matching the filter.
//
// All values are parameterized, never interpolated, and the query carries
// a deterministic ORDER BY (event_date ASC, id ASC COLLATE BINARY) so the
// same database always reports events in the same order.
func (s *Store) QueryEvents(ctx context.Context, runID string, filter EventFilter) ([]EventRecord, error) {
	where := []string{"run_id = ?"}
	params := []any{runID}

	if filter.Kind != "" {
		where = append(where, "kind = ?")
		params = append(params, string(filter.Kind))
	}
	if filter.From != nil {
		where = append(where, "event_date >= ?")
		params = append(params, filter.From.String())
	}
	if filter.To != nil {
		where = append(where, "event_date <= ?")
		params = append(params, filter.To.String())
	}

	query := fmt.Sprintf(`
		SELECT id, kind, event_date, body
		FROM events
		WHERE %s
		ORDER BY event_date ASC, id COLLATE BINARY ASC
	`, strings.Join(where, " AND "))

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	records := []EventRecord{}
	for rows.Next() {
		var rec EventRecord
		var kind, eventDate string
		if err := rows.Scan(&rec.ID, &kind, &eventDate, &rec.Body); err != nil {
			return nil, fmt.Errorf("scan event record: %w", err)
		}
		rec.Kind = events.Kind(kind)
		rec.EventDate, err = period.ParseDate(eventDate)
		if err != nil {
			return nil, fmt.Errorf("scan event record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event records: %w", err)
	}

	return records, nil
}
