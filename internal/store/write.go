package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/oakmont/stint/internal/events"
	"github.com/oakmont/stint/internal/period"
)

// Run is one derive invocation recorded in the store.
type Run struct {
	ID             string
	PersonID       string
	Jurisdiction   string
	ProcessingDate period.Date
}

// WriteRun inserts a run record.
// Uses ON CONFLICT(id) DO NOTHING for idempotency; duplicate IDs are
// silently ignored, other constraint violations still return errors.
func (s *Store) WriteRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, person_id, jurisdiction, processing_date)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.PersonID,
		run.Jurisdiction,
		run.ProcessingDate.String(),
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}

// WritePeriods inserts a run's canonical period list.
// Each row is keyed by (run_id, fingerprint); rewriting the same list is a
// no-op. seq records canonical order so reads reproduce it exactly.
//
// The run referenced by runID must exist (foreign key constraint).
func (s *Store) WritePeriods(ctx context.Context, runID string, periods []period.Period) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write periods: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := writePeriodsTx(ctx, tx, runID, periods); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write periods: commit: %w", err)
	}
	return nil
}

func writePeriodsTx(ctx context.Context, tx *sql.Tx, runID string, periods []period.Period) error {
	for i, p := range periods {
		fingerprint, err := period.Fingerprint(p)
		if err != nil {
			return fmt.Errorf("write periods: fingerprint %s: %w", p.ExternalID, err)
		}
		body, err := marshalPeriod(p)
		if err != nil {
			return fmt.Errorf("write periods: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO periods (run_id, fingerprint, seq, external_id, body)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(run_id, fingerprint) DO NOTHING
		`,
			runID,
			fingerprint,
			i,
			p.ExternalID,
			body,
		)
		if err != nil {
			return fmt.Errorf("write periods: insert %s: %w", p.ExternalID, err)
		}
	}
	return nil
}

// WriteEvents inserts a run's derived event streams.
// Events are keyed by (run_id, content-addressed ID); rewriting the same
// streams is a no-op.
//
// The run referenced by runID must exist (foreign key constraint).
func (s *Store) WriteEvents(ctx context.Context, runID string, evs events.Events) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write events: begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := writeEventsTx(ctx, tx, runID, evs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write events: commit: %w", err)
	}
	return nil
}

func writeEventsTx(ctx context.Context, tx *sql.Tx, runID string, evs events.Events) error {
	seq := 0
	insert := func(kind events.Kind, eventDate period.Date, canonical map[string]any) error {
		id, err := period.HashCanonical(period.DomainEvent, canonical)
		if err != nil {
			return fmt.Errorf("write events: id: %w", err)
		}
		body, err := marshalEventBody(canonical)
		if err != nil {
			return fmt.Errorf("write events: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO events (run_id, id, kind, event_date, seq, body)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(run_id, id) DO NOTHING
		`,
			runID,
			id,
			string(kind),
			eventDate.String(),
			seq,
			body,
		)
		if err != nil {
			return fmt.Errorf("write events: insert %s: %w", kind, err)
		}
		seq++
		return nil
	}

	for _, ev := range evs.Admissions {
		if err := insert(events.KindAdmission, ev.EventDate, ev.Canonical()); err != nil {
			return err
		}
	}
	for _, ev := range evs.Releases {
		if err := insert(events.KindRelease, ev.EventDate, ev.Canonical()); err != nil {
			return err
		}
	}
	for _, ev := range evs.Stays {
		if err := insert(events.KindStay, ev.EventDate, ev.Canonical()); err != nil {
			return err
		}
	}
	return nil
}

// WriteRunAtomic writes a run with its periods and events in a single
// transaction. Returns inserted=false when the run ID already exists, in
// which case nothing else is written: the run was already recorded and
// content-addressed rows make a second write redundant.
func (s *Store) WriteRunAtomic(
	ctx context.Context,
	run Run,
	periods []period.Period,
	evs events.Events,
) (inserted bool, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("atomic run write: begin tx: %w", err)
	}
	defer tx.Rollback()

	// Claim the run ID first; the conflict result decides everything else.
	result, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, person_id, jurisdiction, processing_date)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.PersonID,
		run.Jurisdiction,
		run.ProcessingDate.String(),
	)
	if err != nil {
		return false, fmt.Errorf("atomic run write: insert run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("atomic run write: rows affected: %w", err)
	}
	if rowsAffected == 0 {
		if err := tx.Commit(); err != nil {
			return false, fmt.Errorf("atomic run write: commit (existing): %w", err)
		}
		return false, nil
	}

	if err := writePeriodsTx(ctx, tx, run.ID, periods); err != nil {
		return false, fmt.Errorf("atomic run write: %w", err)
	}
	if err := writeEventsTx(ctx, tx, run.ID, evs); err != nil {
		return false, fmt.Errorf("atomic run write: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("atomic run write: commit: %w", err)
	}
	return true, nil
}
