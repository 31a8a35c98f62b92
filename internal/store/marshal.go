package store

import (
	"encoding/json"
	"fmt"

	"github.com/oakmont/stint/internal/events"
	"github.com/oakmont/stint/internal/period"
)

// marshalPeriod converts a period to canonical JSON TEXT for storage.
// Canonical bytes are what the fingerprint is computed over, so the stored
// body and the row key can never disagree.
func marshalPeriod(p period.Period) (string, error) {
	data, err := period.MarshalCanonical(period.Canonical(p))
	if err != nil {
		return "", fmt.Errorf("marshal period: %w", err)
	}
	return string(data), nil
}

// unmarshalPeriod parses a stored canonical JSON body back into a period.
// Canonical keys match the struct's JSON tags.
func unmarshalPeriod(data string) (period.Period, error) {
	var p period.Period
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return period.Period{}, fmt.Errorf("unmarshal period: %w", err)
	}
	return p, nil
}

func marshalEventBody(canonical map[string]any) (string, error) {
	data, err := period.MarshalCanonical(canonical)
	if err != nil {
		return "", fmt.Errorf("marshal event: %w", err)
	}
	return string(data), nil
}

// unmarshalEvent parses a stored event body into the typed stream slot
// selected by its kind column.
func unmarshalEvent(kind string, data string, out *events.Events) error {
	switch events.Kind(kind) {
	case events.KindAdmission:
		var ev events.AdmissionEvent
		if err := json.Unmarshal([]byte(data), &ev); err != nil {
			return fmt.Errorf("unmarshal admission event: %w", err)
		}
		out.Admissions = append(out.Admissions, ev)
	case events.KindRelease:
		var ev events.ReleaseEvent
		if err := json.Unmarshal([]byte(data), &ev); err != nil {
			return fmt.Errorf("unmarshal release event: %w", err)
		}
		out.Releases = append(out.Releases, ev)
	case events.KindStay:
		var ev events.StayEvent
		if err := json.Unmarshal([]byte(data), &ev); err != nil {
			return fmt.Errorf("unmarshal stay event: %w", err)
		}
		out.Stays = append(out.Stays, ev)
	default:
		return fmt.Errorf("unknown event kind %q", kind)
	}
	return nil
}
