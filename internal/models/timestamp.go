package models

import (
	"time"

	"loop-backend/internal/apierr"
)

// timestampLayout is the canonical wire format: UTC with a literal Z suffix
// and fixed microsecond precision.
const timestampLayout = "2006-01-02T15:04:05.000000Z"

// naive ISO-8601 without a zone, optional fractional seconds
const naiveLayout = "2006-01-02T15:04:05.999999999"

func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// FormatTimestamp renders a timestamp in the canonical wire format.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// parseTimestamp accepts ISO-8601 strings with or without a trailing Z or
// offset and normalizes them to UTC. A missing value defaults to now; an
// unparsable one is a validation failure.
func parseTimestamp(value interface{}, field string) (time.Time, error) {
	switch v := value.(type) {
	case nil:
		return utcNow(), nil
	case time.Time:
		return v.UTC().Truncate(time.Microsecond), nil
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t.UTC(), nil
		}
		if t, err := time.Parse(naiveLayout, v); err == nil {
			return t.UTC(), nil
		}
		return time.Time{}, apierr.Validation("invalid %s timestamp: %q", field, v)
	default:
		return time.Time{}, apierr.Validation("invalid %s timestamp value", field)
	}
}

func timestampField(doc map[string]interface{}, external, internal string) (time.Time, error) {
	value, _ := lookup(doc, external, internal)
	return parseTimestamp(value, external)
}
