package detection

import (
	"time"
)

// eventTimeLayouts are tried in order when parsing backend timestamps. The
// backend does not document a format; the custom anomaly feed in particular
// may carry either a full datetime or a bare clock time.
var eventTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	"15:04:05",
}

// ParseEventTime parses a backend-reported timestamp string. It returns nil
// when the value is empty or matches none of the known layouts; callers treat
// nil as "timestamp absent" and fall back to ingestion time.
func ParseEventTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range eventTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return &t
		}
	}
	return nil
}
