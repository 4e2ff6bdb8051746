package event

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// localDateTime is the zone-less ISO-8601 form a LocalDateTime serializes to.
const localDateTime = "2006-01-02T15:04:05.999999999"

// Timestamp is the optional event time carried by inbound messages.
// It decodes RFC 3339 text, zone-less ISO-8601 text (read as UTC) and the
// numeric array form [year, month, day, hour, minute, second, nanos].
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t}
}

// Value returns the wrapped time, or the zero time for a nil receiver.
func (t *Timestamp) Value() time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.Time
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.UTC().Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '[' {
		var parts []int
		if err := json.Unmarshal(data, &parts); err != nil {
			return fmt.Errorf("timestamp array: %w", err)
		}
		if len(parts) < 5 || len(parts) > 7 {
			return fmt.Errorf("timestamp array: expected 5 to 7 elements, got %d", len(parts))
		}
		for len(parts) < 7 {
			parts = append(parts, 0)
		}
		t.Time = time.Date(parts[0], time.Month(parts[1]), parts[2], parts[3], parts[4], parts[5], parts[6], time.UTC)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}

	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = parsed.UTC()
		return nil
	}
	parsed, err := time.ParseInLocation(localDateTime, s, time.UTC)
	if err != nil {
		return fmt.Errorf("timestamp %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}
