package atproto

import (
	"encoding/json"
	"time"
)

// wireTimeFormat is the canonical form the protocol expects on the wire:
// UTC, millisecond precision, Z suffix.
const wireTimeFormat = "2006-01-02T15:04:05.000Z"

// Timestamp is a point in time carried as an RFC 3339 string on the wire.
// Decoding accepts any RFC 3339 form (fractional seconds and numeric offsets
// included); encoding always emits the canonical form. Optional date fields
// are *Timestamp with omitempty, so absence decodes to nil rather than
// failing.
type Timestamp struct {
	time.Time
}

// Now returns the current time as a Timestamp, truncated to wire precision.
func Now() Timestamp {
	return Timestamp{time.Now().UTC().Truncate(time.Millisecond)}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(wireTimeFormat))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &FormatError{Path: "datetime", Value: string(data)}
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		// Some implementations emit second precision without a fraction.
		parsed, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return &FormatError{Path: "datetime", Value: s}
		}
	}
	t.Time = parsed
	return nil
}
