package health

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"time"
)

var (
	errNotObject      = errors.New("response body is not a JSON object")
	errLabelNotScalar = errors.New("status label is not a JSON scalar")
)

// Label is a component status label. Any JSON scalar decodes into it verbatim:
// strings keep their value, null becomes empty and numbers and booleans keep
// their JSON text. Objects and arrays are rejected.
type Label string

func (l *Label) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)

	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*l = ""
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*l = Label(s)
	case len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '['):
		return errLabelNotScalar
	default:
		*l = Label(trimmed)
	}

	return nil
}

func (l Label) String() string {
	return string(l)
}

// Timestamp keeps the raw last_updated value next to its parsed time.
// Valid is false when the value was missing or could not be parsed.
type Timestamp struct {
	Raw   string
	Time  time.Time
	Valid bool
}

// zoned layouts carry their own offset; local layouts are read in time.Local.
var (
	zonedLayouts = []string{time.RFC3339Nano, time.RFC1123Z, time.RFC1123}
	localLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02T15:04",
	}
)

// ParseTimestamp parses the formats the backends emit for last_updated.
// A bare date is read as UTC midnight.
func ParseTimestamp(raw string) Timestamp {
	ts := Timestamp{Raw: raw}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			ts.Time, ts.Valid = t, true
			return ts
		}
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			ts.Time, ts.Valid = t, true
			return ts
		}
	}

	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		ts.Time, ts.Valid = t, true
	}

	return ts
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)

	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*t = Timestamp{}
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*t = ParseTimestamp(s)
	default:
		// Numbers are epoch milliseconds.
		ms, err := strconv.ParseInt(string(trimmed), 10, 64)
		if err != nil {
			*t = Timestamp{Raw: string(trimmed)}
			return nil
		}
		*t = Timestamp{Raw: string(trimmed), Time: time.UnixMilli(ms), Valid: true}
	}

	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Raw)
}

// Report is one snapshot of the component statuses and the time the backend
// produced it.
type Report struct {
	ReceiverHealth   Label     `json:"receiver_health"`
	StorageHealth    Label     `json:"storage_health"`
	ProcessingHealth Label     `json:"processing_health"`
	AuditHealth      Label     `json:"audit_health"`
	LastUpdated      Timestamp `json:"last_updated"`
}

// DecodeReport parses a health_check response body. The body must be a JSON
// object; unknown fields are ignored and missing ones stay empty.
func DecodeReport(body []byte) (Report, error) {
	// Malformed input is left to Unmarshal so its syntax error is reported.
	if trimmed := bytes.TrimSpace(body); json.Valid(trimmed) && trimmed[0] != '{' {
		return Report{}, errNotObject
	}

	var report Report
	if err := json.Unmarshal(body, &report); err != nil {
		return Report{}, err
	}
	return report, nil
}
