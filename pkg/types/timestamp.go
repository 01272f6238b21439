package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Layouts accepted when reading timestamps. Stores written by earlier
// versions carry local ISO-8601 values without a zone; DueLayout is the
// user-facing input form.
const (
	TimestampLayout = "2006-01-02T15:04:05.999999"
	DueLayout       = "2006-01-02 15:04"
	DateLayout      = "2006-01-02"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	TimestampLayout,
	"2006-01-02T15:04",
	DueLayout,
	"2006-01-02 15:04:05",
}

// Timestamp is a wall-clock instant persisted as local ISO-8601 text.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// TimestampPtr returns a pointer to a Timestamp wrapping t.
func TimestampPtr(t time.Time) *Timestamp {
	ts := NewTimestamp(t)
	return &ts
}

// ParseTimestamp parses any of the accepted layouts in the local zone.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		var (
			t   time.Time
			err error
		)
		if layout == time.RFC3339Nano {
			t, err = time.Parse(layout, s)
		} else {
			t, err = time.ParseInLocation(layout, s, time.Local)
		}
		if err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("parse timestamp %q: %w", s, ErrInvalidTimestamp)
}

// ParseDue parses a user-supplied due date in the strict YYYY-MM-DD HH:MM form.
func ParseDue(s string) (Timestamp, error) {
	t, err := time.ParseInLocation(DueLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return Timestamp{}, fmt.Errorf("due date %q: %w", s, ErrInvalidDueDate)
	}
	return Timestamp{Time: t}, nil
}

// String formats the timestamp in the persisted layout.
func (ts Timestamp) String() string {
	return ts.Local().Format(TimestampLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (ts Timestamp) MarshalText() ([]byte, error) {
	return []byte(ts.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (ts *Timestamp) UnmarshalText(data []byte) error {
	parsed, err := ParseTimestamp(string(data))
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// MarshalJSON overrides the promoted time.Time encoding so JSON stores keep
// the zone-less layout.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.String())
}

// UnmarshalJSON accepts any layout ParseTimestamp does. An empty string or
// null leaves the zero value.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	s, ok, err := jsonString(data)
	if err != nil || !ok {
		return err
	}
	return ts.UnmarshalText([]byte(s))
}

// Date is a calendar day persisted as YYYY-MM-DD.
type Date struct {
	time.Time
}

// DateOf truncates t to its local calendar day.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.Local)}
}

// DaysUntil returns the number of calendar days from d to other. It counts
// on a UTC grid so daylight-saving shifts never produce fractional days.
func (d Date) DaysUntil(other Date) int {
	return dayNumber(other.Time) - dayNumber(d.Time)
}

// Equal reports whether both dates name the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.DaysUntil(other) == 0
}

func dayNumber(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Full timestamps are
// accepted and truncated to their day.
func (d *Date) UnmarshalText(data []byte) error {
	s := strings.TrimSpace(string(data))
	if t, err := time.ParseInLocation(DateLayout, s, time.Local); err == nil {
		*d = Date{Time: t}
		return nil
	}
	ts, err := ParseTimestamp(s)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", s, ErrInvalidTimestamp)
	}
	*d = DateOf(ts.Time)
	return nil
}

// MarshalJSON overrides the promoted time.Time encoding.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON reads YYYY-MM-DD or a full timestamp.
func (d *Date) UnmarshalJSON(data []byte) error {
	s, ok, err := jsonString(data)
	if err != nil || !ok {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// jsonString decodes a JSON string, reporting ok=false for null or "".
func jsonString(data []byte) (string, bool, error) {
	if string(data) == "null" {
		return "", false, nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
	}
	if strings.TrimSpace(s) == "" {
		return "", false, nil
	}
	return s, true, nil
}
