package entry

import (
	"encoding/json"
	"time"
)

// Timestamp encodes as RFC3339 with nanoseconds in UTC so creation order
// survives a round trip. The zero time encodes as "" and "" or null decode to
// the zero time.
type Timestamp struct {
	time.Time
}

// Stamp wraps t.
func Stamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(FormatTime(t.Time))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var v *string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v == nil || *v == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, *v)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) String() string {
	return FormatTime(t.Time)
}

// FormatTime renders v for storage and the MCP surface. Zero renders as "".
func FormatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339Nano)
}
