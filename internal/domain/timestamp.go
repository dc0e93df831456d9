package domain

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Timestamp wraps time.Time to accept both RFC 3339 instants and bare dates
// on the wire. The backend serves event windows as dates; a bare date anchors
// to midnight UTC.
type Timestamp struct {
	time.Time
}

// NewTimestamp returns a Timestamp for the given instant.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, s); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

// MarshalJSON implements json.Marshaler. Midnight-UTC values round-trip as
// bare dates, matching what the backend accepts for date fields.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`null`), nil
	}
	if h, m, s := t.Clock(); h == 0 && m == 0 && s == 0 && t.Location() == time.UTC {
		return []byte(`"` + t.Format(dateLayout) + `"`), nil
	}
	return []byte(`"` + t.Format(time.RFC3339) + `"`), nil
}
