package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Recurrence frequency values
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"
)

// Recurrence is the typed recurrence rule stored in the events.recurring
// jsonb column. EndDate, when set, is a calendar date in YYYY-MM-DD form.
type Recurrence struct {
	Frequency string `json:"frequency"`
	Interval  int    `json:"interval"`
	EndDate   string `json:"endDate,omitempty"`
}

func (r Recurrence) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan decodes the stored rule once, at the store-access edge. Legacy rows
// hold a double-encoded JSON string instead of a jsonb object; both shapes
// are accepted here so nothing downstream ever re-parses.
func (r *Recurrence) Scan(value any) error {
	if value == nil {
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("recurrence: unsupported column type")
	}
	if len(raw) == 0 {
		return nil
	}

	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return err
		}
		raw = []byte(inner)
	}
	return json.Unmarshal(raw, r)
}

// ParsedEndDate resolves EndDate in the given location. ok is false when no
// end date is set.
func (r *Recurrence) ParsedEndDate(loc *time.Location) (t time.Time, ok bool, err error) {
	if r.EndDate == "" {
		return time.Time{}, false, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	t, err = time.ParseInLocation("2006-01-02", r.EndDate, loc)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

// Event is the persisted base event. Start/End are exact instants for timed
// events and day bounds (00:00:00 / 23:59:59) for all-day ones; Timezone
// records the zone the wall-clock time was authored in, for display only.
type Event struct {
	ID        string      `db:"id" json:"id"`
	UserID    uuid.UUID   `db:"user_id" json:"-"`
	Title     string      `db:"title" json:"title"`
	Start     time.Time   `db:"start_at" json:"start"`
	End       time.Time   `db:"end_at" json:"end"`
	AllDay    bool        `db:"all_day" json:"allDay"`
	Timezone  string      `db:"timezone" json:"timezone"`
	Recurring *Recurrence `db:"recurring" json:"recurring,omitempty"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt time.Time   `db:"updated_at" json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}

// Duration is the span preserved across generated occurrences.
func (e *Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}
