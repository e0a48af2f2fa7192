package dto

import (
	"time"

	"go-calendar-api/modules/event/entity"
)

// RecurrenceRequest mirrors entity.Recurrence on the wire.
type RecurrenceRequest struct {
	Frequency string `json:"frequency"`
	Interval  int    `json:"interval"`
	EndDate   string `json:"endDate,omitempty"`
}

// CreateEventRequest is the draft event posted by clients. Start/End accept
// RFC3339, "2006-01-02T15:04" and, for all-day events, plain dates.
type CreateEventRequest struct {
	Title     string             `json:"title"`
	Start     string             `json:"start"`
	End       string             `json:"end"`
	AllDay    bool               `json:"allDay"`
	Timezone  string             `json:"timezone,omitempty"`
	Recurring *RecurrenceRequest `json:"recurring,omitempty"`
}

// UpdateEventRequest is a partial update: absent fields keep their stored
// values. Drag/resize sends only Start (and sometimes End).
type UpdateEventRequest struct {
	Title     *string            `json:"title,omitempty"`
	Start     *string            `json:"start,omitempty"`
	End       *string            `json:"end,omitempty"`
	AllDay    *bool              `json:"allDay,omitempty"`
	Timezone  *string            `json:"timezone,omitempty"`
	Recurring *RecurrenceRequest `json:"recurring,omitempty"`
	// ClearRecurring removes an existing rule; a nil Recurring alone means
	// "leave unchanged".
	ClearRecurring bool `json:"clearRecurring,omitempty"`
}

// EventInstance is a displayable materialization of a base event: either the
// original or one generated repetition. Never persisted.
type EventInstance struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Start           time.Time          `json:"start"`
	End             time.Time          `json:"end"`
	AllDay          bool               `json:"allDay"`
	Timezone        string             `json:"timezone"`
	Recurring       *entity.Recurrence `json:"recurring,omitempty"`
	BackgroundColor string             `json:"backgroundColor"`
	BorderColor     string             `json:"borderColor"`
}

type ExpandedEventsResponse struct {
	Instances []EventInstance `json:"instances"`
}
