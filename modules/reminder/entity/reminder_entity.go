package entity

import (
	"time"

	"go-calendar-api/core/entity"

	"github.com/google/uuid"
)

// Reminder is a delivered event notification row, written by the background
// worker when a scheduled reminder task fires.
type Reminder struct {
	UserID   uuid.UUID `db:"user_id" json:"user_id"`
	EventID  string    `db:"event_id" json:"event_id"`
	Title    string    `db:"title" json:"title"`
	Message  string    `db:"message" json:"message"`
	NotifyAt time.Time `db:"notify_at" json:"notify_at"`
	IsRead   bool      `db:"is_read" json:"is_read"`
	entity.BaseEntity
}

func (Reminder) TableName() string {
	return "reminders"
}

type PaginatedReminderEntity = entity.Pagination[Reminder]
