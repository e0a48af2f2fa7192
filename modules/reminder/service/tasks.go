package service

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// TypeEventReminder is the asynq task type for scheduled event reminders.
const TypeEventReminder = "reminder:event"

type EventReminderPayload struct {
	UserID     uuid.UUID `json:"user_id"`
	EventID    string    `json:"event_id"`
	EventTitle string    `json:"event_title"`
	StartAt    time.Time `json:"start_at"`
}

func NewEventReminderTask(payload EventReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeEventReminder, data), nil
}
