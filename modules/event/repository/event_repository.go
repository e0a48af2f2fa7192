package repository

import (
	"context"
	"database/sql"

	"go-calendar-api/core/database"
	"go-calendar-api/core/logger"
	"go-calendar-api/modules/event/entity"

	"github.com/google/uuid"
)

// EventRepository is the owner-scoped event store: every query is keyed by
// user_id so one user's session can never read or mutate another's events.
type EventRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Event, error)
	GetByID(ctx context.Context, userID uuid.UUID, id string) (*entity.Event, error)
	Create(ctx context.Context, event *entity.Event) (*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) (*entity.Event, error)
	Delete(ctx context.Context, userID uuid.UUID, id string) (bool, error)
}

type eventRepository struct {
	db database.Database
}

func NewEventRepository(db database.Database) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Event, error) {
	query := `
		SELECT id, user_id, title, start_at, end_at, all_day, timezone, recurring, created_at, updated_at
		FROM events
		WHERE user_id = $1
		ORDER BY start_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		logger.Error("EventRepository:GetByUserID:Error:", "error", err)
		return nil, err
	}
	defer rows.Close()

	var events []entity.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	return events, rows.Err()
}

func (r *eventRepository) GetByID(ctx context.Context, userID uuid.UUID, id string) (*entity.Event, error) {
	query := `
		SELECT id, user_id, title, start_at, end_at, all_day, timezone, recurring, created_at, updated_at
		FROM events
		WHERE id = $1 AND user_id = $2
	`
	row := r.db.QueryRowContext(ctx, query, id, userID)

	ev, err := scanEvent(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return ev, nil
}

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	query := `
		INSERT INTO events (id, user_id, title, start_at, end_at, all_day, timezone, recurring)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		event.ID, event.UserID, event.Title, event.Start, event.End,
		event.AllDay, event.Timezone, nullableRecurrence(event.Recurring),
	).Scan(&event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		logger.Error("EventRepository:Create:Error:", "error", err)
		return nil, err
	}
	return event, nil
}

func (r *eventRepository) Update(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	query := `
		UPDATE events
		SET title = $1, start_at = $2, end_at = $3, all_day = $4, timezone = $5, recurring = $6, updated_at = NOW()
		WHERE id = $7 AND user_id = $8
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		event.Title, event.Start, event.End, event.AllDay, event.Timezone,
		nullableRecurrence(event.Recurring), event.ID, event.UserID,
	).Scan(&event.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:Update:Error:", "error", err)
		return nil, err
	}
	return event, nil
}

func (r *eventRepository) Delete(ctx context.Context, userID uuid.UUID, id string) (bool, error) {
	query := `DELETE FROM events WHERE id = $1 AND user_id = $2 RETURNING id`
	var deleted string
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&deleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		logger.Error("EventRepository:Delete:Error:", "error", err)
		return false, err
	}
	return true, nil
}

// recurrenceColumn scans the nullable recurring column into a typed rule.
type recurrenceColumn struct {
	rule *entity.Recurrence
}

func (c *recurrenceColumn) Scan(value any) error {
	if value == nil {
		c.rule = nil
		return nil
	}
	var r entity.Recurrence
	if err := r.Scan(value); err != nil {
		return err
	}
	c.rule = &r
	return nil
}

func nullableRecurrence(r *entity.Recurrence) any {
	if r == nil {
		return nil
	}
	return *r
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*entity.Event, error) {
	var ev entity.Event
	var rec recurrenceColumn
	if err := row.Scan(&ev.ID, &ev.UserID, &ev.Title, &ev.Start, &ev.End, &ev.AllDay,
		&ev.Timezone, &rec, &ev.CreatedAt, &ev.UpdatedAt); err != nil {
		if err != sql.ErrNoRows {
			logger.Error("EventRepository:ScanEvent:Error:", "error", err)
		}
		return nil, err
	}
	ev.Recurring = rec.rule
	return &ev, nil
}
