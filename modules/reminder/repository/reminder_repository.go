package repository

import (
	"context"
	"time"

	"go-calendar-api/core/database"
	"go-calendar-api/core/logger"
	"go-calendar-api/core/params"
	"go-calendar-api/modules/reminder/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ReminderRepository struct {
	db database.Database
}

func NewReminderRepository(db database.Database) *ReminderRepository {
	return &ReminderRepository{db: db}
}

func (r *ReminderRepository) Create(ctx context.Context, reminder *entity.Reminder) error {
	now := time.Now()
	reminder.CreatedAt = now
	reminder.UpdatedAt = now

	query := `
		INSERT INTO reminders (user_id, event_id, title, message, notify_at, is_read, created_at, updated_at)
		VALUES (:user_id, :event_id, :title, :message, :notify_at, :is_read, :created_at, :updated_at)
		RETURNING id
	`
	rows, err := r.db.NamedQueryContext(ctx, query, reminder)
	if err != nil {
		logger.Error("ReminderRepository:Create:Error:", "error", err)
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&reminder.ID)
	}
	return nil
}

func (r *ReminderRepository) GetByUserID(ctx context.Context, userID uuid.UUID, p params.QueryParams) (*entity.PaginatedReminderEntity, error) {
	offset := (p.PageNumber - 1) * p.PageSize

	baseQuery := `FROM reminders WHERE user_id = $1`

	var totalItems int
	err := r.db.GetContext(ctx, &totalItems, "SELECT COUNT(*) "+baseQuery, userID)
	if err != nil {
		logger.Error("ReminderRepository:GetByUserID:Count:Error:", "error", err)
		return nil, err
	}

	query := `
		SELECT * ` + baseQuery + `
		ORDER BY notify_at DESC
		LIMIT $2 OFFSET $3
	`
	var reminders []entity.Reminder
	err = r.db.SelectContext(ctx, &reminders, query, userID, p.PageSize, offset)
	if err != nil {
		logger.Error("ReminderRepository:GetByUserID:Select:Error:", "error", err)
		return nil, err
	}

	return &entity.PaginatedReminderEntity{
		Items:      reminders,
		TotalItems: totalItems,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}, nil
}

func (r *ReminderRepository) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`UPDATE reminders SET is_read = true WHERE user_id = ? AND id IN (?)`, userID, ids)
	if err != nil {
		return err
	}

	query = r.db.SQLx().Rebind(query)
	if err := r.db.ExecContext(ctx, query, args...); err != nil {
		logger.Error("ReminderRepository:MarkAsRead:Error:", "error", err)
		return err
	}
	return nil
}

func (r *ReminderRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE reminders SET is_read = true WHERE user_id = $1`
	if err := r.db.ExecContext(ctx, query, userID); err != nil {
		logger.Error("ReminderRepository:MarkAllAsRead:Error:", "error", err)
		return err
	}
	return nil
}

func (r *ReminderRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM reminders WHERE user_id = $1 AND is_read = false`
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		logger.Error("ReminderRepository:CountUnread:Error:", "error", err)
		return 0, err
	}
	return count, nil
}
