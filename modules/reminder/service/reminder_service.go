package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-calendar-api/core/constants"
	"go-calendar-api/core/errors"
	"go-calendar-api/core/logger"
	"go-calendar-api/core/params"
	"go-calendar-api/modules/reminder/entity"
	"go-calendar-api/modules/reminder/repository"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type ReminderService struct {
	repo   *repository.ReminderRepository
	client *asynq.Client
}

func NewReminderService(repo *repository.ReminderRepository, client *asynq.Client) *ReminderService {
	return &ReminderService{repo: repo, client: client}
}

// ScheduleEventReminder enqueues a task that fires shortly before the event
// starts. Events starting within the lead time (or in the past) get no
// reminder.
func (s *ReminderService) ScheduleEventReminder(ctx context.Context, userID uuid.UUID, eventID, title string, startAt time.Time) error {
	if s.client == nil {
		return nil
	}

	notifyAt := startAt.Add(-constants.ReminderLeadTime)
	if notifyAt.Before(time.Now()) {
		return nil
	}

	task, err := NewEventReminderTask(EventReminderPayload{
		UserID:     userID,
		EventID:    eventID,
		EventTitle: title,
		StartAt:    startAt,
	})
	if err != nil {
		return err
	}

	info, err := s.client.EnqueueContext(ctx, task,
		asynq.ProcessAt(notifyAt),
		asynq.Queue(constants.ReminderQueue),
		asynq.MaxRetry(3),
	)
	if err != nil {
		return err
	}

	logger.Info("ReminderService:Scheduled", "event_id", eventID, "task_id", info.ID, "notify_at", notifyAt)
	return nil
}

// HandleEventReminderTask is the asynq worker handler: it records the fired
// reminder as a row the user's client can list.
func (s *ReminderService) HandleEventReminderTask(ctx context.Context, task *asynq.Task) error {
	var payload EventReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("ReminderService:HandleEventReminderTask:Unmarshal:Error:", "error", err)
		// Malformed payloads will never succeed; skip retries.
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	reminder := &entity.Reminder{
		UserID:   payload.UserID,
		EventID:  payload.EventID,
		Title:    payload.EventTitle,
		Message:  fmt.Sprintf("%q starts at %s", payload.EventTitle, payload.StartAt.Format(time.RFC3339)),
		NotifyAt: time.Now(),
		IsRead:   false,
	}
	if err := s.repo.Create(ctx, reminder); err != nil {
		return err
	}

	logger.Info("ReminderService:Delivered", "event_id", payload.EventID, "user_id", payload.UserID)
	return nil
}

func (s *ReminderService) GetByUserID(ctx context.Context, userID uuid.UUID, p params.QueryParams) (*entity.PaginatedReminderEntity, *errors.AppError) {
	page, err := s.repo.GetByUserID(ctx, userID, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load reminders", err)
	}
	return page, nil
}

func (s *ReminderService) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) *errors.AppError {
	if err := s.repo.MarkAsRead(ctx, userID, ids); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "failed to mark reminders read", err)
	}
	return nil
}

func (s *ReminderService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) *errors.AppError {
	if err := s.repo.MarkAllAsRead(ctx, userID); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "failed to mark reminders read", err)
	}
	return nil
}

func (s *ReminderService) CountUnread(ctx context.Context, userID uuid.UUID) (int, *errors.AppError) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrGetFailed, "failed to count unread reminders", err)
	}
	return count, nil
}
