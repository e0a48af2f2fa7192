package service

import (
	"context"
	"strings"
	"time"

	"go-calendar-api/core/errors"
	"go-calendar-api/core/logger"
	"go-calendar-api/core/utils"
	"go-calendar-api/modules/event/dto"
	"go-calendar-api/modules/event/entity"
	"go-calendar-api/modules/event/mapper"
	"go-calendar-api/modules/event/repository"

	"github.com/google/uuid"
)

// ReminderScheduler is implemented by the reminder module; event creation
// schedules a notification near the event start. Best effort: a scheduling
// failure never fails the create.
type ReminderScheduler interface {
	ScheduleEventReminder(ctx context.Context, userID uuid.UUID, eventID, title string, startAt time.Time) error
}

type EventService interface {
	List(ctx context.Context, userID uuid.UUID) ([]entity.Event, *errors.AppError)
	ListExpanded(ctx context.Context, userID uuid.UUID) ([]dto.EventInstance, *errors.AppError)
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateEventRequest) (*entity.Event, *errors.AppError)
	Update(ctx context.Context, userID uuid.UUID, id string, req *dto.UpdateEventRequest) (*entity.Event, *errors.AppError)
	Delete(ctx context.Context, userID uuid.UUID, id string) *errors.AppError
}

type eventService struct {
	repo      repository.EventRepository
	reminders ReminderScheduler
}

func NewEventService(repo repository.EventRepository, reminders ReminderScheduler) EventService {
	return &eventService{repo: repo, reminders: reminders}
}

func (s *eventService) List(ctx context.Context, userID uuid.UUID) ([]entity.Event, *errors.AppError) {
	events, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load events", err)
	}
	return events, nil
}

// ListExpanded returns the flat displayable instance list for the owner's
// events. Expansion is recomputed in full on every call; the 50-occurrence
// cap per event bounds the work.
func (s *eventService) ListExpanded(ctx context.Context, userID uuid.UUID) ([]dto.EventInstance, *errors.AppError) {
	events, appErr := s.List(ctx, userID)
	if appErr != nil {
		return nil, appErr
	}
	return mapper.ExpandEvents(events), nil
}

func (s *eventService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateEventRequest) (*entity.Event, *errors.AppError) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, errors.New(errors.ErrInvalidInput, "title must not be empty")
	}
	if req.Start == "" || req.End == "" {
		return nil, errors.New(errors.ErrInvalidInput, "start and end are required")
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = "UTC"
	}
	loc := locationFor(timezone)

	start, err := parseEventTime(req.Start, loc)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid start", err)
	}
	end, err := parseEventTime(req.End, loc)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid end", err)
	}

	event := &entity.Event{
		ID:       utils.GenerateID(),
		UserID:   userID,
		Title:    title,
		Start:    start,
		End:      end,
		AllDay:   req.AllDay,
		Timezone: timezone,
	}

	if req.Recurring != nil {
		rule, appErr := validateRecurrence(req.Recurring, loc)
		if appErr != nil {
			return nil, appErr
		}
		event.Recurring = rule
	}

	normalizeAllDay(event)
	if event.End.Before(event.Start) {
		return nil, errors.New(errors.ErrInvalidInput, "end must not be before start")
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create event", err)
	}

	s.scheduleReminder(ctx, created)
	return created, nil
}

// Update applies a partial update: the stored event is loaded, requested
// fields are merged over it, and the merged result is normalized and saved.
// A drag payload carrying only start anchors a zero-duration event at the
// drop point.
func (s *eventService) Update(ctx context.Context, userID uuid.UUID, id string, req *dto.UpdateEventRequest) (*entity.Event, *errors.AppError) {
	existing, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load event", err)
	}
	if existing == nil {
		return nil, errors.New(errors.ErrNotFound, "event not found")
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, errors.New(errors.ErrInvalidInput, "title must not be empty")
		}
		existing.Title = title
	}
	if req.AllDay != nil {
		existing.AllDay = *req.AllDay
	}
	if req.Timezone != nil && *req.Timezone != "" {
		existing.Timezone = *req.Timezone
	}
	loc := locationFor(existing.Timezone)

	if req.Start != nil {
		start, err := parseEventTime(*req.Start, loc)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid start", err)
		}
		existing.Start = start
		if req.End == nil {
			// Single-point drop: no explicit end means a zero-duration
			// event anchored at the new start.
			existing.End = start
		}
	}
	if req.End != nil {
		end, err := parseEventTime(*req.End, loc)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid end", err)
		}
		existing.End = end
	}

	if req.ClearRecurring {
		existing.Recurring = nil
	} else if req.Recurring != nil {
		rule, appErr := validateRecurrence(req.Recurring, loc)
		if appErr != nil {
			return nil, appErr
		}
		existing.Recurring = rule
	}

	normalizeAllDay(existing)
	if existing.End.Before(existing.Start) {
		return nil, errors.New(errors.ErrInvalidInput, "end must not be before start")
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to update event", err)
	}
	if updated == nil {
		return nil, errors.New(errors.ErrNotFound, "event not found")
	}
	return updated, nil
}

func (s *eventService) Delete(ctx context.Context, userID uuid.UUID, id string) *errors.AppError {
	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "failed to delete event", err)
	}
	if !deleted {
		return errors.New(errors.ErrNotFound, "event not found")
	}
	return nil
}

func (s *eventService) scheduleReminder(ctx context.Context, event *entity.Event) {
	if s.reminders == nil {
		return
	}
	if err := s.reminders.ScheduleEventReminder(ctx, event.UserID, event.ID, event.Title, event.Start); err != nil {
		logger.Warn("EventService:ScheduleReminder:Error:", "event_id", event.ID, "error", err)
	}
}

// eventTimeLayouts accepted on the wire, tried in order.
var eventTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseEventTime(value string, loc *time.Location) (time.Time, error) {
	var firstErr error
	for _, layout := range eventTimeLayouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// normalizeAllDay pins all-day events to their day bounds: start at
// 00:00:00, end at 23:59:59 of their respective dates.
func normalizeAllDay(event *entity.Event) {
	if !event.AllDay {
		return
	}
	s := event.Start
	event.Start = time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, s.Location())
	e := event.End
	event.End = time.Date(e.Year(), e.Month(), e.Day(), 23, 59, 59, 0, e.Location())
}

func validateRecurrence(req *dto.RecurrenceRequest, loc *time.Location) (*entity.Recurrence, *errors.AppError) {
	switch req.Frequency {
	case entity.FrequencyDaily, entity.FrequencyWeekly, entity.FrequencyMonthly, entity.FrequencyYearly:
	default:
		return nil, errors.New(errors.ErrInvalidInput, "recurrence frequency must be daily, weekly, monthly or yearly")
	}
	if req.Interval < 1 {
		return nil, errors.New(errors.ErrInvalidInput, "recurrence interval must be a positive integer")
	}

	rule := &entity.Recurrence{
		Frequency: req.Frequency,
		Interval:  req.Interval,
		EndDate:   req.EndDate,
	}
	if _, _, err := rule.ParsedEndDate(loc); err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "recurrence endDate must be YYYY-MM-DD", err)
	}
	return rule, nil
}

func locationFor(timezone string) *time.Location {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		logger.Warn("EventService:UnknownTimezone", "timezone", timezone)
		return time.UTC
	}
	return loc
}
