package service

import (
	"context"
	"fmt"
	"time"

	"go-calendar-api/core/errors"
	"go-calendar-api/core/logger"
	"go-calendar-api/core/utils"
	"go-calendar-api/modules/event/entity"
	eventrepo "go-calendar-api/modules/event/repository"
	"go-calendar-api/modules/export/dto"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/teambition/rrule-go"
)

const shareLinkTTL = 24 * time.Hour

// Uploader stores an export payload and returns a time-limited download URL.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body []byte) (string, error)
}

type ExportService interface {
	BuildICS(ctx context.Context, userID uuid.UUID) ([]byte, *errors.AppError)
	ShareICS(ctx context.Context, userID uuid.UUID, userName string) (*dto.ShareResponse, *errors.AppError)
}

type exportService struct {
	events   eventrepo.EventRepository
	uploader Uploader
}

func NewExportService(events eventrepo.EventRepository, uploader Uploader) ExportService {
	return &exportService{events: events, uploader: uploader}
}

// BuildICS renders the user's events as an iCalendar document. Recurring
// events are exported as a single VEVENT with an RRULE rather than expanded
// instances, so consuming calendars apply their own expansion.
func (s *exportService) BuildICS(ctx context.Context, userID uuid.UUID) ([]byte, *errors.AppError) {
	events, err := s.events.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load events for export", err)
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//go-calendar-api//EN")

	now := time.Now()
	for i := range events {
		ev := &events[i]

		ve := cal.AddEvent(fmt.Sprintf("%s@go-calendar-api", ev.ID))
		ve.SetDtStampTime(now)
		ve.SetSummary(ev.Title)

		if ev.AllDay {
			ve.SetAllDayStartAt(ev.Start)
			// DTEND is exclusive for all-day events.
			ve.SetAllDayEndAt(ev.End.Add(time.Second))
		} else {
			ve.SetStartAt(ev.Start)
			ve.SetEndAt(ev.End)
		}

		if ev.Recurring != nil {
			rule, rerr := rruleString(ev.Recurring, ev.Start)
			if rerr != nil {
				logger.Warn("ExportService:BuildICS:SkipRecurrenceRule", "event_id", ev.ID, "error", rerr)
				continue
			}
			ve.AddRrule(rule)
		}
	}

	return []byte(cal.Serialize()), nil
}

// ShareICS uploads the export and returns a presigned link valid for 24h.
func (s *exportService) ShareICS(ctx context.Context, userID uuid.UUID, userName string) (*dto.ShareResponse, *errors.AppError) {
	payload, appErr := s.BuildICS(ctx, userID)
	if appErr != nil {
		return nil, appErr
	}

	key := fmt.Sprintf("exports/%s/%s-%s.ics", userID, slug.Make(userName), utils.GenerateRandomString(8))
	url, err := s.uploader.Upload(ctx, key, "text/calendar", payload)
	if err != nil {
		logger.Error("ExportService:ShareICS:Upload:Error:", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to publish export", err)
	}

	logger.Info("ExportService:ShareICS:Published", "user_id", userID, "key", key)
	return &dto.ShareResponse{URL: url, ExpiresAt: time.Now().Add(shareLinkTTL)}, nil
}

// rruleString converts a stored rule to an RFC 5545 RRULE value.
func rruleString(rec *entity.Recurrence, start time.Time) (string, error) {
	var freq rrule.Frequency
	switch rec.Frequency {
	case entity.FrequencyDaily:
		freq = rrule.DAILY
	case entity.FrequencyWeekly:
		freq = rrule.WEEKLY
	case entity.FrequencyMonthly:
		freq = rrule.MONTHLY
	case entity.FrequencyYearly:
		freq = rrule.YEARLY
	default:
		return "", fmt.Errorf("unknown frequency %q", rec.Frequency)
	}

	interval := rec.Interval
	if interval < 1 {
		return "", fmt.Errorf("interval %d out of range", rec.Interval)
	}

	opt := rrule.ROption{
		Freq:     freq,
		Interval: interval,
		Dtstart:  start,
	}

	until, ok, err := rec.ParsedEndDate(start.Location())
	if err != nil {
		return "", err
	}
	if ok {
		// Include the whole end day.
		opt.Until = until.Add(24*time.Hour - time.Second)
	}

	if _, err := rrule.NewRRule(opt); err != nil {
		return "", err
	}
	// RRuleString omits the DTSTART line, which AddRrule must not carry.
	return opt.RRuleString(), nil
}
