package mapper

import (
	"fmt"
	"time"

	"go-calendar-api/core/logger"
	"go-calendar-api/modules/event/dto"
	"go-calendar-api/modules/event/entity"
)

// MaxOccurrencesPerEvent bounds expansion of unbounded recurrences: at most
// this many occurrences are generated per base event on top of the original,
// regardless of endDate.
const MaxOccurrencesPerEvent = 50

// palette assigned to base events by their position in the input list; an
// event and all its occurrences share one entry.
var palette = [8]string{
	"#3b82f6", // blue
	"#ef4444", // red
	"#22c55e", // green
	"#f59e0b", // amber
	"#8b5cf6", // violet
	"#ec4899", // pink
	"#14b8a6", // teal
	"#f97316", // orange
}

// ExpandEvents materializes base events into the flat, colored instance list
// the calendar grid renders. It is pure and deterministic: the same input
// list always yields the same output, and the input is never mutated.
//
// For each base event the original is emitted first, then one instance per
// recurrence step with id "<baseId>_recurring_<n>" (n counts generated
// occurrences from 0) and the base event's duration. The cursor advances
// with time.AddDate, so overflow normalizes forward (Jan 31 + 1 month is
// Mar 2 or Mar 3), and expansion stops when the cursor passes endDate or
// the MaxOccurrencesPerEvent cap is reached.
//
// A malformed rule never aborts the pass: the offending event contributes
// only its base instance and the condition is logged.
func ExpandEvents(events []entity.Event) []dto.EventInstance {
	instances := make([]dto.EventInstance, 0, len(events))

	for i, ev := range events {
		color := palette[i%len(palette)]
		instances = append(instances, instanceOf(&ev, ev.ID, ev.Start, ev.End, color))

		if ev.Recurring == nil {
			continue
		}
		occurrences, err := expandRule(&ev, color)
		if err != nil {
			logger.Warn("ExpandEvents:SkipMalformedRecurrence", "event_id", ev.ID, "error", err)
			continue
		}
		instances = append(instances, occurrences...)
	}

	return instances
}

func expandRule(ev *entity.Event, color string) ([]dto.EventInstance, error) {
	rule := ev.Recurring
	if rule.Interval < 1 {
		return nil, fmt.Errorf("interval must be a positive integer, got %d", rule.Interval)
	}
	if err := checkFrequency(rule.Frequency); err != nil {
		return nil, err
	}
	until, hasUntil, err := rule.ParsedEndDate(ev.Start.Location())
	if err != nil {
		return nil, fmt.Errorf("bad endDate %q: %w", rule.EndDate, err)
	}

	duration := ev.Duration()
	cursor := ev.Start

	var out []dto.EventInstance
	for count := 0; count < MaxOccurrencesPerEvent; count++ {
		cursor = advance(cursor, rule.Frequency, rule.Interval)
		if hasUntil && cursor.After(until) {
			break
		}
		id := fmt.Sprintf("%s_recurring_%d", ev.ID, count)
		out = append(out, instanceOf(ev, id, cursor, cursor.Add(duration), color))
	}
	return out, nil
}

func checkFrequency(freq string) error {
	switch freq {
	case entity.FrequencyDaily, entity.FrequencyWeekly, entity.FrequencyMonthly, entity.FrequencyYearly:
		return nil
	}
	return fmt.Errorf("unknown frequency %q", freq)
}

func advance(cursor time.Time, freq string, interval int) time.Time {
	switch freq {
	case entity.FrequencyDaily:
		return cursor.AddDate(0, 0, interval)
	case entity.FrequencyWeekly:
		return cursor.AddDate(0, 0, 7*interval)
	case entity.FrequencyMonthly:
		return cursor.AddDate(0, interval, 0)
	case entity.FrequencyYearly:
		return cursor.AddDate(interval, 0, 0)
	}
	return cursor
}

func instanceOf(ev *entity.Event, id string, start, end time.Time, color string) dto.EventInstance {
	return dto.EventInstance{
		ID:              id,
		Title:           ev.Title,
		Start:           start,
		End:             end,
		AllDay:          ev.AllDay,
		Timezone:        ev.Timezone,
		Recurring:       ev.Recurring,
		BackgroundColor: color,
		BorderColor:     color,
	}
}
