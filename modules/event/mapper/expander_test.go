package mapper_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-calendar-api/modules/event/entity"
	"go-calendar-api/modules/event/mapper"
)

func timedEvent(id string, start time.Time, duration time.Duration, rec *entity.Recurrence) entity.Event {
	return entity.Event{
		ID:        id,
		Title:     "Event " + id,
		Start:     start,
		End:       start.Add(duration),
		Timezone:  "UTC",
		Recurring: rec,
	}
}

func TestExpandEvents_NonRecurringIdentity(t *testing.T) {
	start := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	events := []entity.Event{
		timedEvent("aaa", start, time.Hour, nil),
		timedEvent("bbb", start.Add(24*time.Hour), 30*time.Minute, nil),
	}

	instances := mapper.ExpandEvents(events)

	require.Len(t, instances, 2)
	assert.Equal(t, "aaa", instances[0].ID)
	assert.Equal(t, events[0].Start, instances[0].Start)
	assert.Equal(t, events[0].End, instances[0].End)
	assert.Equal(t, "bbb", instances[1].ID)
	// Adjacent events get distinct colors, and border always matches background.
	assert.NotEqual(t, instances[0].BackgroundColor, instances[1].BackgroundColor)
	assert.Equal(t, instances[0].BackgroundColor, instances[0].BorderColor)
}

func TestExpandEvents_WeeklyWithEndDate(t *testing.T) {
	// Mondays in January 2024: the 1st, 8th, 15th, 22nd; the 29th falls past
	// the end date.
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	events := []entity.Event{
		timedEvent("standup", start, time.Hour, &entity.Recurrence{
			Frequency: entity.FrequencyWeekly,
			Interval:  1,
			EndDate:   "2024-01-28",
		}),
	}

	instances := mapper.ExpandEvents(events)

	require.Len(t, instances, 4)
	assert.Equal(t, "standup", instances[0].ID)
	for n := 0; n < 3; n++ {
		inst := instances[n+1]
		assert.Equal(t, fmt.Sprintf("standup_recurring_%d", n), inst.ID)
		assert.Equal(t, start.AddDate(0, 0, 7*(n+1)), inst.Start)
	}
	// One event, one color across all its instances.
	for _, inst := range instances {
		assert.Equal(t, instances[0].BackgroundColor, inst.BackgroundColor)
	}
}

func TestExpandEvents_UnboundedMonthlyHitsCap(t *testing.T) {
	start := time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)
	events := []entity.Event{
		timedEvent("rent", start, time.Hour, &entity.Recurrence{
			Frequency: entity.FrequencyMonthly,
			Interval:  1,
		}),
	}

	instances := mapper.ExpandEvents(events)

	require.Len(t, instances, 1+mapper.MaxOccurrencesPerEvent)
	last := instances[len(instances)-1]
	assert.Equal(t, fmt.Sprintf("rent_recurring_%d", mapper.MaxOccurrencesPerEvent-1), last.ID)
	assert.Equal(t, start.AddDate(0, mapper.MaxOccurrencesPerEvent, 0), last.Start)
}

func TestExpandEvents_CapHoldsForHugeIntervals(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	events := []entity.Event{
		timedEvent("x", start, time.Hour, &entity.Recurrence{
			Frequency: entity.FrequencyDaily,
			Interval:  100000,
		}),
	}

	instances := mapper.ExpandEvents(events)

	assert.Len(t, instances, 1+mapper.MaxOccurrencesPerEvent)
}

func TestExpandEvents_DurationPreserved(t *testing.T) {
	start := time.Date(2024, 5, 2, 14, 30, 0, 0, time.UTC)
	events := []entity.Event{
		timedEvent("gym", start, 90*time.Minute, &entity.Recurrence{
			Frequency: entity.FrequencyDaily,
			Interval:  2,
			EndDate:   "2024-05-31",
		}),
	}

	instances := mapper.ExpandEvents(events)

	require.Greater(t, len(instances), 1)
	for _, inst := range instances {
		assert.Equal(t, 90*time.Minute, inst.End.Sub(inst.Start), "instance %s", inst.ID)
	}
}

func TestExpandEvents_MonthEndRollsForward(t *testing.T) {
	// AddDate normalizes Jan 31 + 1 month to Mar 2 in a leap year. The
	// occurrence is kept rather than clamped to the end of February.
	start := time.Date(2024, 1, 31, 9, 0, 0, 0, time.UTC)
	events := []entity.Event{
		timedEvent("billing", start, time.Hour, &entity.Recurrence{
			Frequency: entity.FrequencyMonthly,
			Interval:  1,
			EndDate:   "2024-04-30",
		}),
	}

	instances := mapper.ExpandEvents(events)

	require.GreaterOrEqual(t, len(instances), 2)
	assert.Equal(t, time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC), instances[1].Start)
}

func TestExpandEvents_MalformedRuleIsIsolated(t *testing.T) {
	start := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	events := []entity.Event{
		timedEvent("ok1", start, time.Hour, &entity.Recurrence{
			Frequency: entity.FrequencyDaily,
			Interval:  1,
			EndDate:   "2024-06-04",
		}),
		timedEvent("bad", start, time.Hour, &entity.Recurrence{
			Frequency: "fortnightly",
			Interval:  1,
		}),
		timedEvent("ok2", start, time.Hour, &entity.Recurrence{
			Frequency: entity.FrequencyDaily,
			Interval:  1,
			EndDate:   "2024-06-03",
		}),
	}

	instances := mapper.ExpandEvents(events)

	var ids []string
	for _, inst := range instances {
		ids = append(ids, inst.ID)
	}
	// The bad rule contributes only its base instance; its neighbors still
	// expand normally.
	assert.Equal(t, []string{
		"ok1", "ok1_recurring_0", "ok1_recurring_1",
		"bad",
		"ok2", "ok2_recurring_0",
	}, ids)
}

func TestExpandEvents_EndDateBoundaryExcludesLaterTimeOfDay(t *testing.T) {
	// endDate resolves to midnight, so a cursor landing on that date at a
	// later wall-clock time is already past it and gets no instance.
	start := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	events := []entity.Event{
		timedEvent("brief", start, time.Hour, &entity.Recurrence{
			Frequency: entity.FrequencyDaily,
			Interval:  1,
			EndDate:   "2024-06-02",
		}),
	}

	instances := mapper.ExpandEvents(events)

	require.Len(t, instances, 1)
	assert.Equal(t, "brief", instances[0].ID)
}

func TestExpandEvents_NonPositiveIntervalYieldsBaseOnly(t *testing.T) {
	start := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	events := []entity.Event{
		timedEvent("zero", start, time.Hour, &entity.Recurrence{
			Frequency: entity.FrequencyDaily,
			Interval:  0,
		}),
	}

	instances := mapper.ExpandEvents(events)

	require.Len(t, instances, 1)
	assert.Equal(t, "zero", instances[0].ID)
}

func TestExpandEvents_BadEndDateYieldsBaseOnly(t *testing.T) {
	start := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	events := []entity.Event{
		timedEvent("odd", start, time.Hour, &entity.Recurrence{
			Frequency: entity.FrequencyWeekly,
			Interval:  1,
			EndDate:   "next tuesday",
		}),
	}

	instances := mapper.ExpandEvents(events)

	require.Len(t, instances, 1)
	assert.Equal(t, "odd", instances[0].ID)
}

func TestExpandEvents_PaletteWrapsAfterEight(t *testing.T) {
	start := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	events := make([]entity.Event, 9)
	for i := range events {
		events[i] = timedEvent(fmt.Sprintf("ev%d", i), start, time.Hour, nil)
	}

	instances := mapper.ExpandEvents(events)

	require.Len(t, instances, 9)
	assert.Equal(t, instances[0].BackgroundColor, instances[8].BackgroundColor)
}

func TestExpandEvents_PureAndDeterministic(t *testing.T) {
	start := time.Date(2024, 8, 5, 16, 0, 0, 0, time.UTC)
	events := []entity.Event{
		timedEvent("a", start, time.Hour, &entity.Recurrence{
			Frequency: entity.FrequencyWeekly,
			Interval:  2,
			EndDate:   "2024-09-30",
		}),
		timedEvent("b", start, 2*time.Hour, nil),
	}
	original := make([]entity.Event, len(events))
	copy(original, events)

	first := mapper.ExpandEvents(events)
	second := mapper.ExpandEvents(events)

	assert.Equal(t, first, second)
	assert.Equal(t, original, events, "input list must not be mutated")
}
