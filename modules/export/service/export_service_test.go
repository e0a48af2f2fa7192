package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-calendar-api/modules/event/entity"
)

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Event, error) {
	args := m.Called(ctx, userID)
	if ev := args.Get(0); ev != nil {
		return ev.([]entity.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEventRepository) GetByID(ctx context.Context, userID uuid.UUID, id string) (*entity.Event, error) {
	args := m.Called(ctx, userID, id)
	if ev := args.Get(0); ev != nil {
		return ev.(*entity.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEventRepository) Create(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(*entity.Event), args.Error(1)
}

func (m *MockEventRepository) Update(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(*entity.Event), args.Error(1)
}

func (m *MockEventRepository) Delete(ctx context.Context, userID uuid.UUID, id string) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	args := m.Called(ctx, key, contentType, body)
	return args.String(0), args.Error(1)
}

func TestRRuleString_Mapping(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		rec  entity.Recurrence
		want []string
	}{
		{
			name: "daily",
			rec:  entity.Recurrence{Frequency: entity.FrequencyDaily, Interval: 1},
			want: []string{"FREQ=DAILY"},
		},
		{
			name: "weekly with interval",
			rec:  entity.Recurrence{Frequency: entity.FrequencyWeekly, Interval: 2},
			want: []string{"FREQ=WEEKLY", "INTERVAL=2"},
		},
		{
			name: "monthly with until",
			rec:  entity.Recurrence{Frequency: entity.FrequencyMonthly, Interval: 1, EndDate: "2024-12-31"},
			want: []string{"FREQ=MONTHLY", "UNTIL=20241231T235959Z"},
		},
		{
			name: "yearly",
			rec:  entity.Recurrence{Frequency: entity.FrequencyYearly, Interval: 1},
			want: []string{"FREQ=YEARLY"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := rruleString(&tc.rec, start)
			require.NoError(t, err)
			for _, fragment := range tc.want {
				assert.Contains(t, got, fragment)
			}
		})
	}
}

func TestRRuleString_Invalid(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	_, err := rruleString(&entity.Recurrence{Frequency: "hourly", Interval: 1}, start)
	assert.Error(t, err)

	_, err = rruleString(&entity.Recurrence{Frequency: entity.FrequencyDaily, Interval: 0}, start)
	assert.Error(t, err)

	_, err = rruleString(&entity.Recurrence{Frequency: entity.FrequencyDaily, Interval: 1, EndDate: "soon"}, start)
	assert.Error(t, err)
}

func TestBuildICS(t *testing.T) {
	repo := new(MockEventRepository)
	svc := NewExportService(repo, nil)
	userID := uuid.New()

	start := time.Date(2024, 9, 10, 14, 0, 0, 0, time.UTC)
	repo.On("GetByUserID", mock.Anything, userID).Return([]entity.Event{
		{
			ID:       "plain",
			Title:    "Dentist",
			Start:    start,
			End:      start.Add(time.Hour),
			Timezone: "UTC",
		},
		{
			ID:       "weekly",
			Title:    "Standup",
			Start:    start,
			End:      start.Add(30 * time.Minute),
			Timezone: "UTC",
			Recurring: &entity.Recurrence{
				Frequency: entity.FrequencyWeekly,
				Interval:  1,
			},
		},
	}, nil)

	payload, appErr := svc.BuildICS(context.Background(), userID)

	require.Nil(t, appErr)
	body := string(payload)
	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.Contains(t, body, "UID:plain@go-calendar-api")
	assert.Contains(t, body, "SUMMARY:Dentist")
	assert.Contains(t, body, "UID:weekly@go-calendar-api")
	assert.Contains(t, body, "FREQ=WEEKLY")
	// The plain event carries no rule.
	assert.Equal(t, 1, strings.Count(body, "RRULE"))
}

func TestShareICS_UploadsAndReturnsLink(t *testing.T) {
	repo := new(MockEventRepository)
	uploader := new(MockUploader)
	svc := NewExportService(repo, uploader)
	userID := uuid.New()

	repo.On("GetByUserID", mock.Anything, userID).Return([]entity.Event{}, nil)
	uploader.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "exports/"+userID.String()+"/ada-lovelace-") &&
			strings.HasSuffix(key, ".ics")
	}), "text/calendar", mock.Anything).Return("https://example.com/signed", nil)

	resp, appErr := svc.ShareICS(context.Background(), userID, "Ada Lovelace")

	require.Nil(t, appErr)
	assert.Equal(t, "https://example.com/signed", resp.URL)
	assert.WithinDuration(t, time.Now().Add(shareLinkTTL), resp.ExpiresAt, time.Minute)
	uploader.AssertExpectations(t)
}
