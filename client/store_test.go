package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-calendar-api/client"
	"go-calendar-api/modules/event/dto"
	"go-calendar-api/modules/event/entity"
)

func TestHTTPStore_ListDecodesEvents(t *testing.T) {
	start := time.Date(2024, 9, 10, 14, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/private/events", r.URL.Path)
		assert.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]entity.Event{
			{
				ID:       "ev1",
				Title:    "Dentist",
				Start:    start,
				End:      start.Add(time.Hour),
				Timezone: "UTC",
			},
		})
	}))
	defer srv.Close()

	store := client.NewHTTPStore(srv.URL, "session-token")
	events, err := store.List(context.Background())

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "ev1", events[0].ID)
	assert.Equal(t, "Dentist", events[0].Title)
	assert.True(t, events[0].Start.Equal(start))
}

func TestHTTPStore_UnauthorizedIsSignInRequired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{
			"code":    "UNAUTHORIZED",
			"message": "sign-in required",
		})
	}))
	defer srv.Close()

	store := client.NewHTTPStore(srv.URL, "expired-token")

	_, err := store.List(context.Background())
	assert.ErrorIs(t, err, client.ErrSignInRequired)

	_, err = store.Create(context.Background(), dto.CreateEventRequest{Title: "x"})
	assert.ErrorIs(t, err, client.ErrSignInRequired)

	_, err = store.Update(context.Background(), "ev1", dto.UpdateEventRequest{})
	assert.ErrorIs(t, err, client.ErrSignInRequired)

	assert.ErrorIs(t, store.Delete(context.Background(), "ev1"), client.ErrSignInRequired)
}

func TestHTTPStore_ErrorEnvelopeSurfacesCodeAndMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"code":    "INVALID_INPUT",
			"message": "title must not be empty",
		})
	}))
	defer srv.Close()

	store := client.NewHTTPStore(srv.URL, "session-token")
	_, err := store.Create(context.Background(), dto.CreateEventRequest{})

	require.Error(t, err)
	assert.NotErrorIs(t, err, client.ErrSignInRequired)
	assert.Contains(t, err.Error(), "title must not be empty")
	assert.Contains(t, err.Error(), "INVALID_INPUT")
}

func TestHTTPStore_NonJSONErrorFallsBackToStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	store := client.NewHTTPStore(srv.URL, "session-token")
	_, err := store.List(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestHTTPStore_CreateSendsBodyAndDecodesEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req dto.CreateEventRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Standup", req.Title)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(entity.Event{ID: "srv1", Title: req.Title})
	}))
	defer srv.Close()

	store := client.NewHTTPStore(srv.URL, "session-token")
	created, err := store.Create(context.Background(), dto.CreateEventRequest{
		Title: "Standup",
		Start: "2024-09-10T14:00:00Z",
		End:   "2024-09-10T14:30:00Z",
	})

	require.NoError(t, err)
	assert.Equal(t, "srv1", created.ID)
	assert.Equal(t, "Standup", created.Title)
}

func TestHTTPStore_DeleteTargetsEventPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/private/events/ev1", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "event deleted successfully"})
	}))
	defer srv.Close()

	store := client.NewHTTPStore(srv.URL, "session-token")
	assert.NoError(t, store.Delete(context.Background(), "ev1"))
}
