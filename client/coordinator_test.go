package client_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-calendar-api/client"
	"go-calendar-api/modules/event/dto"
	"go-calendar-api/modules/event/entity"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) List(ctx context.Context) ([]entity.Event, error) {
	args := m.Called(ctx)
	if ev := args.Get(0); ev != nil {
		return ev.([]entity.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) Create(ctx context.Context, req dto.CreateEventRequest) (*entity.Event, error) {
	args := m.Called(ctx, req)
	if ev := args.Get(0); ev != nil {
		return ev.(*entity.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) Update(ctx context.Context, id string, req dto.UpdateEventRequest) (*entity.Event, error) {
	args := m.Called(ctx, id, req)
	if ev := args.Get(0); ev != nil {
		return ev.(*entity.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func seedEvent(id string) entity.Event {
	start := time.Date(2024, 9, 10, 14, 0, 0, 0, time.UTC)
	return entity.Event{
		ID:       id,
		Title:    "Event " + id,
		Start:    start,
		End:      start.Add(time.Hour),
		Timezone: "UTC",
	}
}

func loadedCoordinator(t *testing.T, store *MockStore, events ...entity.Event) *client.Coordinator {
	t.Helper()
	store.On("List", mock.Anything).Return(events, nil).Once()
	coord := client.NewCoordinator(store)
	require.NoError(t, coord.Load(context.Background()))
	return coord
}

func TestCreate_ReconcilesToServerEvent(t *testing.T) {
	store := new(MockStore)
	coord := loadedCoordinator(t, store)

	server := seedEvent("srv1")
	store.On("Create", mock.Anything, mock.Anything).Return(&server, nil)

	draft := seedEvent("")
	created, err := coord.Create(context.Background(), draft)

	require.NoError(t, err)
	assert.Equal(t, "srv1", created.ID)

	events := coord.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "srv1", events[0].ID)
}

func TestCreate_FailureRemovesDraft(t *testing.T) {
	store := new(MockStore)
	coord := loadedCoordinator(t, store, seedEvent("keep"))

	store.On("Create", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	_, err := coord.Create(context.Background(), seedEvent(""))

	require.Error(t, err)
	events := coord.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "keep", events[0].ID)
}

func TestUpdate_OptimisticThenReconciled(t *testing.T) {
	store := new(MockStore)
	coord := loadedCoordinator(t, store, seedEvent("ev1"))

	// The server answers with its own view, which may differ from the local
	// optimistic merge; the local copy must end up equal to the server's.
	server := seedEvent("ev1")
	server.Title = "Server title"
	store.On("Update", mock.Anything, "ev1", mock.Anything).Run(func(args mock.Arguments) {
		// While the call is in flight the local list already shows the change.
		events := coord.Events()
		require.Len(t, events, 1)
		assert.Equal(t, "Optimistic title", events[0].Title)
	}).Return(&server, nil)

	title := "Optimistic title"
	updated, err := coord.Update(context.Background(), "ev1", client.EventPatch{Title: &title})

	require.NoError(t, err)
	assert.Equal(t, "Server title", updated.Title)
	assert.Equal(t, "Server title", coord.Events()[0].Title)
}

func TestUpdate_FailureRollsBack(t *testing.T) {
	store := new(MockStore)
	original := seedEvent("ev1")
	coord := loadedCoordinator(t, store, original)

	store.On("Update", mock.Anything, "ev1", mock.Anything).Return(nil, assert.AnError).Once()

	title := "Doomed"
	_, err := coord.Update(context.Background(), "ev1", client.EventPatch{Title: &title})

	require.Error(t, err)
	assert.Equal(t, original, coord.Events()[0])

	// The failed mutation must leave the event mutable again.
	server := seedEvent("ev1")
	server.Title = "Second try"
	store.On("Update", mock.Anything, "ev1", mock.Anything).Return(&server, nil).Once()

	retry := "Second try"
	updated, err := coord.Update(context.Background(), "ev1", client.EventPatch{Title: &retry})
	require.NoError(t, err)
	assert.Equal(t, "Second try", updated.Title)
}

func TestUpdate_UnknownID(t *testing.T) {
	store := new(MockStore)
	coord := loadedCoordinator(t, store)

	title := "x"
	_, err := coord.Update(context.Background(), "ghost", client.EventPatch{Title: &title})

	assert.ErrorIs(t, err, client.ErrUnknownEvent)
}

func TestUpdate_RejectsConcurrentMutationOnSameID(t *testing.T) {
	store := new(MockStore)
	coord := loadedCoordinator(t, store, seedEvent("busy"))

	inFlight := make(chan struct{})
	release := make(chan struct{})
	server := seedEvent("busy")
	store.On("Update", mock.Anything, "busy", mock.Anything).Run(func(args mock.Arguments) {
		close(inFlight)
		<-release
	}).Return(&server, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		title := "slow"
		_, err := coord.Update(context.Background(), "busy", client.EventPatch{Title: &title})
		assert.NoError(t, err)
	}()

	<-inFlight
	title := "fast"
	_, err := coord.Update(context.Background(), "busy", client.EventPatch{Title: &title})
	assert.ErrorIs(t, err, client.ErrMutationInFlight)

	close(release)
	wg.Wait()
}

func TestUpdate_IndependentIDsProceedConcurrently(t *testing.T) {
	store := new(MockStore)
	coord := loadedCoordinator(t, store, seedEvent("a"), seedEvent("b"))

	inFlightA := make(chan struct{})
	release := make(chan struct{})
	serverA := seedEvent("a")
	store.On("Update", mock.Anything, "a", mock.Anything).Run(func(args mock.Arguments) {
		close(inFlightA)
		<-release
	}).Return(&serverA, nil)

	serverB := seedEvent("b")
	serverB.Title = "B updated"
	store.On("Update", mock.Anything, "b", mock.Anything).Return(&serverB, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		title := "A updated"
		_, err := coord.Update(context.Background(), "a", client.EventPatch{Title: &title})
		assert.NoError(t, err)
	}()

	<-inFlightA
	// "a" is blocked in flight, but "b" is free to mutate.
	title := "B updated"
	updated, err := coord.Update(context.Background(), "b", client.EventPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "B updated", updated.Title)

	close(release)
	wg.Wait()
}

func TestMove_ZeroEndAnchorsAtStart(t *testing.T) {
	store := new(MockStore)
	coord := loadedCoordinator(t, store, seedEvent("drag"))

	target := time.Date(2024, 9, 12, 9, 0, 0, 0, time.UTC)
	server := seedEvent("drag")
	server.Start = target
	server.End = target

	store.On("Update", mock.Anything, "drag", mock.MatchedBy(func(req dto.UpdateEventRequest) bool {
		return req.Start != nil && req.End != nil &&
			*req.Start == *req.End &&
			req.Title == nil && req.Recurring == nil
	})).Return(&server, nil)

	updated, err := coord.Move(context.Background(), "drag", target, time.Time{})

	require.NoError(t, err)
	assert.Equal(t, target, updated.Start)
	assert.Equal(t, target, updated.End)
}

func TestDelete_IsNotOptimistic(t *testing.T) {
	store := new(MockStore)
	coord := loadedCoordinator(t, store, seedEvent("gone"))

	store.On("Delete", mock.Anything, "gone").Run(func(args mock.Arguments) {
		// Still present while the request is in flight.
		assert.Len(t, coord.Events(), 1)
	}).Return(nil)

	require.NoError(t, coord.Delete(context.Background(), "gone"))
	assert.Empty(t, coord.Events())
}

func TestDelete_FailureKeepsEvent(t *testing.T) {
	store := new(MockStore)
	coord := loadedCoordinator(t, store, seedEvent("stay"))

	store.On("Delete", mock.Anything, "stay").Return(assert.AnError)

	require.Error(t, coord.Delete(context.Background(), "stay"))
	require.Len(t, coord.Events(), 1)
	assert.Equal(t, "stay", coord.Events()[0].ID)
}

func TestEvents_ReturnsSnapshot(t *testing.T) {
	store := new(MockStore)
	coord := loadedCoordinator(t, store, seedEvent("snap"))

	events := coord.Events()
	events[0].Title = "mutated copy"

	assert.Equal(t, "Event snap", coord.Events()[0].Title)
}
