package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go-calendar-api/core/utils"
	"go-calendar-api/modules/event/dto"
	"go-calendar-api/modules/event/entity"
)

var (
	// ErrMutationInFlight means a mutation for the same event has not
	// settled yet. The caller should retry once it resolves.
	ErrMutationInFlight = errors.New("a mutation for this event is already in flight")
	// ErrUnknownEvent means the id is not in the local list.
	ErrUnknownEvent = errors.New("unknown event id")
)

// EventPatch is a partial local change. Nil fields keep their current value.
type EventPatch struct {
	Title          *string
	Start          *time.Time
	End            *time.Time
	AllDay         *bool
	Timezone       *string
	Recurring      *entity.Recurrence
	ClearRecurring bool
}

// Coordinator keeps a local copy of the user's base events and applies
// mutations optimistically: the local list changes first, then reconciles to
// the server response, or rolls back when the call fails. Mutations on
// distinct events run concurrently; a second mutation on an event whose
// previous one has not settled is rejected with ErrMutationInFlight. Deletes
// are the exception: removal happens only after the server confirms, so a
// failed delete never makes an event vanish and reappear.
type Coordinator struct {
	store Store

	mu       sync.Mutex
	events   []entity.Event
	inflight map[string]struct{}
}

func NewCoordinator(store Store) *Coordinator {
	return &Coordinator{
		store:    store,
		inflight: make(map[string]struct{}),
	}
}

// Load replaces the local list with the server's.
func (c *Coordinator) Load(ctx context.Context) error {
	events, err := c.store.List(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.events = events
	c.mu.Unlock()
	return nil
}

// Events returns a snapshot of the local base events. Callers typically feed
// it straight into mapper.ExpandEvents for display.
func (c *Coordinator) Events() []entity.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]entity.Event, len(c.events))
	copy(out, c.events)
	return out
}

// Create appends the draft under a temporary id, then swaps in the
// server-assigned event. On failure the draft is removed again.
func (c *Coordinator) Create(ctx context.Context, draft entity.Event) (*entity.Event, error) {
	tempID := "temp_" + utils.GenerateID()
	draft.ID = tempID

	c.mu.Lock()
	c.events = append(c.events, draft)
	c.inflight[tempID] = struct{}{}
	c.mu.Unlock()

	created, err := c.store.Create(ctx, createRequest(draft))

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, tempID)

	idx := c.indexOf(tempID)
	if err != nil {
		if idx >= 0 {
			c.events = append(c.events[:idx], c.events[idx+1:]...)
		}
		return nil, err
	}
	if idx >= 0 {
		c.events[idx] = *created
	} else {
		c.events = append(c.events, *created)
	}
	return created, nil
}

// Update merges the patch into the local event immediately, then reconciles
// wholesale to the server response. On failure the pre-mutation snapshot is
// restored and the event becomes mutable again.
func (c *Coordinator) Update(ctx context.Context, id string, patch EventPatch) (*entity.Event, error) {
	c.mu.Lock()
	if _, busy := c.inflight[id]; busy {
		c.mu.Unlock()
		return nil, ErrMutationInFlight
	}
	idx := c.indexOf(id)
	if idx < 0 {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, id)
	}
	snapshot := c.events[idx]
	c.events[idx] = applyPatch(snapshot, patch)
	c.inflight[id] = struct{}{}
	c.mu.Unlock()

	updated, err := c.store.Update(ctx, id, updateRequest(patch))

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, id)

	idx = c.indexOf(id)
	if err != nil {
		if idx >= 0 {
			c.events[idx] = snapshot
		}
		return nil, err
	}
	if idx >= 0 {
		c.events[idx] = *updated
	}
	return updated, nil
}

// Move is the drag/resize variant: it sends only the new times. A zero end
// anchors the event at start with zero duration, matching how calendar UIs
// report a drag of an all-day or collapsed event.
func (c *Coordinator) Move(ctx context.Context, id string, start, end time.Time) (*entity.Event, error) {
	if end.IsZero() {
		end = start
	}
	return c.Update(ctx, id, EventPatch{Start: &start, End: &end})
}

// Delete removes the event only after the server confirms.
func (c *Coordinator) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	if _, busy := c.inflight[id]; busy {
		c.mu.Unlock()
		return ErrMutationInFlight
	}
	if c.indexOf(id) < 0 {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownEvent, id)
	}
	c.inflight[id] = struct{}{}
	c.mu.Unlock()

	err := c.store.Delete(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, id)

	if err != nil {
		return err
	}
	if idx := c.indexOf(id); idx >= 0 {
		c.events = append(c.events[:idx], c.events[idx+1:]...)
	}
	return nil
}

// indexOf must be called with c.mu held.
func (c *Coordinator) indexOf(id string) int {
	for i := range c.events {
		if c.events[i].ID == id {
			return i
		}
	}
	return -1
}

func applyPatch(ev entity.Event, patch EventPatch) entity.Event {
	if patch.Title != nil {
		ev.Title = *patch.Title
	}
	if patch.Start != nil {
		ev.Start = *patch.Start
	}
	if patch.End != nil {
		ev.End = *patch.End
	}
	if patch.AllDay != nil {
		ev.AllDay = *patch.AllDay
	}
	if patch.Timezone != nil {
		ev.Timezone = *patch.Timezone
	}
	if patch.ClearRecurring {
		ev.Recurring = nil
	} else if patch.Recurring != nil {
		rec := *patch.Recurring
		ev.Recurring = &rec
	}
	return ev
}

func createRequest(draft entity.Event) dto.CreateEventRequest {
	req := dto.CreateEventRequest{
		Title:    draft.Title,
		Start:    draft.Start.Format(time.RFC3339),
		End:      draft.End.Format(time.RFC3339),
		AllDay:   draft.AllDay,
		Timezone: draft.Timezone,
	}
	if draft.Recurring != nil {
		req.Recurring = &dto.RecurrenceRequest{
			Frequency: draft.Recurring.Frequency,
			Interval:  draft.Recurring.Interval,
			EndDate:   draft.Recurring.EndDate,
		}
	}
	return req
}

func updateRequest(patch EventPatch) dto.UpdateEventRequest {
	req := dto.UpdateEventRequest{
		Title:          patch.Title,
		AllDay:         patch.AllDay,
		Timezone:       patch.Timezone,
		ClearRecurring: patch.ClearRecurring,
	}
	if patch.Start != nil {
		s := patch.Start.Format(time.RFC3339)
		req.Start = &s
	}
	if patch.End != nil {
		e := patch.End.Format(time.RFC3339)
		req.End = &e
	}
	if patch.Recurring != nil {
		req.Recurring = &dto.RecurrenceRequest{
			Frequency: patch.Recurring.Frequency,
			Interval:  patch.Recurring.Interval,
			EndDate:   patch.Recurring.EndDate,
		}
	}
	return req
}
