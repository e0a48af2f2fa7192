package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go-calendar-api/modules/event/dto"
	"go-calendar-api/modules/event/entity"
)

// ErrSignInRequired is returned when the server rejects the session token.
var ErrSignInRequired = errors.New("sign-in required")

// Store abstracts the events API the Coordinator talks to.
type Store interface {
	List(ctx context.Context) ([]entity.Event, error)
	Create(ctx context.Context, req dto.CreateEventRequest) (*entity.Event, error)
	Update(ctx context.Context, id string, req dto.UpdateEventRequest) (*entity.Event, error)
	Delete(ctx context.Context, id string) error
}

// HTTPStore talks to /api/v1/private/events with a bearer token.
type HTTPStore struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewHTTPStore(baseURL, token string) *HTTPStore {
	return &HTTPStore{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *HTTPStore) List(ctx context.Context) ([]entity.Event, error) {
	var events []entity.Event
	if err := s.do(ctx, http.MethodGet, "/api/v1/private/events", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *HTTPStore) Create(ctx context.Context, req dto.CreateEventRequest) (*entity.Event, error) {
	var event entity.Event
	if err := s.do(ctx, http.MethodPost, "/api/v1/private/events", req, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *HTTPStore) Update(ctx context.Context, id string, req dto.UpdateEventRequest) (*entity.Event, error) {
	var event entity.Event
	if err := s.do(ctx, http.MethodPut, "/api/v1/private/events/"+id, req, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *HTTPStore) Delete(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodDelete, "/api/v1/private/events/"+id, nil, nil)
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *HTTPStore) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrSignInRequired
	}
	if resp.StatusCode >= 400 {
		var apiErr apiError
		if derr := json.NewDecoder(resp.Body).Decode(&apiErr); derr == nil && apiErr.Message != "" {
			return fmt.Errorf("%s %s: %s (%s)", method, path, apiErr.Message, apiErr.Code)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
