package repository

import (
	"context"

	"go-calendar-api/core/cache"
	"go-calendar-api/core/constants"
	"go-calendar-api/core/logger"

	"github.com/google/uuid"
)

// NoteRepository persists per-day free-text notes as a Redis hash per user:
// field = YYYY-MM-DD, value = note content. Single-writer read-modify-write;
// no conflict resolution is needed.
type NoteRepository interface {
	GetAll(ctx context.Context, userID uuid.UUID) (map[string]string, error)
	Get(ctx context.Context, userID uuid.UUID, date string) (string, error)
	Set(ctx context.Context, userID uuid.UUID, date, content string) error
	Delete(ctx context.Context, userID uuid.UUID, date string) error
}

type noteRepository struct {
	cache cache.Cache
}

func NewNoteRepository(cache cache.Cache) NoteRepository {
	return &noteRepository{cache: cache}
}

func key(userID uuid.UUID) string {
	return constants.RedisKeyUserNotes + userID.String()
}

func (r *noteRepository) GetAll(ctx context.Context, userID uuid.UUID) (map[string]string, error) {
	notes, err := r.cache.HGetAll(ctx, key(userID))
	if err != nil {
		logger.Error("NoteRepository:GetAll:Error:", "error", err)
		return nil, err
	}
	return notes, nil
}

func (r *noteRepository) Get(ctx context.Context, userID uuid.UUID, date string) (string, error) {
	return r.cache.HGet(ctx, key(userID), date)
}

func (r *noteRepository) Set(ctx context.Context, userID uuid.UUID, date, content string) error {
	return r.cache.HSet(ctx, key(userID), date, content)
}

func (r *noteRepository) Delete(ctx context.Context, userID uuid.UUID, date string) error {
	return r.cache.HDel(ctx, key(userID), date)
}
