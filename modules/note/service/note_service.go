package service

import (
	"context"
	"strings"
	"time"

	"go-calendar-api/core/errors"
	"go-calendar-api/modules/note/repository"

	"github.com/google/uuid"
)

type NoteService interface {
	GetAll(ctx context.Context, userID uuid.UUID) (map[string]string, *errors.AppError)
	Get(ctx context.Context, userID uuid.UUID, date string) (string, *errors.AppError)
	Save(ctx context.Context, userID uuid.UUID, date, content string) *errors.AppError
}

type noteService struct {
	repo repository.NoteRepository
}

func NewNoteService(repo repository.NoteRepository) NoteService {
	return &noteService{repo: repo}
}

func (s *noteService) GetAll(ctx context.Context, userID uuid.UUID) (map[string]string, *errors.AppError) {
	notes, err := s.repo.GetAll(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load notes", err)
	}
	if notes == nil {
		notes = map[string]string{}
	}
	return notes, nil
}

func (s *noteService) Get(ctx context.Context, userID uuid.UUID, date string) (string, *errors.AppError) {
	if appErr := validateDate(date); appErr != nil {
		return "", appErr
	}
	content, err := s.repo.Get(ctx, userID, date)
	if err != nil {
		return "", errors.NewAppError(errors.ErrGetFailed, "failed to load note", err)
	}
	return content, nil
}

// Save writes the note for one day; empty content removes the entry.
func (s *noteService) Save(ctx context.Context, userID uuid.UUID, date, content string) *errors.AppError {
	if appErr := validateDate(date); appErr != nil {
		return appErr
	}
	if strings.TrimSpace(content) == "" {
		if err := s.repo.Delete(ctx, userID, date); err != nil {
			return errors.NewAppError(errors.ErrDeleteFailed, "failed to clear note", err)
		}
		return nil
	}
	if err := s.repo.Set(ctx, userID, date, content); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "failed to save note", err)
	}
	return nil
}

func validateDate(date string) *errors.AppError {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return errors.NewAppError(errors.ErrInvalidInput, "date must be YYYY-MM-DD", err)
	}
	return nil
}
