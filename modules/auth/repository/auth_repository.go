package repository

import (
	"context"
	"database/sql"

	"go-calendar-api/core/database"
	"go-calendar-api/core/logger"
	"go-calendar-api/modules/auth/entity"

	"github.com/google/uuid"
)

type AuthRepositoryInterface interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	UpsertUserByEmail(ctx context.Context, user *entity.User) (*entity.User, error)
}

type AuthRepository struct {
	db database.Database
}

func NewAuthRepository(db database.Database) *AuthRepository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	query := `SELECT id, email, name, provider, avatar_url, created_at, updated_at FROM users WHERE id = $1`
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByID:Error:", "error", err)
		return nil, err
	}
	return &user, nil
}

func (r *AuthRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	query := `SELECT id, email, name, provider, avatar_url, created_at, updated_at FROM users WHERE email = $1`
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByEmail:Error:", "error", err)
		return nil, err
	}
	return &user, nil
}

// UpsertUserByEmail inserts the user on first sign-in and refreshes name,
// provider and avatar on later ones. Email is the identity key.
func (r *AuthRepository) UpsertUserByEmail(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (email, name, provider, avatar_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name, provider = EXCLUDED.provider, avatar_url = EXCLUDED.avatar_url, updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, user.Email, user.Name, user.Provider, user.AvatarURL).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		logger.Error("AuthRepository:UpsertUserByEmail:Error:", "error", err)
		return nil, err
	}
	return user, nil
}
