package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) (User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// User represents a stored user with authentication material.
// PasswordHash never leaves the service layer.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	AvatarURL    string    `json:"avatar"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PasswordHasher derives and verifies password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(password, hash string) error
}
