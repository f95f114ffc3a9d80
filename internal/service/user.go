package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/avoronin/devconnect-server/internal/logger"
	"github.com/avoronin/devconnect-server/internal/model"
)

// User manages user-owned resources outside the auth flow.
type User struct {
	userStore model.UserStore
	storage   model.Storage
	logger    *logger.Logger
}

func NewUser(userStore model.UserStore, storage model.Storage, logger *logger.Logger) *User {
	return &User{
		userStore: userStore,
		storage:   storage,
		logger:    logger,
	}
}

// UpdateAvatar stores an uploaded avatar image and points the user's
// avatar URL at it, replacing the derived gravatar default. Uploads
// for one user reuse one object key, so a re-upload overwrites.
func (s *User) UpdateAvatar(ctx context.Context, userID uuid.UUID, reader io.Reader, size int64, contentType string) (model.User, error) {
	s.logger.Debug("User service: updating avatar",
		"user_id", userID)

	key := avatarKey(userID)
	if err := s.storage.Upload(ctx, key, reader, size, contentType); err != nil {
		s.logger.Error("User service: failed to upload avatar",
			"user_id", userID,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to upload avatar: %w", err)
	}

	user, err := s.userStore.UpdateAvatar(ctx, userID, s.storage.URL(key))
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.ErrNotFound
	}
	if err != nil {
		s.logger.Error("User service: failed to update avatar url",
			"user_id", userID,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to update avatar url: %w", err)
	}

	s.logger.Info("User service: avatar updated",
		"user_id", userID)

	user.PasswordHash = ""
	return user, nil
}
