package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/avoronin/devconnect-server/internal/logger"
	servermocks "github.com/avoronin/devconnect-server/internal/mocks"
	"github.com/avoronin/devconnect-server/internal/model"
)

func TestUser_UpdateAvatar_Success(t *testing.T) {
	ctx := context.Background()
	userStore := &servermocks.UserStore{}
	storage := &servermocks.Storage{}

	userID := uuid.New()
	key := "avatars/" + userID.String()
	url := "http://minio/devconnect-avatars/" + key

	storage.On("Upload", mock.Anything, key, mock.Anything, int64(4), "image/png").Return(nil)
	storage.On("URL", key).Return(url)
	userStore.On("UpdateAvatar", mock.Anything, userID, url).Return(model.User{ID: userID, AvatarURL: url, PasswordHash: "hashed"}, nil)

	s := NewUser(userStore, storage, logger.New(0))

	user, err := s.UpdateAvatar(ctx, userID, strings.NewReader("data"), 4, "image/png")
	require.NoError(t, err)
	assert.Equal(t, url, user.AvatarURL)
	assert.Empty(t, user.PasswordHash)
}

func TestUser_UpdateAvatar_UploadFails(t *testing.T) {
	ctx := context.Background()
	userStore := &servermocks.UserStore{}
	storage := &servermocks.Storage{}

	userID := uuid.New()
	storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	s := NewUser(userStore, storage, logger.New(0))

	_, err := s.UpdateAvatar(ctx, userID, strings.NewReader("data"), 4, "image/png")
	require.Error(t, err)
	userStore.AssertNotCalled(t, "UpdateAvatar", mock.Anything, mock.Anything, mock.Anything)
}

func TestUser_UpdateAvatar_UserNotFound(t *testing.T) {
	ctx := context.Background()
	userStore := &servermocks.UserStore{}
	storage := &servermocks.Storage{}

	userID := uuid.New()
	storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	storage.On("URL", mock.Anything).Return("http://minio/key")
	userStore.On("UpdateAvatar", mock.Anything, userID, mock.Anything).Return(model.User{}, model.ErrNotFound)

	s := NewUser(userStore, storage, logger.New(0))

	_, err := s.UpdateAvatar(ctx, userID, strings.NewReader("data"), 4, "image/png")
	require.ErrorIs(t, err, model.ErrNotFound)
}
