package handler

import (
	"context"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/avoronin/devconnect-server/internal/logger"
	"github.com/avoronin/devconnect-server/internal/model"
)

// UserService defines user-owned resource operations.
type UserService interface {
	UpdateAvatar(ctx context.Context, userID uuid.UUID, reader io.Reader, size int64, contentType string) (model.User, error)
}

// User handles HTTP endpoints for user resources.
type User struct {
	userService    UserService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(userService UserService, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{
		userService:    userService,
		contextManager: contextManager,
		logger:         logger,
	}
}

var allowedAvatarTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
}

// UpdateAvatar accepts a multipart image upload under the "avatar"
// field and replaces the caller's avatar with it.
func (h *User) UpdateAvatar(c *fiber.Ctx) error {
	userID, ok := h.contextManager.UserID(c.UserContext())
	if !ok {
		return unauthenticated(c, "Token is not valid")
	}

	header, err := c.FormFile("avatar")
	if err != nil {
		verr := &model.ValidationError{}
		verr.Add("avatar", "Avatar file is required")
		return handleError(c, verr)
	}

	contentType := header.Header.Get("Content-Type")
	if _, ok := allowedAvatarTypes[contentType]; !ok {
		verr := &model.ValidationError{}
		verr.Add("avatar", "Avatar must be a JPEG or PNG image")
		return handleError(c, verr)
	}

	file, err := header.Open()
	if err != nil {
		h.logger.Error("User handler: failed to open upload",
			"user_id", userID,
			"error", err.Error())
		return handleError(c, err)
	}
	defer file.Close()

	user, err := h.userService.UpdateAvatar(c.UserContext(), userID, file, header.Size, contentType)
	if err != nil {
		h.logger.Error("User handler: failed to update avatar",
			"user_id", userID,
			"error", err.Error())
		return handleError(c, err)
	}

	return c.JSON(user)
}
