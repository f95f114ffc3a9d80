package handler

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/avoronin/devconnect-server/internal/logger"
	"github.com/avoronin/devconnect-server/internal/model"
	"github.com/avoronin/devconnect-server/internal/service"
)

// AuthService defines registration, login and identity resolution.
type AuthService interface {
	Register(ctx context.Context, params service.RegisterParams) (string, error)
	Login(ctx context.Context, params service.LoginParams) (string, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (model.User, error)
}

// Auth handles HTTP endpoints for registration and login.
type Auth struct {
	authService    AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// RegisterPayload is the registration request body.
type RegisterPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the payload and reports every violated field in
// declaration order.
func (p RegisterPayload) Validate() error {
	return collectFieldErrors([]fieldRule{
		{"name", validation.Validate(p.Name,
			validation.Required.Error("Name is required"))},
		{"email", validation.Validate(p.Email,
			validation.Required.Error("Include a valid email"),
			is.Email.Error("Include a valid email"))},
		{"password", validation.Validate(p.Password,
			validation.Required.Error("Please enter a password with 6 or more symbols"),
			validation.Length(6, 0).Error("Please enter a password with 6 or more symbols"))},
	})
}

// LoginPayload is the login request body.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the payload.
func (p LoginPayload) Validate() error {
	return collectFieldErrors([]fieldRule{
		{"email", validation.Validate(p.Email,
			validation.Required.Error("Include a valid email"),
			is.Email.Error("Include a valid email"))},
		{"password", validation.Validate(p.Password,
			validation.Required.Error("Password is required"))},
	})
}

// Register creates a user and responds with a freshly minted token.
func (h *Auth) Register(c *fiber.Ctx) error {
	payload := new(RegisterPayload)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return handleError(c, err)
	}

	token, err := h.authService.Register(c.UserContext(), service.RegisterParams{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		h.logger.Error("Auth handler: registration failed",
			"email", payload.Email,
			"error", err.Error())
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"token": token})
}

// Login authenticates a user and responds with a token.
func (h *Auth) Login(c *fiber.Ctx) error {
	payload := new(LoginPayload)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return handleError(c, err)
	}

	token, err := h.authService.Login(c.UserContext(), service.LoginParams{
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		if !errors.Is(err, model.ErrInvalidCredentials) {
			h.logger.Error("Auth handler: login failed",
				"email", payload.Email,
				"error", err.Error())
		}
		return handleError(c, err)
	}

	return c.JSON(fiber.Map{"token": token})
}

// Me responds with the authenticated user, password hash excluded.
func (h *Auth) Me(c *fiber.Ctx) error {
	userID, ok := h.contextManager.UserID(c.UserContext())
	if !ok {
		return unauthenticated(c, "Token is not valid")
	}

	user, err := h.authService.GetCurrentUser(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return notFound(c, "User not found")
		}
		h.logger.Error("Auth handler: failed to resolve current user",
			"user_id", userID,
			"error", err.Error())
		return handleError(c, err)
	}

	return c.JSON(user)
}
