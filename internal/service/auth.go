package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avoronin/devconnect-server/internal/gravatar"
	"github.com/avoronin/devconnect-server/internal/logger"
	"github.com/avoronin/devconnect-server/internal/model"
)

// Auth orchestrates registration and login. It owns no state of its
// own; all persistence goes through the user store.
type Auth struct {
	userStore model.UserStore
	hasher    model.PasswordHasher
	tokens    model.TokenManager
	logger    *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	tokens model.TokenManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore: userStore,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
	}
}

// RegisterParams carries validated registration input.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

// LoginParams carries validated login input.
type LoginParams struct {
	Email    string
	Password string
}

// Register creates a user and mints a token for it. Success performs
// exactly one write; every failure path performs none.
func (a *Auth) Register(ctx context.Context, params RegisterParams) (string, error) {
	a.logger.Debug("Auth service: starting user registration",
		"email", params.Email)

	existing, err := a.userStore.GetByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", params.Email,
			"error", err.Error())
		return "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if existing.ID != uuid.Nil {
		a.logger.Info("Auth service: user already exists",
			"email", params.Email)
		return "", model.ErrEmailTaken
	}

	hash, err := a.hasher.Hash(params.Password)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"email", params.Email,
			"error", err.Error())
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := model.User{
		ID:           uuid.New(),
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: hash,
		AvatarURL:    gravatar.URL(params.Email),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	saved, err := a.userStore.Create(ctx, user)
	if err != nil {
		// The store reports a lost uniqueness race the same way the
		// pre-check does.
		if errors.Is(err, model.ErrEmailTaken) {
			return "", model.ErrEmailTaken
		}
		a.logger.Error("Auth service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	tokenString, err := a.tokens.Generate(saved.ID)
	if err != nil {
		a.logger.Error("Auth service: failed to generate token",
			"user_id", saved.ID,
			"error", err.Error())
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	a.logger.Info("Auth service: user registered successfully",
		"user_id", saved.ID)

	return tokenString, nil
}

// Login authenticates a user and mints a token. Unknown email and
// wrong password are indistinguishable to the caller.
func (a *Auth) Login(ctx context.Context, params LoginParams) (string, error) {
	a.logger.Debug("Auth service: starting user login",
		"email", params.Email)

	user, err := a.userStore.GetByEmail(ctx, params.Email)
	if errors.Is(err, model.ErrNotFound) {
		return "", model.ErrInvalidCredentials
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by email",
			"email", params.Email,
			"error", err.Error())
		return "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := a.hasher.Compare(params.Password, user.PasswordHash); err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			return "", model.ErrInvalidCredentials
		}
		a.logger.Error("Auth service: failed to compare password",
			"email", params.Email,
			"error", err.Error())
		return "", fmt.Errorf("failed to compare password: %w", err)
	}

	tokenString, err := a.tokens.Generate(user.ID)
	if err != nil {
		a.logger.Error("Auth service: failed to generate token",
			"user_id", user.ID,
			"error", err.Error())
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	a.logger.Info("Auth service: user logged in successfully",
		"user_id", user.ID)

	return tokenString, nil
}

// GetCurrentUser resolves the authenticated identity to the stored
// user, with the password hash stripped.
func (a *Auth) GetCurrentUser(ctx context.Context, userID uuid.UUID) (model.User, error) {
	user, err := a.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.ErrNotFound
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by id",
			"user_id", userID,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}
