package middleware

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/avoronin/devconnect-server/internal/logger"
	"github.com/avoronin/devconnect-server/internal/model"
)

// TokenHeader is the custom request header carrying the token string.
const TokenHeader = "auth-token"

// TokenService resolves user ID from presented tokens.
type TokenService interface {
	GetUserID(ctx context.Context, token string) (uuid.UUID, error)
}

// Authenticate validates tokens and injects the user ID into the
// request context. Requests without a valid token never reach their
// handler. The rejection body does not reveal why a presented token
// failed.
type Authenticate struct {
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenService: tokenService, contextManager: contextManager, logger: logger}
}

// Handle reads the auth-token header, validates the token and passes a
// context with the user ID downstream, or rejects with 401.
func (m *Authenticate) Handle(c *fiber.Ctx) error {
	tokenString := c.Get(TokenHeader)

	userID, err := m.authenticateUser(c.UserContext(), tokenString)
	if err != nil {
		if !errors.Is(err, model.ErrMissingToken) {
			m.logger.Debug("Authenticate middleware: token rejected",
				"path", c.Path(),
				"error", err.Error())
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"msg": rejectionMessage(err)})
	}

	c.SetUserContext(m.contextManager.SetUserID(c.UserContext(), userID))

	return c.Next()
}

func (m *Authenticate) authenticateUser(ctx context.Context, tokenString string) (uuid.UUID, error) {
	if tokenString == "" {
		return uuid.Nil, model.ErrMissingToken
	}

	userID, err := m.tokenService.GetUserID(ctx, tokenString)
	if err != nil {
		return uuid.Nil, model.ErrInvalidToken
	}

	if userID == uuid.Nil {
		return uuid.Nil, model.ErrInvalidToken
	}

	return userID, nil
}

func rejectionMessage(err error) string {
	if errors.Is(err, model.ErrMissingToken) {
		return "No token, authorization denied"
	}
	return "Token is not valid"
}
