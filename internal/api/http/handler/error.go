package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/avoronin/devconnect-server/internal/model"
)

// handleError translates domain errors into HTTP responses. Unknown
// errors become a generic 500 with no internal detail leaked.
func handleError(c *fiber.Ctx, err error) error {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": verr.Fields})
	}

	switch {
	case errors.Is(err, model.ErrEmailTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"msg": "User already exists"})
	case errors.Is(err, model.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"msg": "Invalid credentials"})
	case errors.Is(err, model.ErrNotOwner):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"msg": "User not authorized"})
	case errors.Is(err, model.ErrAlreadyLiked):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "Post already liked"})
	case errors.Is(err, model.ErrNotLiked):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "Post has not yet been liked"})
	case errors.Is(err, model.ErrNotFound):
		return notFound(c, "Not found")
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "Server error"})
	}
}

// notFound responds 404 with a resource-specific message.
func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"msg": msg})
}

// badRequest responds 400 with a message.
func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": msg})
}

// unauthenticated responds 401 with a message.
func unauthenticated(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"msg": msg})
}
