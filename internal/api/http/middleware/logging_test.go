package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronin/devconnect-server/internal/testutil"
)

func TestLogging_Handle_PassesThrough(t *testing.T) {
	t.Parallel()

	l := NewLogging(testutil.MakeNoopLogger())

	app := fiber.New()
	app.Get("/ok", l.Handle, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestLogging_Handle_PropagatesError(t *testing.T) {
	t.Parallel()

	l := NewLogging(testutil.MakeNoopLogger())

	app := fiber.New()
	app.Get("/fail", l.Handle, func(c *fiber.Ctx) error {
		return fiber.ErrTeapot
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
}
