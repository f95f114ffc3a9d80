package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpctx "github.com/avoronin/devconnect-server/internal/api/http/context"
	"github.com/avoronin/devconnect-server/internal/model"
	"github.com/avoronin/devconnect-server/internal/service"
	"github.com/avoronin/devconnect-server/internal/testutil"
)

type authSvcStub struct {
	registerToken string
	registerErr   error
	loginToken    string
	loginErr      error
	user          model.User
	userErr       error
}

func (s authSvcStub) Register(ctx context.Context, params service.RegisterParams) (string, error) {
	return s.registerToken, s.registerErr
}

func (s authSvcStub) Login(ctx context.Context, params service.LoginParams) (string, error) {
	return s.loginToken, s.loginErr
}

func (s authSvcStub) GetCurrentUser(ctx context.Context, userID uuid.UUID) (model.User, error) {
	return s.user, s.userErr
}

func newAuthApp(svc AuthService) *fiber.App {
	cm := httpctx.NewManager()
	h := NewAuth(svc, cm, testutil.MakeNoopLogger())

	app := fiber.New()
	app.Post("/api/users", h.Register)
	app.Post("/api/auth", h.Login)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]json.RawMessage) {
	t.Helper()

	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))

	return resp.StatusCode, decoded
}

func TestAuth_Register_Success(t *testing.T) {
	t.Parallel()

	app := newAuthApp(authSvcStub{registerToken: "token123"})

	status, body := postJSON(t, app, "/api/users", `{"name":"Jane","email":"jane@example.com","password":"password123"}`)

	assert.Equal(t, fiber.StatusCreated, status)
	assert.JSONEq(t, `"token123"`, string(body["token"]))
}

func TestAuth_Register_ValidationErrors(t *testing.T) {
	t.Parallel()

	app := newAuthApp(authSvcStub{})

	status, body := postJSON(t, app, "/api/users", `{"name":"","email":"not-an-email","password":"short"}`)

	assert.Equal(t, fiber.StatusBadRequest, status)

	var fields []model.FieldError
	require.NoError(t, json.Unmarshal(body["errors"], &fields))
	require.Len(t, fields, 3)
	assert.Equal(t, "name", fields[0].Param)
	assert.Equal(t, "Name is required", fields[0].Msg)
	assert.Equal(t, "email", fields[1].Param)
	assert.Equal(t, "Include a valid email", fields[1].Msg)
	assert.Equal(t, "password", fields[2].Param)
	assert.Equal(t, "Please enter a password with 6 or more symbols", fields[2].Msg)
}

func TestAuth_Register_EmailTaken(t *testing.T) {
	t.Parallel()

	app := newAuthApp(authSvcStub{registerErr: model.ErrEmailTaken})

	status, body := postJSON(t, app, "/api/users", `{"name":"Jane","email":"jane@example.com","password":"password123"}`)

	assert.Equal(t, fiber.StatusConflict, status)
	assert.JSONEq(t, `"User already exists"`, string(body["msg"]))
}

func TestAuth_Login_Success(t *testing.T) {
	t.Parallel()

	app := newAuthApp(authSvcStub{loginToken: "token123"})

	status, body := postJSON(t, app, "/api/auth", `{"email":"jane@example.com","password":"password123"}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `"token123"`, string(body["token"]))
}

func TestAuth_Login_InvalidCredentials(t *testing.T) {
	t.Parallel()

	app := newAuthApp(authSvcStub{loginErr: model.ErrInvalidCredentials})

	status, body := postJSON(t, app, "/api/auth", `{"email":"jane@example.com","password":"wrong"}`)

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.JSONEq(t, `"Invalid credentials"`, string(body["msg"]))
}

func TestAuth_Login_ValidationErrors(t *testing.T) {
	t.Parallel()

	app := newAuthApp(authSvcStub{})

	status, body := postJSON(t, app, "/api/auth", `{"email":"","password":""}`)

	assert.Equal(t, fiber.StatusBadRequest, status)

	var fields []model.FieldError
	require.NoError(t, json.Unmarshal(body["errors"], &fields))
	require.Len(t, fields, 2)
	assert.Equal(t, "Include a valid email", fields[0].Msg)
	assert.Equal(t, "Password is required", fields[1].Msg)
}

func TestAuth_Me_Success(t *testing.T) {
	t.Parallel()

	cm := httpctx.NewManager()
	userID := uuid.New()
	h := NewAuth(authSvcStub{user: model.User{ID: userID, Name: "Jane"}}, cm, testutil.MakeNoopLogger())

	app := fiber.New()
	app.Get("/api/auth", func(c *fiber.Ctx) error {
		c.SetUserContext(cm.SetUserID(c.UserContext(), userID))
		return c.Next()
	}, h.Me)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/auth", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var user model.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "Jane", user.Name)
}

func TestAuth_Me_UserNotFound(t *testing.T) {
	t.Parallel()

	cm := httpctx.NewManager()
	h := NewAuth(authSvcStub{userErr: model.ErrNotFound}, cm, testutil.MakeNoopLogger())

	app := fiber.New()
	app.Get("/api/auth", func(c *fiber.Ctx) error {
		c.SetUserContext(cm.SetUserID(c.UserContext(), uuid.New()))
		return c.Next()
	}, h.Me)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/auth", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User not found", body["msg"])
}
