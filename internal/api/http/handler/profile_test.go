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

type profileSvcStub struct {
	profile  model.Profile
	profiles []model.Profile
	err      error
}

func (s profileSvcStub) GetAll(ctx context.Context) ([]model.Profile, error) {
	return s.profiles, s.err
}

func (s profileSvcStub) GetByUserID(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	return s.profile, s.err
}

func (s profileSvcStub) Upsert(ctx context.Context, userID uuid.UUID, input service.ProfileInput) (model.Profile, error) {
	return s.profile, s.err
}

func (s profileSvcStub) AddExperience(ctx context.Context, userID uuid.UUID, exp model.Experience) (model.Profile, error) {
	return s.profile, s.err
}

func (s profileSvcStub) RemoveExperience(ctx context.Context, userID, expID uuid.UUID) (model.Profile, error) {
	return s.profile, s.err
}

func (s profileSvcStub) AddEducation(ctx context.Context, userID uuid.UUID, edu model.Education) (model.Profile, error) {
	return s.profile, s.err
}

func (s profileSvcStub) RemoveEducation(ctx context.Context, userID, eduID uuid.UUID) (model.Profile, error) {
	return s.profile, s.err
}

func (s profileSvcStub) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	return s.err
}

func newProfileApp(svc ProfileService) *fiber.App {
	cm := httpctx.NewManager()
	h := NewProfile(svc, cm, testutil.MakeNoopLogger())

	app := fiber.New()
	authed := func(c *fiber.Ctx) error {
		c.SetUserContext(cm.SetUserID(c.UserContext(), uuid.New()))
		return c.Next()
	}
	app.Get("/api/profile", h.GetAll)
	app.Get("/api/profile/user/:user_id", h.GetByUserID)
	app.Post("/api/profile", authed, h.Upsert)
	app.Delete("/api/profile", authed, h.Delete)
	app.Put("/api/profile/experience", authed, h.AddExperience)
	app.Delete("/api/profile/experience/:exp_id", authed, h.RemoveExperience)
	return app
}

func TestProfile_GetByUserID_MalformedID(t *testing.T) {
	t.Parallel()

	app := newProfileApp(profileSvcStub{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/profile/user/not-a-uuid", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "There is no profile for this user", body["msg"])
}

func TestProfile_GetByUserID_NotFound(t *testing.T) {
	t.Parallel()

	app := newProfileApp(profileSvcStub{err: model.ErrNotFound})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/profile/user/"+uuid.NewString(), nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "There is no profile for this user", body["msg"])
}

func TestProfile_Upsert_ValidationErrors(t *testing.T) {
	t.Parallel()

	app := newProfileApp(profileSvcStub{})

	req := httptest.NewRequest("POST", "/api/profile", strings.NewReader(`{"status":"","skills":""}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body struct {
		Errors []model.FieldError `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Errors, 2)
	assert.Equal(t, "Status is required", body.Errors[0].Msg)
	assert.Equal(t, "Skills are required", body.Errors[1].Msg)
}

func TestProfile_Upsert_Success(t *testing.T) {
	t.Parallel()

	profile := model.Profile{ID: uuid.New(), Status: "Developer"}
	app := newProfileApp(profileSvcStub{profile: profile})

	req := httptest.NewRequest("POST", "/api/profile", strings.NewReader(`{"status":"Developer","skills":"Go,SQL"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got model.Profile
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, profile.ID, got.ID)
}

func TestProfile_Delete_Success(t *testing.T) {
	t.Parallel()

	app := newProfileApp(profileSvcStub{})

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/profile", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "User has been successfully deleted", body["msg"])
}

func TestProfile_AddExperience_ValidationErrors(t *testing.T) {
	t.Parallel()

	app := newProfileApp(profileSvcStub{})

	req := httptest.NewRequest("PUT", "/api/profile/experience", strings.NewReader(`{"title":"","company":""}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body struct {
		Errors []model.FieldError `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Errors, 3)
	assert.Equal(t, "Title is required", body.Errors[0].Msg)
	assert.Equal(t, "Company is required", body.Errors[1].Msg)
	assert.Equal(t, "From date is required", body.Errors[2].Msg)
}

func TestProfile_RemoveExperience_NotFound(t *testing.T) {
	t.Parallel()

	app := newProfileApp(profileSvcStub{err: model.ErrNotFound})

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/profile/experience/"+uuid.NewString(), nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Experience not found", body["msg"])
}
