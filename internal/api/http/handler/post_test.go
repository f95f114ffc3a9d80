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
	"github.com/avoronin/devconnect-server/internal/testutil"
)

type postSvcStub struct {
	post     model.Post
	posts    []model.Post
	likes    []model.Like
	comments []model.Comment
	err      error
}

func (s postSvcStub) Create(ctx context.Context, userID uuid.UUID, text string) (model.Post, error) {
	return s.post, s.err
}

func (s postSvcStub) GetAll(ctx context.Context) ([]model.Post, error) {
	return s.posts, s.err
}

func (s postSvcStub) GetByID(ctx context.Context, id uuid.UUID) (model.Post, error) {
	return s.post, s.err
}

func (s postSvcStub) Delete(ctx context.Context, userID, postID uuid.UUID) error {
	return s.err
}

func (s postSvcStub) Like(ctx context.Context, userID, postID uuid.UUID) ([]model.Like, error) {
	return s.likes, s.err
}

func (s postSvcStub) Unlike(ctx context.Context, userID, postID uuid.UUID) ([]model.Like, error) {
	return s.likes, s.err
}

func (s postSvcStub) AddComment(ctx context.Context, userID, postID uuid.UUID, text string) ([]model.Comment, error) {
	return s.comments, s.err
}

func (s postSvcStub) RemoveComment(ctx context.Context, userID, postID, commentID uuid.UUID) ([]model.Comment, error) {
	return s.comments, s.err
}

func newPostApp(svc PostService) *fiber.App {
	cm := httpctx.NewManager()
	h := NewPost(svc, cm, testutil.MakeNoopLogger())

	app := fiber.New()
	authed := func(c *fiber.Ctx) error {
		c.SetUserContext(cm.SetUserID(c.UserContext(), uuid.New()))
		return c.Next()
	}
	app.Post("/api/posts", authed, h.Create)
	app.Get("/api/posts/:id", authed, h.GetByID)
	app.Delete("/api/posts/:id", authed, h.Delete)
	app.Put("/api/posts/like/:id", authed, h.Like)
	app.Post("/api/posts/comment/:id", authed, h.AddComment)
	app.Delete("/api/posts/comment/:id/:comment_id", authed, h.RemoveComment)
	return app
}

func TestPost_Create_Success(t *testing.T) {
	t.Parallel()

	post := model.Post{ID: uuid.New(), Text: "hello"}
	app := newPostApp(postSvcStub{post: post})

	req := httptest.NewRequest("POST", "/api/posts", strings.NewReader(`{"text":"hello"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var got model.Post
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, post.ID, got.ID)
}

func TestPost_Create_TextRequired(t *testing.T) {
	t.Parallel()

	app := newPostApp(postSvcStub{})

	req := httptest.NewRequest("POST", "/api/posts", strings.NewReader(`{"text":""}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body struct {
		Errors []model.FieldError `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "text", body.Errors[0].Param)
	assert.Equal(t, "Text is required", body.Errors[0].Msg)
}

func TestPost_GetByID_MalformedID(t *testing.T) {
	t.Parallel()

	app := newPostApp(postSvcStub{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/posts/not-a-uuid", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Post not found", body["msg"])
}

func TestPost_Delete_NotOwner(t *testing.T) {
	t.Parallel()

	app := newPostApp(postSvcStub{err: model.ErrNotOwner})

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/posts/"+uuid.NewString(), nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "User not authorized", body["msg"])
}

func TestPost_Delete_Success(t *testing.T) {
	t.Parallel()

	app := newPostApp(postSvcStub{})

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/posts/"+uuid.NewString(), nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Post removed", body["msg"])
}

func TestPost_Like_AlreadyLiked(t *testing.T) {
	t.Parallel()

	app := newPostApp(postSvcStub{err: model.ErrAlreadyLiked})

	req := httptest.NewRequest("PUT", "/api/posts/like/"+uuid.NewString(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Post already liked", body["msg"])
}

func TestPost_AddComment_Success(t *testing.T) {
	t.Parallel()

	comments := []model.Comment{{ID: uuid.New(), Text: "nice"}}
	app := newPostApp(postSvcStub{comments: comments})

	req := httptest.NewRequest("POST", "/api/posts/comment/"+uuid.NewString(), strings.NewReader(`{"text":"nice"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var got []model.Comment
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "nice", got[0].Text)
}

func TestPost_RemoveComment_NotFound(t *testing.T) {
	t.Parallel()

	app := newPostApp(postSvcStub{err: model.ErrNotFound})

	req := httptest.NewRequest("DELETE", "/api/posts/comment/"+uuid.NewString()+"/"+uuid.NewString(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Comment not found", body["msg"])
}
