package handler

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/avoronin/devconnect-server/internal/logger"
	"github.com/avoronin/devconnect-server/internal/model"
)

// PostService defines feed operations: posts, likes and comments.
type PostService interface {
	Create(ctx context.Context, userID uuid.UUID, text string) (model.Post, error)
	GetAll(ctx context.Context) ([]model.Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.Post, error)
	Delete(ctx context.Context, userID, postID uuid.UUID) error
	Like(ctx context.Context, userID, postID uuid.UUID) ([]model.Like, error)
	Unlike(ctx context.Context, userID, postID uuid.UUID) ([]model.Like, error)
	AddComment(ctx context.Context, userID, postID uuid.UUID, text string) ([]model.Comment, error)
	RemoveComment(ctx context.Context, userID, postID, commentID uuid.UUID) ([]model.Comment, error)
}

// Post handles HTTP endpoints for the feed.
type Post struct {
	postService    PostService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewPost creates a new Post handler.
func NewPost(postService PostService, contextManager model.ContextManager, logger *logger.Logger) *Post {
	return &Post{
		postService:    postService,
		contextManager: contextManager,
		logger:         logger,
	}
}

const postNotFoundMsg = "Post not found"

// PostPayload is the create-post request body.
type PostPayload struct {
	Text string `json:"text"`
}

// Validate checks the payload.
func (p PostPayload) Validate() error {
	return collectFieldErrors([]fieldRule{
		{"text", validation.Validate(p.Text,
			validation.Required.Error("Text is required"))},
	})
}

// CommentPayload is the add-comment request body.
type CommentPayload struct {
	Text string `json:"text"`
}

// Validate checks the payload.
func (p CommentPayload) Validate() error {
	return collectFieldErrors([]fieldRule{
		{"text", validation.Validate(p.Text,
			validation.Required.Error("Text is required"))},
	})
}

// Create publishes a post authored by the caller.
func (h *Post) Create(c *fiber.Ctx) error {
	userID, ok := h.contextManager.UserID(c.UserContext())
	if !ok {
		return unauthenticated(c, "Token is not valid")
	}

	payload := new(PostPayload)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return handleError(c, err)
	}

	post, err := h.postService.Create(c.UserContext(), userID, payload.Text)
	if err != nil {
		h.logger.Error("Post handler: failed to create post",
			"user_id", userID,
			"error", err.Error())
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetAll responds with the whole feed, newest first.
func (h *Post) GetAll(c *fiber.Ctx) error {
	posts, err := h.postService.GetAll(c.UserContext())
	if err != nil {
		h.logger.Error("Post handler: failed to list posts",
			"error", err.Error())
		return handleError(c, err)
	}

	return c.JSON(posts)
}

// GetByID responds with a single post. A malformed id reads as an
// absent post.
func (h *Post) GetByID(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return notFound(c, postNotFoundMsg)
	}

	post, err := h.postService.GetByID(c.UserContext(), postID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return notFound(c, postNotFoundMsg)
		}
		return handleError(c, err)
	}

	return c.JSON(post)
}

// Delete removes a post owned by the caller.
func (h *Post) Delete(c *fiber.Ctx) error {
	userID, ok := h.contextManager.UserID(c.UserContext())
	if !ok {
		return unauthenticated(c, "Token is not valid")
	}

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return notFound(c, postNotFoundMsg)
	}

	if err := h.postService.Delete(c.UserContext(), userID, postID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return notFound(c, postNotFoundMsg)
		}
		return handleError(c, err)
	}

	return c.JSON(fiber.Map{"msg": "Post removed"})
}

// Like records the caller's like and responds with the post's likes.
func (h *Post) Like(c *fiber.Ctx) error {
	userID, ok := h.contextManager.UserID(c.UserContext())
	if !ok {
		return unauthenticated(c, "Token is not valid")
	}

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return notFound(c, postNotFoundMsg)
	}

	likes, err := h.postService.Like(c.UserContext(), userID, postID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return notFound(c, postNotFoundMsg)
		}
		return handleError(c, err)
	}

	return c.JSON(likes)
}

// Unlike withdraws the caller's like and responds with the remaining
// likes.
func (h *Post) Unlike(c *fiber.Ctx) error {
	userID, ok := h.contextManager.UserID(c.UserContext())
	if !ok {
		return unauthenticated(c, "Token is not valid")
	}

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return notFound(c, postNotFoundMsg)
	}

	likes, err := h.postService.Unlike(c.UserContext(), userID, postID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return notFound(c, postNotFoundMsg)
		}
		return handleError(c, err)
	}

	return c.JSON(likes)
}

// AddComment appends a comment and responds with the post's comments.
func (h *Post) AddComment(c *fiber.Ctx) error {
	userID, ok := h.contextManager.UserID(c.UserContext())
	if !ok {
		return unauthenticated(c, "Token is not valid")
	}

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return notFound(c, postNotFoundMsg)
	}

	payload := new(CommentPayload)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return handleError(c, err)
	}

	comments, err := h.postService.AddComment(c.UserContext(), userID, postID, payload.Text)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return notFound(c, postNotFoundMsg)
		}
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comments)
}

// RemoveComment deletes the caller's comment and responds with the
// remaining comments.
func (h *Post) RemoveComment(c *fiber.Ctx) error {
	userID, ok := h.contextManager.UserID(c.UserContext())
	if !ok {
		return unauthenticated(c, "Token is not valid")
	}

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return notFound(c, postNotFoundMsg)
	}

	commentID, err := uuid.Parse(c.Params("comment_id"))
	if err != nil {
		return notFound(c, "Comment not found")
	}

	comments, err := h.postService.RemoveComment(c.UserContext(), userID, postID, commentID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return notFound(c, "Comment not found")
		}
		return handleError(c, err)
	}

	return c.JSON(comments)
}
