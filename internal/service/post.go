package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avoronin/devconnect-server/internal/logger"
	"github.com/avoronin/devconnect-server/internal/model"
)

// Post manages the feed: posts, likes and comments.
type Post struct {
	postStore model.PostStore
	userStore model.UserStore
	logger    *logger.Logger
}

func NewPost(postStore model.PostStore, userStore model.UserStore, logger *logger.Logger) *Post {
	return &Post{
		postStore: postStore,
		userStore: userStore,
		logger:    logger,
	}
}

// Create publishes a post with the author's name and avatar
// snapshotted onto it.
func (s *Post) Create(ctx context.Context, userID uuid.UUID, text string) (model.Post, error) {
	s.logger.Debug("Post service: creating post",
		"user_id", userID)

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("Post service: failed to get author",
			"user_id", userID,
			"error", err.Error())
		return model.Post{}, fmt.Errorf("failed to get author: %w", err)
	}

	post := model.Post{
		ID:           uuid.New(),
		UserID:       userID,
		Text:         text,
		AuthorName:   user.Name,
		AuthorAvatar: user.AvatarURL,
		CreatedAt:    time.Now(),
	}

	saved, err := s.postStore.Create(ctx, post)
	if err != nil {
		s.logger.Error("Post service: failed to create post",
			"user_id", userID,
			"error", err.Error())
		return model.Post{}, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("Post service: post created",
		"post_id", saved.ID,
		"user_id", userID)

	return saved, nil
}

func (s *Post) GetAll(ctx context.Context) ([]model.Post, error) {
	posts, err := s.postStore.GetAll(ctx)
	if err != nil {
		s.logger.Error("Post service: failed to list posts",
			"error", err.Error())
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (s *Post) GetByID(ctx context.Context, id uuid.UUID) (model.Post, error) {
	post, err := s.postStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Post{}, model.ErrNotFound
	}
	if err != nil {
		s.logger.Error("Post service: failed to get post",
			"post_id", id,
			"error", err.Error())
		return model.Post{}, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// Delete removes a post. Only the author may delete it.
func (s *Post) Delete(ctx context.Context, userID, postID uuid.UUID) error {
	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.UserID != userID {
		return model.ErrNotOwner
	}

	if err := s.postStore.Delete(ctx, postID); err != nil {
		s.logger.Error("Post service: failed to delete post",
			"post_id", postID,
			"error", err.Error())
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.logger.Info("Post service: post deleted",
		"post_id", postID,
		"user_id", userID)

	return nil
}

// Like records a like and returns the post's likes. Liking twice fails
// with ErrAlreadyLiked.
func (s *Post) Like(ctx context.Context, userID, postID uuid.UUID) ([]model.Like, error) {
	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	for _, like := range post.Likes {
		if like.UserID == userID {
			return nil, model.ErrAlreadyLiked
		}
	}

	if err := s.postStore.AddLike(ctx, postID, userID); err != nil {
		// A concurrent duplicate hits the primary key instead of the
		// in-memory check; report it the same way.
		if errors.Is(err, model.ErrAlreadyLiked) {
			return nil, model.ErrAlreadyLiked
		}
		s.logger.Error("Post service: failed to add like",
			"post_id", postID,
			"user_id", userID,
			"error", err.Error())
		return nil, fmt.Errorf("failed to add like: %w", err)
	}

	return s.listLikes(ctx, postID)
}

// Unlike withdraws a like and returns the post's remaining likes.
func (s *Post) Unlike(ctx context.Context, userID, postID uuid.UUID) ([]model.Like, error) {
	if _, err := s.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	if err := s.postStore.RemoveLike(ctx, postID, userID); err != nil {
		if errors.Is(err, model.ErrNotLiked) {
			return nil, model.ErrNotLiked
		}
		s.logger.Error("Post service: failed to remove like",
			"post_id", postID,
			"user_id", userID,
			"error", err.Error())
		return nil, fmt.Errorf("failed to remove like: %w", err)
	}

	return s.listLikes(ctx, postID)
}

// AddComment prepends a comment to the post and returns the post's
// comments.
func (s *Post) AddComment(ctx context.Context, userID, postID uuid.UUID, text string) ([]model.Comment, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("Post service: failed to get commenter",
			"user_id", userID,
			"error", err.Error())
		return nil, fmt.Errorf("failed to get commenter: %w", err)
	}

	if _, err := s.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := model.Comment{
		ID:           uuid.New(),
		PostID:       postID,
		UserID:       userID,
		Text:         text,
		AuthorName:   user.Name,
		AuthorAvatar: user.AvatarURL,
		CreatedAt:    time.Now(),
	}

	if _, err := s.postStore.AddComment(ctx, comment); err != nil {
		s.logger.Error("Post service: failed to add comment",
			"post_id", postID,
			"user_id", userID,
			"error", err.Error())
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	return s.listComments(ctx, postID)
}

// RemoveComment deletes a comment. Only the comment's author may
// delete it. Returns the post's remaining comments.
func (s *Post) RemoveComment(ctx context.Context, userID, postID, commentID uuid.UUID) ([]model.Comment, error) {
	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	var target *model.Comment
	for i := range post.Comments {
		if post.Comments[i].ID == commentID {
			target = &post.Comments[i]
			break
		}
	}
	if target == nil {
		return nil, model.ErrNotFound
	}

	if target.UserID != userID {
		return nil, model.ErrNotOwner
	}

	if err := s.postStore.DeleteComment(ctx, commentID); err != nil {
		s.logger.Error("Post service: failed to delete comment",
			"post_id", postID,
			"comment_id", commentID,
			"error", err.Error())
		return nil, fmt.Errorf("failed to delete comment: %w", err)
	}

	return s.listComments(ctx, postID)
}

func (s *Post) listLikes(ctx context.Context, postID uuid.UUID) ([]model.Like, error) {
	likes, err := s.postStore.ListLikes(ctx, postID)
	if err != nil {
		s.logger.Error("Post service: failed to list likes",
			"post_id", postID,
			"error", err.Error())
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}
	return likes, nil
}

func (s *Post) listComments(ctx context.Context, postID uuid.UUID) ([]model.Comment, error) {
	comments, err := s.postStore.ListComments(ctx, postID)
	if err != nil {
		s.logger.Error("Post service: failed to list comments",
			"post_id", postID,
			"error", err.Error())
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}
