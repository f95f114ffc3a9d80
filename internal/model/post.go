package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PostStore defines persistence operations for posts, likes and comments.
type PostStore interface {
	Create(ctx context.Context, post Post) (Post, error)
	GetAll(ctx context.Context) ([]Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddLike(ctx context.Context, postID, userID uuid.UUID) error
	RemoveLike(ctx context.Context, postID, userID uuid.UUID) error
	ListLikes(ctx context.Context, postID uuid.UUID) ([]Like, error)
	AddComment(ctx context.Context, comment Comment) (Comment, error)
	DeleteComment(ctx context.Context, commentID uuid.UUID) error
	ListComments(ctx context.Context, postID uuid.UUID) ([]Comment, error)
}

// Post is a feed entry. Author name and avatar are snapshotted at
// creation time so the feed survives later profile changes.
type Post struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Text         string    `json:"text"`
	AuthorName   string    `json:"name"`
	AuthorAvatar string    `json:"avatar"`
	Likes        []Like    `json:"likes"`
	Comments     []Comment `json:"comments"`
	CreatedAt    time.Time `json:"created_at"`
}

// Like marks that a user liked a post. One like per user per post.
type Like struct {
	UserID    uuid.UUID `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a single comment under a post.
type Comment struct {
	ID           uuid.UUID `json:"id"`
	PostID       uuid.UUID `json:"post_id"`
	UserID       uuid.UUID `json:"user"`
	Text         string    `json:"text"`
	AuthorName   string    `json:"name"`
	AuthorAvatar string    `json:"avatar"`
	CreatedAt    time.Time `json:"created_at"`
}
