package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/avoronin/devconnect-server/internal/model"
)

var _ model.PostStore = (*PostRepository)(nil)

type PostRepository struct {
	db *Connection
}

func NewPostRepository(db *Connection) *PostRepository {
	return &PostRepository{
		db: db,
	}
}

func (r *PostRepository) Create(ctx context.Context, post model.Post) (model.Post, error) {
	query := `INSERT INTO posts (id, user_id, text, author_name, author_avatar, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, user_id, text, author_name, author_avatar, created_at`

	var saved model.Post
	err := r.db.QueryRow(ctx, query,
		post.ID, post.UserID, post.Text, post.AuthorName, post.AuthorAvatar, post.CreatedAt,
	).Scan(
		&saved.ID, &saved.UserID, &saved.Text, &saved.AuthorName, &saved.AuthorAvatar, &saved.CreatedAt,
	)
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to create post: %w", err)
	}

	saved.Likes = []model.Like{}
	saved.Comments = []model.Comment{}
	return saved, nil
}

// GetAll returns every post, newest first, with likes and comments
// attached.
func (r *PostRepository) GetAll(ctx context.Context) ([]model.Post, error) {
	query := `SELECT id, user_id, text, author_name, author_avatar, created_at
			  FROM posts ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]model.Post, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var post model.Post
		if err := rows.Scan(
			&post.ID, &post.UserID, &post.Text, &post.AuthorName, &post.AuthorAvatar, &post.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		post.Likes = []model.Like{}
		post.Comments = []model.Comment{}
		posts = append(posts, post)
		ids = append(ids, post.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	if len(posts) == 0 {
		return posts, nil
	}

	if err := r.attachLikes(ctx, posts, ids); err != nil {
		return nil, err
	}
	if err := r.attachComments(ctx, posts, ids); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Post, error) {
	query := `SELECT id, user_id, text, author_name, author_avatar, created_at
			  FROM posts WHERE id = $1`

	var post model.Post
	err := r.db.QueryRow(ctx, query, id).Scan(
		&post.ID, &post.UserID, &post.Text, &post.AuthorName, &post.AuthorAvatar, &post.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Post{}, model.ErrNotFound
		}
		return model.Post{}, fmt.Errorf("failed to get post by id: %w", err)
	}

	post.Likes, err = r.ListLikes(ctx, id)
	if err != nil {
		return model.Post{}, err
	}
	post.Comments, err = r.ListComments(ctx, id)
	if err != nil {
		return model.Post{}, err
	}

	return post, nil
}

func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// AddLike inserts a like. The composite primary key makes a duplicate
// like a constraint violation rather than a silent double count.
func (r *PostRepository) AddLike(ctx context.Context, postID, userID uuid.UUID) error {
	query := `INSERT INTO post_likes (post_id, user_id, created_at) VALUES ($1, $2, now())`

	if _, err := r.db.Exec(ctx, query, postID, userID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return model.ErrAlreadyLiked
		}
		return fmt.Errorf("failed to add like: %w", err)
	}
	return nil
}

func (r *PostRepository) RemoveLike(ctx context.Context, postID, userID uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove like: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotLiked
	}
	return nil
}

func (r *PostRepository) ListLikes(ctx context.Context, postID uuid.UUID) ([]model.Like, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id, created_at FROM post_likes WHERE post_id = $1 ORDER BY created_at`, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}
	defer rows.Close()

	likes := make([]model.Like, 0)
	for rows.Next() {
		var like model.Like
		if err := rows.Scan(&like.UserID, &like.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan like: %w", err)
		}
		likes = append(likes, like)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate likes: %w", err)
	}

	return likes, nil
}

func (r *PostRepository) AddComment(ctx context.Context, comment model.Comment) (model.Comment, error) {
	query := `INSERT INTO post_comments (id, post_id, user_id, text, author_name, author_avatar, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, post_id, user_id, text, author_name, author_avatar, created_at`

	var saved model.Comment
	err := r.db.QueryRow(ctx, query,
		comment.ID, comment.PostID, comment.UserID, comment.Text,
		comment.AuthorName, comment.AuthorAvatar, comment.CreatedAt,
	).Scan(
		&saved.ID, &saved.PostID, &saved.UserID, &saved.Text,
		&saved.AuthorName, &saved.AuthorAvatar, &saved.CreatedAt,
	)
	if err != nil {
		return model.Comment{}, fmt.Errorf("failed to add comment: %w", err)
	}

	return saved, nil
}

func (r *PostRepository) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM post_comments WHERE id = $1`, commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// ListComments returns a post's comments, newest first, matching the
// prepend ordering of the feed.
func (r *PostRepository) ListComments(ctx context.Context, postID uuid.UUID) ([]model.Comment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, post_id, user_id, text, author_name, author_avatar, created_at
		 FROM post_comments WHERE post_id = $1 ORDER BY created_at DESC`, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]model.Comment, 0)
	for rows.Next() {
		var comment model.Comment
		if err := rows.Scan(
			&comment.ID, &comment.PostID, &comment.UserID, &comment.Text,
			&comment.AuthorName, &comment.AuthorAvatar, &comment.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}

	return comments, nil
}

func (r *PostRepository) attachLikes(ctx context.Context, posts []model.Post, ids []uuid.UUID) error {
	rows, err := r.db.Query(ctx,
		`SELECT post_id, user_id, created_at FROM post_likes WHERE post_id = ANY($1) ORDER BY created_at`, ids)
	if err != nil {
		return fmt.Errorf("failed to list likes: %w", err)
	}
	defer rows.Close()

	byPost := make(map[uuid.UUID][]model.Like, len(posts))
	for rows.Next() {
		var postID uuid.UUID
		var like model.Like
		if err := rows.Scan(&postID, &like.UserID, &like.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan like: %w", err)
		}
		byPost[postID] = append(byPost[postID], like)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate likes: %w", err)
	}

	for i := range posts {
		if likes, ok := byPost[posts[i].ID]; ok {
			posts[i].Likes = likes
		}
	}
	return nil
}

func (r *PostRepository) attachComments(ctx context.Context, posts []model.Post, ids []uuid.UUID) error {
	rows, err := r.db.Query(ctx,
		`SELECT id, post_id, user_id, text, author_name, author_avatar, created_at
		 FROM post_comments WHERE post_id = ANY($1) ORDER BY created_at DESC`, ids)
	if err != nil {
		return fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	byPost := make(map[uuid.UUID][]model.Comment, len(posts))
	for rows.Next() {
		var comment model.Comment
		if err := rows.Scan(
			&comment.ID, &comment.PostID, &comment.UserID, &comment.Text,
			&comment.AuthorName, &comment.AuthorAvatar, &comment.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to scan comment: %w", err)
		}
		byPost[comment.PostID] = append(byPost[comment.PostID], comment)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate comments: %w", err)
	}

	for i := range posts {
		if comments, ok := byPost[posts[i].ID]; ok {
			posts[i].Comments = comments
		}
	}
	return nil
}
