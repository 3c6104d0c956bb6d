package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bloglist/blog-api/internal/core/domain"
)

const postColumns = `id, title, content, author, url, likes, user_id, created_at`

// PostRepository implements ports.PostRepository on SQLite.
type PostRepository struct {
	db *sql.DB
}

func (r *PostRepository) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	id := newID()
	var owner sql.NullString
	if p.UserID != "" {
		owner = sql.NullString{String: p.UserID, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO posts (`+postColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, id, p.Title, p.Content, p.Author, p.URL, p.Likes, owner, toMillis(p.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	created := *p
	created.ID = id
	created.CreatedAt = fromMillis(toMillis(p.CreatedAt))
	return &created, nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	if !validID(id) {
		return nil, domain.ErrMalformedID
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = ?`, id)
	p, err := scanPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return p, nil
}

func (r *PostRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Post, error) {
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			args = append(args, id)
		}
	}
	if len(args) == 0 {
		return []*domain.Post{}, nil
	}
	return r.query(ctx, `SELECT `+postColumns+` FROM posts WHERE id IN (`+placeholders(len(args))+`) ORDER BY rowid`, args...)
}

func (r *PostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	return r.query(ctx, `SELECT `+postColumns+` FROM posts ORDER BY rowid`)
}

func (r *PostRepository) query(ctx context.Context, q string, args ...any) ([]*domain.Post, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	posts := []*domain.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *PostRepository) UpdateLikes(ctx context.Context, id string, likes int) (*domain.Post, error) {
	if !validID(id) {
		return nil, domain.ErrMalformedID
	}
	res, err := r.db.ExecContext(ctx, `UPDATE posts SET likes = ? WHERE id = ?`, likes, id)
	if err != nil {
		return nil, fmt.Errorf("update likes: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrPostNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrMalformedID
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func scanPost(s scanner) (*domain.Post, error) {
	var (
		p         domain.Post
		owner     sql.NullString
		createdAt int64
	)
	if err := s.Scan(&p.ID, &p.Title, &p.Content, &p.Author, &p.URL, &p.Likes, &owner, &createdAt); err != nil {
		return nil, err
	}
	p.UserID = owner.String
	p.CreatedAt = fromMillis(createdAt)
	return &p, nil
}
