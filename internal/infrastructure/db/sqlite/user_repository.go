package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bloglist/blog-api/internal/core/domain"
)

// UserRepository implements ports.UserRepository on SQLite. The ordered post
// list lives in user_posts.
type UserRepository struct {
	db *sql.DB
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	id := newID()
	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (id, username, name, password_hash, created_at)
VALUES (?, ?, ?, ?, ?)
`, id, user.Username, user.Name, user.PasswordHash, toMillis(user.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	for _, postID := range user.PostIDs {
		if err := r.AppendPost(ctx, id, postID); err != nil {
			return nil, err
		}
	}
	return r.FindByID(ctx, id)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if !validID(id) {
		return nil, domain.ErrMalformedID
	}
	return r.findOne(ctx, `WHERE id = ?`, id)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, `WHERE username = ?`, username)
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, username, name, password_hash, created_at FROM users `+where, arg)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	ids, err := r.postIDs(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.PostIDs = ids
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, username, name, password_hash, created_at FROM users ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	byID := make(map[string]*domain.User)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
		byID[u.ID] = u
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	links, err := r.db.QueryContext(ctx, `SELECT user_id, post_id FROM user_posts ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list user posts: %w", err)
	}
	defer links.Close()

	for links.Next() {
		var userID, postID string
		if err := links.Scan(&userID, &postID); err != nil {
			return nil, err
		}
		if u, ok := byID[userID]; ok {
			u.PostIDs = append(u.PostIDs, postID)
		}
	}
	return users, links.Err()
}

func (r *UserRepository) AppendPost(ctx context.Context, userID, postID string) error {
	if !validID(userID) {
		return domain.ErrMalformedID
	}
	if err := r.exists(ctx, userID); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `INSERT INTO user_posts (user_id, post_id) VALUES (?, ?)`, userID, postID); err != nil {
		return fmt.Errorf("append user post: %w", err)
	}
	return nil
}

func (r *UserRepository) RemovePost(ctx context.Context, userID, postID string) error {
	if !validID(userID) {
		return domain.ErrMalformedID
	}
	if err := r.exists(ctx, userID); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user_posts WHERE user_id = ? AND post_id = ?`, userID, postID); err != nil {
		return fmt.Errorf("remove user post: %w", err)
	}
	return nil
}

func (r *UserRepository) exists(ctx context.Context, userID string) error {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrUserNotFound
	}
	return err
}

func (r *UserRepository) postIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT post_id FROM user_posts WHERE user_id = ? ORDER BY seq`, userID)
	if err != nil {
		return nil, fmt.Errorf("user posts: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*domain.User, error) {
	var (
		u         domain.User
		createdAt int64
	)
	if err := s.Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash, &createdAt); err != nil {
		return nil, err
	}
	u.CreatedAt = fromMillis(createdAt)
	u.PostIDs = []string{}
	return &u, nil
}
