package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bloglist/blog-api/internal/core/domain"
	"github.com/bloglist/blog-api/internal/core/ports"
)

type PostService struct {
	posts  ports.PostRepository
	users  ports.UserRepository
	idem   ports.IdempotencyStore
	logger zerolog.Logger
}

// NewPostService builds a PostService. idem may be nil, which disables
// Idempotency-Key handling.
func NewPostService(posts ports.PostRepository, users ports.UserRepository, idem ports.IdempotencyStore, logger zerolog.Logger) *PostService {
	return &PostService{posts: posts, users: users, idem: idem, logger: logger}
}

// AuthorizeOwner fails with domain.ErrForbidden unless user owns post.
func AuthorizeOwner(post *domain.Post, user *domain.User) error {
	if user == nil || !post.IsOwnedBy(user.ID) {
		return domain.ErrForbidden
	}
	return nil
}

func (s *PostService) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	return s.posts.List(ctx)
}

func (s *PostService) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	return s.posts.FindByID(ctx, id)
}

// CreatePost stores a post owned by actor and links it into the actor's post
// list. The two writes are not atomic: if linking fails the post exists
// without a back-reference, which is logged and surfaced as an error.
func (s *PostService) CreatePost(ctx context.Context, actor *domain.User, in ports.CreatePostInput) (*ports.CreatePostResult, error) {
	if actor == nil {
		return nil, domain.ErrMissingToken
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.NewValidationError("title is required")
	}
	likes := 0
	if in.Likes != nil {
		likes = *in.Likes
	}
	if likes < 0 {
		return nil, domain.NewValidationError("likes must not be negative")
	}

	if existing := s.replay(ctx, actor.ID, in.IdempotencyKey); existing != nil {
		return &ports.CreatePostResult{Post: existing, Replayed: true}, nil
	}

	author := strings.TrimSpace(in.Author)
	if author == "" {
		author = domain.DefaultAuthor
	}

	post, err := s.posts.Create(ctx, &domain.Post{
		Title:     title,
		Content:   in.Content,
		Author:    author,
		URL:       in.URL,
		Likes:     likes,
		UserID:    actor.ID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if err := s.users.AppendPost(ctx, actor.ID, post.ID); err != nil {
		s.logger.Error().Err(err).
			Str("post_id", post.ID).
			Str("user_id", actor.ID).
			Msg("post stored but not linked to its owner")
		return nil, fmt.Errorf("link post to user: %w", err)
	}

	if in.IdempotencyKey != "" && s.idem != nil {
		if err := s.idem.Remember(ctx, actor.ID, in.IdempotencyKey, post.ID); err != nil {
			s.logger.Warn().Err(err).Str("post_id", post.ID).Msg("failed to store idempotency key")
		}
	}

	s.logger.Info().Str("post_id", post.ID).Str("user_id", actor.ID).Msg("post created")
	return &ports.CreatePostResult{Post: post}, nil
}

// replay returns the post an earlier request with the same key created, or
// nil when there is none. Lookup failures are logged and treated as a miss.
func (s *PostService) replay(ctx context.Context, userID, key string) *domain.Post {
	if key == "" || s.idem == nil {
		return nil
	}

	postID, found, err := s.idem.Lookup(ctx, userID, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("idempotency lookup failed, creating anyway")
		return nil
	}
	if !found {
		return nil
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		// The post may have been deleted since; fall through to a fresh create.
		return nil
	}
	s.logger.Info().Str("post_id", postID).Str("user_id", userID).Msg("idempotent replay")
	return post
}

// UpdateLikes sets the like count of a post. Any authenticated user may like.
func (s *PostService) UpdateLikes(ctx context.Context, actor *domain.User, id string, likes int) (*domain.Post, error) {
	if actor == nil {
		return nil, domain.ErrMissingToken
	}
	if likes < 0 {
		return nil, domain.NewValidationError("likes must not be negative")
	}
	return s.posts.UpdateLikes(ctx, id, likes)
}

// DeletePost removes a post owned by actor and unlinks it from the actor's
// post list. An unlink failure is only logged; the listing skips dangling ids.
func (s *PostService) DeletePost(ctx context.Context, actor *domain.User, id string) error {
	if actor == nil {
		return domain.ErrMissingToken
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := AuthorizeOwner(post, actor); err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, post.ID); err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return err
		}
		return fmt.Errorf("delete post: %w", err)
	}

	if err := s.users.RemovePost(ctx, actor.ID, post.ID); err != nil {
		s.logger.Warn().Err(err).
			Str("post_id", post.ID).
			Str("user_id", actor.ID).
			Msg("post deleted but still listed on its owner")
	}

	s.logger.Info().Str("post_id", post.ID).Str("user_id", actor.ID).Msg("post deleted")
	return nil
}
