package ports

import (
	"context"

	"github.com/bloglist/blog-api/internal/core/domain"
)

// CreatePostInput carries the data needed to create a post. Likes is nil when
// the client omitted it.
type CreatePostInput struct {
	Title   string
	Content string
	Author  string
	URL     string
	Likes   *int
	// IdempotencyKey is optional; empty disables replay detection.
	IdempotencyKey string
}

// CreatePostResult is returned by CreatePost.
type CreatePostResult struct {
	Post *domain.Post
	// Replayed is true when the Idempotency-Key matched an earlier creation.
	Replayed bool
}

// PostService defines use-case operations for blog posts. The actor on
// mutating calls is the authenticated user.
type PostService interface {
	ListPosts(ctx context.Context) ([]*domain.Post, error)
	GetPost(ctx context.Context, id string) (*domain.Post, error)
	CreatePost(ctx context.Context, actor *domain.User, input CreatePostInput) (*CreatePostResult, error)
	UpdateLikes(ctx context.Context, actor *domain.User, id string, likes int) (*domain.Post, error)
	DeletePost(ctx context.Context, actor *domain.User, id string) error
}
