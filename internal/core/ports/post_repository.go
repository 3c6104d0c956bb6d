package ports

import (
	"context"

	"github.com/bloglist/blog-api/internal/core/domain"
)

// PostRepository defines persistence operations for blog posts.
// Lookups by id return domain.ErrMalformedID for ids the store could never
// have issued and domain.ErrPostNotFound for well-formed ids with no record.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// FindByIDs returns the posts that exist among ids, in no particular order.
	// Malformed ids are skipped.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Post, error)
	// List returns every post in insertion order.
	List(ctx context.Context) ([]*domain.Post, error)
	UpdateLikes(ctx context.Context, id string, likes int) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
}

// IdempotencyStore remembers which post a client-supplied Idempotency-Key
// produced, scoped per user.
type IdempotencyStore interface {
	Lookup(ctx context.Context, userID, key string) (postID string, found bool, err error)
	Remember(ctx context.Context, userID, key, postID string) error
}
