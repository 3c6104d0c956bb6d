package ports

import (
	"context"

	"github.com/bloglist/blog-api/internal/core/domain"
)

// UserRepository defines persistence for user credentials and post ownership.
//
// FindByID returns domain.ErrMalformedID when id is not in the store's id
// format and domain.ErrUserNotFound when it resolves to nothing.
type UserRepository interface {
	// Create inserts a user and returns it with its assigned ID.
	// Returns domain.ErrUsernameTaken when the username already exists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// AppendPost adds postID to the end of the user's post list.
	AppendPost(ctx context.Context, userID, postID string) error
	// RemovePost drops postID from the user's post list. Missing ids are ignored.
	RemovePost(ctx context.Context, userID, postID string) error
}
