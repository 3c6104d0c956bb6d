package ports

import (
	"context"

	"github.com/bloglist/blog-api/internal/core/domain"
)

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	// Verify returns domain.ErrInvalidToken for every failure mode.
	Verify(token string) (*domain.Identity, error)
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token    string
	Username string
	Name     string
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// Authenticate resolves the acting user from a raw bearer token.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// RegisterInput carries the fields accepted on user registration.
type RegisterInput struct {
	Username string
	Name     string
	Password string
}

// UserWithPosts is a user with its post list expanded.
type UserWithPosts struct {
	User  *domain.User
	Posts []*domain.Post
}

type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	List(ctx context.Context) ([]UserWithPosts, error)
}
