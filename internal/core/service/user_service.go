package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bloglist/blog-api/internal/core/domain"
	"github.com/bloglist/blog-api/internal/core/ports"
)

const passwordHashCost = 10

// UserService implements registration and the user listing.
type UserService struct {
	users ports.UserRepository
	posts ports.PostRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, posts ports.PostRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, posts: posts, log: log}
}

// Register validates input, rejects taken usernames and stores a bcrypt hash
// of the password. The repository's uniqueness constraint backs up the
// pre-check when two registrations race.
func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	username := domain.NormalizeUsername(in.Username)
	if utf8.RuneCountInString(in.Password) < domain.MinPasswordLength {
		return nil, domain.NewValidationError(fmt.Sprintf("password must be at least %d characters long and is required", domain.MinPasswordLength))
	}
	if len(in.Password) > domain.MaxPasswordBytes {
		return nil, domain.NewValidationError(fmt.Sprintf("password must not be longer than %d bytes", domain.MaxPasswordBytes))
	}
	if utf8.RuneCountInString(username) < domain.MinUsernameLength {
		return nil, domain.NewValidationError(fmt.Sprintf("username must be at least %d characters long and is required", domain.MinUsernameLength))
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), passwordHashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: string(hash),
		PostIDs:      []string{},
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

// List returns every user with their posts expanded, resolved with a single
// batched post lookup. Post ids that no longer resolve are dropped.
func (s *UserService) List(ctx context.Context) ([]ports.UserWithPosts, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, u := range users {
		ids = append(ids, u.PostIDs...)
	}

	byID := make(map[string]*domain.Post, len(ids))
	if len(ids) > 0 {
		posts, err := s.posts.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, p := range posts {
			byID[p.ID] = p
		}
	}

	out := make([]ports.UserWithPosts, 0, len(users))
	for _, u := range users {
		expanded := make([]*domain.Post, 0, len(u.PostIDs))
		for _, id := range u.PostIDs {
			if p, ok := byID[id]; ok {
				expanded = append(expanded, p)
			}
		}
		out = append(out, ports.UserWithPosts{User: u, Posts: expanded})
	}
	return out, nil
}
