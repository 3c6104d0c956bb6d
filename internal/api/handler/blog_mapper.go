package handler

import (
	"strings"

	"github.com/bloglist/blog-api/internal/core/domain"
	"github.com/bloglist/blog-api/internal/core/ports"
)

// toCreatePostInput converts the HTTP request into the service DTO.
func toCreatePostInput(req createBlogRequest, idempotencyKey string) ports.CreatePostInput {
	return ports.CreatePostInput{
		Title:          req.Title,
		Content:        req.Content,
		Author:         req.Author,
		URL:            req.URL,
		Likes:          req.Likes,
		IdempotencyKey: strings.TrimSpace(idempotencyKey),
	}
}

func toBlogResponse(p *domain.Post) blogResponse {
	return blogResponse{
		ID:      p.ID,
		Title:   p.Title,
		Content: p.Content,
		Author:  p.Author,
		URL:     p.URL,
		Likes:   p.Likes,
		User:    p.UserID,
	}
}

func toBlogResponses(posts []*domain.Post) []blogResponse {
	out := make([]blogResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toBlogResponse(p))
	}
	return out
}

// toUserResponse never exposes the password hash.
func toUserResponse(u *domain.User, posts []*domain.Post) userResponse {
	blogs := make([]blogSummaryResponse, 0, len(posts))
	for _, p := range posts {
		blogs = append(blogs, blogSummaryResponse{
			ID:     p.ID,
			Title:  p.Title,
			Author: p.Author,
			URL:    p.URL,
			Likes:  p.Likes,
		})
	}
	return userResponse{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Blogs:    blogs,
	}
}
