package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/bloglist/blog-api/internal/api/middleware"
	"github.com/bloglist/blog-api/internal/core/domain"
	"github.com/bloglist/blog-api/internal/core/ports"
)

type stubPostService struct {
	listFn   func(ctx context.Context) ([]*domain.Post, error)
	getFn    func(ctx context.Context, id string) (*domain.Post, error)
	createFn func(ctx context.Context, actor *domain.User, input ports.CreatePostInput) (*ports.CreatePostResult, error)
	likesFn  func(ctx context.Context, actor *domain.User, id string, likes int) (*domain.Post, error)
	deleteFn func(ctx context.Context, actor *domain.User, id string) error
}

func (s *stubPostService) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	return s.listFn(ctx)
}

func (s *stubPostService) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	return s.getFn(ctx, id)
}

func (s *stubPostService) CreatePost(ctx context.Context, actor *domain.User, input ports.CreatePostInput) (*ports.CreatePostResult, error) {
	return s.createFn(ctx, actor, input)
}

func (s *stubPostService) UpdateLikes(ctx context.Context, actor *domain.User, id string, likes int) (*domain.Post, error) {
	return s.likesFn(ctx, actor, id, likes)
}

func (s *stubPostService) DeletePost(ctx context.Context, actor *domain.User, id string) error {
	return s.deleteFn(ctx, actor, id)
}

var alice = &domain.User{ID: "u1", Username: "alice", Name: "Alice"}

func newTestContext(method, target, body string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(middleware.ContextKeyUser, user)
	}
	return c, rec
}

func TestBlogHandler_Create_Success(t *testing.T) {
	stub := &stubPostService{
		createFn: func(ctx context.Context, actor *domain.User, input ports.CreatePostInput) (*ports.CreatePostResult, error) {
			if actor != alice {
				t.Fatalf("unexpected actor: %+v", actor)
			}
			if input.Title != "Go" || input.URL != "https://go.dev" || input.Likes != nil {
				t.Fatalf("unexpected input: %+v", input)
			}
			if input.IdempotencyKey != "retry-1" {
				t.Fatalf("idempotency key not forwarded: %q", input.IdempotencyKey)
			}
			return &ports.CreatePostResult{Post: &domain.Post{
				ID: "p1", Title: input.Title, Author: domain.DefaultAuthor, URL: input.URL, UserID: actor.ID,
			}}, nil
		},
	}
	h := NewBlogHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/api/blogs", `{"title":"Go","url":"https://go.dev"}`, alice)
	c.Request().Header.Set(HeaderIdempotencyKey, " retry-1 ")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "p1" || resp["user"] != "u1" || resp["likes"] != float64(0) {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, ok := resp["_id"]; ok {
		t.Fatalf("internal id field leaked: %+v", resp)
	}
}

func TestBlogHandler_Create_RequiresUser(t *testing.T) {
	stub := &stubPostService{
		createFn: func(ctx context.Context, actor *domain.User, input ports.CreatePostInput) (*ports.CreatePostResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewBlogHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/api/blogs", `{"title":"Go"}`, nil)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestBlogHandler_Create_RejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing title", `{"url":"https://go.dev"}`},
		{"negative likes", `{"title":"Go","likes":-1}`},
		{"malformed json", `{"title":`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubPostService{
				createFn: func(ctx context.Context, actor *domain.User, input ports.CreatePostInput) (*ports.CreatePostResult, error) {
					t.Fatalf("should not be called")
					return nil, nil
				},
			}
			h := NewBlogHandler(stub)
			c, _ := newTestContext(http.MethodPost, "/api/blogs", tc.body, alice)

			err := h.Create(c)
			var he *echo.HTTPError
			if errors.As(err, &he) {
				if he.Code != http.StatusBadRequest {
					t.Fatalf("expected 400, got %d", he.Code)
				}
				return
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestBlogHandler_Create_ForwardsServiceErrors(t *testing.T) {
	stub := &stubPostService{
		createFn: func(ctx context.Context, actor *domain.User, input ports.CreatePostInput) (*ports.CreatePostResult, error) {
			return nil, domain.NewValidationError("title is required")
		},
	}
	h := NewBlogHandler(stub)
	c, rec := newTestContext(http.MethodPost, "/api/blogs", `{"title":"  "}`, alice)

	if err := h.Create(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("handler must not write on error: %s", rec.Body.String())
	}
}

func TestBlogHandler_ListAndGet(t *testing.T) {
	posts := []*domain.Post{
		{ID: "p1", Title: "first", Author: "A", Likes: 1, UserID: "u1"},
		{ID: "p2", Title: "second", Author: "B", Likes: 2},
	}
	stub := &stubPostService{
		listFn: func(ctx context.Context) ([]*domain.Post, error) { return posts, nil },
		getFn: func(ctx context.Context, id string) (*domain.Post, error) {
			if id == "p2" {
				return posts[1], nil
			}
			return nil, domain.ErrPostNotFound
		},
	}
	h := NewBlogHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/api/blogs", "", nil)
	if err := h.List(c); err != nil {
		t.Fatalf("list error: %v", err)
	}
	var list []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(list) != 2 || list[0]["id"] != "p1" || list[1]["id"] != "p2" {
		t.Fatalf("unexpected list: %+v", list)
	}
	if _, ok := list[1]["user"]; ok {
		t.Fatalf("unowned post must omit user: %+v", list[1])
	}

	c, rec = newTestContext(http.MethodGet, "/api/blogs/p2", "", nil)
	c.SetParamNames("id")
	c.SetParamValues("p2")
	if err := h.Get(c); err != nil {
		t.Fatalf("get error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newTestContext(http.MethodGet, "/api/blogs/p9", "", nil)
	c.SetParamNames("id")
	c.SetParamValues("p9")
	if err := h.Get(c); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBlogHandler_UpdateLikes(t *testing.T) {
	stub := &stubPostService{
		likesFn: func(ctx context.Context, actor *domain.User, id string, likes int) (*domain.Post, error) {
			if id != "p1" || likes != 7 {
				t.Fatalf("unexpected args: %s %d", id, likes)
			}
			return &domain.Post{ID: id, Title: "Go", Likes: likes}, nil
		},
	}
	h := NewBlogHandler(stub)

	c, rec := newTestContext(http.MethodPut, "/api/blogs/p1", `{"likes":7}`, alice)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	if err := h.UpdateLikes(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newTestContext(http.MethodPut, "/api/blogs/p1", `{}`, alice)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	if err := h.UpdateLikes(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for missing likes, got %v", err)
	}
}

func TestBlogHandler_UpdateLikes_ZeroIsAccepted(t *testing.T) {
	stub := &stubPostService{
		likesFn: func(ctx context.Context, actor *domain.User, id string, likes int) (*domain.Post, error) {
			return &domain.Post{ID: id, Likes: likes}, nil
		},
	}
	h := NewBlogHandler(stub)

	c, rec := newTestContext(http.MethodPut, "/api/blogs/p1", `{"likes":0}`, alice)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	if err := h.UpdateLikes(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestBlogHandler_Delete(t *testing.T) {
	stub := &stubPostService{
		deleteFn: func(ctx context.Context, actor *domain.User, id string) error {
			if actor.ID != "u1" {
				return domain.ErrForbidden
			}
			return nil
		},
	}
	h := NewBlogHandler(stub)

	c, rec := newTestContext(http.MethodDelete, "/api/blogs/p1", "", alice)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	bob := &domain.User{ID: "u2", Username: "bob"}
	c, _ = newTestContext(http.MethodDelete, "/api/blogs/p1", "", bob)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	if err := h.Delete(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
