package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/bloglist/blog-api/internal/api/metrics"
	"github.com/bloglist/blog-api/internal/core/domain"
	"github.com/bloglist/blog-api/internal/core/ports"
)

// HeaderIdempotencyKey lets clients retry POST /api/blogs safely.
const HeaderIdempotencyKey = "Idempotency-Key"

// BlogHandler handles HTTP requests for blog posts.
type BlogHandler struct {
	service ports.PostService
}

func NewBlogHandler(service ports.PostService) *BlogHandler {
	return &BlogHandler{service: service}
}

// List handles GET /api/blogs.
//
// @Summary      List blog posts
// @Tags         blogs
// @Produce      json
// @Success      200  {array}   blogResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/blogs [get]
func (h *BlogHandler) List(c echo.Context) error {
	posts, err := h.service.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBlogResponses(posts))
}

// Get handles GET /api/blogs/:id.
//
// @Summary      Get a blog post
// @Tags         blogs
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  blogResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/blogs/{id} [get]
func (h *BlogHandler) Get(c echo.Context) error {
	post, err := h.service.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBlogResponse(post))
}

// Create handles POST /api/blogs. The new post is owned by the caller.
//
// @Summary      Create a blog post
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string             false  "Client retry key"
// @Param        body             body      createBlogRequest  true   "Post fields"
// @Success      201              {object}  blogResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /api/blogs [post]
func (h *BlogHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	key := c.Request().Header.Get(HeaderIdempotencyKey)
	result, err := h.service.CreatePost(c.Request().Context(), user, toCreatePostInput(req, key))
	if err != nil {
		return err
	}

	metrics.PostsCreatedTotal.WithLabelValues(strconv.FormatBool(result.Replayed)).Inc()
	return c.JSON(http.StatusCreated, toBlogResponse(result.Post))
}

// UpdateLikes handles PUT /api/blogs/:id. Any authenticated user may like a post.
//
// @Summary      Set the like count of a blog post
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Post id"
// @Param        body  body      updateLikesRequest  true  "New like count"
// @Success      200   {object}  blogResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/blogs/{id} [put]
func (h *BlogHandler) UpdateLikes(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateLikesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.service.UpdateLikes(c.Request().Context(), user, c.Param("id"), *req.Likes)
	if err != nil {
		return err
	}

	metrics.LikesUpdatedTotal.Inc()
	return c.JSON(http.StatusOK, toBlogResponse(post))
}

// Delete handles DELETE /api/blogs/:id. Only the owner may delete.
//
// @Summary      Delete a blog post
// @Tags         blogs
// @Security     BearerAuth
// @Param        id   path  string  true  "Post id"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/blogs/{id} [delete]
func (h *BlogHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.service.DeletePost(c.Request().Context(), user, c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			metrics.AuthRejectionsTotal.WithLabelValues("forbidden").Inc()
		}
		return err
	}

	metrics.PostsDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}
