package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bloglist/internal/api/dto"
	"github.com/spec-kit/bloglist/internal/auth"
	"github.com/spec-kit/bloglist/internal/service"
	apperrors "github.com/spec-kit/bloglist/pkg/util"
)

// BlogsHandler exposes blog post endpoints.
type BlogsHandler struct {
	blogs *service.BlogService
}

// NewBlogsHandler constructs handler.
func NewBlogsHandler(blogs *service.BlogService) *BlogsHandler {
	return &BlogsHandler{blogs: blogs}
}

// List handles GET /api/blogs.
func (h *BlogsHandler) List(c *fiber.Ctx) error {
	blogs, err := h.blogs.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(blogs)
}

// Get handles GET /api/blogs/:id.
func (h *BlogsHandler) Get(c *fiber.Ctx) error {
	blog, err := h.blogs.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(blog)
}

// Create handles POST /api/blogs. Requires ResolveUser.
func (h *BlogsHandler) Create(c *fiber.Ctx) error {
	owner, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewInvalidToken(nil)
	}

	var req dto.CreateBlogRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	blog, err := h.blogs.Create(c.UserContext(), owner, service.BlogCreateInput{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Likes:  req.Likes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(blog)
}

// Update handles PUT /api/blogs/:id. Responds 201 with the stored post.
func (h *BlogsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateBlogRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	blog, err := h.blogs.Update(c.UserContext(), c.Params("id"), service.BlogUpdateInput{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Likes:  req.Likes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(blog)
}

// Delete handles DELETE /api/blogs/:id. Requires ResolveUser.
func (h *BlogsHandler) Delete(c *fiber.Ctx) error {
	caller, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewInvalidToken(nil)
	}
	if err := h.blogs.Delete(c.UserContext(), caller, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
