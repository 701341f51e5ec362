package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"inkpost/internal/service"
)

// AdminHandler handles admin moderation endpoints. The admin role check
// happens in the route middleware before any of these run.
type AdminHandler struct {
	userService service.UserService
	postService service.PostService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(userService service.UserService, postService service.PostService) *AdminHandler {
	return &AdminHandler{userService: userService, postService: postService}
}

// ListUsers godoc
// @Summary List all users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Search term (name or email)"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	params := listParams(c)
	users, pagination, err := h.userService.List(c.Request().Context(), params)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"users":      users,
		"pagination": pagination,
	})
}

// ListPosts godoc
// @Summary List all posts, inactive included
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Search term"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/posts [get]
func (h *AdminHandler) ListPosts(c echo.Context) error {
	params := listParams(c)
	posts, pagination, err := h.postService.ListAll(c.Request().Context(), params)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"posts":      posts,
		"pagination": pagination,
	})
}

// TogglePost godoc
// @Summary Flip a post's active flag
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/posts/{id}/toggle [patch]
func (h *AdminHandler) TogglePost(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return err
	}

	post, err := h.postService.AdminToggleActive(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}

	message := "post deactivated successfully"
	if post.IsActive {
		message = "post activated successfully"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": message,
		"post":    post,
	})
}

// DeletePost godoc
// @Summary Delete any post, bypassing ownership
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/posts/{id} [delete]
func (h *AdminHandler) DeletePost(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return err
	}

	if err := h.postService.AdminDelete(c.Request().Context(), id); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "post deleted successfully",
	})
}
