package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"inkpost/internal/auth"
	"inkpost/internal/service"
)

// UserHandler handles the caller's own dashboard endpoints.
type UserHandler struct {
	postService service.PostService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(postService service.PostService) *UserHandler {
	return &UserHandler{postService: postService}
}

// Stats godoc
// @Summary Post counts for the authenticated user
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/stats [get]
func (h *UserHandler) Stats(c echo.Context) error {
	user := auth.CurrentUser(c)
	stats, err := h.postService.Stats(c.Request().Context(), user.ID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"stats":   stats,
	})
}

// MyPosts godoc
// @Summary List the authenticated user's posts
// @Tags user
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Search term"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/my-posts [get]
func (h *UserHandler) MyPosts(c echo.Context) error {
	user := auth.CurrentUser(c)
	params := listParams(c)
	posts, pagination, err := h.postService.ListByAuthor(c.Request().Context(), user.ID, params)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"posts":      posts,
		"pagination": pagination,
	})
}
