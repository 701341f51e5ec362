package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"inkpost/internal/auth"
	apperrors "inkpost/internal/errors"
	"inkpost/internal/model"
	"inkpost/internal/service"
	"inkpost/internal/storage"
)

// PostHandler handles post CRUD endpoints.
type PostHandler struct {
	postService service.PostService
	images      storage.ImageStore
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService, images storage.ImageStore) *PostHandler {
	return &PostHandler{postService: postService, images: images}
}

// CreatePostRequest represents a post creation request.
type CreatePostRequest struct {
	Title       string `json:"title" form:"title" validate:"required,min=3"`
	Description string `json:"description" form:"description" validate:"required,min=10"`
}

// UpdatePostRequest carries the optional fields of a post update.
type UpdatePostRequest struct {
	Title       *string `json:"title" form:"title" validate:"omitempty,min=3"`
	Description *string `json:"description" form:"description" validate:"omitempty,min=10"`
}

// PostResponse wraps a single post.
type PostResponse struct {
	Success bool        `json:"success"`
	Post    *model.Post `json:"post"`
}

// List godoc
// @Summary List active posts
// @Description Paginated, searchable public listing. A limit of 1000 or more
// @Description switches to the aggregation view that includes inactive posts.
// @Tags posts
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Search term"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} errors.ErrorResponse
// @Router /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	params := listParams(c)
	posts, pagination, err := h.postService.List(c.Request().Context(), params)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"posts":      posts,
		"pagination": pagination,
	})
}

// Get godoc
// @Summary Get a post by id
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} PostResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return err
	}
	post, err := h.postService.Get(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, PostResponse{Success: true, Post: post})
}

// Create godoc
// @Summary Create a post
// @Tags posts
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param image formData file false "Image attachment"
// @Success 201 {object} PostResponse
// @Failure 400 {object} errors.ValidationResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	var req CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	image, err := h.saveImage(c)
	if err != nil {
		return err
	}

	user := auth.CurrentUser(c)
	post, err := h.postService.Create(c.Request().Context(), user.ID, req.Title, req.Description, image)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, PostResponse{Success: true, Post: post})
}

// Update godoc
// @Summary Update a post
// @Description Only the author or an admin may update; only provided fields
// @Description change.
// @Tags posts
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} PostResponse
// @Failure 400 {object} errors.ValidationResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return err
	}

	var req UpdatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	image, err := h.saveImage(c)
	if err != nil {
		return err
	}

	patch := model.PostPatch{
		Title:       req.Title,
		Description: req.Description,
		Image:       image,
	}

	user := auth.CurrentUser(c)
	post, err := h.postService.Update(c.Request().Context(), id, user, patch)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, PostResponse{Success: true, Post: post})
}

// Delete godoc
// @Summary Delete a post
// @Description Only the author or an admin may delete.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return err
	}

	user := auth.CurrentUser(c)
	if err := h.postService.Delete(c.Request().Context(), id, user); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "post deleted successfully",
	})
}

// saveImage stores an optional multipart image attachment and returns the
// stored filename, or nil when no file was sent.
func (h *PostHandler) saveImage(c echo.Context) (*string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		// no multipart body or no image part
		return nil, nil
	}

	name, err := h.images.Save(fh)
	if err != nil {
		if errors.Is(err, storage.ErrFileTooLarge) || errors.Is(err, storage.ErrUnsupportedType) {
			return nil, echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
				Error: err.Error(),
				Code:  "INVALID_IMAGE",
			})
		}
		return nil, domainError(err)
	}
	return &name, nil
}

func postID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid post id",
			Code:  "INVALID_ID",
		})
	}
	return id, nil
}
