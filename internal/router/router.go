package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"inkpost/internal/auth"
	"inkpost/internal/config"
	"inkpost/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	gate *auth.Gate,
	authHandler *handler.AuthHandler,
	postHandler *handler.PostHandler,
	userHandler *handler.UserHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.Static("/uploads", cfg.UploadDir)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/posts", postHandler.List)

	// Authenticated routes: token verification, user load and active check
	// run before any handler.
	secured := api.Group("", auth.Required(gate))

	secured.POST("/auth/logout", authHandler.Logout)

	secured.GET("/posts/:id", postHandler.Get)
	secured.POST("/posts", postHandler.Create)
	secured.PUT("/posts/:id", postHandler.Update)
	secured.DELETE("/posts/:id", postHandler.Delete)

	secured.GET("/user/stats", userHandler.Stats)
	secured.GET("/user/my-posts", userHandler.MyPosts)

	// Admin routes: role check runs after authentication, before handlers.
	admin := secured.Group("/admin", auth.RequireAdmin(gate))
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/posts", adminHandler.ListPosts)
	admin.PATCH("/posts/:id/toggle", adminHandler.TogglePost)
	admin.DELETE("/posts/:id", adminHandler.DeletePost)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
