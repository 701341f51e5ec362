package auth

import (
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "inkpost/internal/errors"
	"inkpost/internal/model"
)

// userContextKey is where the authenticated user lands in the echo context.
const userContextKey = "user"

// Required returns middleware that extracts the bearer token, authenticates
// it through the gate and stores the resulting user in the request context.
func Required(gate *Gate) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: userContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return gate.Authenticate(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUnauthenticated)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	})
}

// RequireAdmin returns middleware enforcing the admin role. It must run
// after Required; the role check runs before any handler-level ownership
// logic.
func RequireAdmin(gate *Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUnauthenticated)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			if err := gate.AuthorizeRole(user, model.RoleAdmin); err != nil {
				httpErr := apperrors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user from the context, or nil on
// unauthenticated routes.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}
