package middleware

import (
	"github.com/flybg-dev/flyingsites/internal/interfaces/operation"
	. "github.com/flybg-dev/flyingsites/internal/interfaces/service"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// ActiveUserMiddleware re-fetches the session user on every authenticated
// request. A deactivated account loses access immediately, regardless of
// how long its token would otherwise stay valid. The fresh admin flag from
// the database overrides whatever the token claims.
func ActiveUserMiddleware(userOperation operation.UserOperationInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return NewErrorResponse(c, &ErrInvalidOrExpiredJwt)
			}
			claims, ok := token.Claims.(*Claims)
			if !ok {
				return NewErrorResponse(c, &ErrInvalidOrExpiredJwt)
			}

			user, err := userOperation.GetUserByUid(claims.Uid)
			if err != nil || !user.IsActive {
				return NewErrorResponse(c, &ErrInvalidOrExpiredJwt)
			}

			claims.IsActive = user.IsActive
			claims.IsSuperAdmin = user.IsSuperAdmin
			claims.Username = user.Username
			return next(c)
		}
	}
}
