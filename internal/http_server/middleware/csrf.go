package middleware

import (
	"net/http"

	. "github.com/flybg-dev/flyingsites/internal/interfaces/service"
	"github.com/labstack/echo/v4"
)

const RequestedWithHeader = "X-Requested-With"

// CsrfHeaderMiddleware rejects state-changing requests that do not carry
// the X-Requested-With header. Browsers never attach custom headers to
// cross-origin form submissions, which is the whole protection.
func CsrfHeaderMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch c.Request().Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}
			if c.Request().Header.Get(RequestedWithHeader) == "" {
				return NewErrorResponse(c, &ErrCsrfHeader)
			}
			return next(c)
		}
	}
}
