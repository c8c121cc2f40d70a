package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDHeader is the header carrying the request id.
const RequestIDHeader = echo.HeaderXRequestID

// RequestID returns middleware that assigns each request a uuid, honoring
// an inbound X-Request-ID so ids survive proxies. The id is placed in the
// echo context (for the logger) and echoed on the response header (so run
// audit rows can be correlated with client logs).
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Set("request_id", rid)
			c.Response().Header().Set(echo.HeaderXRequestID, rid)
			return next(c)
		}
	}
}
