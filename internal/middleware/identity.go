package middleware

// subject returns the authenticated caller, or "anon" when the request
// carries no admin token.  Read routes are public, so most traffic is anon.

import "github.com/labstack/echo/v4"

func subject(c echo.Context) string {
	if s, ok := c.Get(CtxSubject).(string); ok && s != "" {
		return s
	}
	return "anon"
}
