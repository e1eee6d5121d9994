package middleware

import "github.com/labstack/echo/v4"

// TenantID returns the tenant id stored by JWTAuth, or "" on routes that
// are not authenticated.
func TenantID(c echo.Context) string {
	if s, ok := c.Get(ctxTenantID).(string); ok {
		return s
	}
	return ""
}

// Role returns the role claim stored by JWTAuth.
func Role(c echo.Context) string {
	s, _ := c.Get(ctxRole).(string)
	return s
}
