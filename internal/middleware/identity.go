package middleware

// identity.go defines helper functions shared across middleware files.
// currentUserID pulls the opaque owner id that JWTAuth stored in the
// Echo context; rate-limit keys fall back to "anon" for requests that
// never passed authentication (e.g. the health check).

import (
    "github.com/labstack/echo/v4"
)

// currentUserID returns the authenticated caller's id from context, or
// "anon" when the request carries no verified identity.
func currentUserID(c echo.Context) string {
    if v := c.Get("user_id"); v != nil {
        if s, ok := v.(string); ok && s != "" {
            return s
        }
    }
    return "anon"
}
