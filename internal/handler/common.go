package handler // handler defines http handlers

import (
    "errors"  // errors provides the sentinel used in getUserID
    "time"    // time parses the day query parameter

    "github.com/labstack/echo/v4" // echo defines request context types
)

// dayLayout is the wire format for booked-for days, query params and
// request bodies alike.
const dayLayout = "2006-01-02"

// getUserID extracts the opaque owner id that the JWT middleware stored
// in the echo.Context.  Reservations are keyed by this string.
func getUserID(c echo.Context) (string, error) {
    if s, ok := c.Get("user_id").(string); ok && s != "" {
        return s, nil
    }
    return "", errors.New("missing user_id in context")
}

// dayParam parses the "date" query parameter, defaulting to today (UTC)
// when absent.  The boolean result is false for a malformed value.
func dayParam(c echo.Context) (time.Time, bool) {
    raw := c.QueryParam("date")
    if raw == "" {
        now := time.Now().UTC()
        return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), true
    }
    d, err := time.Parse(dayLayout, raw)
    if err != nil {
        return time.Time{}, false
    }
    return d, true
}
