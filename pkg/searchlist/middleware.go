package searchlist

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	sessionCookieName = "session_id"
	sessionContextKey = "session_id"
)

// EnsureSession assigns a session cookie to requests that don't carry one
// and exposes the session id on the echo context.
func EnsureSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				cookie = &http.Cookie{
					Name:     sessionCookieName,
					Value:    uuid.NewString(),
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				}
				c.SetCookie(cookie)
			}
			c.Set(sessionContextKey, cookie.Value)
			return next(c)
		}
	}
}

// SessionID returns the session id set by EnsureSession.
func SessionID(c echo.Context) string {
	id, _ := c.Get(sessionContextKey).(string)
	return id
}
