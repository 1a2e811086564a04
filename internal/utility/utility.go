package utility

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
)

// GetRealIP returns the client address, preferring proxy headers over the
// socket peer.
func GetRealIP(c echo.Context) string {
	// X-Forwarded-For can be a list: "client, proxy1, proxy2"
	if xff := c.Request().Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	if xri := c.Request().Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return c.RealIP()
}

// GetUserIDFromContext safely retrieves the authenticated user id from the
// echo context.
func GetUserIDFromContext(c echo.Context) (string, error) {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user ID not found in context")
	}
	return userID, nil
}

// ResolveUserID picks the user a request acts on: the authenticated user when
// a token was presented, otherwise the id supplied by the client.
func ResolveUserID(c echo.Context, supplied string) string {
	if id, err := GetUserIDFromContext(c); err == nil {
		return id
	}
	return supplied
}
