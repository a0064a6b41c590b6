package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// clientCookieName is the cookie that identifies a widget client. It is
// not an authenticated identity, only a stable handle for picker state and
// preferences.
const clientCookieName = "rondel_client"

// clientIDLength is the number of random bytes in a client ID (16 bytes = 32 hex chars).
const clientIDLength = 16

// clientCookieTTL matches the preference TTL so the identity and the data
// keyed on it expire together.
const clientCookieTTL = 180 * 24 * time.Hour

// contextKeyClientID is the Echo context key the resolved ID is stored under.
const contextKeyClientID = "client_id"

// EnsureClientID returns middleware that guarantees every request carries a
// client ID: it reads the rondel_client cookie, minting and setting one
// when absent, and stores the value in the Echo context for handlers.
func EnsureClientID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			cookie, err := req.Cookie(clientCookieName)
			if err == nil && cookie.Value != "" {
				c.Set(contextKeyClientID, cookie.Value)
				return next(c)
			}

			id, err := generateClientID()
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "failed to generate client ID")
			}

			c.SetCookie(&http.Cookie{
				Name:     clientCookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   int(clientCookieTTL.Seconds()),
				HttpOnly: true,
				Secure:   req.TLS != nil || req.Header.Get("X-Forwarded-Proto") == "https",
				// None would be needed for cross-site iframes over HTTP, but
				// None requires Secure, so Lax is the safe default here.
				SameSite: http.SameSiteLaxMode,
			})
			c.Set(contextKeyClientID, id)

			return next(c)
		}
	}
}

// ClientID returns the client ID resolved by EnsureClientID, or "" when
// the middleware did not run for this route.
func ClientID(c echo.Context) string {
	if id, ok := c.Get(contextKeyClientID).(string); ok {
		return id
	}
	return ""
}

// generateClientID generates a cryptographically random hex-encoded ID.
func generateClientID() (string, error) {
	b := make([]byte, clientIDLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
