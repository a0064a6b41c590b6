package middleware

import (
	"github.com/labstack/echo/v4"
)

// SecurityHeaders returns middleware that sets security-related HTTP headers
// on every response.
//
// Rondel is a widget meant to be embedded in host pages, usually via an
// iframe, so unlike a classic web app it must NOT forbid framing. The CSP
// allows any frame ancestor; everything else stays locked to same-origin.
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()

			// Content-Security-Policy: restrict what resources the browser can load.
			// 'unsafe-inline' styles are needed for the SVG theme variables.
			// The HTMX runtime loads from unpkg, hence the script-src entry.
			// frame-ancestors * permits embedding the widget from any host page.
			h.Set("Content-Security-Policy",
				"default-src 'self'; "+
					"script-src 'self' https://unpkg.com; "+
					"style-src 'self' 'unsafe-inline'; "+
					"img-src 'self' data:; "+
					"connect-src 'self'; "+
					"frame-ancestors *; "+
					"base-uri 'self'; "+
					"form-action 'self'",
			)

			// Strict-Transport-Security: TLS terminates at the reverse proxy;
			// this tells browsers to always use HTTPS for subsequent requests.
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")

			// X-Content-Type-Options: prevent MIME type sniffing. The SVG
			// responses in particular must not be re-sniffed as scripts.
			h.Set("X-Content-Type-Options", "nosniff")

			// Referrer-Policy: limit referrer information leaked to embedding pages.
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

			// Permissions-Policy: disable browser features we don't use.
			h.Set("Permissions-Policy",
				"camera=(), microphone=(), geolocation=(), payment=()",
			)

			return next(c)
		}
	}
}
