package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"jobbridge-backend/internal/delivery/http/response"

	"github.com/gin-gonic/gin"
)

const (
	// CSRFTokenCookieName is the name of the cookie that stores the CSRF token
	CSRFTokenCookieName = "csrf_token"
	// CSRFTokenHeaderName is the name of the header that must contain the CSRF token
	CSRFTokenHeaderName = "X-CSRF-Token"
	// CSRFTokenLength is the length of the generated token in bytes (32 bytes = 64 hex chars)
	CSRFTokenLength = 32
	// CSRFTokenExpiry is how long the token is valid
	CSRFTokenExpiry = 24 * time.Hour
)

// generateCSRFToken creates a cryptographically secure random token
func generateCSRFToken() (string, error) {
	bytes := make([]byte, CSRFTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// CSRFMiddleware implements the Double-Submit Cookie pattern.
//
// On any request, if no csrf_token cookie exists one is generated and set. For
// state-changing requests (POST, PUT, DELETE, PATCH) the X-CSRF-Token header
// must match the cookie. Attackers cannot read the cookie cross-origin, so
// they cannot forge the header.
//
// The public consent endpoint is exempt: guardians arrive from a mail link
// without any prior session; it is guarded by its own token and rate limit.
func CSRFMiddleware() gin.HandlerFunc {
	csrfExemptPaths := map[string]bool{
		"/v1/health": true,
	}
	csrfExemptPrefixes := []string{
		"/v1/consent",
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path

		exempt := csrfExemptPaths[path]
		for _, prefix := range csrfExemptPrefixes {
			if strings.HasPrefix(path, prefix) {
				exempt = true
				break
			}
		}
		if exempt {
			// Still set the cookie for future requests, but don't validate
			csrfCookie, err := c.Cookie(CSRFTokenCookieName)
			if err != nil || csrfCookie == "" {
				newToken, _ := generateCSRFToken()
				if newToken != "" {
					c.SetSameSite(http.SameSiteLaxMode)
					c.SetCookie(CSRFTokenCookieName, newToken, int(CSRFTokenExpiry.Seconds()), "/", "", true, false)
				}
			}
			c.Next()
			return
		}

		csrfCookie, err := c.Cookie(CSRFTokenCookieName)

		if err != nil || csrfCookie == "" {
			newToken, err := generateCSRFToken()
			if err != nil {
				response.Error(c, http.StatusInternalServerError, "Sicherheitstoken konnte nicht erzeugt werden", nil)
				c.Abort()
				return
			}

			// SameSite=Lax: sent on top-level navigations, not on cross-site
			// subrequests. HttpOnly=false so the frontend can read it.
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CSRFTokenCookieName, newToken, int(CSRFTokenExpiry.Seconds()), "/", "", true, false)
			csrfCookie = newToken
		}

		method := c.Request.Method
		if method == "GET" || method == "HEAD" || method == "OPTIONS" {
			c.Next()
			return
		}

		headerToken := c.GetHeader(CSRFTokenHeaderName)

		if headerToken == "" {
			response.Error(c, http.StatusForbidden, "CSRF-Token fehlt", nil)
			c.Abort()
			return
		}

		if headerToken != csrfCookie {
			response.Error(c, http.StatusForbidden, "Ungültiges CSRF-Token", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
