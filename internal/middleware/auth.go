package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/gohotels/internal/pkg/logger"
	"github.com/xyz-asif/gohotels/internal/pkg/response"
	"github.com/xyz-asif/gohotels/internal/pkg/token"
)

// UserIDKey is the gin context key holding the authenticated user id.
const UserIDKey = "userID"

// Auth requires a valid auth_token cookie and exposes its user id under UserIDKey.
func Auth(issuer *token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(token.CookieName)
		if err != nil || raw == "" {
			response.Unauthorized(c, "unauthorized")
			c.Abort()
			return
		}

		claims, err := issuer.Verify(raw)
		if err != nil {
			logger.FromContext(c.Request.Context()).Debug().Err(err).Msg("rejected auth cookie")
			response.Unauthorized(c, "unauthorized")
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)

		l := logger.FromContext(c.Request.Context()).WithField("userId", claims.UserID)
		c.Request = c.Request.WithContext(l.WithContext(c.Request.Context()))

		c.Next()
	}
}

// UserID returns the authenticated user id, or "" outside Auth.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// SetAuthCookie writes the session cookie.
func SetAuthCookie(c *gin.Context, value string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(token.CookieName, value, maxAge, "/", "", secure, true)
}

// ClearAuthCookie expires the session cookie.
func ClearAuthCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(token.CookieName, "", -1, "/", "", secure, true)
}
