package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionKey = "sessionID"

// SessionConfig controls the session cookie
type SessionConfig struct {
	CookieName string
	Secure     bool
}

// Session ensures every request carries a session id. A missing or malformed
// cookie starts a new session.
func Session(cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := ""
		if raw, err := c.Cookie(cfg.CookieName); err == nil {
			if parsed, err := uuid.Parse(raw); err == nil {
				id = parsed.String()
			}
		}

		if id == "" {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cfg.CookieName, id, 0, "/", "", cfg.Secure, true)
		}

		c.Set(sessionKey, id)
		c.Next()
	}
}

// SessionID returns the id set by Session, or "" outside it
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
