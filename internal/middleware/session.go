package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/recipenest/recipenest-web/internal/session"
	"github.com/recipenest/recipenest-web/pkg/jwt"
)

const (
	// SessionContextKey is the key used to store the session in context
	SessionContextKey = "recipenest_session"

	// SessionIDContextKey is the key used to store the session ID in context
	SessionIDContextKey = "recipenest_session_id"
)

var (
	ErrSessionNotFound = errors.New("session not found in context")
	ErrInvalidSession  = errors.New("invalid session type")
)

// CookieConfig carries the cookie attributes for the session cookie.
type CookieConfig struct {
	Name   string
	Domain string
	Secure bool
	MaxAge int
}

// SessionMiddleware resolves the session cookie into server-side session
// state. A missing, tampered, or expired cookie yields a fresh anonymous
// session and a new cookie, so every handler downstream can rely on a live
// session being present. Presence alone never implies authentication.
func SessionMiddleware(store *session.Store, tokens *jwt.TokenManager, cookie CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, err := c.Cookie(cookie.Name); err == nil {
			if id, err := tokens.ValidateToken(raw); err == nil {
				if sess, ok := store.Get(id); ok {
					c.Set(SessionContextKey, sess)
					c.Set(SessionIDContextKey, id)
					c.Next()
					return
				}
			}
		}

		id, sess := store.Create()
		token, err := tokens.GenerateToken(id)
		if err != nil {
			// Without a signable cookie the session cannot survive the
			// request; carry on with the in-memory one
			_ = c.Error(err) //nolint:errcheck
		} else {
			setSessionCookie(c, cookie, token)
		}

		c.Set(SessionContextKey, sess)
		c.Set(SessionIDContextKey, id)
		c.Next()
	}
}

// GetSession extracts the session from context
func GetSession(c *gin.Context) (*session.Session, error) {
	val, exists := c.Get(SessionContextKey)
	if !exists {
		return nil, ErrSessionNotFound
	}

	sess, ok := val.(*session.Session)
	if !ok {
		return nil, ErrInvalidSession
	}

	return sess, nil
}

// GetSessionID extracts the session ID from context
func GetSessionID(c *gin.Context) (string, error) {
	val, exists := c.Get(SessionIDContextKey)
	if !exists {
		return "", ErrSessionNotFound
	}

	id, ok := val.(string)
	if !ok {
		return "", ErrInvalidSession
	}

	return id, nil
}

// RequireIdentity gates a route on an authenticated session. Anonymous
// visitors are redirected; they never see an error page for merely not being
// logged in.
func RequireIdentity(redirectTo string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := GetSession(c)
		if err != nil || sess.Identity() == "" {
			c.Redirect(http.StatusSeeOther, redirectTo)
			c.Abort()
			return
		}
		c.Next()
	}
}

// ClearSessionCookie expires the session cookie (logout).
func ClearSessionCookie(c *gin.Context, cookie CookieConfig) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		cookie.Name,
		"",
		-1,
		"/",
		cookie.Domain,
		cookie.Secure,
		true, // HttpOnly
	)
}

func setSessionCookie(c *gin.Context, cookie CookieConfig, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		cookie.Name,
		token,
		cookie.MaxAge,
		"/",
		cookie.Domain,
		cookie.Secure,
		true, // HttpOnly
	)
}
