// Package middleware provides HTTP middleware for the Gin router.
//
// Go Learning Note — Middleware Pattern (Gin):
// In Gin, middleware is any function with the signature `gin.HandlerFunc`, which
// is `func(*gin.Context)`. Middleware functions form a chain: each one runs,
// optionally calls c.Next() to pass control to the next handler, and can call
// c.Abort() to stop the chain.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"movi/internal/domain/entities"
	"movi/internal/services"
)

// Context keys set by SessionAuth.
const (
	SessionIDKey = "session_id"
	SessionKey   = "session"
)

// SessionResolver looks up a live session by id.
type SessionResolver interface {
	Get(id string) (*services.Session, error)
}

// SessionAuth resolves the caller's session from "Authorization: Bearer <id>".
// Browsers cannot set headers on a WebSocket handshake, so a "session" query
// parameter is accepted as well.
//
// There is no user account behind a session: the id is a bearer token handed
// out by POST /sessions, nothing more.
//
// Go Learning Note — c.Abort():
// c.Abort() prevents subsequent handlers in the chain from running. Without it,
// even after writing an error response, the next handler would still execute.
func SessionAuth(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionIDFromRequest(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
			c.Abort()
			return
		}

		session, err := sessions.Get(id)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown session"})
			c.Abort()
			return
		}

		c.Set(SessionIDKey, session.ID)
		c.Set(SessionKey, session)
		c.Next()
	}
}

func sessionIDFromRequest(c *gin.Context) (string, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		// strings.SplitN splits into at most 2 parts, handling tokens with spaces.
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return "", false
		}
		id := strings.TrimSpace(parts[1])
		return id, id != ""
	}
	if id := c.Query("session"); id != "" {
		return id, true
	}
	return "", false
}

// RequireMode only lets the request through when the session is in the given
// view mode. Must be used after SessionAuth.
func RequireMode(mode entities.ViewMode) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := GetSession(c)
		if session == nil || session.Mode() != mode {
			c.JSON(http.StatusForbidden, gin.H{"error": string(mode) + " mode required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetSession retrieves the session stored by SessionAuth.
//
// Go Learning Note — Type Assertion:
// c.Get() returns (any, bool). The comma-ok form `s, _ := v.(*T)` yields nil
// instead of panicking when the key is missing.
func GetSession(c *gin.Context) *services.Session {
	v, _ := c.Get(SessionKey)
	session, _ := v.(*services.Session)
	return session
}
