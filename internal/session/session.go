// Package session carries the authenticated caller through a request.
package session

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var ErrNoSession = errors.New("no authenticated session")

type contextKey struct{}

// Session is the identity attached to an authenticated request.
type Session struct {
	UserID uuid.UUID
	Token  string
}

const ginKey = "session"

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored by WithSession.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(contextKey{}).(Session)
	return s, ok
}

// Attach stores s on both the gin context and the request context, so that
// services that only see a context.Context can still find it.
func Attach(c *gin.Context, s Session) {
	c.Set(ginKey, s)
	c.Request = c.Request.WithContext(WithSession(c.Request.Context(), s))
}

// Current returns the session attached to c.
func Current(c *gin.Context) (Session, bool) {
	v, ok := c.Get(ginKey)
	if !ok {
		return Session{}, false
	}
	s, ok := v.(Session)
	return s, ok
}

// UserID returns the authenticated user id, or uuid.Nil.
func UserID(c *gin.Context) uuid.UUID {
	s, _ := Current(c)
	return s.UserID
}

// ForwardedToken hands out the caller's own bearer token, unless a fixed
// token is configured.
type ForwardedToken struct {
	Fixed string
}

func (f ForwardedToken) Token(ctx context.Context) (string, error) {
	if f.Fixed != "" {
		return f.Fixed, nil
	}
	s, ok := FromContext(ctx)
	if !ok {
		return "", ErrNoSession
	}
	return s.Token, nil
}
