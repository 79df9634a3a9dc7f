// Package auth is the capability gate: it answers whether a request carries
// an authenticated identity, and issues the tokens that carry one.
package auth

import (
	"context"

	"github.com/gemgeek/gemconnect-backend/src/core/apperrors"
	"github.com/google/uuid"
)

// Identity is an authenticated caller.
type Identity struct {
	UserID   uuid.UUID
	Username string
}

type ctxKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the caller's identity; ok is false for anonymous requests.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	if !ok || id.UserID == uuid.Nil {
		return Identity{}, false
	}
	return id, true
}

// Require is FromContext for operations that refuse anonymous callers.
func Require(ctx context.Context) (Identity, error) {
	id, ok := FromContext(ctx)
	if !ok {
		return Identity{}, apperrors.ErrUnauthenticated
	}
	return id, nil
}
