package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/gemgeek/gemconnect-backend/src/core/apperrors"
	"github.com/google/uuid"
)

func TestAnonymousContext(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Fatal("background context must be anonymous")
	}
	if _, err := Require(context.Background()); !errors.Is(err, apperrors.ErrUnauthenticated) {
		t.Fatalf("expected Unauthenticated, got %v", err)
	}
	// A zero identity is treated as no identity.
	ctx := WithIdentity(context.Background(), Identity{})
	if _, ok := FromContext(ctx); ok {
		t.Fatal("zero identity must be anonymous")
	}
}

func TestAuthenticatedContext(t *testing.T) {
	want := Identity{UserID: uuid.New(), Username: "dana"}
	ctx := WithIdentity(context.Background(), want)
	got, err := Require(ctx)
	if err != nil {
		t.Fatalf("require: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
