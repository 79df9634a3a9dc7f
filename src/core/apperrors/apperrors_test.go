package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsMatchesByKind(t *testing.T) {
	err := NotFoundf("post %s not found", "abc")
	if !errors.Is(err, ErrNotFound) {
		t.Fatal("expected NotFound to match sentinel")
	}
	if errors.Is(err, ErrUnauthenticated) {
		t.Fatal("NotFound must not match Unauthenticated")
	}

	wrapped := fmt.Errorf("resolve: %w", err)
	if !errors.Is(wrapped, ErrNotFound) {
		t.Fatal("expected match through fmt wrapping")
	}
	if KindOf(wrapped) != NotFound {
		t.Fatalf("KindOf = %s", KindOf(wrapped))
	}
}

func TestKindOfPlainError(t *testing.T) {
	if KindOf(errors.New("boom")) != Internal {
		t.Fatal("plain errors are internal")
	}
}

func TestExtensionsCarryCode(t *testing.T) {
	ext := ErrUnauthenticated.Extensions()
	if ext["code"] != "UNAUTHENTICATED" {
		t.Fatalf("unexpected extensions %v", ext)
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("duplicate key")
	err := Wrap(AlreadyExists, "username taken", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
	if err.Error() != "username taken: duplicate key" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
