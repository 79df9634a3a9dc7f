package users

import (
	"context"
	"errors"
	"testing"

	"github.com/gemgeek/gemconnect-backend/src/core/apperrors"
	"github.com/gemgeek/gemconnect-backend/src/core/database/dbtest"
	"github.com/gemgeek/gemconnect-backend/src/core/models"
	"github.com/google/uuid"
)

func TestGetByID(t *testing.T) {
	db := dbtest.New(t)
	svc := NewService(db)
	alice := dbtest.CreateUser(t, db, "alice")

	got, err := svc.GetByID(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Username != "alice" || got.IsVerified || got.Bio != "" {
		t.Fatalf("unexpected user %+v", got)
	}

	if _, err := svc.GetByID(context.Background(), uuid.New()); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestByIDsSkipsMissing(t *testing.T) {
	db := dbtest.New(t)
	svc := NewService(db)
	alice := dbtest.CreateUser(t, db, "alice")
	bob := dbtest.CreateUser(t, db, "bob")

	got, err := svc.ByIDs(context.Background(), []uuid.UUID{alice.ID, bob.ID, uuid.New()})
	if err != nil {
		t.Fatalf("by ids: %v", err)
	}
	if len(got) != 2 || got[bob.ID].Username != "bob" {
		t.Fatalf("unexpected result %v", got)
	}
}

func TestCreateDuplicate(t *testing.T) {
	db := dbtest.New(t)
	svc := NewService(db)
	ctx := context.Background()

	if err := svc.Create(ctx, &models.User{Username: "alice", Email: "a@example.com", Password: "x"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := svc.Create(ctx, &models.User{Username: "alice", Email: "other@example.com", Password: "x"})
	if !errors.Is(err, apperrors.ErrAlreadyExists) {
		t.Fatalf("expected ALREADY_EXISTS for username, got %v", err)
	}
	err = svc.Create(ctx, &models.User{Username: "alice2", Email: "a@example.com", Password: "x"})
	if !errors.Is(err, apperrors.ErrAlreadyExists) {
		t.Fatalf("expected ALREADY_EXISTS for email, got %v", err)
	}
}
