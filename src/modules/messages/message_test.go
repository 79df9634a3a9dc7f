package messages

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gemgeek/gemconnect-backend/src/core/apperrors"
	"github.com/gemgeek/gemconnect-backend/src/core/database/dbtest"
	"github.com/gemgeek/gemconnect-backend/src/core/models"
	"github.com/google/uuid"
)

func TestConversationBothDirectionsOldestFirst(t *testing.T) {
	db := dbtest.New(t)
	svc := NewService(db)
	alice := dbtest.CreateUser(t, db, "alice")
	bob := dbtest.CreateUser(t, db, "bob")
	carol := dbtest.CreateUser(t, db, "carol")
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	send := func(from, to models.User, content string, offset time.Duration) {
		t.Helper()
		at := base.Add(offset)
		svc.now = func() time.Time { return at }
		if _, err := svc.SendMessage(ctx, from.ID, to.ID, content); err != nil {
			t.Fatalf("send %q: %v", content, err)
		}
	}
	send(bob, alice, "second", 2*time.Minute)
	send(alice, bob, "first", time.Minute)
	send(alice, carol, "elsewhere", 3*time.Minute)
	send(alice, bob, "third", 4*time.Minute)

	got, err := svc.Conversation(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("conversation: %v", err)
	}
	want := []string{"first", "second", "third"}
	if len(got) != len(want) {
		t.Fatalf("expected %d messages, got %d", len(want), len(got))
	}
	for i, m := range got {
		if m.Content != want[i] {
			t.Fatalf("message %d: got %q, want %q", i, m.Content, want[i])
		}
	}

	fromBob, err := svc.Conversation(ctx, bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("conversation: %v", err)
	}
	if len(fromBob) != 3 {
		t.Fatalf("conversation must be symmetric, got %d", len(fromBob))
	}
}

func TestSendMessageUnknownReceiver(t *testing.T) {
	db := dbtest.New(t)
	svc := NewService(db)
	alice := dbtest.CreateUser(t, db, "alice")

	if _, err := svc.SendMessage(context.Background(), alice.ID, uuid.New(), "hello?"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if n := dbtest.Count(t, db, &models.Message{}, ""); n != 0 {
		t.Fatalf("expected no messages, got %d", n)
	}
}

func TestSendMessageDoesNotNotify(t *testing.T) {
	db := dbtest.New(t)
	svc := NewService(db)
	alice := dbtest.CreateUser(t, db, "alice")
	bob := dbtest.CreateUser(t, db, "bob")

	msg, err := svc.SendMessage(context.Background(), alice.ID, bob.ID, "hi")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.IsRead || msg.ID == uuid.Nil {
		t.Fatalf("unexpected message %+v", msg)
	}
	if n := dbtest.Count(t, db, &models.Notification{}, ""); n != 0 {
		t.Fatalf("messages must not notify, got %d", n)
	}
}

func TestConversationUnknownFriend(t *testing.T) {
	db := dbtest.New(t)
	svc := NewService(db)
	alice := dbtest.CreateUser(t, db, "alice")

	if _, err := svc.Conversation(context.Background(), alice.ID, uuid.New()); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
