package posts

import (
	"context"
	"errors"
	"testing"

	"github.com/gemgeek/gemconnect-backend/src/core/apperrors"
	"github.com/gemgeek/gemconnect-backend/src/core/database/dbtest"
	"github.com/gemgeek/gemconnect-backend/src/core/models"
	"github.com/google/uuid"
)

func TestCreateCommentNotifiesAuthor(t *testing.T) {
	db := dbtest.New(t)
	svc := NewService(db, nil)
	alice := dbtest.CreateUser(t, db, "alice")
	bob := dbtest.CreateUser(t, db, "bob")
	post := dbtest.CreatePost(t, db, alice, "hello")

	comment, err := svc.CreateComment(context.Background(), bob.ID, post.ID, "nice post")
	if err != nil {
		t.Fatalf("comment: %v", err)
	}
	if comment.Text != "nice post" || comment.AuthorID != bob.ID || comment.CreatedAt.IsZero() {
		t.Fatalf("unexpected comment %+v", comment)
	}

	var n models.Notification
	if err := db.Where("recipient_id = ?", alice.ID).First(&n).Error; err != nil {
		t.Fatalf("notification: %v", err)
	}
	if n.Type != models.NotificationComment || n.SenderID != bob.ID || n.PostID == nil || *n.PostID != post.ID || n.IsRead {
		t.Fatalf("unexpected notification %+v", n)
	}
}

func TestCreateCommentOnOwnPostDoesNotNotify(t *testing.T) {
	db := dbtest.New(t)
	svc := NewService(db, nil)
	alice := dbtest.CreateUser(t, db, "alice")
	post := dbtest.CreatePost(t, db, alice, "hello")

	if _, err := svc.CreateComment(context.Background(), alice.ID, post.ID, "bump"); err != nil {
		t.Fatalf("comment: %v", err)
	}
	if n := dbtest.Count(t, db, &models.Notification{}, ""); n != 0 {
		t.Fatalf("self comment must not notify, got %d", n)
	}
}

func TestCreateCommentUnknownPost(t *testing.T) {
	db := dbtest.New(t)
	svc := NewService(db, nil)
	bob := dbtest.CreateUser(t, db, "bob")

	if _, err := svc.CreateComment(context.Background(), bob.ID, uuid.New(), "hi"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if n := dbtest.Count(t, db, &models.Comment{}, ""); n != 0 {
		t.Fatalf("no comment should be written, got %d", n)
	}
}

func TestCreateCommentCancelledContextRollsBack(t *testing.T) {
	db := dbtest.New(t)
	svc := NewService(db, nil)
	alice := dbtest.CreateUser(t, db, "alice")
	bob := dbtest.CreateUser(t, db, "bob")
	post := dbtest.CreatePost(t, db, alice, "hello")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.CreateComment(ctx, bob.ID, post.ID, "too late"); err == nil {
		t.Fatal("expected cancelled request to fail")
	}
	if n := dbtest.Count(t, db, &models.Comment{}, ""); n != 0 {
		t.Fatalf("expected no comment, got %d", n)
	}
	if n := dbtest.Count(t, db, &models.Notification{}, ""); n != 0 {
		t.Fatalf("expected no notification, got %d", n)
	}
}
