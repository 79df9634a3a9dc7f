package posts

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gemgeek/gemconnect-backend/src/core/apperrors"
	"github.com/gemgeek/gemconnect-backend/src/core/database/dbtest"
	"github.com/gemgeek/gemconnect-backend/src/core/models"
	"github.com/google/uuid"
)

type memoryStore struct {
	mu    sync.Mutex
	saved map[string][]byte
	err   error
}

func (m *memoryStore) Save(_ context.Context, path, _ string, data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved == nil {
		m.saved = map[string][]byte{}
	}
	m.saved[path] = data
	return "https://cdn.example.com/" + path, nil
}

func strPtr(s string) *string { return &s }

func TestCreatePostWithImage(t *testing.T) {
	db := dbtest.New(t)
	store := &memoryStore{}
	svc := NewService(db, store)
	alice := dbtest.CreateUser(t, db, "alice")

	raw := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("\x89PNG\r\n\x1a\nrest"))
	post, err := svc.CreatePost(context.Background(), alice.ID, "with picture", &raw)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	wantPath := "posts/" + post.ID.String() + ".png"
	if _, ok := store.saved[wantPath]; !ok {
		t.Fatalf("image not stored at %s: %v", wantPath, store.saved)
	}
	if post.ImageURL == nil || *post.ImageURL != "https://cdn.example.com/"+wantPath {
		t.Fatalf("unexpected image url %v", post.ImageURL)
	}
}

func TestCreatePostImageSoftFail(t *testing.T) {
	db := dbtest.New(t)
	alice := dbtest.CreateUser(t, db, "alice")

	cases := map[string]struct {
		store *memoryStore
		image string
	}{
		"malformed payload": {store: &memoryStore{}, image: "definitely not an image"},
		"bad base64":        {store: &memoryStore{}, image: "data:image/png;base64,%%%"},
		"upload failure": {
			store: &memoryStore{err: errors.New("bucket unavailable")},
			image: "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png")),
		},
	}
	for name, tc := range cases {
		svc := NewService(db, tc.store)
		post, err := svc.CreatePost(context.Background(), alice.ID, name, strPtr(tc.image))
		if err != nil {
			t.Fatalf("%s: mutation must not fail, got %v", name, err)
		}
		if post.ImageURL != nil {
			t.Fatalf("%s: expected no image, got %q", name, *post.ImageURL)
		}
		stored, err := svc.GetByID(context.Background(), post.ID)
		if err != nil {
			t.Fatalf("%s: post not persisted: %v", name, err)
		}
		if stored.Content != name {
			t.Fatalf("%s: unexpected content %q", name, stored.Content)
		}
	}
}

func TestCreatePostEmptyImageIgnored(t *testing.T) {
	db := dbtest.New(t)
	store := &memoryStore{}
	svc := NewService(db, store)
	alice := dbtest.CreateUser(t, db, "alice")

	post, err := svc.CreatePost(context.Background(), alice.ID, "plain", strPtr(""))
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if post.ImageURL != nil || len(store.saved) != 0 {
		t.Fatal("empty image data must be treated as absent")
	}
}

func TestAllNewestFirst(t *testing.T) {
	db := dbtest.New(t)
	svc := NewService(db, nil)
	alice := dbtest.CreateUser(t, db, "alice")

	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	for i, content := range []string{"first", "second", "third"} {
		at := base.Add(time.Duration(i) * time.Hour)
		svc.now = func() time.Time { return at }
		if _, err := svc.CreatePost(context.Background(), alice.ID, content, nil); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	all, err := svc.All(context.Background())
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 3 || all[0].Content != "third" || all[2].Content != "first" {
		t.Fatalf("unexpected order %+v", all)
	}

	byAuthor, err := svc.ByAuthors(context.Background(), []uuid.UUID{alice.ID})
	if err != nil {
		t.Fatalf("by authors: %v", err)
	}
	if got := byAuthor[alice.ID]; len(got) != 3 || got[0].Content != "third" {
		t.Fatalf("unexpected author posts %+v", got)
	}
}

func TestSharePost(t *testing.T) {
	db := dbtest.New(t)
	svc := NewService(db, nil)
	alice := dbtest.CreateUser(t, db, "alice")
	bob := dbtest.CreateUser(t, db, "bob")
	post := dbtest.CreatePost(t, db, alice, "share me")

	for i := 0; i < 2; i++ {
		share, err := svc.SharePost(context.Background(), bob.ID, post.ID, strPtr("look"))
		if err != nil {
			t.Fatalf("share: %v", err)
		}
		if share.OriginalPostID != post.ID || share.SharedByID != bob.ID || *share.Message != "look" {
			t.Fatalf("unexpected share %+v", share)
		}
	}
	if _, err := svc.SharePost(context.Background(), bob.ID, post.ID, nil); err != nil {
		t.Fatalf("share without message: %v", err)
	}
	if n := dbtest.Count(t, db, &models.Share{}, "original_post_id = ?", post.ID); n != 3 {
		t.Fatalf("expected 3 shares, got %d", n)
	}
	if n := dbtest.Count(t, db, &models.Notification{}, ""); n != 0 {
		t.Fatalf("shares must not notify, got %d", n)
	}

	if _, err := svc.SharePost(context.Background(), bob.ID, uuid.New(), nil); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
