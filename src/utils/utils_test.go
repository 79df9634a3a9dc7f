package utils

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestDecodeDataURI(t *testing.T) {
	raw := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngHeader)
	img, err := DecodeDataURI(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Ext != "png" {
		t.Fatalf("ext = %q", img.Ext)
	}
	if img.ContentType != "image/png" {
		t.Fatalf("content type = %q", img.ContentType)
	}
	if len(img.Data) != len(pngHeader) {
		t.Fatalf("decoded %d bytes", len(img.Data))
	}
}

func TestDecodeDataURIWithoutDataPrefix(t *testing.T) {
	img, err := DecodeDataURI("image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("jpeg-bytes")))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Ext != "jpeg" {
		t.Fatalf("ext = %q", img.Ext)
	}
}

func TestDecodeDataURIMalformed(t *testing.T) {
	cases := map[string]string{
		"no separator":   "data:image/png," + base64.StdEncoding.EncodeToString(pngHeader),
		"bad base64":     "data:image/png;base64,@@@not-base64@@@",
		"empty payload":  "data:image/png;base64,",
		"dotted ext":     "data:image/p.ng;base64," + base64.StdEncoding.EncodeToString(pngHeader),
		"two separators": "data:image/png;base64,AAAA;base64,AAAA",
	}
	for name, raw := range cases {
		if _, err := DecodeDataURI(raw); !errors.Is(err, ErrMalformedDataURI) {
			t.Errorf("%s: expected ErrMalformedDataURI, got %v", name, err)
		}
	}
}

func TestDiskStoreSave(t *testing.T) {
	dir := t.TempDir()
	store := DiskStore{Dir: dir}

	ref, err := store.Save(context.Background(), "posts/abc.png", "image/png", pngHeader)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if ref != filepath.Join(dir, "posts", "abc.png") {
		t.Fatalf("unexpected ref %q", ref)
	}
	got, err := os.ReadFile(ref)
	if err != nil || len(got) != len(pngHeader) {
		t.Fatalf("read back: %v (%d bytes)", err, len(got))
	}

	// Paths cannot escape the upload directory.
	ref, err = store.Save(context.Background(), "../../outside.png", "image/png", pngHeader)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Dir(ref) != dir {
		t.Fatalf("path escaped upload dir: %q", ref)
	}
}
