package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gemgeek/gemconnect-backend/src/core/database"
	storage_go "github.com/supabase-community/storage-go"
)

// ErrMalformedDataURI is returned for image payloads that are not
// "<mime>;base64,<payload>".
var ErrMalformedDataURI = errors.New("malformed image data")

var extPattern = regexp.MustCompile(`^[A-Za-z0-9+-]{1,16}$`)

// Image is a decoded inline upload.
type Image struct {
	Ext         string
	ContentType string
	Data        []byte
}

// DecodeDataURI decodes "data:image/png;base64,iVBOR..." style payloads. The
// subtype after the last "/" of the prefix becomes the file extension.
func DecodeDataURI(raw string) (*Image, error) {
	parts := strings.Split(raw, ";base64,")
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: expected <mime>;base64,<payload>", ErrMalformedDataURI)
	}
	format, payload := parts[0], parts[1]

	ext := format[strings.LastIndex(format, "/")+1:]
	if !extPattern.MatchString(ext) {
		return nil, fmt.Errorf("%w: bad extension %q", ErrMalformedDataURI, ext)
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDataURI, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformedDataURI)
	}

	return &Image{
		Ext:         strings.ToLower(ext),
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}

// BlobStore saves bytes and returns a reference clients can load them from.
type BlobStore interface {
	Save(ctx context.Context, path, contentType string, data []byte) (string, error)
}

// SupabaseStore uploads to a Supabase storage bucket.
type SupabaseStore struct {
	client *storage_go.Client
	bucket string
}

// NewSupabaseStore builds a store from SUPABASE_URL, SUPABASE_KEY and BUCKET_NAME.
func NewSupabaseStore() (*SupabaseStore, error) {
	client, bucket, err := database.SupabaseStorage()
	if err != nil {
		return nil, err
	}
	return &SupabaseStore{client: client, bucket: bucket}, nil
}

// Save uploads the file and returns its public URL.
func (s *SupabaseStore) Save(ctx context.Context, path, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	_, err := s.client.UploadFile(s.bucket, path, bytes.NewReader(data), storage_go.FileOptions{ContentType: &contentType})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", path, err)
	}
	return s.client.GetPublicUrl(s.bucket, path).SignedURL, nil
}

// DiskStore writes files under Dir; used when no bucket is configured.
type DiskStore struct {
	Dir string
}

// Save writes the file and returns its path relative to the working directory.
func (d DiskStore) Save(ctx context.Context, path, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	full := filepath.Join(d.Dir, filepath.Clean("/"+path))
	if err := os.MkdirAll(filepath.Dir(full), os.ModePerm); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", full, err)
	}
	return full, nil
}
