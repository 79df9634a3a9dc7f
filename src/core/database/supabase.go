package database

import (
	"errors"

	"github.com/gemgeek/gemconnect-backend/src/core/config"
	storage_go "github.com/supabase-community/storage-go"
)

// ErrStorageNotConfigured is returned when the Supabase variables are unset.
var ErrStorageNotConfigured = errors.New("missing SUPABASE_URL, SUPABASE_KEY, or BUCKET_NAME in environment variables")

// SupabaseStorage initializes the storage client and bucket name
func SupabaseStorage() (*storage_go.Client, string, error) {
	projectURL := config.Config("SUPABASE_URL")
	projectSecretAPIKey := config.Config("SUPABASE_KEY")
	bucketName := config.Config("BUCKET_NAME")

	if projectURL == "" || projectSecretAPIKey == "" || bucketName == "" {
		return nil, "", ErrStorageNotConfigured
	}

	storageClient := storage_go.NewClient(projectURL+"/storage/v1", projectSecretAPIKey, nil)
	return storageClient, bucketName, nil
}
