package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	storage_go "github.com/supabase-community/storage-go"
)

// SupabaseStore persists objects in a Supabase Storage bucket
type SupabaseStore struct {
	client *storage_go.Client
	bucket string
}

// SupabaseConfig holds the connection settings for Supabase Storage
type SupabaseConfig struct {
	URL        string // e.g. https://<project>.supabase.co/storage/v1
	ServiceKey string
	Bucket     string
}

// NewSupabaseStore creates an object store backed by Supabase Storage
func NewSupabaseStore(cfg SupabaseConfig) (*SupabaseStore, error) {
	if cfg.URL == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("supabase storage requires a URL and bucket")
	}

	client := storage_go.NewClient(cfg.URL, cfg.ServiceKey, nil)

	return &SupabaseStore{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// Put uploads an object, overwriting any existing one at the same key
func (s *SupabaseStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	upsert := true
	_, err := s.client.UploadFile(s.bucket, key, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object %s: %w", key, err)
	}
	return nil
}

// Get downloads an object by key
func (s *SupabaseStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.DownloadFile(s.bucket, key)
	if err != nil {
		if strings.Contains(err.Error(), "not_found") || strings.Contains(err.Error(), "404") {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to download object %s: %w", key, err)
	}
	return data, nil
}

// Healthy verifies the bucket is reachable
func (s *SupabaseStore) Healthy(ctx context.Context) error {
	if _, err := s.client.GetBucket(s.bucket); err != nil {
		return fmt.Errorf("bucket %s not reachable: %w", s.bucket, err)
	}
	return nil
}
