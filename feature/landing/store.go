package landing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"pvp-pipeline/core/storage"

	"github.com/minio/minio-go/v7"
)

// Store reads and writes JSON snapshots in the landing zone bucket.
type Store struct {
	client storage.Client
	bucket string
	prefix string
}

// NewStore creates a landing Store.
func NewStore(client storage.Client, bucket, prefix string) *Store {
	return &Store{client: client, bucket: bucket, prefix: prefix}
}

// Prefix returns the object prefix of the landing zone.
func (s *Store) Prefix() string {
	return s.prefix
}

// PutJSON uploads v encoded as JSON under key.
func (s *Store) PutJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

// GetJSON downloads key and decodes it into out.
func (s *Store) GetJSON(ctx context.Context, key string, out any) error {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", key, err)
	}
	defer obj.Close()

	if err := json.NewDecoder(obj).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// List returns the sorted object names under the landing prefix that start with name.
func (s *Store) List(ctx context.Context, name string) ([]string, error) {
	prefix := join(s.prefix, name)

	var keys []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	sort.Strings(keys)
	return keys, nil
}

// LeaderboardObjects returns the leaderboard snapshots landed for date.
// Objects whose names do not parse are skipped.
func (s *Store) LeaderboardObjects(ctx context.Context, date string) ([]LeaderboardObject, error) {
	keys, err := s.List(ctx, leaderboardPrefix)
	if err != nil {
		return nil, err
	}

	var out []LeaderboardObject
	for _, key := range keys {
		if !strings.HasSuffix(key, "_"+date+extension) {
			continue
		}
		obj, err := ParseLeaderboardKey(key)
		if err != nil || obj.Date != date {
			continue
		}
		out = append(out, obj)
	}
	return out, nil
}
