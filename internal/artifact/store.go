// Package artifact persists export results to S3-compatible object
// storage so downloads can be re-fetched without re-rendering.
package artifact

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"docmint/internal/export"
	"docmint/internal/util"
)

// Store writes export artifacts to a MinIO bucket and hands out
// time-limited download links.
type Store struct {
	client *minio.Client
	bucket string
	ttl    time.Duration
}

// New connects to the object store and ensures the bucket exists.
func New(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool) (*Store, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio connect: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio bucket create: %w", err)
		}
	}

	return &Store{client: client, bucket: bucket, ttl: 15 * time.Minute}, nil
}

// Put uploads one export result under a fresh object key and returns
// the key with a presigned download URL.
func (s *Store) Put(ctx context.Context, profile string, res *export.Result) (string, string, error) {
	key := fmt.Sprintf("%s/%s-%s", profile, util.NewID("exp"), res.Filename)

	_, err := s.client.PutObject(ctx, s.bucket, key,
		bytes.NewReader(res.Data), int64(len(res.Data)),
		minio.PutObjectOptions{ContentType: res.MimeType})
	if err != nil {
		return "", "", fmt.Errorf("minio put: %w", err)
	}

	link, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.ttl, nil)
	if err != nil {
		return "", "", fmt.Errorf("minio presign: %w", err)
	}
	return key, link.String(), nil
}
