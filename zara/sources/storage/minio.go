package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"zara/zara/config"
	"zara/zara/services/mirror"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOSink mirrors registrations and exchanges as JSON objects in a bucket.
type MinIOSink struct {
	client *minio.Client
	bucket string
	newID  func() string
}

func NewMinIOSink(ctx context.Context, cfg config.Config) (*MinIOSink, error) {
	bucket := cfg.MinIOBucket
	client, err := minio.New(
		cfg.MinIOEndpoint,
		&minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
			Secure: cfg.MinIOUseSSL,
		},
	)
	if err != nil {
		return nil, err
	}
	// Create bucket if not exists
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return &MinIOSink{client: client, bucket: bucket, newID: uuid.NewString}, nil
}

func (m *MinIOSink) RecordRegistration(ctx context.Context, r mirror.Registration) error {
	return m.put(ctx, registrationKey(m.newID()), r)
}

func (m *MinIOSink) RecordExchange(ctx context.Context, e mirror.Exchange) error {
	return m.put(ctx, exchangeKey(e.CreatedAt, m.newID()), e)
}

func (m *MinIOSink) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func registrationKey(id string) string {
	return path.Join("registrations", id+".json")
}

func exchangeKey(at time.Time, id string) string {
	return path.Join("exchanges", at.UTC().Format("2006-01-02"), id+".json")
}
