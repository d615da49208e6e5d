package storage

import (
	"Microblog/internal/api/config"
	"context"
	"fmt"
	"io"
	log "log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

// MinIOStore 对象存储，目录结构与本地存储一致
type MinIOStore struct {
	client *minio.Client
	bucket string
}

// NewMinIOStore 初始化 MinIO 客户端，桶不存在时自动创建
func NewMinIOStore(ctx context.Context, cfg config.MinIOConfig) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to minio server: %w", err)
	}
	if !exists {
		if err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
		log.Info("MinIO bucket created", "bucket", cfg.Bucket)
	}

	return &MinIOStore{client: client, bucket: cfg.Bucket}, nil
}

func (s *MinIOStore) Save(ctx context.Context, name string, reader io.Reader, size int64, contentType string) error {
	cleaned, err := CleanName(name)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, s.bucket, cleaned, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return errors.Wrapf(err, "upload %s", name)
}

func (s *MinIOStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	cleaned, err := CleanName(name)
	if err != nil {
		return nil, err
	}
	obj, err := s.client.GetObject(ctx, s.bucket, cleaned, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrapf(err, "get %s", name)
	}
	// GetObject 是惰性的，Stat 确认对象存在
	if _, err = obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, errors.Wrapf(err, "stat %s", name)
	}
	return obj, nil
}

func (s *MinIOStore) Remove(ctx context.Context, name string) error {
	cleaned, err := CleanName(name)
	if err != nil {
		return err
	}
	err = s.client.RemoveObject(ctx, s.bucket, cleaned, minio.RemoveObjectOptions{})
	if err != nil && minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return nil
	}
	return errors.Wrapf(err, "remove %s", name)
}
