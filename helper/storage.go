package helper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

var ErrFileStoreNotConfigured = errors.New("document storage is not configured")

const PresignExpiry = 24 * time.Hour

// FileStore lưu PDF vé/báo giá và file excel báo cáo
type FileStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

type MinioStore struct {
	client *minio.Client
	bucket string
}

func NewMinioStore(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioStore, error) {
	if endpoint == "" {
		return nil, ErrFileStoreNotConfigured
	}
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", bucket, err)
		}
		zap.L().Info("bucket created", zap.String("bucket", bucket))
	}

	return &MinioStore{client: client, bucket: bucket}, nil
}

func (m *MinioStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

func (m *MinioStore) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	params := make(url.Values)
	params.Set("response-content-disposition", fmt.Sprintf(`attachment; filename="%s"`, path.Base(key)))
	u, err := m.client.PresignedGetObject(ctx, m.bucket, key, expiry, params)
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return u.String(), nil
}

// ObjectKey tạo key dạng <prefix>/<yyyy/mm>/<name>-<uuid8><ext>
func ObjectKey(prefix, name, ext string) string {
	now := time.Now()
	return fmt.Sprintf("%s/%s/%s-%s%s", prefix, now.Format("2006/01"), name, uuid.New().String()[:8], ext)
}

// ArchiveDocument lưu file rồi trả về link tải có thời hạn
func ArchiveDocument(ctx context.Context, store FileStore, key string, data []byte, contentType string) (string, error) {
	if store == nil {
		return "", ErrFileStoreNotConfigured
	}
	if err := store.Put(ctx, key, data, contentType); err != nil {
		return "", err
	}
	return store.PresignedURL(ctx, key, PresignExpiry)
}
