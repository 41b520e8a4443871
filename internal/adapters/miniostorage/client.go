package miniostorage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"rentals-data-platform/internal/core/port"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOStorageAdapter реализует ObjectStoragePort поверх MinIO.
// Один клиент с персистентным connection pool на все время жизни приложения.
type MinIOStorageAdapter struct {
	client *minio.Client
	logger port.LoggerPort
}

// Config - настройки подключения
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	// Secure включает TLS (prod-окружение)
	Secure bool
}

// NewMinIOStorageAdapter создает клиент и проверяет/создает бакет.
// Check-then-create идемпотентен в предположении одного писателя.
func NewMinIOStorageAdapter(ctx context.Context, cfg Config, bucket string, logger port.LoggerPort) (*MinIOStorageAdapter, error) {
	// minio-go ждет endpoint без схемы
	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "https://"), "http://")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("miniostorage: failed to create client: %w", err)
	}

	adapter := &MinIOStorageAdapter{
		client: client,
		logger: logger.WithFields(port.Fields{"component": "MinIOStorageAdapter"}),
	}

	exists, err := adapter.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("miniostorage: failed to check bucket %q: %w", bucket, err)
	}
	if !exists {
		if err := adapter.CreateBucket(ctx, bucket); err != nil {
			return nil, fmt.Errorf("miniostorage: failed to create bucket %q: %w", bucket, err)
		}
		adapter.logger.Info("Created bucket", port.Fields{"bucket": bucket})
	}

	return adapter, nil
}

func (a *MinIOStorageAdapter) BucketExists(ctx context.Context, name string) (bool, error) {
	return a.client.BucketExists(ctx, name)
}

func (a *MinIOStorageAdapter) CreateBucket(ctx context.Context, name string) error {
	return a.client.MakeBucket(ctx, name, minio.MakeBucketOptions{})
}

func (a *MinIOStorageAdapter) PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	_, err := a.client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return err
	}
	a.logger.Debug("Saved object", port.Fields{"bucket": bucket, "key": key, "bytes": len(data)})
	return nil
}

func (a *MinIOStorageAdapter) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	obj, err := a.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (a *MinIOStorageAdapter) ListObjects(ctx context.Context, bucket, prefix string, recursive bool) ([]string, error) {
	var keys []string
	for info := range a.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: recursive,
	}) {
		if info.Err != nil {
			return nil, info.Err
		}
		keys = append(keys, info.Key)
	}
	return keys, nil
}
