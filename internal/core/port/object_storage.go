package port

import "context"

// ObjectStoragePort - минимальный контракт blob-хранилища.
// Ядро зависит только от этих пяти операций.
type ObjectStoragePort interface {
	BucketExists(ctx context.Context, name string) (bool, error)

	CreateBucket(ctx context.Context, name string) error

	PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error

	GetObject(ctx context.Context, bucket, key string) ([]byte, error)

	// ListObjects возвращает ключи объектов с данным префиксом.
	ListObjects(ctx context.Context, bucket, prefix string, recursive bool) ([]string, error)
}
