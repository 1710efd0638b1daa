package corpus

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
)

// MinioStore is an ObjectStore backed by a MinIO (or any S3-compatible)
// endpoint.
type MinioStore struct {
	client *minio.Client
}

// NewMinioStore creates an ObjectStore that reads through client.
func NewMinioStore(client *minio.Client) *MinioStore {
	return &MinioStore{client: client}
}

// WithMinioClient serves s3:// sources through a MinIO client.
func WithMinioClient(client *minio.Client) LoaderOption {
	return WithObjectStore(NewMinioStore(client))
}

// Open implements ObjectStore. A missing key fails here rather than on the
// first read.
func (s *MinioStore) Open(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	if _, err := s.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{}); err != nil {
		return nil, minioError(err)
	}

	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, minioError(err)
	}
	return obj, nil
}

func minioError(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound", "NoSuchBucket":
		return ErrNotFound
	}
	return err
}
