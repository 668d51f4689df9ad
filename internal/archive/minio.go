package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/spec-kit/cdce-console/internal/config"
)

const backupPrefix = "backups"

// objectPutter is the part of the MinIO client used for archiving.
type objectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// MinioArchiver copies backup files into an S3-compatible bucket.
type MinioArchiver struct {
	client objectPutter
	bucket string
}

// NewMinioArchiver connects to the configured endpoint and makes sure the
// bucket exists.
func NewMinioArchiver(ctx context.Context, cfg config.ArchiveConfig, logger *zap.Logger) (*MinioArchiver, error) {
	if !cfg.Enabled() {
		return nil, errors.New("archive endpoint not configured")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
		logger.Info("archive bucket created", zap.String("bucket", cfg.Bucket))
	}

	logger.Info("connected to archive storage", zap.String("endpoint", cfg.Endpoint), zap.String("bucket", cfg.Bucket))
	return &MinioArchiver{client: client, bucket: cfg.Bucket}, nil
}

// Archive uploads content as backups/<name> and returns "bucket/object".
func (a *MinioArchiver) Archive(ctx context.Context, name string, content []byte) (string, error) {
	object := path.Join(backupPrefix, name)
	_, err := a.client.PutObject(ctx, a.bucket, object, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", object, err)
	}
	return a.bucket + "/" + object, nil
}
