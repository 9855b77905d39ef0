// Package storage retains rendered reports in S3-compatible object storage.
package storage

import (
	"context"
	"fmt"
	"path/filepath"

	portssvc "github.com/codelab/api-financeiro/internal/core/ports/services"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ConnectionInfo configures the object storage connection.
type ConnectionInfo struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
	UseSSL    bool
}

// MinioArchiver uploads rendered report files into a bucket. It is an
// optional collaborator: exports proceed even when archiving fails.
type MinioArchiver struct {
	client *minio.Client
	bucket string
}

// NewMinioArchiver connects to object storage and ensures the bucket
// exists.
func NewMinioArchiver(ctx context.Context, info ConnectionInfo) (*MinioArchiver, error) {
	client, err := minio.New(info.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(info.AccessKey, info.SecretKey, ""),
		Secure: info.UseSSL,
		Region: info.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	a := &MinioArchiver{client: client, bucket: info.Bucket}
	if err := a.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

var _ portssvc.ReportArchiver = (*MinioArchiver)(nil)

func (a *MinioArchiver) ensureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", a.bucket, err)
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", a.bucket, err)
		}
	}
	return nil
}

// Archive uploads the file under its base name.
func (a *MinioArchiver) Archive(ctx context.Context, filePath string) error {
	object := filepath.Base(filePath)
	_, err := a.client.FPutObject(ctx, a.bucket, object, filePath, minio.PutObjectOptions{
		ContentType: xlsxContentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload report %s: %w", object, err)
	}
	return nil
}
