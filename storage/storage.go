package storage

import (
	"context"
	"fmt"
	"io"
)

// Uploader stores generated image bytes and returns a URL clients can fetch.
type Uploader interface {
	Upload(ctx context.Context, object string, file io.Reader, contentType string) (string, error)
}

type Options struct {
	Driver string

	GCSProjectID  string
	GCSBucketName string

	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string
}

func New(ctx context.Context, opts Options) (Uploader, error) {
	switch opts.Driver {
	case "gcs":
		return NewGCS(ctx, opts.GCSProjectID, opts.GCSBucketName)
	case "s3":
		return NewS3(ctx, S3Config{
			Region:    opts.S3Region,
			Bucket:    opts.S3Bucket,
			AccessKey: opts.S3AccessKey,
			SecretKey: opts.S3SecretKey,
			Endpoint:  opts.S3Endpoint,
		})
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", opts.Driver)
	}
}
