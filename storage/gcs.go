package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"cloud.google.com/go/storage"
)

const uploadTimeout = 50 * time.Second

type GCS struct {
	cl         *storage.Client
	projectID  string
	bucketName string
	uploadPath string
}

func NewGCS(ctx context.Context, projectID, bucketName string) (*GCS, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("gcs bucket name is required")
	}
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
		os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "./credentials.json")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}

	slog.Info("initialized GCS storage", "project", projectID, "bucket", bucketName)

	return &GCS{
		cl:         client,
		projectID:  projectID,
		bucketName: bucketName,
		uploadPath: "images/",
	}, nil
}

func (g *GCS) Upload(ctx context.Context, object string, file io.Reader, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	objectPath := g.uploadPath + object

	wc := g.cl.Bucket(g.bucketName).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentType
	if _, err := io.Copy(wc, file); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("io.Copy: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("Writer.Close: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucketName, objectPath), nil
}
