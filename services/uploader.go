package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/neuronstudy/backend/config"
	"github.com/neuronstudy/backend/models"
)

// ImageUploader is the object-storage collaborator: store the bytes, get
// back a public URL.
type ImageUploader interface {
	UploadImage(ctx context.Context, data []byte, contentType string) (string, error)
}

type GCSUploader struct {
	client    *storage.Client
	bucket    string
	publicURL string
}

func NewGCSUploader(ctx context.Context, cfg *config.Config) (*GCSUploader, error) {
	if cfg.GCSBucket == "" {
		return nil, fmt.Errorf("GCS_BUCKET is not configured")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSUploader{
		client:    client,
		bucket:    cfg.GCSBucket,
		publicURL: strings.TrimRight(cfg.GCSPublicURL, "/"),
	}, nil
}

func (u *GCSUploader) UploadImage(ctx context.Context, data []byte, contentType string) (string, error) {
	key := "images/" + uuid.NewString() + extForContentType(contentType)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := u.client.Bucket(u.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("%w: %v", models.ErrUploadFailed, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrUploadFailed, err)
	}

	if u.publicURL != "" {
		return u.publicURL + "/" + key, nil
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucket, key), nil
}

func extForContentType(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
