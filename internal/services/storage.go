package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"freshmarket_back_end/internal/config"
	"freshmarket_back_end/internal/database"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// UploadProductImage stores an uploaded image in MinIO and returns its
// public URL.
func UploadProductImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("%w: image storage is not configured", ErrValidation)
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	object := uuid.NewString() + filepath.Ext(file.Filename)
	bucket := config.C.MinIO.Bucket

	_, err = database.MinIO.PutObject(ctx, bucket, object, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	scheme := "http"
	if config.C.MinIO.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, config.C.MinIO.Endpoint, bucket, object), nil
}
