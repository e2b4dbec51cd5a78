package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"path"
	"strings"

	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder

	"threadloom/internal/models"
	"threadloom/internal/observability"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	maxUploadSizeBytes = 10 * 1024 * 1024
	webpQuality        = 70
)

// ObjectStore is the subset of the minio client the upload service needs.
type ObjectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// UploadFile is one binary payload handed to Upload.
type UploadFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// UploadResult carries the resolved public URL of a stored file.
type UploadResult struct {
	URL string `json:"url"`
}

// UploadService stores media files in S3-compatible object storage.
// Images are re-encoded to WebP before upload; other payloads are stored
// as-is.
type UploadService struct {
	store   ObjectStore
	bucket  string
	baseURL string
}

// NewUploadService creates a new UploadService.
func NewUploadService(store ObjectStore, bucket, baseURL string) *UploadService {
	return &UploadService{
		store:   store,
		bucket:  bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Upload stores each file and returns one result per input, in order.
// The whole batch fails on the first error.
func (s *UploadService) Upload(ctx context.Context, files []UploadFile) ([]UploadResult, error) {
	results := make([]UploadResult, 0, len(files))

	for _, f := range files {
		if len(f.Content) == 0 {
			observability.UploadsTotal.WithLabelValues("rejected").Inc()
			return nil, models.NewValidationError("empty file")
		}
		if len(f.Content) > maxUploadSizeBytes {
			observability.UploadsTotal.WithLabelValues("rejected").Inc()
			return nil, models.NewValidationError(fmt.Sprintf("file %q exceeds the %dMB upload limit", f.Filename, maxUploadSizeBytes/1024/1024))
		}

		content, contentType, ext := s.prepare(f)

		key := uuid.NewString() + ext
		_, err := s.store.PutObject(ctx, s.bucket, key,
			bytes.NewReader(content), int64(len(content)),
			minio.PutObjectOptions{ContentType: contentType})
		if err != nil {
			observability.UploadsTotal.WithLabelValues("error").Inc()
			return nil, models.NewStorageError(fmt.Sprintf("upload file %q", f.Filename), err)
		}

		observability.UploadsTotal.WithLabelValues("ok").Inc()
		results = append(results, UploadResult{
			URL: fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, key),
		})
	}

	return results, nil
}

// prepare re-encodes decodable images to WebP and passes everything else
// through untouched.
func (s *UploadService) prepare(f UploadFile) (content []byte, contentType, ext string) {
	if strings.HasPrefix(f.ContentType, "image/") {
		if img, _, err := image.Decode(bytes.NewReader(f.Content)); err == nil {
			var buf bytes.Buffer
			if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err == nil {
				return buf.Bytes(), "image/webp", ".webp"
			}
		}
	}

	ext = path.Ext(f.Filename)
	contentType = f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return f.Content, contentType, ext
}
