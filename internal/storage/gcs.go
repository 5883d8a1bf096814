package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSBackend stores resumes as objects under resumes/ in a bucket.
type GCSBackend struct {
	client *gcs.Client
	bucket string
	now    func() time.Time
}

// NewGCSBackend creates the client up front so credential problems surface
// at startup. An empty credentialsFile uses application default credentials.
func NewGCSBackend(ctx context.Context, bucket, credentialsFile string, opts ...option.ClientOption) (*GCSBackend, error) {
	if credentialsFile != "" {
		opts = append([]option.ClientOption{option.WithCredentialsFile(credentialsFile)}, opts...)
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCSBackend{client: client, bucket: bucket, now: time.Now}, nil
}

func (b *GCSBackend) Name() string { return SourceGCS }

func (b *GCSBackend) Upload(ctx context.Context, f File) (Descriptor, error) {
	uploadedAt := b.now()
	key := fmt.Sprintf("resumes/%d_%s", uploadedAt.UnixMilli(), SanitizeName(f.Name))

	w := b.client.Bucket(b.bucket).Object(key).NewWriter(ctx)
	w.ContentType = pdfMIME
	w.ContentDisposition = `inline; filename="resume.pdf"`
	w.Metadata = map[string]string{
		"originalName": f.Name,
		"uploadedAt":   uploadedAt.UTC().Format(time.RFC3339),
		"fileSize":     strconv.FormatInt(f.Size(), 10),
		"type":         "resume",
	}

	if _, err := w.Write(f.Data); err != nil {
		_ = w.Close()
		return Descriptor{}, fmt.Errorf("gcs write: %w", err)
	}
	if err := w.Close(); err != nil {
		return Descriptor{}, fmt.Errorf("gcs upload: %w", err)
	}

	return Descriptor{
		FileID:      key,
		FileName:    f.Name,
		WebViewLink: fmt.Sprintf("https://storage.googleapis.com/%s/%s", b.bucket, key),
		Source:      SourceGCS,
	}, nil
}

// Delete removes the object; a missing object is not an error.
func (b *GCSBackend) Delete(ctx context.Context, fileID string) error {
	err := b.client.Bucket(b.bucket).Object(fileID).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil
	}
	return err
}

// Close releases the client.
func (b *GCSBackend) Close() error {
	return b.client.Close()
}
